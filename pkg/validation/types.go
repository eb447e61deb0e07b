package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// CoercerFunc converts a raw string token into a typed value. It returns
// the coerced value, or an error whose message is shown to the user
// verbatim.
type CoercerFunc func(value string) (any, error)

// TypeRegistry maps parameter type names to their description and coercion
// function. A process normally uses the package-level DefaultTypes registry,
// which ships with the built-in types; integrators may register additional
// types before serving begins.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]typeEntry
}

type typeEntry struct {
	description string
	coerce      CoercerFunc
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]typeEntry)}
}

// Register adds a parameter type under the given name, replacing any
// previous registration.
func (r *TypeRegistry) Register(name, description string, coerce CoercerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = typeEntry{description: description, coerce: coerce}
}

// Describe returns the human-readable description for a type name.
func (r *TypeRegistry) Describe(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[name]
	return entry.description, ok
}

// Has reports whether a type name is registered.
func (r *TypeRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Coerce converts a value using the named type's coercion function.
// Referencing an unregistered type is an integrator programming mistake
// and panics rather than producing a user-visible validation error.
func (r *TypeRegistry) Coerce(name, value string) (any, error) {
	r.mu.RLock()
	entry, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("validation: unknown parameter type %q", name))
	}
	return entry.coerce(value)
}

// DefaultTypes is the process-wide type registry, populated with the
// built-in types at init.
var DefaultTypes = NewTypeRegistry()

// RegisterType registers a parameter type with the default registry.
func RegisterType(name, description string, coerce CoercerFunc) {
	DefaultTypes.Register(name, description, coerce)
}

var (
	mailtoRegex   = regexp.MustCompile(`^<mailto:([^|]+)\|([^>]+)>$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlSlackRegex = regexp.MustCompile(`^<(https?://[^|]+)\|([^>]+)>$`)
	urlRegex      = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
)

func coerceString(value string) (any, error) {
	return value, nil
}

func coerceInteger(value string) (any, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("Invalid value for integer: %s", value)
	}
	return parsed, nil
}

func coerceFloat(value string) (any, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid value for float: %s", value)
	}
	return parsed, nil
}

func coerceBoolean(value string) (any, error) {
	switch strings.ToLower(value) {
	case "yes", "true", "1", "y", "t":
		return true, nil
	case "no", "false", "0", "n", "f":
		return false, nil
	default:
		return nil, fmt.Errorf("Invalid boolean value: %s. Expected yes/no, true/false, 1/0, etc.", value)
	}
}

// coerceUserID accepts a bare Slack user ID or the mention form <@UXXXX>
// and extracts the bare ID.
func coerceUserID(value string) (any, error) {
	if !strings.HasPrefix(value, "<@U") && !strings.HasPrefix(value, "U") {
		return nil, fmt.Errorf("Invalid user ID: %s. Expected format: <@UXXXXXXXX> or UXXXXXXXX", value)
	}
	if strings.HasPrefix(value, "<@") && strings.HasSuffix(value, ">") {
		return value[2 : len(value)-1], nil
	}
	return value, nil
}

// coerceChannelID accepts a bare Slack channel ID or the mention form
// <#CXXXX|channel-name> and extracts the bare ID.
func coerceChannelID(value string) (any, error) {
	if !strings.HasPrefix(value, "<#C") && !strings.HasPrefix(value, "C") {
		return nil, fmt.Errorf("Invalid channel ID: %s. Expected format: <#CXXXXXXXX> or CXXXXXXXX", value)
	}
	if strings.HasPrefix(value, "<#") && strings.HasSuffix(value, ">") {
		inner := value[2 : len(value)-1]
		id, _, _ := strings.Cut(inner, "|")
		return id, nil
	}
	return value, nil
}

// coerceEmail accepts a bare address or Slack's <mailto:addr|display>
// form, extracting the display part.
func coerceEmail(value string) (any, error) {
	email := value
	if match := mailtoRegex.FindStringSubmatch(value); match != nil {
		email = match[2]
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("Invalid email address: %s", email)
	}
	return email, nil
}

// coerceURL accepts a bare URL or Slack's <url|display> form, extracting
// the URL part.
func coerceURL(value string) (any, error) {
	url := value
	if match := urlSlackRegex.FindStringSubmatch(value); match != nil {
		url = match[1]
	}
	if !urlRegex.MatchString(url) {
		return nil, fmt.Errorf("Invalid URL: %s", url)
	}
	return url, nil
}

func coerceChoice(value string, choices []string) (any, error) {
	for _, choice := range choices {
		if value == choice {
			return value, nil
		}
	}
	return nil, fmt.Errorf("Invalid choice: %s. Valid options: %s", value, strings.Join(choices, ", "))
}

func init() {
	RegisterType("string", "A text string", coerceString)
	RegisterType("integer", "A whole number", coerceInteger)
	RegisterType("float", "A floating-point number", coerceFloat)
	RegisterType("boolean", "A boolean value (true/false)", coerceBoolean)
	RegisterType("user_id", "A Slack user ID", coerceUserID)
	RegisterType("channel_id", "A Slack channel ID", coerceChannelID)
	RegisterType("email", "An email address", coerceEmail)
	RegisterType("url", "A URL", coerceURL)

	// The choice type needs the parameter's choices; ValidateParams
	// dispatches it through coerceChoice directly. The registry entry
	// exists so "choice" is a known type name for help text.
	RegisterType("choice", "One of a predefined set of choices", func(string) (any, error) {
		panic("validation: choice type requires a parameter with choices")
	})
}
