package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// ValidatorFunc checks a raw string value and returns a user-facing error
// when the value is rejected. Validators always receive the original token,
// not the coerced value, so numeric validators re-parse as needed.
type ValidatorFunc func(value string) error

// ValidatorRegistry maps names to validator functions so command manifests
// and integrations can reference validators declaratively. Like the type
// registry, it is populated before serving begins and read-only afterward.
type ValidatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]ValidatorFunc
}

// NewValidatorRegistry creates an empty validator registry.
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{validators: make(map[string]ValidatorFunc)}
}

// Register adds a validator under the given name, replacing any previous
// registration.
func (r *ValidatorRegistry) Register(name string, validator ValidatorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[name] = validator
}

// Get returns the validator registered under name.
func (r *ValidatorRegistry) Get(name string) (ValidatorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	validator, ok := r.validators[name]
	return validator, ok
}

// DefaultValidators is the process-wide validator registry for named
// validators referenced from command manifests.
var DefaultValidators = NewValidatorRegistry()

// RegisterValidator registers a named validator with the default registry.
func RegisterValidator(name string, validator ValidatorFunc) {
	DefaultValidators.Register(name, validator)
}

// MinLength returns a validator requiring at least minLen characters.
func MinLength(minLen int) ValidatorFunc {
	return func(value string) error {
		if len(value) < minLen {
			return fmt.Errorf("Value must be at least %d characters long", minLen)
		}
		return nil
	}
}

// MaxLength returns a validator requiring at most maxLen characters.
func MaxLength(maxLen int) ValidatorFunc {
	return func(value string) error {
		if len(value) > maxLen {
			return fmt.Errorf("Value must be at most %d characters long", maxLen)
		}
		return nil
	}
}

// Pattern returns a validator requiring the value to match the regular
// expression. The custom message is used when non-empty.
func Pattern(expr string, message string) ValidatorFunc {
	compiled := regexp.MustCompile(expr)
	return func(value string) error {
		if !compiled.MatchString(value) {
			if message != "" {
				return fmt.Errorf("%s", message)
			}
			return fmt.Errorf("Value does not match required pattern")
		}
		return nil
	}
}

// MinValue returns a validator requiring a numeric value of at least min.
func MinValue(min float64) ValidatorFunc {
	return func(value string) error {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Value must be a number")
		}
		if parsed < min {
			return fmt.Errorf("Value must be at least %s", formatNumber(min))
		}
		return nil
	}
}

// MaxValue returns a validator requiring a numeric value of at most max.
func MaxValue(max float64) ValidatorFunc {
	return func(value string) error {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Value must be a number")
		}
		if parsed > max {
			return fmt.Errorf("Value must be at most %s", formatNumber(max))
		}
		return nil
	}
}

// formatNumber renders bounds the way users typed them: integral limits
// without a trailing ".0".
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
