// Package validation implements the typed parameter validation engine for
// slash commands. Commands declare ordered Parameter schemas; the engine
// coerces raw string tokens into typed values through a registry of named
// types, runs per-parameter validators, and aggregates every failure into
// a single result rather than stopping at the first bad parameter.
package validation

import (
	"fmt"
	"strings"

	"slackcmds/pkg/response"
)

// Parameter declares a single parameter a command expects. Parameters are
// positionally significant: the i-th leftover token fills the i-th
// declared parameter unless a named value already supplied it.
type Parameter struct {
	// Name identifies the parameter in errors and validated output.
	Name string
	// Type is a key into the type registry ("string", "integer", ...).
	Type string
	// Required marks the parameter as mandatory.
	Required bool
	// Default is used when the parameter is absent. It is stored as the
	// validated value without coercion.
	Default any
	// Choices is the allowed value set for "choice" typed parameters.
	Choices []string
	// Validators run in order against the original raw token after type
	// coercion succeeds; the first failure wins.
	Validators []ValidatorFunc
	// HelpText describes the parameter in help output.
	HelpText string
}

// Check verifies the parameter's configuration against the default type
// registry. Misconfiguration is an integrator programming mistake and
// panics; commands run Check at registration time so bad schemas fail
// before any request is served.
func (p Parameter) Check() {
	p.checkWith(DefaultTypes)
}

func (p Parameter) checkWith(registry *TypeRegistry) {
	if p.Name == "" {
		panic("validation: parameter name cannot be empty")
	}
	if !registry.Has(p.Type) {
		panic(fmt.Sprintf("validation: parameter %q references unknown type %q", p.Name, p.Type))
	}
	if p.Type == "choice" && len(p.Choices) == 0 {
		panic(fmt.Sprintf("validation: choice parameter %q requires choices to be specified", p.Name))
	}
}

// ValidationResult collects the outcome of validating a token set against
// a parameter schema list. A fresh result is created per validation call.
type ValidationResult struct {
	// Valid starts true and becomes false when the first error is added.
	Valid bool
	// Errors maps parameter names to user-facing messages.
	Errors map[string]string
	// ValidatedParams maps parameter names to coerced typed values,
	// including pass-through extras that matched no schema.
	ValidatedParams map[string]any

	errorOrder []string
}

// NewValidationResult creates an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:           true,
		Errors:          make(map[string]string),
		ValidatedParams: make(map[string]any),
	}
}

// AddError records a validation error for a parameter and marks the result
// invalid.
func (r *ValidationResult) AddError(name, message string) {
	r.Valid = false
	if _, exists := r.Errors[name]; !exists {
		r.errorOrder = append(r.errorOrder, name)
	}
	r.Errors[name] = message
}

// AddParam records a validated parameter value.
func (r *ValidationResult) AddParam(name string, value any) {
	r.ValidatedParams[name] = value
}

// AsResponse converts the result into a command response: a plain success
// response when valid, otherwise a single error response listing every
// failing parameter in declaration order.
func (r *ValidationResult) AsResponse() *response.Response {
	if r.Valid {
		return response.New("Validation passed")
	}

	lines := make([]string, 0, len(r.errorOrder))
	for _, name := range r.errorOrder {
		lines = append(lines, fmt.Sprintf("%s: %s", name, r.Errors[name]))
	}
	return response.Errorf("Invalid parameters:\n%s", strings.Join(lines, "\n"))
}

// ValidateParams validates positional tokens and named string values
// against a parameter schema list using the default type registry.
//
// Named values are seeded first and positional tokens are zipped over the
// schemas on top, so a positional token wins over a named value for the
// same slot. Values not matching any schema pass through into the
// validated output untouched.
func ValidateParams(params []Parameter, tokens []string, named map[string]string) *ValidationResult {
	return ValidateParamsWith(DefaultTypes, params, tokens, named)
}

// ValidateParamsWith is ValidateParams against an explicit type registry.
func ValidateParamsWith(registry *TypeRegistry, params []Parameter, tokens []string, named map[string]string) *ValidationResult {
	result := NewValidationResult()

	working := make(map[string]string, len(named)+len(tokens))
	for name, value := range named {
		working[name] = value
	}
	for i, token := range tokens {
		if i < len(params) {
			working[params[i].Name] = token
		}
	}

	declared := make(map[string]bool, len(params))
	for _, param := range params {
		declared[param.Name] = true

		value, present := working[param.Name]
		if !present {
			if param.Required {
				result.AddError(param.Name, "Required parameter missing")
			} else if param.Default != nil {
				result.AddParam(param.Name, param.Default)
			}
			continue
		}

		coerced, err := validateValue(registry, param, value)
		if err != nil {
			result.AddError(param.Name, err.Error())
			continue
		}
		result.AddParam(param.Name, coerced)
	}

	// Extra values that matched no schema are not errors; downstream
	// logic may understand them.
	for name, value := range working {
		if !declared[name] {
			result.AddParam(name, value)
		}
	}

	return result
}

// validateValue coerces and validates a single present value. An empty or
// whitespace-only value behaves like an absent one: required parameters
// reject it, optional ones fall back to their default.
func validateValue(registry *TypeRegistry, param Parameter, value string) (any, error) {
	param.checkWith(registry)

	if strings.TrimSpace(value) == "" {
		if param.Required {
			return nil, fmt.Errorf("Value cannot be empty")
		}
		return param.Default, nil
	}

	var coerced any
	var err error
	if param.Type == "choice" {
		coerced, err = coerceChoice(value, param.Choices)
	} else {
		coerced, err = registry.Coerce(param.Type, value)
	}
	if err != nil {
		return nil, err
	}

	// Validators see the original raw token, not the coerced value.
	for _, validator := range param.Validators {
		if err := validator(value); err != nil {
			return nil, err
		}
	}

	return coerced, nil
}
