package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParams_RequiredMissing(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
	}

	result := ValidateParams(params, nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "Required parameter missing", result.Errors["location"])
	assert.Empty(t, result.ValidatedParams)
}

func TestValidateParams_PositionalAssignment(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
		{Name: "days", Type: "integer"},
	}

	result := ValidateParams(params, []string{"Seattle", "5"}, nil)

	require.True(t, result.Valid)
	assert.Equal(t, "Seattle", result.ValidatedParams["location"])
	assert.Equal(t, 5, result.ValidatedParams["days"])
}

func TestValidateParams_DefaultApplied(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
		{Name: "days", Type: "integer", Default: 3},
	}

	result := ValidateParams(params, []string{"Seattle"}, nil)

	require.True(t, result.Valid)
	assert.Equal(t, 3, result.ValidatedParams["days"])
}

func TestValidateParams_OptionalAbsentOmitted(t *testing.T) {
	params := []Parameter{
		{Name: "note", Type: "string"},
	}

	result := ValidateParams(params, nil, nil)

	assert.True(t, result.Valid)
	_, present := result.ValidatedParams["note"]
	assert.False(t, present)
}

func TestValidateParams_PositionalOverridesNamed(t *testing.T) {
	// Command-line tokens win over named values for the same slot.
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
	}
	named := map[string]string{"location": "Portland"}

	result := ValidateParams(params, []string{"Seattle"}, named)

	require.True(t, result.Valid)
	assert.Equal(t, "Seattle", result.ValidatedParams["location"])
}

func TestValidateParams_NamedOnly(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
	}

	result := ValidateParams(params, nil, map[string]string{"location": "Portland"})

	require.True(t, result.Valid)
	assert.Equal(t, "Portland", result.ValidatedParams["location"])
}

func TestValidateParams_ExtrasPassThrough(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
	}
	named := map[string]string{"channel": "C123"}

	result := ValidateParams(params, []string{"Seattle"}, named)

	require.True(t, result.Valid)
	assert.Equal(t, "C123", result.ValidatedParams["channel"])
}

func TestValidateParams_AggregatesErrors(t *testing.T) {
	// Every parameter is evaluated even after an earlier one fails.
	params := []Parameter{
		{Name: "count", Type: "integer", Required: true},
		{Name: "ratio", Type: "float", Required: true},
		{Name: "flag", Type: "boolean", Required: true},
	}

	result := ValidateParams(params, []string{"abc", "xyz"}, nil)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, "Invalid value for integer: abc", result.Errors["count"])
	assert.Equal(t, "Invalid value for float: xyz", result.Errors["ratio"])
	assert.Equal(t, "Required parameter missing", result.Errors["flag"])
}

func TestValidateParams_EmptyValueRequired(t *testing.T) {
	params := []Parameter{
		{Name: "location", Type: "string", Required: true},
	}

	result := ValidateParams(params, nil, map[string]string{"location": "   "})

	assert.False(t, result.Valid)
	assert.Equal(t, "Value cannot be empty", result.Errors["location"])
}

func TestValidateParams_EmptyValueFallsBackToDefault(t *testing.T) {
	params := []Parameter{
		{Name: "days", Type: "integer", Default: 3},
	}

	result := ValidateParams(params, nil, map[string]string{"days": ""})

	require.True(t, result.Valid)
	assert.Equal(t, 3, result.ValidatedParams["days"])
}

func TestValidateParams_ValidatorRejects(t *testing.T) {
	params := []Parameter{
		{Name: "age", Type: "integer", Required: true, Validators: []ValidatorFunc{MinValue(18)}},
	}

	result := ValidateParams(params, []string{"16"}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "Value must be at least 18", result.Errors["age"])
}

func TestValidateParams_TypeErrorBeforeValidator(t *testing.T) {
	// A value that fails coercion never reaches the validators.
	called := false
	spy := func(string) error {
		called = true
		return nil
	}
	params := []Parameter{
		{Name: "age", Type: "integer", Required: true, Validators: []ValidatorFunc{spy}},
	}

	result := ValidateParams(params, []string{"abc"}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid value for integer: abc", result.Errors["age"])
	assert.False(t, called)
}

func TestValidateParams_ValidatorsSeeRawString(t *testing.T) {
	var seen string
	spy := func(value string) error {
		seen = value
		return nil
	}
	params := []Parameter{
		{Name: "age", Type: "integer", Required: true, Validators: []ValidatorFunc{spy}},
	}

	result := ValidateParams(params, []string{"42"}, nil)

	require.True(t, result.Valid)
	assert.Equal(t, "42", seen)
	assert.Equal(t, 42, result.ValidatedParams["age"])
}

func TestValidateParams_ValidatorShortCircuit(t *testing.T) {
	secondCalled := false
	params := []Parameter{
		{Name: "name", Type: "string", Required: true, Validators: []ValidatorFunc{
			MinLength(10),
			func(string) error { secondCalled = true; return nil },
		}},
	}

	result := ValidateParams(params, []string{"short"}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "Value must be at least 10 characters long", result.Errors["name"])
	assert.False(t, secondCalled)
}

func TestValidateParams_Totality(t *testing.T) {
	// Every schema lands in exactly one bucket: validated, errored, or
	// omitted optional without default.
	params := []Parameter{
		{Name: "a", Type: "string", Required: true}, // present, valid
		{Name: "b", Type: "integer", Required: true}, // absent, error
		{Name: "c", Type: "integer", Default: 7},     // absent, default
		{Name: "d", Type: "string"},                  // absent, omitted
	}

	result := ValidateParams(params, []string{"hello"}, nil)

	assert.Len(t, result.ValidatedParams, 2)
	assert.Len(t, result.Errors, 1)
}

func TestValidationResult_AsResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		result := NewValidationResult()
		resp := result.AsResponse()
		assert.True(t, resp.Success)
		assert.Equal(t, "Validation passed", resp.Content)
	})

	t.Run("errors in declaration order", func(t *testing.T) {
		result := NewValidationResult()
		result.AddError("first", "Required parameter missing")
		result.AddError("second", "Invalid value for integer: x")

		resp := result.AsResponse()

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Content, "Invalid parameters:")
		assert.Contains(t, resp.Content,
			"first: Required parameter missing\nsecond: Invalid value for integer: x")
	})
}

func TestParameter_Check(t *testing.T) {
	t.Run("choice without choices panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Parameter{Name: "mode", Type: "choice"}.Check()
		})
	})

	t.Run("unknown type panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Parameter{Name: "mode", Type: "no_such_type"}.Check()
		})
	})

	t.Run("empty name panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Parameter{Type: "string"}.Check()
		})
	})

	t.Run("well-formed parameter passes", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Parameter{Name: "mode", Type: "choice", Choices: []string{"a", "b"}}.Check()
		})
	})
}

func TestValidateParams_ChoiceParameter(t *testing.T) {
	params := []Parameter{
		{Name: "status", Type: "choice", Required: true, Choices: []string{"available", "away"}},
	}

	t.Run("member accepted", func(t *testing.T) {
		result := ValidateParams(params, []string{"away"}, nil)
		require.True(t, result.Valid)
		assert.Equal(t, "away", result.ValidatedParams["status"])
	})

	t.Run("case sensitive", func(t *testing.T) {
		result := ValidateParams(params, []string{"Away"}, nil)
		assert.False(t, result.Valid)
		assert.Equal(t, "Invalid choice: Away. Valid options: available, away", result.Errors["status"])
	})
}
