package command

import "github.com/google/uuid"

// Context carries the per-invocation state threaded through routing,
// validation and execution. It is a plain value: each stage derives a new
// Context through the With* methods instead of mutating shared state, so
// concurrent invocations never interfere.
type Context struct {
	// UserID identifies the invoking Slack user.
	UserID string
	// ChannelID identifies the channel the command was invoked from.
	ChannelID string
	// TeamID identifies the workspace.
	TeamID string
	// InvocationID is a unique identifier for this invocation, generated
	// at construction and carried through logs.
	InvocationID string

	// Tokens are the leftover argument tokens after the router consumed
	// the command path. Set by the router before execution.
	Tokens []string
	// NamedParams are string values supplied outside the command text,
	// for example from modal submissions. Positional tokens override
	// these for the same parameter slot.
	NamedParams map[string]string
	// ValidatedParams holds the typed output of parameter validation.
	// Set by Execute before the command handler runs.
	ValidatedParams map[string]any
}

// NewContext creates a Context for one inbound invocation.
func NewContext(userID, channelID, teamID string) Context {
	return Context{
		UserID:       userID,
		ChannelID:    channelID,
		TeamID:       teamID,
		InvocationID: uuid.NewString(),
	}
}

// WithTokens returns a copy of the context with the leftover argument
// tokens set.
func (c Context) WithTokens(tokens []string) Context {
	c.Tokens = tokens
	return c
}

// WithNamedParams returns a copy of the context with named parameter
// values set.
func (c Context) WithNamedParams(named map[string]string) Context {
	c.NamedParams = named
	return c
}

// WithValidatedParams returns a copy of the context with the typed
// validation output set.
func (c Context) WithValidatedParams(params map[string]any) Context {
	c.ValidatedParams = params
	return c
}

// String returns the string form of a validated parameter, or the empty
// string when absent or not a string. Convenience for handlers.
func (c Context) String(name string) string {
	value, ok := c.ValidatedParams[name].(string)
	if !ok {
		return ""
	}
	return value
}

// Int returns the int form of a validated parameter, or zero when absent
// or not an int.
func (c Context) Int(name string) int {
	value, ok := c.ValidatedParams[name].(int)
	if !ok {
		return 0
	}
	return value
}

// Bool returns the bool form of a validated parameter, or false when
// absent or not a bool.
func (c Context) Bool(name string) bool {
	value, ok := c.ValidatedParams[name].(bool)
	if !ok {
		return false
	}
	return value
}
