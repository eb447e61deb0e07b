// Package testutils provides shared helpers for slackcmds tests.
package testutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackcmds/pkg/blockkit"
	"slackcmds/pkg/command"
	"slackcmds/pkg/response"
)

// NewContext builds an invocation context with fixed Slack-shaped IDs.
func NewContext() command.Context {
	return command.NewContext("U12345678", "C87654321", "T11223344")
}

// AssertSuccess asserts the response succeeded and its content contains
// every given fragment.
func AssertSuccess(t *testing.T, resp *response.Response, fragments ...string) {
	t.Helper()
	require.NotNil(t, resp)
	assert.True(t, resp.Success, "expected success response, got: %s", resp.Content)
	for _, fragment := range fragments {
		assert.Contains(t, resp.Content, fragment)
	}
}

// AssertError asserts the response failed and its content contains every
// given fragment.
func AssertError(t *testing.T, resp *response.Response, fragments ...string) {
	t.Helper()
	require.NotNil(t, resp)
	assert.False(t, resp.Success, "expected error response, got: %s", resp.Content)
	for _, fragment := range fragments {
		assert.Contains(t, resp.Content, fragment)
	}
}

// BlockText flattens the text fragments of Block Kit content so tests can
// assert on rich responses the same way as on plain ones.
func BlockText(blocks []blockkit.Block) string {
	var fragments []string
	for _, block := range blocks {
		if text, ok := block["text"].(map[string]any); ok {
			if s, ok := text["text"].(string); ok {
				fragments = append(fragments, s)
			}
		}
		if elements, ok := block["elements"].([]blockkit.Block); ok {
			for _, element := range elements {
				if s, ok := element["text"].(string); ok {
					fragments = append(fragments, s)
				}
			}
		}
	}
	return strings.Join(fragments, "\n")
}
