// Package response defines the result envelope produced by every command
// execution. A Response carries either plain text or Block Kit content, a
// success flag, and a visibility flag, and knows how to render itself into
// the payload shape the Slack API expects.
package response

import (
	"fmt"

	"slackcmds/pkg/blockkit"
)

// Response is the outcome of executing a command. Responses are built
// through the package constructors and treated as immutable afterward.
type Response struct {
	// Content is the plain text body. Ignored when Blocks is set.
	Content string
	// Blocks is Block Kit content, taking precedence over Content.
	Blocks []blockkit.Block
	// Success reports whether the command succeeded.
	Success bool
	// Ephemeral controls whether the message is visible only to the
	// invoking user. Defaults to true for every constructor.
	Ephemeral bool
}

// Payload is the wire representation consumed by the Slack API.
type Payload struct {
	Text         string           `json:"text,omitempty"`
	Blocks       []blockkit.Block `json:"blocks,omitempty"`
	ResponseType string           `json:"response_type"`
}

// New creates a successful ephemeral response with plain text content.
func New(content string) *Response {
	return &Response{Content: content, Success: true, Ephemeral: true}
}

// Errorf creates a standardized error response. The message is prefixed
// with the :x: marker so failures stand out in the channel.
func Errorf(format string, args ...any) *Response {
	return &Response{
		Content:   fmt.Sprintf(":x: Error: %s", fmt.Sprintf(format, args...)),
		Success:   false,
		Ephemeral: true,
	}
}

// Successf creates a standardized success response with the
// :white_check_mark: marker.
func Successf(format string, args ...any) *Response {
	return &Response{
		Content:   fmt.Sprintf(":white_check_mark: %s", fmt.Sprintf(format, args...)),
		Success:   true,
		Ephemeral: true,
	}
}

// WithBlocks creates a successful ephemeral response carrying Block Kit
// content.
func WithBlocks(blocks []blockkit.Block) *Response {
	return &Response{Blocks: blocks, Success: true, Ephemeral: true}
}

// InChannel returns a copy of the response visible to the whole channel.
func (r *Response) InChannel() *Response {
	copied := *r
	copied.Ephemeral = false
	return &copied
}

// Payload converts the response to the format expected by the Slack API.
// Block content wins over text content when both are present.
func (r *Response) Payload() Payload {
	responseType := "in_channel"
	if r.Ephemeral {
		responseType = "ephemeral"
	}
	if len(r.Blocks) > 0 {
		return Payload{Blocks: r.Blocks, ResponseType: responseType}
	}
	return Payload{Text: r.Content, ResponseType: responseType}
}
