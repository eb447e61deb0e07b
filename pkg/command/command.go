// Package command implements the tree of named slash commands. A Command
// node carries identity, subcommands, declared parameters, help metadata
// and an optional handler; executing a node validates the leftover
// argument tokens against its parameter schema and either shows help,
// reports an invalid subcommand, or runs the handler.
package command

import (
	"fmt"
	"strings"

	"slackcmds/internal/logger"
	"slackcmds/pkg/blockkit"
	"slackcmds/pkg/response"
	"slackcmds/pkg/validation"
)

// ReservedHelpName is the keyword reserved for help requests at every
// nesting level. No command may be registered under it.
const ReservedHelpName = "help"

// Handler is the execution logic an integrator supplies for a command.
// The context carries the leftover tokens and, by the time the handler
// runs, the typed validated parameters. A returned error is converted to
// a generic failure response at the execution boundary and never
// propagates past it.
type Handler func(ctx Context) (*response.Response, error)

// Command is one node in the command tree. Nodes are built and wired
// during a startup registration phase and are read-only while serving.
type Command struct {
	name        string
	path        string
	description string

	children   map[string]*Command
	childOrder []string

	params []validation.Parameter

	// acceptsArgs controls whether leftover tokens may reach this node's
	// handler when the node has children. Defaults to true; registering
	// the first subcommand flips it to false unless explicitly set
	// afterward.
	acceptsArgs bool

	shortHelp    string
	longHelp     string
	usageExample string
	useBlockKit  bool

	handler Handler
}

// New creates an unregistered command node. The description is mandatory
// and doubles as the default help text; the handler may be nil for pure
// grouping nodes whose only job is to hold subcommands.
func New(description string, handler Handler) *Command {
	if strings.TrimSpace(description) == "" {
		panic("command: description cannot be empty")
	}
	return &Command{
		description: description,
		children:    make(map[string]*Command),
		acceptsArgs: true,
		handler:     handler,
	}
}

// Name returns the leaf name assigned at registration time.
func (c *Command) Name() string { return c.name }

// Path returns the full space-joined lineage assigned at registration
// time, e.g. "user list".
func (c *Command) Path() string { return c.path }

// Description returns the command's description.
func (c *Command) Description() string { return c.description }

// Parameters returns the declared parameter schemas in order.
func (c *Command) Parameters() []validation.Parameter { return c.params }

// AcceptsArguments reports whether leftover tokens are handed to this
// node's handler even when they collide with no child name.
func (c *Command) AcceptsArguments() bool { return c.acceptsArgs }

// HasHandler reports whether the integrator supplied execution logic.
func (c *Command) HasHandler() bool { return c.handler != nil }

// SetHelp overrides the help text derived from the description. Empty
// fields keep their defaults. Returns the command for chaining.
func (c *Command) SetHelp(short, long, usage string) *Command {
	if short != "" {
		c.shortHelp = short
	}
	if long != "" {
		c.longHelp = long
	}
	if usage != "" {
		c.usageExample = usage
	}
	return c
}

// UseBlockKit switches help rendering to Block Kit output.
func (c *Command) UseBlockKit(enabled bool) *Command {
	c.useBlockKit = enabled
	return c
}

// SetAcceptsArguments overrides the accepts-arguments flag. Calling this
// after subcommands were registered re-enables passing leftover tokens to
// the node's own handler.
func (c *Command) SetAcceptsArguments(accepts bool) *Command {
	c.acceptsArgs = accepts
	return c
}

// AddParameter appends a parameter schema. The schema is checked
// immediately; a misconfigured parameter panics at registration time
// rather than surfacing as a runtime validation error.
func (c *Command) AddParameter(param validation.Parameter) *Command {
	param.Check()
	c.params = append(c.params, param)
	return c
}

// RegisterSubcommand attaches a child node under the given name, stamping
// its path as this node's path plus the name. Names are case-insensitive
// and must be unique; "help" is reserved. Registering the first child
// flips acceptsArgs to false so stray tokens become invalid-subcommand
// errors instead of silently reaching the parent handler.
func (c *Command) RegisterSubcommand(name string, sub *Command) (*Command, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("subcommand name cannot be empty")
	}
	if key == ReservedHelpName {
		return nil, fmt.Errorf("subcommand name %q is reserved", ReservedHelpName)
	}
	if _, exists := c.children[key]; exists {
		return nil, fmt.Errorf("subcommand %q already registered under %q", key, c.path)
	}

	if len(c.children) == 0 {
		c.acceptsArgs = false
	}

	sub.name = key
	if c.path != "" {
		sub.path = c.path + " " + key
	} else {
		sub.path = key
	}
	sub.restamp()

	c.children[key] = sub
	c.childOrder = append(c.childOrder, key)

	logger.Debug("Registered subcommand", "name", key, "parent", c.path)
	return sub, nil
}

// MustRegisterSubcommand is RegisterSubcommand panicking on error, for
// startup wiring where a registration failure is a programming mistake.
func (c *Command) MustRegisterSubcommand(name string, sub *Command) *Command {
	registered, err := c.RegisterSubcommand(name, sub)
	if err != nil {
		panic("command: " + err.Error())
	}
	return registered
}

// SetName assigns the root name and path. Called by the registry when the
// command is registered at the top level.
func (c *Command) SetName(name string) {
	c.name = name
	c.path = name
	c.restamp()
}

// restamp rewrites descendant paths after this node's path changed.
// Subtrees can be built before being attached; their paths settle when
// the root is registered.
func (c *Command) restamp() {
	for _, key := range c.childOrder {
		child := c.children[key]
		if c.path != "" {
			child.path = c.path + " " + key
		} else {
			child.path = key
		}
		child.restamp()
	}
}

// Subcommand looks up a child by case-insensitive name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	child, ok := c.children[strings.ToLower(name)]
	return child, ok
}

// Subcommands returns the child nodes in registration order.
func (c *Command) Subcommands() []*Command {
	children := make([]*Command, 0, len(c.childOrder))
	for _, key := range c.childOrder {
		children = append(children, c.children[key])
	}
	return children
}

// HasSubcommands reports whether any children are registered.
func (c *Command) HasSubcommands() bool { return len(c.children) > 0 }

// Execute runs the node against the leftover tokens in the context. It
// decides between showing help, reporting an invalid subcommand, and
// running the handler, and never lets a handler failure escape: errors
// and panics are converted to a generic failure response at this
// boundary.
func (c *Command) Execute(ctx Context) (resp *response.Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic during command execution", "command", c.path, "panic", r)
			resp = response.Errorf("An unexpected error occurred: %v", r)
		}
	}()

	logger.Debug("Executing command", "command", c.path, "tokens", ctx.Tokens, "invocation", ctx.InvocationID)

	// Help requests win over everything else, including validation. A
	// second token naming a child asks for that child's help.
	if len(ctx.Tokens) > 0 && strings.EqualFold(ctx.Tokens[0], ReservedHelpName) {
		if len(ctx.Tokens) > 1 {
			if child, ok := c.Subcommand(ctx.Tokens[1]); ok {
				return child.ShowHelp()
			}
		}
		return c.ShowHelp()
	}

	result := validation.ValidateParams(c.params, ctx.Tokens, ctx.NamedParams)
	if !result.Valid {
		logger.Debug("Parameter validation failed", "command", c.path, "errors", result.Errors)
		return result.AsResponse()
	}

	// A stray first token under a grouping node is a user mistake, not an
	// argument. Show the mistake and the options together.
	if c.HasSubcommands() && !c.acceptsArgs && len(ctx.Tokens) > 0 {
		if _, ok := c.Subcommand(ctx.Tokens[0]); !ok {
			return c.invalidSubcommand(ctx.Tokens[0])
		}
	}

	// Grouping nodes without custom logic answer with their own help.
	if c.HasSubcommands() && c.handler == nil {
		return c.ShowHelp()
	}

	if c.handler == nil {
		return &response.Response{
			Content:   fmt.Sprintf("Command '%s' doesn't have an implementation.", c.path),
			Success:   false,
			Ephemeral: true,
		}
	}

	handlerResp, err := c.handler(ctx.WithValidatedParams(result.ValidatedParams))
	if err != nil {
		logger.Error("Command handler failed", "command", c.path, "error", err)
		return response.Errorf("An unexpected error occurred: %v", err)
	}
	return handlerResp
}

// invalidSubcommand builds the error response for an unrecognized token
// under a node that does not accept arguments, rendering the node's help
// beneath the error so the user sees both the problem and their options.
func (c *Command) invalidSubcommand(token string) *response.Response {
	message := fmt.Sprintf("'%s' is not a valid subcommand of '%s'.", token, c.path)
	help := c.ShowHelp()

	if len(help.Blocks) > 0 {
		blocks := append([]blockkit.Block{blockkit.Section(":x: Error: " + message)}, help.Blocks...)
		return &response.Response{Blocks: blocks, Success: false, Ephemeral: true}
	}

	return &response.Response{
		Content:   fmt.Sprintf(":x: Error: %s\n\n%s", message, help.Content),
		Success:   false,
		Ephemeral: true,
	}
}
