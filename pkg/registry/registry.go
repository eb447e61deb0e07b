// Package registry implements the command router: a registry of root
// commands and the resolution algorithm that walks the command tree for a
// raw input string, splitting it into path tokens consumed during the
// walk and leftover argument tokens handed to the resolved node.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"slackcmds/internal/logger"
	"slackcmds/pkg/command"
	"slackcmds/pkg/response"
)

// Registry holds the top-level commands. Registration happens once during
// a single-threaded startup phase; routing afterward only reads, so
// concurrent invocations are safe.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*command.Command
	order    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]*command.Command)}
}

// Register adds a top-level command under the given name, stamping the
// command's name and path. Names are case-insensitive and must be unique;
// "help" is reserved for the top-level listing.
func (r *Registry) Register(name string, cmd *command.Command) (*command.Command, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}
	if key == command.ReservedHelpName {
		return nil, fmt.Errorf("command name %q is reserved", command.ReservedHelpName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[key]; exists {
		return nil, fmt.Errorf("command %q already registered", key)
	}

	cmd.SetName(key)
	r.commands[key] = cmd
	r.order = append(r.order, key)

	logger.Info("Registered top-level command", "name", key)
	return cmd, nil
}

// MustRegister is Register panicking on error, for startup wiring.
func (r *Registry) MustRegister(name string, cmd *command.Command) *command.Command {
	registered, err := r.Register(name, cmd)
	if err != nil {
		panic("registry: " + err.Error())
	}
	return registered
}

// Get looks up a root command by case-insensitive name.
func (r *Registry) Get(name string) (*command.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns the root commands in registration order.
func (r *Registry) Commands() []*command.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	commands := make([]*command.Command, 0, len(r.order))
	for _, key := range r.order {
		commands = append(commands, r.commands[key])
	}
	return commands
}

// Lookup resolves a node by its full space-joined path, e.g. "user list".
func (r *Registry) Lookup(path string) (*command.Command, bool) {
	parts := strings.Fields(path)
	if len(parts) == 0 {
		return nil, false
	}
	node, ok := r.Get(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		node, ok = node.Subcommand(part)
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Route resolves a raw command string to the deepest applicable node and
// executes it. Tokens are consumed while they name subcommands; the first
// token that does not (or a "help" token, which is handled by the node
// itself) stops the descent, and everything from it onward becomes the
// node's argument tokens. Route never returns an error for user input
// problems; they surface as error responses.
func (r *Registry) Route(raw string, ctx command.Context) *response.Response {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.topLevelHelp()
	}

	tokens := strings.Fields(raw)
	first := strings.ToLower(tokens[0])

	// The bare "help" keyword is reserved: it always shows the listing
	// and never resolves as a command name.
	if first == command.ReservedHelpName {
		return r.topLevelHelp()
	}

	node, ok := r.Get(first)
	if !ok {
		logger.Debug("Unknown command", "name", first, "invocation", ctx.InvocationID)
		return response.Errorf("Unknown command: %s. Type 'help' to see available commands.", first)
	}

	rest := tokens[1:]
	for len(rest) > 0 {
		next := strings.ToLower(rest[0])
		if next == command.ReservedHelpName {
			break
		}
		child, found := node.Subcommand(next)
		if !found {
			break
		}
		node = child
		rest = rest[1:]
	}

	logger.Debug("Resolved command", "command", node.Path(), "args", rest, "invocation", ctx.InvocationID)
	return node.Execute(ctx.WithTokens(rest))
}

// topLevelHelp lists every registered root command with its short
// description, in registration order.
func (r *Registry) topLevelHelp() *response.Response {
	var b strings.Builder
	b.WriteString("*Available Commands:*\n")
	for _, cmd := range r.Commands() {
		fmt.Fprintf(&b, "• `%s`: %s\n", cmd.Name(), cmd.ShortHelp())
	}
	b.WriteString("\nType `<command> help` for more details on a specific command.")
	return response.New(b.String())
}
