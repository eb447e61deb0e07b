package command

import (
	"fmt"
	"strings"

	"slackcmds/pkg/blockkit"
	"slackcmds/pkg/response"
	"slackcmds/pkg/validation"
)

// ShowHelp renders detailed help for this command: title, description,
// usage, declared parameters and a listing of subcommands with a
// drill-down hint. Output is plain mrkdwn text unless Block Kit rendering
// was enabled.
func (c *Command) ShowHelp() *response.Response {
	title := "Help: " + c.path

	description := c.longHelp
	if description == "" {
		description = c.description
	}

	usage := c.usageExample
	if usage == "" {
		usage = c.path
	}

	if c.useBlockKit {
		return c.blockKitHelp(title, description, usage)
	}
	return c.textHelp(title, description, usage)
}

// ShortHelp returns the one-line description used in parent listings: the
// explicit override when set, otherwise the first line of the description.
func (c *Command) ShortHelp() string {
	if c.shortHelp != "" {
		return c.shortHelp
	}
	line, _, _ := strings.Cut(c.description, "\n")
	return strings.TrimSpace(line)
}

func (c *Command) textHelp(title, description, usage string) *response.Response {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", title)

	if description != "" {
		fmt.Fprintf(&b, "%s\n\n", description)
	}

	fmt.Fprintf(&b, "*Usage:*\n`%s`\n\n", usage)

	if len(c.params) > 0 {
		b.WriteString("*Parameters:*\n")
		for _, param := range c.params {
			b.WriteString("• " + parameterLine(param) + "\n")
		}
		b.WriteString("\n")
	}

	if c.HasSubcommands() {
		b.WriteString("*Available Subcommands:*\n")
		for _, sub := range c.Subcommands() {
			fmt.Fprintf(&b, "• `%s`: %s\n", sub.name, sub.ShortHelp())
		}
		fmt.Fprintf(&b, "\nUse `%s help <subcommand>` for more details on a specific subcommand.", c.path)
	}

	return response.New(strings.TrimRight(b.String(), "\n"))
}

func (c *Command) blockKitHelp(title, description, usage string) *response.Response {
	blocks := []blockkit.Block{blockkit.Header(title)}

	if description != "" {
		blocks = append(blocks, blockkit.Section(description))
	}

	blocks = append(blocks, blockkit.Section(fmt.Sprintf("*Usage:*\n`%s`", usage)))

	if len(c.params) > 0 {
		var b strings.Builder
		b.WriteString("*Parameters:*\n")
		for _, param := range c.params {
			b.WriteString("• " + parameterLine(param) + "\n")
		}
		blocks = append(blocks, blockkit.Section(strings.TrimRight(b.String(), "\n")))
	}

	if c.HasSubcommands() {
		var b strings.Builder
		b.WriteString("*Available Subcommands:*\n")
		for _, sub := range c.Subcommands() {
			fmt.Fprintf(&b, "• `%s`: %s\n", sub.name, sub.ShortHelp())
		}
		fmt.Fprintf(&b, "\nUse `%s help <subcommand>` for more details on a specific subcommand.", c.path)
		blocks = append(blocks, blockkit.Section(b.String()))
	}

	blocks = append(blocks,
		blockkit.Divider(),
		blockkit.Context("Type `help` for a list of all commands."),
	)

	return response.WithBlocks(blocks)
}

// parameterLine renders one parameter for help output, e.g.
// "`location` (string, required): Location to get weather for".
func parameterLine(param validation.Parameter) string {
	typeName := param.Type
	if param.Type == "choice" && len(param.Choices) > 0 {
		typeName = "choice: " + strings.Join(param.Choices, "|")
	}

	requirement := "optional"
	if param.Required {
		requirement = "required"
	}

	line := fmt.Sprintf("`%s` (%s, %s)", param.Name, typeName, requirement)
	if param.HelpText != "" {
		line += ": " + param.HelpText
	}
	return line
}
