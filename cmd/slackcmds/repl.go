package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"slackcmds/internal/config"
	"slackcmds/internal/demo"
)

func runRepl(_ *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := buildRegistry(settings)
	if err != nil {
		return err
	}

	// Styling is skipped on dumb terminals and redirected output.
	styled := termenv.DefaultOutput().Profile != termenv.Ascii
	banner := "slackcmds repl - type a command, 'help' for a listing, 'exit' to quit"
	if styled {
		banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(banner)
	}
	fmt.Println(banner)

	rl, err := readline.New("slackcmds> ")
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}

		// Route exactly the way slash command text is routed; the
		// context mimics an inbound Slack invocation.
		ctx := demo.NewLocalContext()
		resp := reg.Route(line, ctx)

		rendered := demo.RenderText(resp)
		if !resp.Success && styled {
			rendered = errorStyle.Render(rendered)
		}
		fmt.Println(rendered)
	}
}
