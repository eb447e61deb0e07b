// Package demo builds the sample command trees used by the REPL, the
// serve command's --demo flag, and the integration tests. The trees show
// the intended wiring patterns: grouping nodes without handlers, typed
// required parameters, defaults, and Block Kit responses.
package demo

import (
	"fmt"
	"strings"

	"slackcmds/pkg/blockkit"
	"slackcmds/pkg/command"
	"slackcmds/pkg/registry"
	"slackcmds/pkg/response"
	"slackcmds/pkg/validation"
)

// NewRegistry builds a registry populated with the user and weather
// command trees.
func NewRegistry() *registry.Registry {
	reg := registry.New()
	reg.MustRegister("user", NewUserCommand())
	reg.MustRegister("weather", NewWeatherCommand())
	return reg
}

// NewLocalContext builds an invocation context for local (non-Slack)
// routing, as used by the REPL.
func NewLocalContext() command.Context {
	return command.NewContext("ULOCAL001", "CLOCAL001", "TLOCAL001")
}

// NewUserCommand builds the user management command group:
// user list, user info, user status set, user status get.
func NewUserCommand() *command.Command {
	user := command.New("Commands for user management and information.", nil)
	user.SetHelp("User management commands", "", "user <subcommand>")

	user.MustRegisterSubcommand("list", command.New(
		"List users in the workspace.",
		func(command.Context) (*response.Response, error) {
			return response.New("Here are the users in your workspace:\n• User 1\n• User 2\n• User 3"), nil
		},
	))

	info := command.New("Get information about a user.",
		func(ctx command.Context) (*response.Response, error) {
			target := ctx.String("user")
			if target == "" {
				target = ctx.UserID
			}
			return response.New(fmt.Sprintf("User information for <@%s>:\nMember since: 2023-01-01\nStatus: Active", target)), nil
		},
	)
	info.AddParameter(validation.Parameter{
		Name:     "user",
		Type:     "user_id",
		HelpText: "User to look up (defaults to you)",
	})
	user.MustRegisterSubcommand("info", info)

	status := command.New("Set or get your status.", nil)
	status.MustRegisterSubcommand("set", newStatusSetCommand())
	status.MustRegisterSubcommand("get", command.New(
		"Get your current status.",
		func(command.Context) (*response.Response, error) {
			return response.New("Your current status: Available"), nil
		},
	))
	user.MustRegisterSubcommand("status", status)

	return user
}

func newStatusSetCommand() *command.Command {
	set := command.New("Set your status.",
		func(ctx command.Context) (*response.Response, error) {
			status := ctx.String("status")
			return response.Successf("Your status has been updated to '%s'.", status), nil
		},
	)
	set.AddParameter(validation.Parameter{
		Name:     "status",
		Type:     "choice",
		Required: true,
		Choices:  []string{"available", "away", "busy"},
		HelpText: "Status to set",
	})
	return set
}

// NewWeatherCommand builds the weather command group: weather today and
// weather forecast, both taking a location.
func NewWeatherCommand() *command.Command {
	weather := command.New("Get weather information.", nil)
	weather.SetHelp("Weather information", "", "weather <today|forecast> <location>")

	today := command.New("Get today's weather for a location.",
		func(ctx command.Context) (*response.Response, error) {
			location := ctx.String("location")
			return response.Successf("Today's weather for %s: Sunny and 75°F", location), nil
		},
	)
	today.AddParameter(validation.Parameter{
		Name:     "location",
		Type:     "string",
		Required: true,
		HelpText: "Location to get weather for",
	})
	weather.MustRegisterSubcommand("today", today)

	weather.MustRegisterSubcommand("forecast", newForecastCommand())
	return weather
}

var forecastDays = []string{
	"Day 1: Sunny and 75°F",
	"Day 2: Partly cloudy and 72°F",
	"Day 3: Rainy and 65°F",
	"Day 4: Overcast and 68°F",
	"Day 5: Sunny and 70°F",
}

func newForecastCommand() *command.Command {
	forecast := command.New("Get the weather forecast for a location.",
		func(ctx command.Context) (*response.Response, error) {
			location := ctx.String("location")
			days := ctx.Int("days")

			if days > len(forecastDays) {
				return response.Errorf("Cannot forecast more than %d days", len(forecastDays)), nil
			}

			blocks := []blockkit.Block{
				blockkit.Header("Weather Forecast: " + location),
				blockkit.Divider(),
			}
			for _, day := range forecastDays[:days] {
				blocks = append(blocks, blockkit.Section(day))
			}
			return response.WithBlocks(blocks).InChannel(), nil
		},
	)
	forecast.AddParameter(validation.Parameter{
		Name:     "location",
		Type:     "string",
		Required: true,
		HelpText: "Location to get forecast for",
	})
	forecast.AddParameter(validation.Parameter{
		Name:       "days",
		Type:       "integer",
		Default:    3,
		Validators: []validation.ValidatorFunc{validation.MinValue(1)},
		HelpText:   "Number of days (default: 3)",
	})
	return forecast
}

// RenderText flattens a response for terminal display: plain content is
// returned as-is, block content is reduced to its text fragments.
func RenderText(resp *response.Response) string {
	if len(resp.Blocks) == 0 {
		return resp.Content
	}

	var lines []string
	for _, block := range resp.Blocks {
		switch block["type"] {
		case "divider":
			lines = append(lines, strings.Repeat("─", 40))
		case "context":
			if elements, ok := block["elements"].([]blockkit.Block); ok {
				for _, element := range elements {
					if s, ok := element["text"].(string); ok {
						lines = append(lines, s)
					}
				}
			}
		default:
			if text, ok := block["text"].(map[string]any); ok {
				if s, ok := text["text"].(string); ok {
					lines = append(lines, s)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}
