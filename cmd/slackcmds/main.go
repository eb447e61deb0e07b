// Package main provides the slackcmds CLI. It serves a command registry
// to Slack over HTTP or Socket Mode, and offers a local REPL for trying
// command trees without a Slack workspace.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slackcmds/internal/config"
	"slackcmds/internal/demo"
	"slackcmds/internal/logger"
	"slackcmds/internal/manifest"
	"slackcmds/internal/server"
	"slackcmds/internal/version"
	"slackcmds/pkg/registry"
)

var (
	logLevel     string
	logFile      string
	manifestPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slackcmds",
	Short: "slackcmds - Slack slash command dispatch",
	Long: `slackcmds routes Slack slash command text through a tree of registered
commands, validates typed parameters, and replies with plain text or
Block Kit content. This binary serves the bundled demo command tree;
integrators embed the library and register their own commands.`,
}

// serveCmd starts the Slack-facing transport.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve slash commands to Slack",
	Long: `Start the slash command server. With SLACK_APP_TOKEN set the server
connects in Socket Mode; otherwise it listens for HTTP requests from
Slack on PORT, verifying request signatures with SLACK_SIGNING_SECRET.`,
	RunE: runServe,
}

// replCmd runs command routing locally against stdin.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Route commands interactively without Slack",
	Long: `Start a local read-eval-print loop. Each input line is routed exactly
as slash command text would be, and the response is rendered to the
terminal. Useful for developing command trees.`,
	RunE: runRepl,
}

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Apply a YAML command manifest before serving")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	if err := logger.Configure(logLevel, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// buildRegistry assembles the demo command tree and applies the manifest
// overlay when one is configured.
func buildRegistry(settings config.Settings) (*registry.Registry, error) {
	reg := demo.NewRegistry()

	path := manifestPath
	if path == "" {
		path = settings.ManifestPath
	}
	if path != "" {
		if err := manifest.LoadFile(path, reg); err != nil {
			return nil, err
		}
		logger.Info("Applied command manifest", "path", path)
	}
	return reg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	if settings.LogLevel != "" && logLevel == "" {
		if err := logger.Configure(settings.LogLevel, settings.LogFile); err != nil {
			return err
		}
	}

	reg, err := buildRegistry(settings)
	if err != nil {
		return err
	}

	logger.Info("Starting slackcmds", "version", version.GetVersion())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(reg, settings).Run(ctx)
}
