// Package config loads server settings from the environment. A .env file
// in the working directory is applied first (without overriding real
// environment variables), then viper binds the individual settings.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"slackcmds/internal/logger"
)

// Settings holds everything the serve command needs to talk to Slack.
type Settings struct {
	// BotToken is the xoxb- bot token used for Web API calls.
	BotToken string
	// SigningSecret verifies inbound HTTP requests from Slack.
	SigningSecret string
	// AppToken is the xapp- app-level token. When set, the server runs
	// in Socket Mode instead of listening for HTTP requests.
	AppToken string
	// Port is the HTTP listen port. Ignored in Socket Mode.
	Port int
	// LogLevel and LogFile mirror the logger flags.
	LogLevel string
	LogFile  string
	// ManifestPath optionally points at a YAML command manifest applied
	// after the command tree is built.
	ManifestPath string
}

// SocketMode reports whether an app-level token is configured.
func (s Settings) SocketMode() bool {
	return s.AppToken != ""
}

// Load reads settings from the environment, applying .env first when
// present.
func Load() (Settings, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "")

	for _, key := range []string{
		"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "SLACK_APP_TOKEN",
		"PORT", "LOG_LEVEL", "LOG_FILE", "COMMAND_MANIFEST",
	} {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	settings := Settings{
		BotToken:      v.GetString("SLACK_BOT_TOKEN"),
		SigningSecret: v.GetString("SLACK_SIGNING_SECRET"),
		AppToken:      v.GetString("SLACK_APP_TOKEN"),
		Port:          v.GetInt("PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFile:       v.GetString("LOG_FILE"),
		ManifestPath:  v.GetString("COMMAND_MANIFEST"),
	}
	return settings, nil
}

// Validate checks that the settings required for the selected transport
// are present.
func (s Settings) Validate() error {
	if s.SocketMode() {
		if s.BotToken == "" {
			return fmt.Errorf("SLACK_BOT_TOKEN is required in Socket Mode")
		}
		return nil
	}
	if s.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required in HTTP mode")
	}
	return nil
}
