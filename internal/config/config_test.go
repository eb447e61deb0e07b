package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-abc")
	t.Setenv("SLACK_SIGNING_SECRET", "sekrit")
	t.Setenv("SLACK_APP_TOKEN", "xapp-def")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMMAND_MANIFEST", "commands.yaml")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-abc", settings.BotToken)
	assert.Equal(t, "sekrit", settings.SigningSecret)
	assert.Equal(t, "xapp-def", settings.AppToken)
	assert.Equal(t, 8080, settings.Port)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "commands.yaml", settings.ManifestPath)
	assert.True(t, settings.SocketMode())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_APP_TOKEN", "")
	t.Setenv("PORT", "")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, settings.Port)
	assert.False(t, settings.SocketMode())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{
			name:     "http mode with signing secret",
			settings: Settings{SigningSecret: "sekrit"},
		},
		{
			name:     "http mode without signing secret",
			settings: Settings{},
			wantErr:  "SLACK_SIGNING_SECRET",
		},
		{
			name:     "socket mode with bot token",
			settings: Settings{AppToken: "xapp-def", BotToken: "xoxb-abc"},
		},
		{
			name:     "socket mode without bot token",
			settings: Settings{AppToken: "xapp-def"},
			wantErr:  "SLACK_BOT_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
