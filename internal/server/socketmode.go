package server

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// runSocketMode connects over Slack's Socket Mode and serves slash
// command events until the context is cancelled. Responses are delivered
// through the event acknowledgement, same payload shape as HTTP mode.
func (s *Server) runSocketMode(ctx context.Context) error {
	api := slack.New(
		s.settings.BotToken,
		slack.OptionAppLevelToken(s.settings.AppToken),
	)
	client := socketmode.New(api)

	go s.consumeEvents(ctx, client)

	return client.RunContext(ctx)
}

// consumeEvents handles inbound socket mode events. slack-go never closes
// the events channel, so the context is the loop's only exit path.
func (s *Server) consumeEvents(ctx context.Context, client *socketmode.Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-client.Events:
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				s.log.Debug("Connecting to Slack")
			case socketmode.EventTypeConnected:
				s.log.Info("Connected to Slack in Socket Mode")
			case socketmode.EventTypeConnectionError:
				s.log.Error("Socket Mode connection error", "data", evt.Data)
			case socketmode.EventTypeSlashCommand:
				slashCmd, ok := evt.Data.(slack.SlashCommand)
				if !ok || evt.Request == nil {
					continue
				}
				resp := s.dispatch(slashCmd)
				client.Ack(*evt.Request, resp.Payload())
			}
		}
	}
}
