// Package server adapts the command router to Slack's slash command
// transports. It supports two modes, mirroring the usual Slack app
// deployment options: an HTTP endpoint with request signature
// verification, and Socket Mode over an app-level token. The server owns
// acknowledgement and delivery; routing semantics live entirely in the
// registry.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"slackcmds/internal/config"
	"slackcmds/internal/logger"
	"slackcmds/pkg/command"
	"slackcmds/pkg/registry"
	"slackcmds/pkg/response"
)

// Server dispatches inbound slash command invocations to a registry.
type Server struct {
	registry *registry.Registry
	settings config.Settings
	log      *log.Logger
}

// New creates a server for the given registry and settings.
func New(reg *registry.Registry, settings config.Settings) *Server {
	return &Server{
		registry: reg,
		settings: settings,
		log:      logger.NewStyledLogger("server"),
	}
}

// Run starts the transport selected by the settings and blocks until the
// context is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.settings.Validate(); err != nil {
		return err
	}
	if s.settings.SocketMode() {
		s.log.Info("Starting in Socket Mode")
		return s.runSocketMode(ctx)
	}
	s.log.Info("Starting HTTP server", "port", s.settings.Port)
	return s.runHTTP(ctx)
}

// Handler returns the HTTP handler serving the slash command endpoint at
// /slack/commands, exposed for tests and for embedding into an existing
// mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/slack/commands", s.handleSlashCommand)
	return mux
}

func (s *Server) runHTTP(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.settings.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleSlashCommand verifies, parses and routes one HTTP invocation.
// Slack expects a 200 with the response payload within three seconds; the
// core is pure computation, so responses are produced inline.
func (s *Server) handleSlashCommand(w http.ResponseWriter, r *http.Request) {
	verifier, err := slack.NewSecretsVerifier(r.Header, s.settings.SigningSecret)
	if err != nil {
		s.log.Warn("Rejected request with bad signature headers", "error", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))
	slashCmd, err := slack.SlashCommandParse(r)
	if err != nil {
		s.log.Warn("Failed to parse slash command payload", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := verifier.Ensure(); err != nil {
		s.log.Warn("Rejected request with invalid signature", "error", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	resp := s.dispatch(slashCmd)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp.Payload()); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

// dispatch builds the invocation context from the Slack payload and routes
// the command text.
func (s *Server) dispatch(slashCmd slack.SlashCommand) *response.Response {
	ctx := command.NewContext(slashCmd.UserID, slashCmd.ChannelID, slashCmd.TeamID)

	s.log.Info("Received command",
		"command", slashCmd.Command,
		"text", slashCmd.Text,
		"invocation", ctx.InvocationID,
	)

	resp := s.registry.Route(slashCmd.Text, ctx)

	s.log.Debug("Routed command",
		"success", resp.Success,
		"ephemeral", resp.Ephemeral,
		"invocation", ctx.InvocationID,
	)
	return resp
}
