// Package server wires configuration, sessions, and the HTTP API into
// the mealendard process.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealendar-ai/mealendar/internal/ai"
	"github.com/mealendar-ai/mealendar/internal/calendar"
	"github.com/mealendar-ai/mealendar/internal/google"
	"github.com/mealendar-ai/mealendar/internal/session"
	"github.com/mealendar-ai/mealendar/internal/web"
)

// Daemon is the mealendard process.
type Daemon struct {
	cfg       Config
	logger    zerolog.Logger
	store     *session.MemoryStore
	webServer *web.Server
	stopCh    chan struct{}
}

// NewDaemon creates a Daemon from config.
func NewDaemon(cfg Config, logger zerolog.Logger) *Daemon {
	return &Daemon{
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Run starts the HTTP API and blocks until a signal is received or
// Stop is called.
func (d *Daemon) Run() error {
	if err := ValidateForRun(d.cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	d.store = session.NewMemoryStore(d.cfg.Session.Timeout)
	sessions := session.NewManager(d.store, d.cfg.Session.Secret)

	flow := google.NewFlow(
		d.cfg.Google.ClientID,
		d.cfg.Google.ClientSecret,
		d.cfg.Google.RedirectURI,
		d.logger,
	)
	cal := calendar.NewService(d.logger)
	llm := ai.NewGeminiClient(d.cfg.AI, d.logger)
	chat := ai.NewChat(llm, cal, d.logger)

	d.webServer = web.New(web.Config{
		Listen:         d.cfg.Server.Listen,
		FrontendOrigin: d.cfg.Server.FrontendOrigin,
	}, sessions, flow, cal, chat, d.logger)

	webErrCh := make(chan error, 1)
	go func() {
		webErrCh <- d.webServer.Start()
	}()

	d.logger.Info().
		Str("listen", d.cfg.Server.Listen).
		Msg("mealendard started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		d.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-d.stopCh:
		d.logger.Info().Msg("stop requested, shutting down")
	case err := <-webErrCh:
		if err != nil {
			d.logger.Error().Err(err).Msg("web server error")
		}
	}

	return d.shutdown()
}

// Stop signals the daemon to shut down. Safe to call from another goroutine.
func (d *Daemon) Stop() {
	close(d.stopCh)
}

func (d *Daemon) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if d.webServer != nil {
		d.webServer.Shutdown(ctx)
	}
	if d.store != nil {
		d.store.Stop()
	}
	return nil
}
