// Package web serves the backend HTTP API consumed by the frontend.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mealendar-ai/mealendar/internal/calendar"
	"github.com/mealendar-ai/mealendar/internal/session"
)

// Config holds web server settings passed to New.
type Config struct {
	Listen         string
	FrontendOrigin string // allowed CORS origin and post-login redirect target
}

// AuthFlow is the OAuth login flow used by the auth handlers.
type AuthFlow interface {
	BeginLogin(sess *session.Session) (string, error)
	HandleCallback(ctx context.Context, sess *session.Session, state, code string) error
}

// CalendarService fetches one day's events for stored credentials.
type CalendarService interface {
	EventsForDate(ctx context.Context, creds *session.Credentials, dateStr string, capped bool) (calendar.DaySchedule, error)
}

// ChatService answers a user message with schedule context.
type ChatService interface {
	Respond(ctx context.Context, sess *session.Session, message, selectedDate string) (string, error)
}

// Server serves the backend API on a TCP port.
type Server struct {
	listen         string
	frontendOrigin string
	sessions       *session.Manager
	auth           AuthFlow
	calendar       CalendarService
	chat           ChatService
	httpServer     *http.Server
	logger         zerolog.Logger
}

// New creates the API server.
func New(cfg Config, sessions *session.Manager, auth AuthFlow,
	cal CalendarService, chat ChatService, logger zerolog.Logger) *Server {

	s := &Server{
		listen:         cfg.Listen,
		frontendOrigin: cfg.FrontendOrigin,
		sessions:       sessions,
		auth:           auth,
		calendar:       cal,
		chat:           chat,
		logger:         logger.With().Str("component", "web").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/auth/google/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", s.handleCallback)
	mux.HandleFunc("GET /api/auth/google/status", s.handleStatus)
	mux.HandleFunc("GET /api/calendar/events", s.handleEvents)
	mux.HandleFunc("POST /api/chat", s.handleChat)

	s.httpServer = &http.Server{Handler: s.corsMiddleware(s.securityMiddleware(mux))}
	return s
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// securityMiddleware adds security headers to all responses.
func (s *Server) securityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows credentialed requests from the frontend
// origin and answers preflights.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.frontendOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start begins listening on TCP. Blocks until Shutdown or error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return err
	}
	s.logger.Info().Str("listen", s.listen).Msg("API listening")
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
