package web

import (
	"encoding/json"
	"net/http"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/mealendar-ai/mealendar/internal/fault"
)

// Fixed client-facing payloads. Auth, upstream, and token-expiry
// failures deliberately collapse into the same generic strings; the
// root cause is only logged server-side.
const (
	errNotAuthenticated = "User not authenticated"
	errCalendarFetch    = "Failed to fetch calendar events"
	errEmptyMessage     = "Message cannot be empty"
	errAIResponse       = "Failed to get response from AI"
)

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	Message      string  `json:"message"`
	SelectedDate *string `json:"selected_date"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, map[string]string{"error": msg})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "Welcome to the Mealendar AI backend!"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Session(w, r)

	url, err := s.auth.BeginLogin(sess)
	if err != nil {
		s.logger.Error().Err(err).Msg("begin login failed")
		http.Redirect(w, r, s.frontendOrigin+"?auth_status=failed", http.StatusFound)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Session(w, r)

	q := r.URL.Query()
	err := s.auth.HandleCallback(r.Context(), sess, q.Get("state"), q.Get("code"))
	if err != nil {
		s.logger.Error().Err(err).Msg("token exchange failed")
		http.Redirect(w, r, s.frontendOrigin+"?auth_status=failed", http.StatusFound)
		return
	}
	http.Redirect(w, r, s.frontendOrigin+"?auth_status=success", http.StatusFound)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Session(w, r)
	writeJSON(w, map[string]bool{"isLoggedIn": sess.LoggedIn()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Session(w, r)

	creds := sess.Credentials()
	if creds == nil {
		writeError(w, errNotAuthenticated)
		return
	}

	schedule, err := s.calendar.EventsForDate(r.Context(), creds, r.URL.Query().Get("start_date"), true)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch calendar events failed")
		writeError(w, errCalendarFetch)
		return
	}

	// Upstream items are relayed verbatim.
	items := []*gcal.Event{}
	for _, ev := range schedule.Events {
		items = append(items, ev.Raw)
	}
	writeJSON(w, map[string]any{"events": items})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Session(w, r)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errEmptyMessage)
		return
	}

	selectedDate := ""
	if req.SelectedDate != nil {
		selectedDate = *req.SelectedDate
	}

	answer, err := s.chat.Respond(r.Context(), sess, req.Message, selectedDate)
	if err != nil {
		if fault.KindOf(err) == fault.Validation {
			writeError(w, errEmptyMessage)
			return
		}
		s.logger.Error().Err(err).Msg("chat failed")
		writeError(w, errAIResponse)
		return
	}
	writeJSON(w, map[string]string{"response": answer})
}
