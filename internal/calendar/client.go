// Package calendar queries a user's primary Google Calendar for one
// day's events, on behalf of a logged-in browser session.
package calendar

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/mealendar-ai/mealendar/internal/fault"
	"github.com/mealendar-ai/mealendar/internal/google"
	"github.com/mealendar-ai/mealendar/internal/session"
)

// maxDirectResults caps the event count on the direct API path. The
// AI-context path is uncapped.
const maxDirectResults = 50

// Service queries the primary calendar. A short-lived authorized
// client is built per call from the session's credentials.
type Service struct {
	opts   []option.ClientOption
	logger zerolog.Logger
}

// NewService creates a calendar Service. Extra client options are
// appended to every API client built (tests pass an endpoint
// override).
func NewService(logger zerolog.Logger, opts ...option.ClientOption) *Service {
	return &Service{
		opts:   opts,
		logger: logger.With().Str("component", "calendar").Logger(),
	}
}

func (s *Service) client(ctx context.Context, creds *session.Credentials) (*gcal.Service, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(google.TokenSource(creds)),
	}, s.opts...)
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fault.Upstreamf("create calendar service: %w", err)
	}
	return svc, nil
}

// resolveTimezone fetches the primary calendar's timezone, defaulting
// to UTC when absent or unknown to the local timezone database. Day
// boundaries are timezone-relative, so this runs before the window is
// computed.
func (s *Service) resolveTimezone(ctx context.Context, svc *gcal.Service) (*time.Location, error) {
	info, err := svc.Calendars.Get("primary").Context(ctx).Do()
	if err != nil {
		return nil, fault.Upstreamf("get primary calendar: %w", err)
	}
	if info.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(info.TimeZone)
	if err != nil {
		s.logger.Warn().Str("timezone", info.TimeZone).Msg("unknown calendar timezone, using UTC")
		return time.UTC, nil
	}
	return loc, nil
}

// dayWindow returns midnight and end-of-day for the target date in
// loc. An empty dateStr means today in loc.
func dayWindow(dateStr string, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	var day time.Time
	if dateStr == "" {
		n := now.In(loc)
		day = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, fault.Validationf("parse date %q: %w", dateStr, err)
		}
		day = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc)
	}
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc)
	return day, end, nil
}

// EventsForDate fetches the day's events, expanding recurring events
// into single occurrences ordered by start time. When capped is true
// the result is limited to 50 events (direct API path).
func (s *Service) EventsForDate(ctx context.Context, creds *session.Credentials, dateStr string, capped bool) (DaySchedule, error) {
	svc, err := s.client(ctx, creds)
	if err != nil {
		return DaySchedule{}, err
	}

	loc, err := s.resolveTimezone(ctx, svc)
	if err != nil {
		return DaySchedule{}, err
	}

	dayStart, dayEnd, err := dayWindow(dateStr, loc, time.Now())
	if err != nil {
		return DaySchedule{}, err
	}

	call := svc.Events.List("primary").
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if capped {
		call = call.MaxResults(maxDirectResults)
	}

	resp, err := call.Do()
	if err != nil {
		return DaySchedule{}, fault.Upstreamf("list events: %w", err)
	}

	schedule := DaySchedule{Date: dayStart}
	for _, item := range resp.Items {
		ev, err := parseEvent(item)
		if err != nil {
			return DaySchedule{}, fault.Upstreamf("parse event: %w", err)
		}
		schedule.Events = append(schedule.Events, ev)
	}
	return schedule, nil
}

// ScheduleContext fetches the day's events and renders them for the
// AI prompt. It never fails: missing credentials and upstream errors
// both degrade to fixed context strings, with the cause logged.
func (s *Service) ScheduleContext(ctx context.Context, creds *session.Credentials, dateStr string) string {
	if creds == nil {
		return "User is not logged in."
	}
	schedule, err := s.EventsForDate(ctx, creds, dateStr, false)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch events for AI context failed")
		return "Could not retrieve calendar events."
	}
	return schedule.PromptText()
}
