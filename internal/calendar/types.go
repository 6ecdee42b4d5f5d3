package calendar

import (
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Occurrence is when an event happens: either a timed occurrence or
// an all-day one. Parsed once at the API boundary so the rest of the
// code never inspects raw date/dateTime fields.
type Occurrence interface {
	isOccurrence()
}

// Timed is an occurrence with a time of day.
type Timed struct {
	Start time.Time
	End   time.Time
}

// AllDay is a date-only occurrence.
type AllDay struct {
	Date time.Time
}

func (Timed) isOccurrence()  {}
func (AllDay) isOccurrence() {}

// Event is one calendar entry for the target day. Raw carries the
// upstream item verbatim for the direct API endpoint.
type Event struct {
	Summary  string
	Location string
	When     Occurrence
	Raw      *gcal.Event
}

// parseEvent validates and converts an upstream item.
func parseEvent(item *gcal.Event) (Event, error) {
	ev := Event{
		Summary:  item.Summary,
		Location: item.Location,
		Raw:      item,
	}

	if item.Start == nil {
		return Event{}, fmt.Errorf("event %q has no start", item.Id)
	}

	switch {
	case item.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return Event{}, fmt.Errorf("event %q start: %w", item.Id, err)
		}
		var end time.Time
		if item.End != nil && item.End.DateTime != "" {
			end, _ = time.Parse(time.RFC3339, item.End.DateTime)
		}
		ev.When = Timed{Start: start, End: end}
	case item.Start.Date != "":
		date, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return Event{}, fmt.Errorf("event %q date: %w", item.Id, err)
		}
		ev.When = AllDay{Date: date}
	default:
		return Event{}, fmt.Errorf("event %q has neither dateTime nor date", item.Id)
	}

	return ev, nil
}

// DaySchedule is one day's worth of events in the user's calendar
// timezone, ordered by start time.
type DaySchedule struct {
	Date   time.Time // midnight of the target day in its timezone
	Events []Event
}
