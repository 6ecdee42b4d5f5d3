package calendar

import (
	"fmt"
	"iter"
	"strings"
)

// PromptLines yields one description line per event, lazily. The
// sequence is restartable: each range re-walks the schedule.
func (d DaySchedule) PromptLines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, ev := range d.Events {
			if !yield(promptLine(ev)) {
				return
			}
		}
	}
}

func promptLine(ev Event) string {
	location := ""
	if ev.Location != "" {
		location = " at " + ev.Location
	}
	switch when := ev.When.(type) {
	case Timed:
		return fmt.Sprintf("- %s%s starting at %s\n", ev.Summary, location, when.Start.Format("15:04"))
	default:
		return fmt.Sprintf("- %s%s (All day)\n", ev.Summary, location)
	}
}

// PromptText renders the schedule as the AI prompt context block, or
// a fixed no-events sentence naming the date.
func (d DaySchedule) PromptText() string {
	if len(d.Events) == 0 {
		return fmt.Sprintf("No events scheduled for %s.", d.Date.Format("2006-01-02"))
	}
	var b strings.Builder
	for line := range d.PromptLines() {
		b.WriteString(line)
	}
	return b.String()
}
