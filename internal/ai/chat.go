package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mealendar-ai/mealendar/internal/fault"
	"github.com/mealendar-ai/mealendar/internal/session"
)

// ContextSource provides the formatted day schedule embedded in the
// prompt. It degrades to fixed strings instead of failing.
type ContextSource interface {
	ScheduleContext(ctx context.Context, creds *session.Credentials, dateStr string) string
}

// Chat answers user questions about their day by combining the
// calendar schedule with a generative model.
type Chat struct {
	llm      LLMClient
	schedule ContextSource
	logger   zerolog.Logger
}

// NewChat creates the chat service.
func NewChat(llm LLMClient, schedule ContextSource, logger zerolog.Logger) *Chat {
	return &Chat{
		llm:      llm,
		schedule: schedule,
		logger:   logger.With().Str("component", "chat").Logger(),
	}
}

// Respond validates the message, gathers schedule context for the
// selected date, and relays the model's answer verbatim. An empty
// message is rejected before any upstream call.
func (c *Chat) Respond(ctx context.Context, sess *session.Session, message, selectedDate string) (string, error) {
	if message == "" {
		return "", fault.Validationf("empty message")
	}

	scheduleText := c.schedule.ScheduleContext(ctx, sess.Credentials(), selectedDate)
	prompt := buildPrompt(selectedDate, scheduleText, message)

	answer, err := c.llm.Complete(ctx, CompleteRequest{Prompt: prompt, Temperature: -1})
	if err != nil {
		return "", fault.Upstreamf("generate answer: %w", err)
	}
	return answer, nil
}

func buildPrompt(selectedDate, scheduleText, message string) string {
	return fmt.Sprintf(`You are a helpful assistant named Mealendar AI.
Your user has selected the date %s.
The user's schedule for that day is as follows:
%s

Based on this schedule, answer the user's question.
User's question: "%s"
`, selectedDate, scheduleText, message)
}
