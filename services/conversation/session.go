package conversation

import (
	"strconv"
	"strings"
	"time"

	"plannerly/models"
)

// Service records intake answers into a plan session and advances the dialog.
type Service interface {
	// Advance stores the answer for the session's current state, appends the
	// exchange to the history, moves the session to the next state and returns
	// the prompt to show next. It is total: any answer produces a defined result.
	Advance(session *models.PlanSession, answer string) string

	// Greeting returns the opening prompt for a fresh session.
	Greeting() string

	// Start returns the state a fresh session begins in and the first intake
	// question. INITIAL itself is outside the sequence, so sessions open on
	// the sequence's first state.
	Start() (models.ConversationState, string)
}

// DefaultService implements Service on top of a Flow.
type DefaultService struct {
	Flow *Flow
}

func NewDefaultService(flow *Flow) *DefaultService {
	return &DefaultService{Flow: flow}
}

func (s *DefaultService) Greeting() string {
	return s.Flow.PromptFor(models.StateInitial)
}

func (s *DefaultService) Start() (models.ConversationState, string) {
	first := s.Flow.First()
	return first, s.Flow.PromptFor(first)
}

func (s *DefaultService) Advance(session *models.PlanSession, answer string) string {
	now := time.Now()
	current := session.State
	if current == "" {
		current = models.StateInitial
	}

	s.recordAnswer(session, current, answer)
	session.History = append(session.History, models.Message{
		Role:  "user",
		Text:  answer,
		State: current,
		At:    now,
	})

	next := s.Flow.NextState(current)
	prompt := s.Flow.PromptFor(next)
	session.State = next
	session.History = append(session.History, models.Message{
		Role:  "assistant",
		Text:  prompt,
		State: next,
		At:    now,
	})
	session.UpdatedAt = now
	return prompt
}

// recordAnswer writes the answer into the profile field the current state is
// collecting. States that collect nothing (INITIAL, PLANNING) leave the
// profile untouched.
func (s *DefaultService) recordAnswer(session *models.PlanSession, state models.ConversationState, answer string) {
	answer = strings.TrimSpace(answer)
	switch state {
	case models.StateEventType:
		session.Profile.EventType = strings.ToLower(answer)
	case models.StateScope:
		session.Profile.GuestScope = answer
	case models.StateBudget:
		session.Profile.TotalBudget = ParseBudgetAmount(answer)
	case models.StateLocation:
		session.Profile.Location = answer
	case models.StateDate:
		session.Profile.Date = answer
	case models.StateStyle:
		session.Profile.StyleTags = splitStyleTags(answer)
	}
}

// ParseBudgetAmount extracts a dollar amount from free-form text.
// "$12,000", "12000" and "around 12000 dollars" all parse to 12000.
// Text with no usable number yields 0 rather than an error.
func ParseBudgetAmount(text string) float64 {
	for _, field := range strings.Fields(text) {
		cleaned := strings.Trim(field, "$,.!?")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if cleaned == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil && v >= 0 {
			return v
		}
	}
	return 0
}

func splitStyleTags(answer string) []string {
	var tags []string
	for _, part := range strings.Split(answer, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, strings.ToLower(tag))
		}
	}
	return tags
}
