package conversation

import "plannerly/models"

// Flow advances the intake dialog through a fixed ordered sequence of states.
// The sequence and prompt table are configuration: tests and alternate intake
// scripts can inject their own via NewCustomFlow.
type Flow struct {
	sequence []models.ConversationState
	prompts  map[models.ConversationState]string
}

// defaultSequence is the intake order. INITIAL is deliberately not part of it:
// advancing from any state outside the sequence lands on PLANNING.
var defaultSequence = []models.ConversationState{
	models.StateEventType,
	models.StateScope,
	models.StateBudget,
	models.StateLocation,
	models.StateDate,
	models.StateStyle,
	models.StatePlanning,
}

var defaultPrompts = map[models.ConversationState]string{
	models.StateInitial:   "Hi! I'm Plannerly, your event planning assistant. Tell me about the event you're dreaming up.",
	models.StateEventType: "What type of event are you planning?",
	models.StateScope:     "How many guests are you expecting?",
	models.StateBudget:    "What's your total budget for the event?",
	models.StateLocation:  "Where will the event take place?",
	models.StateDate:      "When is the event happening?",
	models.StateStyle:     "How would you describe the style or vibe you're going for?",
	models.StatePlanning:  "Great, I have everything I need. Let's start planning your event!",
}

// NewFlow returns a Flow with the built-in intake sequence and prompts.
func NewFlow() *Flow {
	return NewCustomFlow(defaultSequence, defaultPrompts)
}

// NewCustomFlow builds a Flow from the given sequence and prompt table.
// The last element of the sequence is treated as the terminal state.
func NewCustomFlow(sequence []models.ConversationState, prompts map[models.ConversationState]string) *Flow {
	seq := make([]models.ConversationState, len(sequence))
	copy(seq, sequence)
	p := make(map[models.ConversationState]string, len(prompts))
	for k, v := range prompts {
		p[k] = v
	}
	return &Flow{sequence: seq, prompts: p}
}

// First returns the opening state of the intake sequence. INITIAL is not part
// of the sequence, so a session must start here for NextState to walk the
// whole dialog.
func (f *Flow) First() models.ConversationState {
	if len(f.sequence) == 0 {
		return models.StatePlanning
	}
	return f.sequence[0]
}

// Terminal returns the terminal state of the flow.
func (f *Flow) Terminal() models.ConversationState {
	if len(f.sequence) == 0 {
		return models.StatePlanning
	}
	return f.sequence[len(f.sequence)-1]
}

// NextState returns the state following current in the intake sequence.
// A state not in the sequence (including INITIAL) or the last state maps to
// the terminal state. Invalid input never fails, it degrades to terminal.
func (f *Flow) NextState(current models.ConversationState) models.ConversationState {
	for i, s := range f.sequence {
		if s == current {
			if i+1 < len(f.sequence) {
				return f.sequence[i+1]
			}
			return f.Terminal()
		}
	}
	return f.Terminal()
}

// PromptFor returns the fixed prompt associated with a state. Unknown states
// fall back to the terminal prompt.
func (f *Flow) PromptFor(state models.ConversationState) string {
	if p, ok := f.prompts[state]; ok {
		return p
	}
	return f.prompts[f.Terminal()]
}
