package conversation

import (
	"testing"

	"plannerly/models"
)

func TestFlow_NextState_WalksSequenceInOrder(t *testing.T) {
	f := NewFlow()

	tests := []struct {
		current models.ConversationState
		want    models.ConversationState
	}{
		{models.StateEventType, models.StateScope},
		{models.StateScope, models.StateBudget},
		{models.StateBudget, models.StateLocation},
		{models.StateLocation, models.StateDate},
		{models.StateDate, models.StateStyle},
		{models.StateStyle, models.StatePlanning},
		{models.StatePlanning, models.StatePlanning},
	}
	for _, tt := range tests {
		if got := f.NextState(tt.current); got != tt.want {
			t.Errorf("NextState(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestFlow_NextState_ReachesPlanningWithinSevenSteps(t *testing.T) {
	f := NewFlow()

	state := models.StateInitial
	for i := 0; i < 7; i++ {
		state = f.NextState(state)
	}
	if state != models.StatePlanning {
		t.Errorf("expected PLANNING after 7 transitions from INITIAL, got %s", state)
	}

	// PLANNING is terminal: further transitions stay put.
	for i := 0; i < 3; i++ {
		if state = f.NextState(state); state != models.StatePlanning {
			t.Errorf("PLANNING should be terminal, got %s", state)
		}
	}
}

func TestFlow_NextState_UnknownStateDegradesToPlanning(t *testing.T) {
	f := NewFlow()

	for _, current := range []models.ConversationState{models.StateInitial, "BOGUS", ""} {
		if got := f.NextState(current); got != models.StatePlanning {
			t.Errorf("NextState(%q) = %s, want PLANNING", current, got)
		}
	}
}

func TestFlow_PromptFor_EveryStateHasAPrompt(t *testing.T) {
	f := NewFlow()

	states := []models.ConversationState{
		models.StateInitial,
		models.StateEventType,
		models.StateScope,
		models.StateBudget,
		models.StateLocation,
		models.StateDate,
		models.StateStyle,
		models.StatePlanning,
	}
	seen := map[string]bool{}
	for _, state := range states {
		prompt := f.PromptFor(state)
		if prompt == "" {
			t.Errorf("PromptFor(%s) returned empty prompt", state)
		}
		seen[prompt] = true
	}
	if len(seen) != len(states) {
		t.Errorf("expected %d distinct prompts, got %d", len(states), len(seen))
	}
}

func TestFlow_PromptFor_UnknownStateFallsBackToTerminal(t *testing.T) {
	f := NewFlow()

	if got := f.PromptFor("BOGUS"); got != f.PromptFor(models.StatePlanning) {
		t.Errorf("unknown state should fall back to the terminal prompt, got %q", got)
	}
}

func TestNewCustomFlow_InjectedSequence(t *testing.T) {
	seq := []models.ConversationState{"A", "B", "C"}
	prompts := map[models.ConversationState]string{"A": "a?", "B": "b?", "C": "done"}
	f := NewCustomFlow(seq, prompts)

	if got := f.First(); got != "A" {
		t.Errorf("First() = %s, want A", got)
	}
	if got := f.Terminal(); got != "C" {
		t.Errorf("Terminal() = %s, want C", got)
	}
	if got := f.NextState("A"); got != "B" {
		t.Errorf("NextState(A) = %s, want B", got)
	}
	if got := f.NextState("Z"); got != "C" {
		t.Errorf("NextState(Z) = %s, want terminal C", got)
	}
}
