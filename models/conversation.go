package models

import "time"

// ConversationState identifies where the intake dialog currently is.
type ConversationState string

const (
	StateInitial   ConversationState = "INITIAL"
	StateEventType ConversationState = "EVENT_TYPE"
	StateScope     ConversationState = "SCOPE"
	StateBudget    ConversationState = "BUDGET"
	StateLocation  ConversationState = "LOCATION"
	StateDate      ConversationState = "DATE"
	StateStyle     ConversationState = "STYLE"
	StatePlanning  ConversationState = "PLANNING"
)

// Message is a single turn in the intake dialog.
type Message struct {
	Role  string            `json:"role" bson:"role"` // "user" or "assistant"
	Text  string            `json:"text" bson:"text"`
	State ConversationState `json:"state" bson:"state"` // state the dialog was in when the message was recorded
	At    time.Time         `json:"at" bson:"at"`
}
