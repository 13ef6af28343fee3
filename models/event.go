package models

// EventProfile captures what the intake dialog has learned about the event so far.
// Fields are filled one per conversation step; empty values mean "not answered yet".
type EventProfile struct {
	EventType   string   `json:"eventType" bson:"eventType"` // e.g. "wedding", "birthday"
	GuestScope  string   `json:"guestScope" bson:"guestScope"`
	TotalBudget float64  `json:"totalBudget" bson:"totalBudget"`
	Location    string   `json:"location" bson:"location"`
	Date        string   `json:"date" bson:"date"`
	StyleTags   []string `json:"styleTags,omitempty" bson:"styleTags,omitempty"`
}
