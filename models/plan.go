package models

import "time"

// PlanSession holds everything a planning dialog has produced for one event:
// the evolving profile, the conversation history, the vendor selections and
// the latest derived budget snapshot. Profile, selections and priorities are
// the durable state; the snapshot is recomputed from them on every change.
type PlanSession struct {
	ID         string             `json:"id" bson:"id"`
	DeviceID   string             `json:"deviceId,omitempty" bson:"deviceId,omitempty"`
	State      ConversationState  `json:"state" bson:"state"`
	Profile    EventProfile       `json:"profile" bson:"profile"`
	History    []Message          `json:"history,omitempty" bson:"history,omitempty"`
	Selections []VendorSelection  `json:"selections,omitempty" bson:"selections,omitempty"`
	Priorities map[string]float64 `json:"priorities,omitempty" bson:"priorities,omitempty"`
	Snapshot   *BudgetSnapshot    `json:"snapshot,omitempty" bson:"snapshot,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
