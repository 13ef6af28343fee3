package models

import "time"

// BudgetAllocation maps a category name to the dollar amount currently assigned to it.
// Values may go negative while spend is being subtracted; allocations are a derived
// view and are never the source of truth.
type BudgetAllocation map[string]float64

// CategoryShares maps a category name to its fractional share of the total budget.
// Shares are not required to sum to 1.
type CategoryShares map[string]float64

// VendorSelection is a vendor chosen for a category. A nil Price means the vendor
// has not been priced yet and counts as zero wherever spend is aggregated.
type VendorSelection struct {
	Category   string   `json:"category" bson:"category"`
	VendorName string   `json:"vendorName,omitempty" bson:"vendorName,omitempty"`
	Price      *float64 `json:"price,omitempty" bson:"price,omitempty"`
}

// BudgetSnapshot is the derived budget view for a plan session: the current
// allocation plus the advisory strings computed from it.
type BudgetSnapshot struct {
	Allocation      BudgetAllocation `json:"allocation" bson:"allocation"`
	Spent           float64          `json:"spent" bson:"spent"`
	Available       float64          `json:"available" bson:"available"`
	Warnings        []string         `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// ReviewPayload is the task payload for a background budget review.
type ReviewPayload struct {
	PlanID string `json:"planId"`
}
