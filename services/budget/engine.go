package budget

import (
	"fmt"
	"math"

	"plannerly/models"
)

// Engine derives category allocations from an event-type template and tracks
// spend against them. Every operation is a total function over plain data:
// unknown event types, unknown categories and unpriced selections all degrade
// to zero/empty results instead of erroring.
type Engine struct {
	Templates map[string]models.CategoryShares
}

// NewEngine returns an Engine with the built-in event-type templates.
func NewEngine() *Engine {
	return &Engine{Templates: DefaultTemplates()}
}

// Allocate splits totalBudget across the template categories for eventType,
// rounding each amount to whole dollars. An unknown event type yields an empty
// allocation. Template fractions are applied as-is: if they do not sum to 1
// the output will not sum to totalBudget, and that is intentional.
func (e *Engine) Allocate(totalBudget float64, eventType string) models.BudgetAllocation {
	allocation := models.BudgetAllocation{}
	shares, ok := e.Templates[eventType]
	if !ok {
		return allocation
	}
	for category, share := range shares {
		allocation[category] = math.Round(share * totalBudget)
	}
	return allocation
}

// TotalSpent sums the prices of all selections, counting unpriced ones as zero.
// Every place the engine aggregates spend goes through this.
func TotalSpent(selections []models.VendorSelection) float64 {
	total := 0.0
	for _, sel := range selections {
		if sel.Price != nil {
			total += *sel.Price
		}
	}
	return total
}

// Reallocate subtracts each priced selection from its category and then
// redistributes the still-unspent budget proportionally across the categories
// that remain positive.
//
// Categories driven to zero or below keep their post-subtraction value; a
// category selected but absent from the allocation is synthesized at 0 before
// subtracting, so it ends up negative and is never part of the redistribution.
// If nothing positive remains, or spend has consumed the whole budget, the
// post-subtraction allocation is returned unchanged.
//
// Callers must pass the last computed allocation with only the new selection
// deltas, or recompute from Allocate with the full selection set; feeding the
// same selections in twice subtracts them twice.
func (e *Engine) Reallocate(current models.BudgetAllocation, selections []models.VendorSelection, totalBudget float64) models.BudgetAllocation {
	next := models.BudgetAllocation{}
	for category, amount := range current {
		next[category] = amount
	}

	for _, sel := range selections {
		if sel.Category == "" || sel.Price == nil {
			continue
		}
		next[sel.Category] -= *sel.Price
	}

	remainingBudget := 0.0
	for _, amount := range next {
		if amount > 0 {
			remainingBudget += amount
		}
	}

	spent := TotalSpent(selections)
	available := totalBudget - spent

	if remainingBudget > 0 && available > 0 {
		for category, amount := range next {
			if amount > 0 {
				next[category] = math.Round(amount / remainingBudget * available)
			}
		}
	}
	return next
}

// OverageWarnings reports every category whose aggregated spend exceeds its
// allocation. Warnings follow the order categories first appear in the
// selections; a category missing from the allocation is treated as allocated 0.
func (e *Engine) OverageWarnings(allocation models.BudgetAllocation, selections []models.VendorSelection) []string {
	spend, order := spendByCategory(selections)

	var warnings []string
	for _, category := range order {
		limit := allocation[category]
		if spend[category] > limit {
			warnings = append(warnings, fmt.Sprintf(
				"Heads up: %s is $%.2f over its allocation.", category, spend[category]-limit))
		}
	}
	return warnings
}

// spendByCategory aggregates spend per category, preserving the order in which
// categories first appear in the selections.
func spendByCategory(selections []models.VendorSelection) (map[string]float64, []string) {
	spend := make(map[string]float64)
	var order []string
	for _, sel := range selections {
		if _, seen := spend[sel.Category]; !seen {
			spend[sel.Category] = 0
			order = append(order, sel.Category)
		}
		if sel.Price != nil {
			spend[sel.Category] += *sel.Price
		}
	}
	return spend, order
}
