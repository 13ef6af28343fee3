package budget

import (
	"fmt"
	"math"
	"sort"

	"plannerly/models"
)

// Advisor produces natural-language spending advice from the current
// selections. The wording is not a contract, the triggering conditions are.
// TemplateAdvisor and PriorityAdvisor share this interface so callers pick a
// policy instead of a code path.
type Advisor interface {
	Advise(totalBudget float64, selections []models.VendorSelection) []string
}

// TemplateAdvisor advises against the fractional split of an event-type
// template.
type TemplateAdvisor struct {
	Shares models.CategoryShares
}

func (a TemplateAdvisor) Advise(totalBudget float64, selections []models.VendorSelection) []string {
	var recs []string
	spend, _ := spendByCategory(selections)

	for _, category := range sortedCategories(a.Shares) {
		implied := a.Shares[category] * totalBudget
		if implied > 0 && spend[category] < 0.5*implied {
			recs = append(recs, fmt.Sprintf(
				"You have room to invest more in %s.", category))
		}
	}

	remaining := totalBudget - TotalSpent(selections)
	if totalBudget <= 0 || remaining/totalBudget < 0.1 {
		recs = append(recs, "You're nearing your budget limit, choose remaining vendors carefully.")
	} else {
		recs = append(recs, "You still have room to splurge on something special.")
	}
	return recs
}

// PriorityAdvisor advises against user-supplied per-category priority weights.
// A category's expected share is priority / sum(priorities) x totalBudget;
// with all weights zero every expected share is zero.
type PriorityAdvisor struct {
	Priorities map[string]float64
}

func (a PriorityAdvisor) Advise(totalBudget float64, selections []models.VendorSelection) []string {
	spend, _ := spendByCategory(selections)
	remaining := totalBudget - TotalSpent(selections)

	var recs []string
	if remaining >= 0 {
		recs = append(recs, fmt.Sprintf("You're $%.2f under budget.", remaining))
	} else {
		recs = append(recs, fmt.Sprintf("You're $%.2f over budget.", math.Abs(remaining)))
	}

	weightSum := 0.0
	for _, w := range a.Priorities {
		weightSum += w
	}

	ranked := rankedCategories(a.Priorities)
	for _, category := range ranked {
		expected := 0.0
		if weightSum > 0 {
			expected = a.Priorities[category] / weightSum * totalBudget
		}
		actual := spend[category]
		switch {
		case actual < 0.5*expected && remaining > 0:
			recs = append(recs, fmt.Sprintf(
				"Consider increasing your spend on %s, it's a high priority for you.", category))
		case actual > 1.2*expected:
			recs = append(recs, fmt.Sprintf(
				"Consider trimming your spend on %s.", category))
		}
	}

	if len(ranked) > 0 {
		if remaining > 0 {
			recs = append(recs, fmt.Sprintf(
				"You have money left over, splurge a little on %s.", ranked[0]))
		} else {
			recs = append(recs, fmt.Sprintf(
				"Look for savings on %s to bring things back in line.", ranked[len(ranked)-1]))
		}
	}
	return recs
}

// Recommendations applies the template policy for the given event type.
// An unknown event type still yields the budget-limit advice line.
func (e *Engine) Recommendations(totalBudget float64, selections []models.VendorSelection, eventType string) []string {
	return TemplateAdvisor{Shares: e.Templates[eventType]}.Advise(totalBudget, selections)
}

// sortedCategories returns share keys in name order so advice is deterministic.
func sortedCategories(shares models.CategoryShares) []string {
	categories := make([]string, 0, len(shares))
	for category := range shares {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// rankedCategories orders categories by descending priority, ties by name.
func rankedCategories(priorities map[string]float64) []string {
	categories := make([]string, 0, len(priorities))
	for category := range priorities {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if priorities[categories[i]] != priorities[categories[j]] {
			return priorities[categories[i]] > priorities[categories[j]]
		}
		return categories[i] < categories[j]
	})
	return categories
}
