package budget

import (
	"strings"
	"testing"

	"plannerly/models"
)

func TestTemplateAdvisor_InvestMoreBelowHalfAllocation(t *testing.T) {
	e := NewEngine()
	selections := []models.VendorSelection{
		{Category: "venue", Price: price(100)}, // well under 50% of 300
	}

	recs := e.Recommendations(1000, selections, "wedding")

	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "venue") {
		t.Errorf("expected an invest-more line for venue, got %v", recs)
	}
	// catering has zero spend, also under half its 250 allocation.
	if !strings.Contains(joined, "catering") {
		t.Errorf("expected an invest-more line for catering, got %v", recs)
	}
	// 900 of 1000 remains, well above the 10% threshold.
	if !strings.Contains(joined, "splurge") {
		t.Errorf("expected a room-to-splurge line, got %v", recs)
	}
}

func TestTemplateAdvisor_NoInvestLineAtOrAboveHalf(t *testing.T) {
	shares := models.CategoryShares{"venue": 0.5}
	recs := TemplateAdvisor{Shares: shares}.Advise(1000, []models.VendorSelection{
		{Category: "venue", Price: price(250)}, // exactly 50% of 500
	})

	for _, rec := range recs {
		if strings.Contains(rec, "invest more in venue") {
			t.Errorf("spend at exactly 50%% should not trigger invest-more: %v", recs)
		}
	}
}

func TestTemplateAdvisor_NearingLimit(t *testing.T) {
	recs := TemplateAdvisor{Shares: models.CategoryShares{}}.Advise(1000, []models.VendorSelection{
		{Category: "venue", Price: price(950)}, // 5% remaining
	})
	if len(recs) != 1 || !strings.Contains(recs[0], "nearing") {
		t.Errorf("expected only the nearing-limit line, got %v", recs)
	}
}

func TestTemplateAdvisor_ZeroTotalBudgetGuarded(t *testing.T) {
	recs := TemplateAdvisor{Shares: models.CategoryShares{"venue": 0.5}}.Advise(0, nil)
	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "nearing") {
		t.Errorf("zero total budget should read as nearing the limit, got %v", recs)
	}
}

func TestTemplateAdvisor_UnknownEventTypeStillAdvises(t *testing.T) {
	e := NewEngine()
	recs := e.Recommendations(1000, nil, "unknown-type")
	if len(recs) != 1 || !strings.Contains(recs[0], "splurge") {
		t.Errorf("unknown event type should still yield the budget line, got %v", recs)
	}
}

func TestPriorityAdvisor_UnderBudgetReport(t *testing.T) {
	advisor := PriorityAdvisor{Priorities: map[string]float64{"venue": 3, "catering": 1}}
	recs := advisor.Advise(1000, []models.VendorSelection{
		{Category: "venue", Price: price(200)},
	})

	if len(recs) == 0 || !strings.Contains(recs[0], "$800.00 under budget") {
		t.Fatalf("expected under-budget report first, got %v", recs)
	}
	joined := strings.Join(recs, "\n")
	// venue expected share = 3/4*1000 = 750; spend 200 < 375 and money remains.
	if !strings.Contains(joined, "increasing your spend on venue") {
		t.Errorf("expected increase suggestion for venue, got %v", recs)
	}
	// Money remains, so the closing line splurges on the top priority.
	if !strings.Contains(recs[len(recs)-1], "venue") {
		t.Errorf("closing line should name the highest-priority category, got %v", recs)
	}
}

func TestPriorityAdvisor_OverBudgetTrimsLowestPriority(t *testing.T) {
	advisor := PriorityAdvisor{Priorities: map[string]float64{"venue": 3, "catering": 1}}
	recs := advisor.Advise(1000, []models.VendorSelection{
		{Category: "catering", Price: price(1100)},
	})

	if !strings.Contains(recs[0], "$100.00 over budget") {
		t.Errorf("expected over-budget report, got %v", recs)
	}
	joined := strings.Join(recs, "\n")
	// catering expected share = 250; spend 1100 > 300 (120%).
	if !strings.Contains(joined, "trimming your spend on catering") {
		t.Errorf("expected trim suggestion for catering, got %v", recs)
	}
	// No money remains: economize on the lowest priority.
	if !strings.Contains(recs[len(recs)-1], "catering") {
		t.Errorf("closing line should name the lowest-priority category, got %v", recs)
	}
}

func TestPriorityAdvisor_ZeroWeightSumDoesNotPanic(t *testing.T) {
	advisor := PriorityAdvisor{Priorities: map[string]float64{"venue": 0, "catering": 0}}

	recs := advisor.Advise(1000, []models.VendorSelection{
		{Category: "venue", Price: price(100)},
	})
	if len(recs) == 0 {
		t.Fatal("expected a defined recommendation list with zero weights")
	}
	// Expected shares collapse to 0, so any spend reads as trimmable.
	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "venue") {
		t.Errorf("expected venue to be mentioned, got %v", recs)
	}
}

func TestPriorityAdvisor_NoPriorities(t *testing.T) {
	recs := PriorityAdvisor{}.Advise(1000, nil)
	if len(recs) != 1 || !strings.Contains(recs[0], "under budget") {
		t.Errorf("with no priorities only the budget report should remain, got %v", recs)
	}
}
