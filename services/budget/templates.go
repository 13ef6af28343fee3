package budget

import "plannerly/models"

// DefaultTemplates returns the built-in per-event-type budget splits.
// Both built-ins sum to 1.0, but nothing in the engine relies on that.
func DefaultTemplates() map[string]models.CategoryShares {
	return map[string]models.CategoryShares{
		"wedding": {
			"venue":       0.30,
			"catering":    0.25,
			"photography": 0.12,
			"flowers":     0.08,
			"music":       0.07,
			"misc":        0.18,
		},
		"birthday": {
			"venue":         0.25,
			"catering":      0.30,
			"entertainment": 0.20,
			"decorations":   0.15,
			"misc":          0.10,
		},
	}
}
