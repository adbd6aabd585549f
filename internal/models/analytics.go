package models

// Analytics tracks simulated engagement for a posted post. Counters are
// non-negative and never decrease; growth is applied by scheduler ticks.
type Analytics struct {
	PostID   string `json:"post_id"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`

	// growthSteps counts how many growth steps have been applied so the
	// engine can taper the increments of long-lived posts.
	growthSteps int
}

// GrowthSteps returns the number of growth steps applied so far.
func (a *Analytics) GrowthSteps() int { return a.growthSteps }

// RecordGrowth adds the given increments and advances the step counter.
// Negative increments are clamped to zero to preserve monotonicity.
func (a *Analytics) RecordGrowth(likes, comments, shares int) {
	if likes > 0 {
		a.Likes += likes
	}
	if comments > 0 {
		a.Comments += comments
	}
	if shares > 0 {
		a.Shares += shares
	}
	a.growthSteps++
}

// EngagementTotals aggregates analytics across all posted posts.
type EngagementTotals struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}
