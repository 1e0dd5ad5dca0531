package model

import "time"

// Aggregation windows for impact scores
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodAnnual    = "annual"
)

// ScoreSummary aggregates a user's impact points over a window.
type ScoreSummary struct {
	UserID           string             `json:"user_id"`
	Period           string             `json:"period"`
	WindowDays       int                `json:"window_days"`
	WindowStart      time.Time          `json:"window_start"`
	WindowEnd        time.Time          `json:"window_end"`
	PointsBySource   map[string]float64 `json:"points_by_source"`
	TotalPoints      float64            `json:"total_points"`
	NormalizedPoints float64            `json:"normalized_points"`
	ImpactScore      float64            `json:"impact_score"`
	BadgeTier        int                `json:"badge_tier"`
}

// LeaderboardEntry is one row of the impact leaderboard.
type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	TotalPoints float64 `json:"total_points"`
	BadgeTier   int     `json:"badge_tier"`
}
