package domain

import (
	"time"
)

// Session represents one normalized live-stream sales session for a creator.
// It is the unit the analytics engine operates on: raw spreadsheet rows are
// converted into Sessions exactly once per batch, and every numeric field is
// finite and non-negative (malformed cells coerce to zero, never to NaN).
type Session struct {
	CreatorID       string     `json:"creator_id" validate:"required"`
	CreatorName     string     `json:"creator_name,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes" validate:"min=0"`

	// Commerce counters
	GMVLive       float64 `json:"gmv_live" validate:"min=0"`
	GMVGross      float64 `json:"gmv_gross" validate:"min=0"`
	ViewerCount   int     `json:"viewer_count" validate:"min=0"`
	OrderCount    int     `json:"order_count" validate:"min=0"`
	Buyers        int     `json:"buyers" validate:"min=0"`
	ProductsAdded int     `json:"products_added" validate:"min=0"`
	ProductsSold  int     `json:"products_sold" validate:"min=0"`

	// Engagement counters
	Likes        int     `json:"likes" validate:"min=0"`
	Comments     int     `json:"comments" validate:"min=0"`
	Shares       int     `json:"shares" validate:"min=0"`
	NewFollowers int     `json:"new_followers" validate:"min=0"`
	Views        int     `json:"views" validate:"min=0"`
	AvgWatchTime float64 `json:"avg_watch_time" validate:"min=0"`

	// Best-effort percentages reported by the platform, in [0, 100].
	CTR              float64 `json:"ctr"`
	AdConversionRate float64 `json:"ad_conversion_rate"`

	// Derived fields, computed by the engine. Never part of the input.
	EngagementRate     float64 `json:"engagement_rate"`
	RevenuePerViewer   float64 `json:"revenue_per_viewer"`
	ConversionRateCalc float64 `json:"conversion_rate_calc"`
	PerformanceScore   float64 `json:"performance_score"`

	// Cluster assignment. Nil when clustering was skipped (fewer than
	// three distinct creators in the batch).
	ClusterID   *int   `json:"cluster_id,omitempty"`
	ClusterName string `json:"cluster_name,omitempty"`
}

// HasCluster reports whether the session carries a cluster assignment.
func (s *Session) HasCluster() bool {
	return s.ClusterID != nil
}
