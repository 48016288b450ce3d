package domain

// CreatorAggregate holds the per-creator mean of the clustering metrics over
// all of the creator's sessions in the current batch. Aggregates are
// recomputed from scratch on every batch; nothing is carried across batches.
type CreatorAggregate struct {
	CreatorID          string  `json:"creator_id"`
	Sessions           int     `json:"sessions"`
	AvgGMVLive         float64 `json:"avg_gmv_live"`
	AvgViewerCount     float64 `json:"avg_viewer_count"`
	AvgEngagementRate  float64 `json:"avg_engagement_rate"`
	AvgRevenuePerView  float64 `json:"avg_revenue_per_viewer"`
	AvgConversionCalc  float64 `json:"avg_conversion_rate_calc"`
	ClusterID          *int    `json:"cluster_id,omitempty"`
	ClusterName        string  `json:"cluster_name,omitempty"`
}

// LeaderboardEntry is one row of the creator performance leaderboard:
// session totals plus mean rates, ranked by mean performance score.
type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	CreatorID          string  `json:"creator_id"`
	Sessions           int     `json:"sessions"`
	TotalGMVLive       float64 `json:"total_gmv_live"`
	TotalViewers       int     `json:"total_viewers"`
	TotalOrders        int     `json:"total_orders"`
	AvgEngagementRate  float64 `json:"avg_engagement_rate"`
	AvgRevenuePerView  float64 `json:"avg_revenue_per_viewer"`
	AvgConversionCalc  float64 `json:"avg_conversion_rate_calc"`
	AvgPerformance     float64 `json:"avg_performance_score"`
	ClusterName        string  `json:"cluster_name,omitempty"`
}
