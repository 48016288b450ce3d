package domain

// PredictionPoint pairs an observed revenue value with the model's estimate
// for the same session, for scatter display in the presentation layer.
type PredictionPoint struct {
	Actual    float64 `json:"actual"`
	Predicted float64 `json:"predicted"`
}

// PredictionResult reports the fit of the on-demand revenue model
// (gmv_live regressed on viewer count and engagement rate). When the batch
// has too few rows, Insufficient is set and the remaining fields are zero.
type PredictionResult struct {
	Insufficient bool              `json:"insufficient"`
	Rows         int               `json:"rows"`
	R2           float64           `json:"r2"`
	Points       []PredictionPoint `json:"points,omitempty"`
}

// BatchSummary carries the headline KPIs of the current filtered batch,
// plus any data-quality warnings detected during loading.
type BatchSummary struct {
	Sessions          int      `json:"sessions"`
	Creators          int      `json:"creators"`
	TotalGMVLive      float64  `json:"total_gmv_live"`
	AvgGMVLive        float64  `json:"avg_gmv_live"`
	TotalViewers      int      `json:"total_viewers"`
	TotalOrders       int      `json:"total_orders"`
	AvgEngagementRate float64  `json:"avg_engagement_rate"`
	PeakEngagement    float64  `json:"peak_engagement_rate"`
	AvgConversionCalc float64  `json:"avg_conversion_rate_calc"`
	PeakConversion    float64  `json:"peak_conversion_rate_calc"`
	AvgPerformance    float64  `json:"avg_performance_score"`
	QualityWarnings   []string `json:"quality_warnings,omitempty"`
}
