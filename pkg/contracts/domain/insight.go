package domain

// InsightType identifies which rule produced an insight.
type InsightType string

const (
	InsightRevenue     InsightType = "revenue"
	InsightEngagement  InsightType = "engagement"
	InsightConversion  InsightType = "conversion"
	InsightDuration    InsightType = "duration"
	InsightCorrelation InsightType = "correlation"
)

// Insight is a short rule-generated finding about the current batch.
// Insights are immutable output records, produced once per analysis run.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Icon    string      `json:"icon"`
}
