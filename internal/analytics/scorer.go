package analytics

import (
	"math"

	"streampulse/pkg/contracts/domain"
)

// ScoreOutcome makes the scorer's fallback paths explicit in its signature
// instead of hiding them behind recovered failures.
type ScoreOutcome int

const (
	// ScoreComputed means standardization and rescaling ran normally.
	ScoreComputed ScoreOutcome = iota
	// ScoreNoMetrics means no scoring metric was available; every score is 0.
	ScoreNoMetrics
	// ScoreDegenerate means the batch had no usable variance; every score
	// is the neutral 50 to avoid implying a meaningless ranking.
	ScoreDegenerate
	// ScoreFailed means a numerical failure was detected; every score is 0.
	ScoreFailed
)

// metricColumn pairs a scoring metric with its session accessor. The order
// of scoringMetrics is fixed and matched positionally against the weight
// vector; changing it would silently change every historical score.
type metricColumn struct {
	name string
	get  func(*domain.Session) float64
}

var scoringMetrics = []metricColumn{
	{"gmv_live", func(s *domain.Session) float64 { return s.GMVLive }},
	{"viewer_count", func(s *domain.Session) float64 { return float64(s.ViewerCount) }},
	{"order_count", func(s *domain.Session) float64 { return float64(s.OrderCount) }},
	{"engagement_rate", func(s *domain.Session) float64 { return s.EngagementRate }},
	{"revenue_per_viewer", func(s *domain.Session) float64 { return s.RevenuePerViewer }},
	{"conversion_rate_calc", func(s *domain.Session) float64 { return s.ConversionRateCalc }},
}

// ScoreSessions assigns the weighted composite performance score in place.
//
// Each metric column is standardized (population convention; zero-variance
// columns standardize to zeros), combined with the weight vector truncated
// to the number of metrics in play, and the weighted sums are min-max
// rescaled to [0, 100]. The weights are intentionally NOT renormalized when
// metrics are missing: truncation preserves historical score values.
func ScoreSessions(sessions []domain.Session, weights []float64) ScoreOutcome {
	if len(sessions) == 0 {
		return ScoreComputed
	}

	n := len(scoringMetrics)
	if len(weights) < n {
		n = len(weights)
	}
	if n == 0 {
		assignAll(sessions, 0)
		return ScoreNoMetrics
	}

	columns := make([][]float64, n)
	anyVariance := false
	for j := 0; j < n; j++ {
		col := make([]float64, len(sessions))
		for i := range sessions {
			col[i] = scoringMetrics[j].get(&sessions[i])
		}
		if popStdDev(col) > 0 {
			anyVariance = true
		}
		columns[j] = col
	}

	if !anyVariance {
		assignAll(sessions, 50)
		return ScoreDegenerate
	}

	for j := range columns {
		columns[j] = standardize(columns[j])
	}

	weighted := make([]float64, len(sessions))
	for i := range sessions {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += columns[j][i] * weights[j]
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			assignAll(sessions, 0)
			return ScoreFailed
		}
		weighted[i] = sum
	}

	lo, hi := weighted[0], weighted[0]
	for _, v := range weighted[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		assignAll(sessions, 50)
		return ScoreDegenerate
	}

	for i := range sessions {
		sessions[i].PerformanceScore = 100 * (weighted[i] - lo) / (hi - lo)
	}
	return ScoreComputed
}

func assignAll(sessions []domain.Session, score float64) {
	for i := range sessions {
		sessions[i].PerformanceScore = score
	}
}
