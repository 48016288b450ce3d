package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streampulse/pkg/contracts/domain"
)

func sessionWith(creator string, gmv float64, viewers, orders int) domain.Session {
	return domain.Session{
		CreatorID:   creator,
		GMVLive:     gmv,
		ViewerCount: viewers,
		OrderCount:  orders,
	}
}

func TestApplyDerivedMetrics(t *testing.T) {
	t.Run("zero viewers means zero rates", func(t *testing.T) {
		sessions := []domain.Session{
			{CreatorID: "a", GMVLive: 1000, Likes: 50, Comments: 10, Shares: 5, OrderCount: 3},
		}
		ApplyDerivedMetrics(sessions)

		assert.Zero(t, sessions[0].EngagementRate)
		assert.Zero(t, sessions[0].RevenuePerViewer)
		assert.Zero(t, sessions[0].ConversionRateCalc)
	})

	t.Run("ratios", func(t *testing.T) {
		sessions := []domain.Session{
			{CreatorID: "a", GMVLive: 1000, ViewerCount: 100, OrderCount: 5, Likes: 20, Comments: 8, Shares: 2},
		}
		ApplyDerivedMetrics(sessions)

		assert.InDelta(t, 30.0, sessions[0].EngagementRate, 1e-9)
		assert.InDelta(t, 10.0, sessions[0].RevenuePerViewer, 1e-9)
		assert.InDelta(t, 5.0, sessions[0].ConversionRateCalc, 1e-9)
	})

	t.Run("row-wise purity", func(t *testing.T) {
		single := []domain.Session{sessionWith("a", 500, 50, 5)}
		ApplyDerivedMetrics(single)

		batch := []domain.Session{
			sessionWith("b", 9000, 300, 40),
			sessionWith("a", 500, 50, 5),
			sessionWith("c", 120, 10, 1),
		}
		ApplyDerivedMetrics(batch)

		assert.Equal(t, single[0].RevenuePerViewer, batch[1].RevenuePerViewer)
		assert.Equal(t, single[0].ConversionRateCalc, batch[1].ConversionRateCalc)
		assert.Equal(t, single[0].EngagementRate, batch[1].EngagementRate)
	})
}

func TestScoreSessions(t *testing.T) {
	weights := DefaultParams().ScoringWeights

	t.Run("rescales to full 0-100 range", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("a", 200, 20, 2),
			sessionWith("a", 300, 30, 3),
		}
		ApplyDerivedMetrics(sessions)

		outcome := ScoreSessions(sessions, weights)
		require.Equal(t, ScoreComputed, outcome)

		scores := []float64{sessions[0].PerformanceScore, sessions[1].PerformanceScore, sessions[2].PerformanceScore}
		assert.InDelta(t, 0, scores[0], 1e-9)
		assert.InDelta(t, 100, scores[2], 1e-9)
		// Monotonic in the uniformly increasing metrics.
		assert.Less(t, scores[0], scores[1])
		assert.Less(t, scores[1], scores[2])
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 9000, 120, 14),
			sessionWith("b", 150, 800, 2),
			sessionWith("c", 4200, 90, 33),
			sessionWith("d", 0, 0, 0),
		}
		ApplyDerivedMetrics(sessions)

		outcome := ScoreSessions(sessions, weights)
		require.Equal(t, ScoreComputed, outcome)

		lo, hi := 101.0, -1.0
		for _, s := range sessions {
			assert.GreaterOrEqual(t, s.PerformanceScore, 0.0)
			assert.LessOrEqual(t, s.PerformanceScore, 100.0)
			if s.PerformanceScore < lo {
				lo = s.PerformanceScore
			}
			if s.PerformanceScore > hi {
				hi = s.PerformanceScore
			}
		}
		assert.InDelta(t, 0, lo, 1e-9)
		assert.InDelta(t, 100, hi, 1e-9)
	})

	t.Run("all-constant batch gets neutral 50", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("b", 100, 10, 1),
			sessionWith("c", 100, 10, 1),
		}
		ApplyDerivedMetrics(sessions)

		outcome := ScoreSessions(sessions, weights)
		assert.Equal(t, ScoreDegenerate, outcome)
		for _, s := range sessions {
			assert.Equal(t, 50.0, s.PerformanceScore)
		}
	})

	t.Run("no scoring metrics assigns zero", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("b", 700, 90, 8),
		}
		outcome := ScoreSessions(sessions, nil)
		assert.Equal(t, ScoreNoMetrics, outcome)
		for _, s := range sessions {
			assert.Zero(t, s.PerformanceScore)
		}
	})

	t.Run("truncated weights are not renormalized", func(t *testing.T) {
		// Two identical batches scored with the full vector and with only
		// the first weight must both span 0-100 after rescaling, but the
		// intermediate weighted sums differ because truncation does not
		// rescale the remaining weights.
		a := []domain.Session{
			sessionWith("a", 100, 30, 3),
			sessionWith("b", 300, 10, 1),
		}
		ApplyDerivedMetrics(a)
		outcome := ScoreSessions(a, []float64{0.3})
		require.Equal(t, ScoreComputed, outcome)

		// With only gmv_live in play, ranking follows gmv alone.
		assert.InDelta(t, 0, a[0].PerformanceScore, 1e-9)
		assert.InDelta(t, 100, a[1].PerformanceScore, 1e-9)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.Equal(t, ScoreComputed, ScoreSessions(nil, weights))
	})
}
