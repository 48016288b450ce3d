package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streampulse/pkg/contracts/domain"
)

// clusterBatch builds a batch of creators with well-separated profiles.
func clusterBatch() []domain.Session {
	profiles := []struct {
		creator string
		gmv     float64
		viewers int
		likes   int
	}{
		{"whale-1", 1_000_000, 50_000, 9000},
		{"whale-2", 950_000, 48_000, 8800},
		{"mid-1", 120_000, 8_000, 900},
		{"mid-2", 110_000, 7_500, 850},
		{"niche-1", 40_000, 300, 250},
		{"small-1", 2_000, 900, 10},
	}

	var sessions []domain.Session
	for _, p := range profiles {
		for i := 0; i < 2; i++ {
			sessions = append(sessions, domain.Session{
				CreatorID:   p.creator,
				GMVLive:     p.gmv + float64(i*500),
				ViewerCount: p.viewers + i*10,
				OrderCount:  10 + i,
				Likes:       p.likes,
			})
		}
	}
	ApplyDerivedMetrics(sessions)
	return sessions
}

func TestClusterCreators(t *testing.T) {
	params := DefaultParams()

	t.Run("fewer than three creators skips clustering", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("a", 150, 12, 2),
			sessionWith("b", 900, 80, 9),
		}
		ApplyDerivedMetrics(sessions)

		aggregates := ClusterCreators(sessions, params)
		require.Len(t, aggregates, 2)
		for _, a := range aggregates {
			assert.Nil(t, a.ClusterID)
			assert.Empty(t, a.ClusterName)
		}
		for _, s := range sessions {
			assert.Nil(t, s.ClusterID)
		}

		// Scoring is independent of the clustering skip.
		outcome := ScoreSessions(sessions, params.ScoringWeights)
		assert.Equal(t, ScoreComputed, outcome)
	})

	t.Run("assigns every creator a named segment", func(t *testing.T) {
		sessions := clusterBatch()
		aggregates := ClusterCreators(sessions, params)
		require.Len(t, aggregates, 6)

		for _, a := range aggregates {
			require.NotNil(t, a.ClusterID, "creator %s", a.CreatorID)
			assert.GreaterOrEqual(t, *a.ClusterID, 0)
			assert.Less(t, *a.ClusterID, params.MaxClusters)
			assert.Contains(t, params.ClusterLabels, a.ClusterName)
		}

		// Assignments are joined back onto every session of the creator.
		byCreator := make(map[string]int)
		for _, a := range aggregates {
			byCreator[a.CreatorID] = *a.ClusterID
		}
		for _, s := range sessions {
			require.NotNil(t, s.ClusterID)
			assert.Equal(t, byCreator[s.CreatorID], *s.ClusterID)
		}
	})

	t.Run("deterministic for a fixed batch", func(t *testing.T) {
		first := ClusterCreators(clusterBatch(), params)
		second := ClusterCreators(clusterBatch(), params)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, *first[i].ClusterID, *second[i].ClusterID,
				"creator %s", first[i].CreatorID)
		}
	})

	t.Run("same profile creators share a cluster", func(t *testing.T) {
		sessions := clusterBatch()
		aggregates := ClusterCreators(sessions, params)

		byID := make(map[string]int)
		for _, a := range aggregates {
			byID[a.CreatorID] = *a.ClusterID
		}
		assert.Equal(t, byID["whale-1"], byID["whale-2"])
		assert.Equal(t, byID["mid-1"], byID["mid-2"])
		assert.NotEqual(t, byID["whale-1"], byID["mid-1"])
	})

	t.Run("k is capped by the creator count", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("b", 5000, 300, 20),
			sessionWith("c", 90000, 9000, 400),
		}
		ApplyDerivedMetrics(sessions)

		aggregates := ClusterCreators(sessions, params)
		require.Len(t, aggregates, 3)
		for _, a := range aggregates {
			require.NotNil(t, a.ClusterID)
			assert.Less(t, *a.ClusterID, 3)
		}
	})
}

func TestClusterLabel(t *testing.T) {
	labels := DefaultParams().ClusterLabels

	assert.Equal(t, "Rising Stars", clusterLabel(labels, 0))
	assert.Equal(t, "Niche Specialists", clusterLabel(labels, 3))
	// Defensive fallback for indices beyond the table.
	assert.Equal(t, fmt.Sprintf("Group %d", 5), clusterLabel(labels, 4))
}

func TestAggregateByCreator(t *testing.T) {
	sessions := []domain.Session{
		sessionWith("b", 200, 20, 2),
		sessionWith("a", 100, 10, 1),
		sessionWith("b", 400, 40, 4),
	}
	ApplyDerivedMetrics(sessions)

	aggregates := aggregateByCreator(sessions)
	require.Len(t, aggregates, 2)

	// Sorted by creator ID.
	assert.Equal(t, "a", aggregates[0].CreatorID)
	assert.Equal(t, "b", aggregates[1].CreatorID)

	assert.Equal(t, 2, aggregates[1].Sessions)
	assert.InDelta(t, 300, aggregates[1].AvgGMVLive, 1e-9)
	assert.InDelta(t, 30, aggregates[1].AvgViewerCount, 1e-9)
	assert.InDelta(t, 10, aggregates[1].AvgRevenuePerView, 1e-9)
}
