package analytics

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streampulse/pkg/contracts/domain"
)

func TestEngineAnalyze(t *testing.T) {
	engine := NewEngine(DefaultParams(), slog.Default())
	ctx := context.Background()

	t.Run("full pipeline produces scored clustered output", func(t *testing.T) {
		result := engine.Analyze(ctx, clusterBatch())
		require.NotNil(t, result)

		assert.Equal(t, ScoreComputed, result.Outcome)
		assert.Len(t, result.Aggregates, 6)
		assert.NotEmpty(t, result.Insights)
		assert.Equal(t, 6, result.Summary.Creators)

		for _, s := range result.Sessions {
			assert.GreaterOrEqual(t, s.PerformanceScore, 0.0)
			assert.LessOrEqual(t, s.PerformanceScore, 100.0)
			assert.NotNil(t, s.ClusterID)
		}
	})

	t.Run("idempotent over the same input", func(t *testing.T) {
		input := clusterBatch()

		first := engine.Analyze(ctx, input)
		second := engine.Analyze(ctx, input)

		assert.Equal(t, first.Sessions, second.Sessions)
		assert.Equal(t, first.Aggregates, second.Aggregates)
		assert.Equal(t, first.Insights, second.Insights)
		assert.Equal(t, first.Summary, second.Summary)
	})

	t.Run("input batch is never mutated", func(t *testing.T) {
		input := clusterBatch()
		scoresBefore := make([]float64, len(input))
		for i := range input {
			scoresBefore[i] = input[i].PerformanceScore
		}

		engine.Analyze(ctx, input)

		for i := range input {
			assert.Equal(t, scoresBefore[i], input[i].PerformanceScore)
			assert.Nil(t, input[i].ClusterID)
		}
	})

	t.Run("empty batch degrades safely", func(t *testing.T) {
		result := engine.Analyze(ctx, nil)
		require.NotNil(t, result)
		assert.Empty(t, result.Sessions)
		assert.Empty(t, result.Aggregates)
		assert.Empty(t, result.Insights)
	})
}

func TestFilterParams(t *testing.T) {
	engine := NewEngine(DefaultParams(), slog.Default())
	result := engine.Analyze(context.Background(), clusterBatch())
	sessions := result.Sessions

	t.Run("zero filter passes everything", func(t *testing.T) {
		var f FilterParams
		assert.True(t, f.IsZero())
		assert.Len(t, f.Apply(sessions), len(sessions))
	})

	t.Run("creator filter", func(t *testing.T) {
		f := FilterParams{Creators: []string{"whale-1"}}
		filtered := f.Apply(sessions)
		require.NotEmpty(t, filtered)
		for _, s := range filtered {
			assert.Equal(t, "whale-1", s.CreatorID)
		}
	})

	t.Run("score range filter", func(t *testing.T) {
		lo, hi := 25.0, 75.0
		f := FilterParams{MinScore: &lo, MaxScore: &hi}
		for _, s := range f.Apply(sessions) {
			assert.GreaterOrEqual(t, s.PerformanceScore, lo)
			assert.LessOrEqual(t, s.PerformanceScore, hi)
		}
	})

	t.Run("cluster filter", func(t *testing.T) {
		name := sessions[0].ClusterName
		require.NotEmpty(t, name)
		f := FilterParams{Clusters: []string{name}}
		filtered := f.Apply(sessions)
		require.NotEmpty(t, filtered)
		for _, s := range filtered {
			assert.Equal(t, name, s.ClusterName)
		}
	})

	t.Run("sessions without start time pass date filters", func(t *testing.T) {
		from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		f := FilterParams{From: &from}
		// clusterBatch sessions carry no start times.
		assert.Len(t, f.Apply(sessions), len(sessions))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("quality warnings", func(t *testing.T) {
		sessions := []domain.Session{
			{CreatorID: "only-one"},
			{CreatorID: "only-one"},
		}
		sum := Summarize(sessions)

		assert.Equal(t, 1, sum.Creators)
		assert.Contains(t, sum.QualityWarnings, "No GMV data found")
		assert.Contains(t, sum.QualityWarnings, "No viewer data found")
		assert.Contains(t, sum.QualityWarnings, "Only one creator found")
	})

	t.Run("totals and averages", func(t *testing.T) {
		sessions := []domain.Session{
			sessionWith("a", 100, 10, 1),
			sessionWith("b", 300, 30, 3),
		}
		ApplyDerivedMetrics(sessions)
		sum := Summarize(sessions)

		assert.Equal(t, 2, sum.Sessions)
		assert.Equal(t, 2, sum.Creators)
		assert.InDelta(t, 400, sum.TotalGMVLive, 1e-9)
		assert.InDelta(t, 200, sum.AvgGMVLive, 1e-9)
		assert.Equal(t, 40, sum.TotalViewers)
		assert.Empty(t, sum.QualityWarnings)
	})
}

func TestLeaderboard(t *testing.T) {
	sessions := []domain.Session{
		sessionWith("low", 10, 1000, 1),
		sessionWith("high", 90000, 5000, 600),
		sessionWith("high", 80000, 4000, 500),
	}
	ApplyDerivedMetrics(sessions)
	ScoreSessions(sessions, DefaultParams().ScoringWeights)

	entries := Leaderboard(sessions)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "high", entries[0].CreatorID)
	assert.Equal(t, 2, entries[0].Sessions)
	assert.InDelta(t, 170000, entries[0].TotalGMVLive, 1e-9)
	assert.Equal(t, "low", entries[1].CreatorID)
}
