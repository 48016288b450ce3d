package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"streampulse/pkg/contracts/domain"
)

func TestWriteSessionsCSV(t *testing.T) {
	start := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	cluster := 1
	sessions := []domain.Session{
		{
			CreatorID:        "alice",
			StartTime:        &start,
			DurationMinutes:  90,
			GMVLive:          250000,
			ViewerCount:      1200,
			OrderCount:       45,
			EngagementRate:   33.3,
			PerformanceScore: 87.5,
			ClusterID:        &cluster,
			ClusterName:      "Power Players",
		},
		{CreatorID: "bob"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSessionsCSV(&buf, sessions, WriteOptions{BOMPrefix: true}))

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "creator", records[0][0])
	assert.Equal(t, "alice", records[1][0])
	assert.Equal(t, "2024-03-15 20:00:00", records[1][1])
	assert.Equal(t, "250000.00", records[1][3])
	assert.Equal(t, "Power Players", records[1][14])

	// Missing start time stays empty.
	assert.Equal(t, "", records[2][1])
}

func TestWriteReportCSV(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{Rank: 1, CreatorID: "alice", Sessions: 3, TotalGMVLive: 900000, AvgPerformance: 91.2},
		{Rank: 2, CreatorID: "bob", Sessions: 1, TotalGMVLive: 1000, AvgPerformance: 12.0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, entries, WriteOptions{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1,alice,3,900000.00"))
}

func TestWriteReportWorkbook(t *testing.T) {
	summary := domain.BatchSummary{
		Sessions:     4,
		Creators:     2,
		TotalGMVLive: 1000,
	}
	entries := []domain.LeaderboardEntry{
		{Rank: 1, CreatorID: "alice", Sessions: 2, AvgPerformance: 80},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReportWorkbook(&buf, summary, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Leaderboard"}, f.GetSheetList())

	v, err := f.GetCellValue("Leaderboard", "B2")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}
