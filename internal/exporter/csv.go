// Package exporter writes the engine's output tables to CSV and Excel for
// download by the presentation layer and for the batch CLI.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"streampulse/pkg/contracts/domain"
)

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

var sessionHeaders = []string{
	"creator", "start_time", "duration_minutes", "gmv_live", "viewer_count",
	"order_count", "likes", "comments", "shares", "new_followers",
	"engagement_rate", "revenue_per_viewer", "conversion_rate_calc",
	"performance_score", "cluster_name",
}

// WriteSessionsCSV writes the full session table.
func WriteSessionsCSV(w io.Writer, sessions []domain.Session, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sessionHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i := range sessions {
		s := &sessions[i]
		start := ""
		if s.StartTime != nil {
			start = s.StartTime.Format("2006-01-02 15:04:05")
		}
		record := []string{
			s.CreatorID,
			start,
			strconv.Itoa(s.DurationMinutes),
			formatFloat(s.GMVLive),
			strconv.Itoa(s.ViewerCount),
			strconv.Itoa(s.OrderCount),
			strconv.Itoa(s.Likes),
			strconv.Itoa(s.Comments),
			strconv.Itoa(s.Shares),
			strconv.Itoa(s.NewFollowers),
			formatFloat(s.EngagementRate),
			formatFloat(s.RevenuePerViewer),
			formatFloat(s.ConversionRateCalc),
			formatFloat(s.PerformanceScore),
			s.ClusterName,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var reportHeaders = []string{
	"rank", "creator", "sessions", "total_gmv_live", "total_viewers",
	"total_orders", "avg_engagement_rate", "avg_revenue_per_viewer",
	"avg_conversion_rate_calc", "avg_performance_score", "cluster_name",
}

// WriteReportCSV writes the creator performance leaderboard.
func WriteReportCSV(w io.Writer, entries []domain.LeaderboardEntry, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		record := []string{
			strconv.Itoa(e.Rank),
			e.CreatorID,
			strconv.Itoa(e.Sessions),
			formatFloat(e.TotalGMVLive),
			strconv.Itoa(e.TotalViewers),
			strconv.Itoa(e.TotalOrders),
			formatFloat(e.AvgEngagementRate),
			formatFloat(e.AvgRevenuePerView),
			formatFloat(e.AvgConversionCalc),
			formatFloat(e.AvgPerformance),
			e.ClusterName,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
