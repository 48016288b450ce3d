package analytics

import (
	"sort"

	"streampulse/pkg/contracts/domain"
)

// Leaderboard ranks creators by mean performance score: session totals for
// the volume columns, means for the rates. Ties keep creator-ID order so
// the ranking is stable across runs.
func Leaderboard(sessions []domain.Session) []domain.LeaderboardEntry {
	type acc struct {
		sessions                       int
		gmv                            float64
		viewers, orders                int
		engagement, rpv, conv, score   float64
		clusterName                    string
	}
	byID := make(map[string]*acc)
	for i := range sessions {
		s := &sessions[i]
		a, ok := byID[s.CreatorID]
		if !ok {
			a = &acc{}
			byID[s.CreatorID] = a
		}
		a.sessions++
		a.gmv += s.GMVLive
		a.viewers += s.ViewerCount
		a.orders += s.OrderCount
		a.engagement += s.EngagementRate
		a.rpv += s.RevenuePerViewer
		a.conv += s.ConversionRateCalc
		a.score += s.PerformanceScore
		if s.ClusterName != "" {
			a.clusterName = s.ClusterName
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, len(byID))
	for id, a := range byID {
		n := float64(a.sessions)
		entries = append(entries, domain.LeaderboardEntry{
			CreatorID:         id,
			Sessions:          a.sessions,
			TotalGMVLive:      a.gmv,
			TotalViewers:      a.viewers,
			TotalOrders:       a.orders,
			AvgEngagementRate: a.engagement / n,
			AvgRevenuePerView: a.rpv / n,
			AvgConversionCalc: a.conv / n,
			AvgPerformance:    a.score / n,
			ClusterName:       a.clusterName,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgPerformance != entries[j].AvgPerformance {
			return entries[i].AvgPerformance > entries[j].AvgPerformance
		}
		return entries[i].CreatorID < entries[j].CreatorID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Summarize computes the headline KPIs of a batch plus data-quality
// warnings (no GMV at all, no viewers at all, a single creator).
func Summarize(sessions []domain.Session) domain.BatchSummary {
	sum := domain.BatchSummary{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}

	creators := make(map[string]struct{})
	var engagement, conv, score float64
	for i := range sessions {
		s := &sessions[i]
		creators[s.CreatorID] = struct{}{}
		sum.TotalGMVLive += s.GMVLive
		sum.TotalViewers += s.ViewerCount
		sum.TotalOrders += s.OrderCount
		engagement += s.EngagementRate
		conv += s.ConversionRateCalc
		score += s.PerformanceScore
		if s.EngagementRate > sum.PeakEngagement {
			sum.PeakEngagement = s.EngagementRate
		}
		if s.ConversionRateCalc > sum.PeakConversion {
			sum.PeakConversion = s.ConversionRateCalc
		}
	}

	n := float64(len(sessions))
	sum.Creators = len(creators)
	sum.AvgGMVLive = sum.TotalGMVLive / n
	sum.AvgEngagementRate = engagement / n
	sum.AvgConversionCalc = conv / n
	sum.AvgPerformance = score / n

	if sum.TotalGMVLive == 0 {
		sum.QualityWarnings = append(sum.QualityWarnings, "No GMV data found")
	}
	if sum.TotalViewers == 0 {
		sum.QualityWarnings = append(sum.QualityWarnings, "No viewer data found")
	}
	if sum.Creators == 1 {
		sum.QualityWarnings = append(sum.QualityWarnings, "Only one creator found")
	}

	return sum
}
