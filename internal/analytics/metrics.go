package analytics

import (
	"streampulse/pkg/contracts/domain"
)

// ApplyDerivedMetrics computes the per-session business ratios in place.
// Each ratio is a pure function of its own row, so a session's metrics are
// identical whether it is processed alone or inside a larger batch. All
// three ratios are defined as 0 when the session had no viewers.
func ApplyDerivedMetrics(sessions []domain.Session) {
	for i := range sessions {
		s := &sessions[i]
		if s.ViewerCount == 0 {
			s.EngagementRate = 0
			s.RevenuePerViewer = 0
			s.ConversionRateCalc = 0
			continue
		}
		viewers := float64(s.ViewerCount)
		s.EngagementRate = float64(s.Likes+s.Comments+s.Shares) / viewers * 100
		s.RevenuePerViewer = s.GMVLive / viewers
		s.ConversionRateCalc = float64(s.OrderCount) / viewers * 100
	}
}
