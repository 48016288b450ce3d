package analytics

import (
	"fmt"

	"streampulse/pkg/contracts/domain"
)

// minRowsForCorrelation gates the viewer-revenue correlation rule; small
// batches produce correlations too noisy to report.
const minRowsForCorrelation = 10

// correlationThreshold is the minimum Pearson r worth surfacing.
const correlationThreshold = 0.7

// GenerateInsights applies the fixed set of statistical rules over the final
// session table. Rules are independent and stateless; each is skipped when
// its preconditions fail, and the output order follows the rule order here,
// not any computed ranking.
func GenerateInsights(sessions []domain.Session) []domain.Insight {
	var insights []domain.Insight
	if len(sessions) == 0 {
		return insights
	}

	if in, ok := topRevenueInsight(sessions); ok {
		insights = append(insights, in)
	}
	if in, ok := highEngagementInsight(sessions); ok {
		insights = append(insights, in)
	}
	if in, ok := conversionInsight(sessions); ok {
		insights = append(insights, in)
	}
	if in, ok := durationInsight(sessions); ok {
		insights = append(insights, in)
	}
	if in, ok := correlationInsight(sessions); ok {
		insights = append(insights, in)
	}

	return insights
}

func topRevenueInsight(sessions []domain.Session) (domain.Insight, bool) {
	top := 0
	total := 0.0
	for i := range sessions {
		total += sessions[i].GMVLive
		if sessions[i].GMVLive > sessions[top].GMVLive {
			top = i
		}
	}
	avg := total / float64(len(sessions))
	if avg == 0 {
		return domain.Insight{}, false
	}

	pctAbove := (sessions[top].GMVLive/avg - 1) * 100
	return domain.Insight{
		Type:  domain.InsightRevenue,
		Title: "Top Revenue Performer",
		Message: fmt.Sprintf("%s generated the highest revenue of %s, which is %.1f%% above average.",
			sessions[top].CreatorID, FormatCurrency(sessions[top].GMVLive), pctAbove),
		Icon: "💰",
	}, true
}

func highEngagementInsight(sessions []domain.Session) (domain.Insight, bool) {
	rates := make([]float64, len(sessions))
	for i := range sessions {
		rates[i] = sessions[i].EngagementRate
	}
	threshold := percentile(rates, 0.75)

	count := 0
	leader := -1
	for i := range sessions {
		if sessions[i].EngagementRate > threshold {
			count++
			if leader == -1 || sessions[i].EngagementRate > sessions[leader].EngagementRate {
				leader = i
			}
		}
	}
	if count == 0 {
		return domain.Insight{}, false
	}

	return domain.Insight{
		Type:  domain.InsightEngagement,
		Title: "High Engagement Creators",
		Message: fmt.Sprintf("%d creators have above-average engagement rates, with %s leading at %.1f%%.",
			count, sessions[leader].CreatorID, sessions[leader].EngagementRate),
		Icon: "🚀",
	}, true
}

func conversionInsight(sessions []domain.Session) (domain.Insight, bool) {
	top := 0
	total := 0.0
	for i := range sessions {
		total += sessions[i].ConversionRateCalc
		if sessions[i].ConversionRateCalc > sessions[top].ConversionRateCalc {
			top = i
		}
	}
	if sessions[top].ConversionRateCalc == 0 {
		return domain.Insight{}, false
	}
	avg := total / float64(len(sessions))

	return domain.Insight{
		Type:  domain.InsightConversion,
		Title: "Conversion Champion",
		Message: fmt.Sprintf("%s has the highest conversion rate at %.2f%%, significantly outperforming the average of %.2f%%.",
			sessions[top].CreatorID, sessions[top].ConversionRateCalc, avg),
		Icon: "🎯",
	}, true
}

func durationInsight(sessions []domain.Session) (domain.Insight, bool) {
	top := -1
	for i := range sessions {
		if sessions[i].DurationMinutes == 0 {
			continue
		}
		if top == -1 || sessions[i].RevenuePerViewer > sessions[top].RevenuePerViewer {
			top = i
		}
	}
	if top == -1 {
		return domain.Insight{}, false
	}

	return domain.Insight{
		Type:  domain.InsightDuration,
		Title: "Optimal Stream Duration",
		Message: fmt.Sprintf("The most revenue-efficient stream duration appears to be around %d minutes based on revenue per viewer analysis.",
			sessions[top].DurationMinutes),
		Icon: "⏱️",
	}, true
}

func correlationInsight(sessions []domain.Session) (domain.Insight, bool) {
	if len(sessions) <= minRowsForCorrelation {
		return domain.Insight{}, false
	}

	viewers := make([]float64, len(sessions))
	revenue := make([]float64, len(sessions))
	for i := range sessions {
		viewers[i] = float64(sessions[i].ViewerCount)
		revenue[i] = sessions[i].GMVLive
	}

	r := pearson(viewers, revenue)
	if r <= correlationThreshold {
		return domain.Insight{}, false
	}

	return domain.Insight{
		Type:  domain.InsightCorrelation,
		Title: "Strong Viewer-Revenue Correlation",
		Message: fmt.Sprintf("There's a strong positive correlation (%.2f) between viewer count and revenue, suggesting effective monetization strategies.",
			r),
		Icon: "📈",
	}, true
}
