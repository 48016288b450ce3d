package analytics

import (
	"time"

	"streampulse/pkg/contracts/domain"
)

// FilterParams narrows a session batch before display or re-analysis. The
// presentation layer owns the currently-active selection; the engine only
// ever receives it as explicit parameters.
type FilterParams struct {
	Creators []string   `json:"creators,omitempty"`
	Clusters []string   `json:"clusters,omitempty"`
	MinScore *float64   `json:"min_score,omitempty" validate:"omitempty,min=0,max=100"`
	MaxScore *float64   `json:"max_score,omitempty" validate:"omitempty,min=0,max=100"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// IsZero reports whether the filter selects everything.
func (f FilterParams) IsZero() bool {
	return len(f.Creators) == 0 && len(f.Clusters) == 0 &&
		f.MinScore == nil && f.MaxScore == nil && f.From == nil && f.To == nil
}

// Apply returns the sessions matching the filter, preserving input order.
// Sessions without a start time pass the date filters; sessions without a
// cluster fail a cluster filter.
func (f FilterParams) Apply(sessions []domain.Session) []domain.Session {
	if f.IsZero() {
		out := make([]domain.Session, len(sessions))
		copy(out, sessions)
		return out
	}

	creators := toSet(f.Creators)
	clusters := toSet(f.Clusters)

	out := make([]domain.Session, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		if len(creators) > 0 && !creators[s.CreatorID] {
			continue
		}
		if len(clusters) > 0 && !clusters[s.ClusterName] {
			continue
		}
		if f.MinScore != nil && s.PerformanceScore < *f.MinScore {
			continue
		}
		if f.MaxScore != nil && s.PerformanceScore > *f.MaxScore {
			continue
		}
		if s.StartTime != nil {
			if f.From != nil && s.StartTime.Before(*f.From) {
				continue
			}
			if f.To != nil && s.StartTime.After(*f.To) {
				continue
			}
		}
		out = append(out, *s)
	}
	return out
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
