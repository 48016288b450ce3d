package analytics

// Params carries the tunable constants of the engine. The defaults reproduce
// the historical scoring behavior exactly; deployments may override the
// weights or cluster labels through configuration, but the default vector
// must not be renormalized when metrics are missing (see ScoreSessions).
type Params struct {
	// ScoringWeights is matched positionally against the fixed scoring
	// metric order and truncated to the number of metrics in play.
	ScoringWeights []float64 `yaml:"scoring_weights"`

	// ClusterLabels maps cluster index to display name, positionally.
	// Indices beyond the table fall back to "Group <index+1>".
	ClusterLabels []string `yaml:"cluster_labels"`

	// MaxClusters caps k for the creator clusterer.
	MaxClusters int `yaml:"max_clusters"`

	// Seed and Restarts control k-means reproducibility: a fixed seed with
	// multiple restarts keeps assignments deterministic for a given batch
	// while reducing sensitivity to the initial centroid draw.
	Seed     int64 `yaml:"seed"`
	Restarts int   `yaml:"restarts"`

	// MinPredictionRows is the smallest batch the revenue model will fit.
	MinPredictionRows int `yaml:"min_prediction_rows"`
}

// DefaultParams returns the historical engine constants.
func DefaultParams() Params {
	return Params{
		ScoringWeights:    []float64{0.3, 0.2, 0.2, 0.1, 0.1, 0.1},
		ClusterLabels:     []string{"Rising Stars", "Power Players", "Consistent Performers", "Niche Specialists"},
		MaxClusters:       4,
		Seed:              42,
		Restarts:          10,
		MinPredictionRows: 11,
	}
}
