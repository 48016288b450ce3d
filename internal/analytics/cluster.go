package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"streampulse/pkg/contracts/domain"
)

// minCreatorsForClustering is the smallest creator population worth
// partitioning. Below it every session keeps a nil cluster.
const minCreatorsForClustering = 3

// clusterLabel maps a raw cluster index to its display name. The mapping is
// positional: which behavioral pattern ends up at which index is decided by
// the clustering run, not by the label semantics.
func clusterLabel(labels []string, idx int) string {
	if idx >= 0 && idx < len(labels) {
		return labels[idx]
	}
	return fmt.Sprintf("Group %d", idx+1)
}

// ClusterCreators aggregates sessions per creator, partitions the creators
// into behavioral segments, and joins the assignment back onto every session
// of each creator. It always returns the aggregates; cluster fields stay nil
// when the batch has fewer than three distinct creators.
func ClusterCreators(sessions []domain.Session, p Params) []domain.CreatorAggregate {
	aggregates := aggregateByCreator(sessions)
	if len(aggregates) < minCreatorsForClustering {
		return aggregates
	}

	// Five clustering metrics per creator, standardized column-wise.
	columns := [][]float64{
		make([]float64, len(aggregates)),
		make([]float64, len(aggregates)),
		make([]float64, len(aggregates)),
		make([]float64, len(aggregates)),
		make([]float64, len(aggregates)),
	}
	for i, a := range aggregates {
		columns[0][i] = a.AvgGMVLive
		columns[1][i] = a.AvgViewerCount
		columns[2][i] = a.AvgEngagementRate
		columns[3][i] = a.AvgRevenuePerView
		columns[4][i] = a.AvgConversionCalc
	}
	for j := range columns {
		columns[j] = standardize(columns[j])
	}

	points := make([][]float64, len(aggregates))
	for i := range aggregates {
		points[i] = []float64{columns[0][i], columns[1][i], columns[2][i], columns[3][i], columns[4][i]}
	}

	k := p.MaxClusters
	if len(aggregates) < k {
		k = len(aggregates)
	}

	assignments := kmeans(points, k, p.Seed, p.Restarts)

	byCreator := make(map[string]*domain.CreatorAggregate, len(aggregates))
	for i := range aggregates {
		id := assignments[i]
		aggregates[i].ClusterID = &id
		aggregates[i].ClusterName = clusterLabel(p.ClusterLabels, id)
		byCreator[aggregates[i].CreatorID] = &aggregates[i]
	}

	for i := range sessions {
		if agg, ok := byCreator[sessions[i].CreatorID]; ok {
			id := *agg.ClusterID
			sessions[i].ClusterID = &id
			sessions[i].ClusterName = agg.ClusterName
		}
	}

	return aggregates
}

// aggregateByCreator computes the per-creator mean of the clustering metrics.
// Creators are ordered by ID so the downstream clustering sees a stable
// input regardless of session order.
func aggregateByCreator(sessions []domain.Session) []domain.CreatorAggregate {
	type acc struct {
		n                                    int
		gmv, viewers, engagement, rpv, conv float64
	}
	byID := make(map[string]*acc)
	for i := range sessions {
		s := &sessions[i]
		a, ok := byID[s.CreatorID]
		if !ok {
			a = &acc{}
			byID[s.CreatorID] = a
		}
		a.n++
		a.gmv += s.GMVLive
		a.viewers += float64(s.ViewerCount)
		a.engagement += s.EngagementRate
		a.rpv += s.RevenuePerViewer
		a.conv += s.ConversionRateCalc
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	aggregates := make([]domain.CreatorAggregate, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		n := float64(a.n)
		aggregates = append(aggregates, domain.CreatorAggregate{
			CreatorID:         id,
			Sessions:          a.n,
			AvgGMVLive:        a.gmv / n,
			AvgViewerCount:    a.viewers / n,
			AvgEngagementRate: a.engagement / n,
			AvgRevenuePerView: a.rpv / n,
			AvgConversionCalc: a.conv / n,
		})
	}
	return aggregates
}

// kmeans runs Lloyd's algorithm with k-means++ seeding. The fixed seed keeps
// assignments reproducible for a given batch; restarts keep the best run by
// within-cluster sum of squares.
func kmeans(points [][]float64, k int, seed int64, restarts int) []int {
	if k <= 0 || len(points) == 0 {
		return make([]int, len(points))
	}
	if restarts < 1 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(seed))

	best := make([]int, len(points))
	bestInertia := math.Inf(1)

	for r := 0; r < restarts; r++ {
		centroids := seedCentroids(points, k, rng)
		assignments := make([]int, len(points))

		for iter := 0; iter < 300; iter++ {
			changed := false
			for i, pt := range points {
				c := nearestCentroid(pt, centroids)
				if c != assignments[i] {
					assignments[i] = c
					changed = true
				}
			}
			recomputeCentroids(points, assignments, centroids)
			if !changed && iter > 0 {
				break
			}
		}

		inertia := 0.0
		for i, pt := range points {
			inertia += squaredDistance(pt, centroids[assignments[i]])
		}
		if inertia < bestInertia {
			bestInertia = inertia
			copy(best, assignments)
		}
	}

	return best
}

// seedCentroids picks initial centroids with the k-means++ scheme: the first
// uniformly, each next proportional to squared distance from the chosen set.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	dim := len(points[0])
	centroids := make([][]float64, 0, k)

	first := points[rng.Intn(len(points))]
	centroids = append(centroids, append([]float64(nil), first...))

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, pt := range points {
			d := math.Inf(1)
			for _, c := range centroids {
				if dd := squaredDistance(pt, c); dd < d {
					d = dd
				}
			}
			dists[i] = d
			total += d
		}

		var next []float64
		if total == 0 {
			// All remaining points coincide with a centroid.
			next = points[rng.Intn(len(points))]
		} else {
			target := rng.Float64() * total
			cum := 0.0
			next = points[len(points)-1]
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = points[i]
					break
				}
			}
		}

		c := make([]float64, dim)
		copy(c, next)
		centroids = append(centroids, c)
	}

	return centroids
}

func nearestCentroid(pt []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(pt, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func recomputeCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	dim := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for i, pt := range points {
		c := assignments[i]
		counts[c]++
		for d, v := range pt {
			sums[c][d] += v
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue // empty cluster keeps its previous centroid
		}
		for d := 0; d < dim; d++ {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
