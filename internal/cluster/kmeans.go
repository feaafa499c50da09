package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Options controls clustering behavior. The seed is explicit configuration;
// no package-level random state is used anywhere.
type Options struct {
	// K is the number of clusters for the final assignment.
	K int
	// Restarts is the number of independent random initializations; the run
	// with the lowest total within-cluster sum of squares wins.
	Restarts int
	// MaxIterations caps Lloyd iterations per run to guarantee termination.
	MaxIterations int
	// MaxK is the upper bound of the elbow diagnostic range.
	MaxK int
	// Seed makes assignments reproducible for identical input.
	Seed int64
}

// DefaultOptions returns the pipeline defaults: three profiles, 25 restarts,
// elbow over k=1..10, seed 123.
func DefaultOptions() Options {
	return Options{K: 3, Restarts: 25, MaxIterations: 100, MaxK: 10, Seed: 123}
}

// Result is a completed clustering. Labels are 1-based (1..K), joined to the
// source table by row order. Centroids live in standardized feature space.
type Result struct {
	Labels    []int
	Centroids *mat.Dense
	WSS       float64
	// Restart is the index of the winning initialization.
	Restart int
}

// KMeans runs Lloyd's algorithm with Euclidean distance over the scaled
// feature matrix: Restarts seeded initializations, iterate reassignment and
// centroid recomputation to a fixed point (or the iteration cap), keep the
// lowest-WSS run.
func KMeans(s *Scaled, opt Options) (*Result, error) {
	rows, _ := s.Data.Dims()
	if opt.K < 1 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", opt.K)
	}
	if rows < opt.K {
		return nil, fmt.Errorf("cannot split %d rows into %d clusters", rows, opt.K)
	}
	restarts := opt.Restarts
	if restarts < 1 {
		restarts = 1
	}

	best := &Result{WSS: math.Inf(1)}
	for r := 0; r < restarts; r++ {
		rng := rand.New(rand.NewSource(opt.Seed + int64(r)))
		labels, centroids, wss := lloyd(s.Data, opt.K, opt.MaxIterations, rng)
		if wss < best.WSS {
			best = &Result{Labels: labels, Centroids: centroids, WSS: wss, Restart: r}
		}
	}
	for i := range best.Labels {
		best.Labels[i]++ // report 1-based profiles
	}
	return best, nil
}

// lloyd runs a single k-means initialization and returns 0-based labels,
// centroids and total within-cluster sum of squares.
func lloyd(data *mat.Dense, k, maxIter int, rng *rand.Rand) ([]int, *mat.Dense, float64) {
	rows, nf := data.Dims()
	centroids := mat.NewDense(k, nf, nil)
	for c, i := range rng.Perm(rows)[:k] {
		centroids.SetRow(c, mat.Row(nil, i, data))
	}

	labels := make([]int, rows)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, k)
	if maxIter < 1 {
		maxIter = 100
	}
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i := 0; i < rows; i++ {
			bestC, bestD := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				d := sqDist(data, i, centroids, c)
				if d < bestD {
					bestC, bestD = c, d
				}
			}
			if labels[i] != bestC {
				labels[i] = bestC
				changed = true
			}
		}
		if !changed {
			break
		}
		// Recompute centroids; an emptied cluster is reseeded with the point
		// farthest from its current centroid.
		centroids.Zero()
		for c := range counts {
			counts[c] = 0
		}
		for i := 0; i < rows; i++ {
			c := labels[i]
			counts[c]++
			for j := 0; j < nf; j++ {
				centroids.Set(c, j, centroids.At(c, j)+data.At(i, j))
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				centroids.SetRow(c, mat.Row(nil, farthest(data, labels, centroids), data))
				continue
			}
			for j := 0; j < nf; j++ {
				centroids.Set(c, j, centroids.At(c, j)/float64(counts[c]))
			}
		}
	}

	var wss float64
	for i := 0; i < rows; i++ {
		wss += sqDist(data, i, centroids, labels[i])
	}
	return labels, centroids, wss
}

func sqDist(data *mat.Dense, i int, centroids *mat.Dense, c int) float64 {
	_, nf := data.Dims()
	var d float64
	for j := 0; j < nf; j++ {
		diff := data.At(i, j) - centroids.At(c, j)
		d += diff * diff
	}
	return d
}

// farthest picks the row with the largest distance to its assigned centroid.
func farthest(data *mat.Dense, labels []int, centroids *mat.Dense) int {
	rows, _ := data.Dims()
	worst, worstD := 0, -1.0
	for i := 0; i < rows; i++ {
		d := sqDist(data, i, centroids, labels[i])
		if d > worstD {
			worst, worstD = i, d
		}
	}
	return worst
}
