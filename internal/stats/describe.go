package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
)

// Summary holds per-column descriptive statistics.
type Summary struct {
	Column string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
	Std    float64
}

// Describe computes min, quartiles, mean, max and sample standard deviation
// for each named numeric column. Pure read; no side effects.
func Describe(t *dataset.Table, cols []string) ([]Summary, error) {
	out := make([]Summary, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		s := Summary{
			Column: name,
			N:      len(vals),
			Min:    sorted[0],
			Q1:     quantile(sorted, 0.25),
			Median: quantile(sorted, 0.5),
			Mean:   stat.Mean(vals, nil),
			Q3:     quantile(sorted, 0.75),
			Max:    sorted[len(sorted)-1],
			Std:    stat.StdDev(vals, nil),
		}
		out = append(out, s)
	}
	return out, nil
}

// quantile interpolates linearly between order statistics (R type-7).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
