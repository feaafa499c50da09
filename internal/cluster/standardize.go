// Package cluster groups athletes into physiological profiles: it z-scales
// the predictor columns, runs seeded k-means with random restarts, and
// computes the elbow diagnostic over a range of cluster counts.
package cluster

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaled is the transient z-scored projection of the feature columns. It is
// clustering input only and is never persisted.
type Scaled struct {
	Columns []string
	Data    *mat.Dense
	Means   []float64
	Stds    []float64
}

// Standardize rescales each column of m to zero mean and unit sample
// standard deviation.
func Standardize(m *mat.Dense, cols []string) *Scaled {
	rows, nf := m.Dims()
	s := &Scaled{
		Columns: append([]string(nil), cols...),
		Data:    mat.NewDense(rows, nf, nil),
		Means:   make([]float64, nf),
		Stds:    make([]float64, nf),
	}
	col := make([]float64, rows)
	for j := 0; j < nf; j++ {
		mat.Col(col, j, m)
		mu := stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		s.Means[j] = mu
		s.Stds[j] = sd
		for i := 0; i < rows; i++ {
			s.Data.Set(i, j, (col[i]-mu)/sd)
		}
	}
	return s
}
