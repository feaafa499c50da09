package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Values[i][j] is the correlation of Columns[i] with Columns[j].
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlate computes pairwise Pearson correlations over the named columns.
// The diagonal is exactly 1 and off-diagonal entries are clamped to [-1, 1].
// Zero-variance columns yield NaN entries; that is left to the caller to
// notice in the rendered matrix.
func Correlate(t *dataset.Table, cols []string) (*CorrMatrix, error) {
	data := make([][]float64, len(cols))
	for i, name := range cols {
		v, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	n := len(cols)
	m := &CorrMatrix{Columns: append([]string(nil), cols...), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := stat.Correlation(data[i], data[j], nil)
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// At returns the correlation between two named columns.
func (m *CorrMatrix) At(a, b string) (float64, error) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 {
		return 0, fmt.Errorf("column %q not in correlation matrix", a)
	}
	if ib < 0 {
		return 0, fmt.Errorf("column %q not in correlation matrix", b)
	}
	return m.Values[ia][ib], nil
}
