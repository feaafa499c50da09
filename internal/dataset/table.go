package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Required names the six biomarker columns every analysis stage consumes.
// Lookup is exact match on trimmed header names.
var Required = []string{
	"VO2max",
	"Blood_Lactate",
	"Haematocrit",
	"HR_Recovery",
	"Sleep_Quality",
	"Recovery_Time",
}

// Predictors are the five columns feeding regression and clustering;
// Response is the regression target.
var (
	Predictors = Required[:5]
	Response   = Required[5]
)

// Table is a column-ordered view of the loaded CSV. Raw records keep every
// column from the file; the numeric view covers only the required columns.
// Rows failing numeric parsing on any required column are excluded at load
// time, so all stages see identical, fully populated rows.
type Table struct {
	// Columns is the header in file order, plus any appended columns.
	Columns []string
	// Records holds raw cells row-major; each record matches Columns.
	Records [][]string
	// Dropped counts input rows excluded for missing or non-numeric
	// required values.
	Dropped int

	numeric map[string][]float64
	loaded  int // number of columns present in the source file
}

// Load reads a CSV with a header row into a Table. It fails if the file is
// missing or malformed, or if any required column is absent from the header.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	idx := make(map[string]int, len(Required))
	for _, name := range Required {
		found := -1
		for i, c := range cols {
			if c == name {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		idx[name] = found
	}

	t := &Table{
		Columns: cols,
		numeric: make(map[string][]float64, len(Required)),
		loaded:  len(cols),
	}
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		vals := make(map[string]float64, len(Required))
		ok := true
		for _, name := range Required {
			cell := strings.TrimSpace(rec[idx[name]])
			if cell == "" {
				ok = false
				break
			}
			x, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				ok = false
				break
			}
			vals[name] = x
		}
		if !ok {
			t.Dropped++
			continue
		}
		cp := make([]string, len(cols))
		copy(cp, rec)
		t.Records = append(t.Records, cp)
		for _, name := range Required {
			t.numeric[name] = append(t.numeric[name], vals[name])
		}
	}
	return t, nil
}

// Rows reports the number of retained data rows.
func (t *Table) Rows() int { return len(t.Records) }

// Column returns the numeric values of a required column.
func (t *Table) Column(name string) ([]float64, error) {
	v, ok := t.numeric[name]
	if !ok {
		return nil, fmt.Errorf("unknown numeric column %q", name)
	}
	return v, nil
}

// Matrix assembles a rows x len(names) dense matrix from numeric columns,
// in the given column order.
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	n := t.Rows()
	m := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			m.Set(i, j, col[i])
		}
	}
	return m, nil
}

// AppendLabels adds a categorical column of integer labels at the end of the
// table, joined by row order. The column is written once and never mutated.
func (t *Table) AppendLabels(name string, labels []int) error {
	if len(labels) != t.Rows() {
		return fmt.Errorf("label count %d does not match %d rows", len(labels), t.Rows())
	}
	for _, c := range t.Columns {
		if c == name {
			return fmt.Errorf("column %q already exists", name)
		}
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Records {
		t.Records[i] = append(t.Records[i], strconv.Itoa(labels[i]))
	}
	return nil
}
