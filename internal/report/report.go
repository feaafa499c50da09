// Package report renders the pipeline's numeric artifacts as compact text
// reports suitable for the terminal or standalone docs.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

// Run bundles the artifacts of one pipeline execution. Sections are rendered
// only for the artifacts that are present, so single-stage commands reuse the
// same renderer.
type Run struct {
	ID      string
	Input   string
	Rows    int
	Dropped int

	Summaries []stats.Summary
	Corr      *stats.CorrMatrix
	Model     *regress.Model
	Elbow     *cluster.ElbowCurve
	Clusters  *cluster.Result
}

// NewRun tags a run with a fresh identifier and the table's row accounting.
func NewRun(input string, t *dataset.Table) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Input:   input,
		Rows:    t.Rows(),
		Dropped: t.Dropped,
	}
}

// Render produces the bracketed-section text report.
func (r *Run) Render() string {
	var b strings.Builder
	b.WriteString("[BIOMARKER ANALYSIS]\n")
	b.WriteString(fmt.Sprintf("Run: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("File: %s\n", r.Input))
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	if r.Dropped > 0 {
		b.WriteString(fmt.Sprintf("Excluded: %d rows with missing or non-numeric biomarker values\n", r.Dropped))
	}

	if len(r.Summaries) > 0 {
		b.WriteString("\n[DESCRIPTIVE STATISTICS]\n")
		for _, s := range r.Summaries {
			b.WriteString(fmt.Sprintf("- %s: min %.4g, Q1 %.4g, median %.4g, mean %.4g, Q3 %.4g, max %.4g (std %.4g, n=%d)\n",
				s.Column, s.Min, s.Q1, s.Median, s.Mean, s.Q3, s.Max, s.Std, s.N))
		}
	}

	if r.Corr != nil {
		b.WriteString("\n[CORRELATIONS]\n")
		writeCorr(&b, r.Corr)
	}

	if r.Model != nil {
		b.WriteString("\n[REGRESSION]\n")
		writeModel(&b, r.Model)
	}

	if r.Elbow != nil {
		b.WriteString("\n[ELBOW DIAGNOSTIC]\n")
		for i, k := range r.Elbow.K {
			b.WriteString(fmt.Sprintf("- k=%d: WSS %.4g\n", k, r.Elbow.WSS[i]))
		}
	}

	if r.Clusters != nil {
		b.WriteString("\n[CLUSTERS]\n")
		writeClusters(&b, r.Clusters)
	}
	return b.String()
}

func writeCorr(b *strings.Builder, m *stats.CorrMatrix) {
	// Upper triangle only; the matrix is symmetric.
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", m.Columns[i], m.Columns[j], m.Values[i][j]))
		}
	}
	if v, err := m.At("VO2max", "Recovery_Time"); err == nil {
		b.WriteString(fmt.Sprintf("VO2max vs Recovery_Time: r=%.3f\n", v))
	}
	if v, err := m.At("Sleep_Quality", "Recovery_Time"); err == nil {
		b.WriteString(fmt.Sprintf("Sleep_Quality vs Recovery_Time: r=%.3f\n", v))
	}
}

func writeModel(b *strings.Builder, m *regress.Model) {
	b.WriteString(fmt.Sprintf("Model: %s ~ %s\n", m.Response, strings.Join(m.Predictors, " + ")))
	for _, c := range m.Coefficients {
		b.WriteString(fmt.Sprintf("- %s: estimate %.4g, std err %.4g, t %.3f, p %.4g\n",
			c.Name, c.Estimate, c.StdErr, c.TStat, c.PValue))
	}
	b.WriteString(fmt.Sprintf("Residual std error: %.4g on %d degrees of freedom\n", m.ResidualStdErr, m.DF))
	b.WriteString(fmt.Sprintf("R-squared: %.4f, adjusted: %.4f\n", m.R2, m.AdjR2))
	b.WriteString(fmt.Sprintf("F-statistic: %.3f on %d and %d DF, p %.4g\n",
		m.FStat, len(m.Coefficients)-1, m.DF, m.FPValue))
}

func writeClusters(b *strings.Builder, res *cluster.Result) {
	counts := map[int]int{}
	for _, l := range res.Labels {
		counts[l]++
	}
	k, _ := res.Centroids.Dims()
	for c := 1; c <= k; c++ {
		b.WriteString(fmt.Sprintf("- cluster %d: %d athletes\n", c, counts[c]))
	}
	b.WriteString(fmt.Sprintf("Total within-cluster SS: %.4g (restart %d)\n", res.WSS, res.Restart))
}
