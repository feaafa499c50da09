// Package viz renders the pipeline's visual artifacts. The numeric packages
// never import it; a Renderer consumes finalized artifacts only, so the
// computation core stays testable without a rendering surface.
package viz

import (
	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

// Renderer draws the pipeline's plot artifacts.
type Renderer interface {
	// Heatmap draws the upper-triangular correlation heat-map.
	Heatmap(m *stats.CorrMatrix) error
	// Elbow draws within-cluster sum of squares against k.
	Elbow(curve *cluster.ElbowCurve) error
	// RegressionDiagnostics draws residuals vs fitted, a normal Q-Q plot,
	// scale-location and residuals vs leverage on one canvas.
	RegressionDiagnostics(m *regress.Model) error
	// PairsGrid draws the pairwise scatter grid over the named columns,
	// colored by cluster label, with per-column histograms on the diagonal.
	PairsGrid(t *dataset.Table, cols []string, labels []int) error
	// ClusterScatter draws one labeled scatter of xCol vs yCol colored by
	// cluster label.
	ClusterScatter(t *dataset.Table, xCol, yCol string, labels []int) error
}

// Nop discards every artifact. It backs --no-plots and tests.
type Nop struct{}

func (Nop) Heatmap(*stats.CorrMatrix) error                            { return nil }
func (Nop) Elbow(*cluster.ElbowCurve) error                            { return nil }
func (Nop) RegressionDiagnostics(*regress.Model) error                 { return nil }
func (Nop) PairsGrid(*dataset.Table, []string, []int) error            { return nil }
func (Nop) ClusterScatter(*dataset.Table, string, string, []int) error { return nil }
