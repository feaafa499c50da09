package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

// clusterPalette is the fixed discrete palette for cluster labels 1..n.
var clusterPalette = []color.RGBA{
	{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff},
	{R: 0xd9, G: 0x5f, B: 0x02, A: 0xff},
	{R: 0x75, G: 0x70, B: 0xb3, A: 0xff},
	{R: 0xe7, G: 0x29, B: 0x8a, A: 0xff},
	{R: 0x66, G: 0xa6, B: 0x1e, A: 0xff},
}

func clusterColor(label int) color.RGBA {
	return clusterPalette[(label-1)%len(clusterPalette)]
}

// Plots writes PNG artifacts into Dir.
type Plots struct {
	Dir string
}

// NewPlots creates the artifact directory if needed.
func NewPlots(dir string) (*Plots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir plots dir: %w", err)
	}
	return &Plots{Dir: dir}, nil
}

func (v *Plots) save(p *plot.Plot, w, h vg.Length, name string) error {
	path := filepath.Join(v.Dir, name)
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// corrGrid adapts a correlation matrix to the heat-map grid, masking the
// strict lower triangle so only the upper triangle is drawn.
type corrGrid struct {
	m *stats.CorrMatrix
}

func (g corrGrid) Dims() (c, r int) { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) X(c int) float64  { return float64(c) }
func (g corrGrid) Y(r int) float64  { return float64(r) }

func (g corrGrid) Z(c, r int) float64 {
	if c < r {
		return math.NaN()
	}
	return g.m.Values[r][c]
}

// Heatmap renders the correlation matrix as a color-coded upper-triangular
// heat-map with the column names on both axes.
func (v *Plots) Heatmap(m *stats.CorrMatrix) error {
	p := plot.New()
	p.Title.Text = "Biomarker Correlations"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	h.Min = -1
	h.Max = 1
	p.Add(h)

	ticks := make([]plot.Tick, len(m.Columns))
	for i, c := range m.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: c}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	return v.save(p, 7*vg.Inch, 6*vg.Inch, "correlation_heatmap.png")
}

// Elbow renders the within-cluster sum of squares curve for visual selection
// of the cluster count.
func (v *Plots) Elbow(curve *cluster.ElbowCurve) error {
	p := plot.New()
	p.Title.Text = "Elbow Diagnostic"
	p.X.Label.Text = "clusters (k)"
	p.Y.Label.Text = "total within-cluster SS"

	pts := make(plotter.XYs, len(curve.K))
	for i := range curve.K {
		pts[i].X = float64(curve.K[i])
		pts[i].Y = curve.WSS[i]
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("elbow line: %w", err)
	}
	line.Width = vg.Points(2)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(line, scatter, plotter.NewGrid())

	return v.save(p, 6*vg.Inch, 4*vg.Inch, "elbow.png")
}

// RegressionDiagnostics tiles the four standard residual plots onto a single
// PNG canvas.
func (v *Plots) RegressionDiagnostics(m *regress.Model) error {
	n := len(m.Residuals)

	resFitted, err := scatterPlot("Residuals vs Fitted", "fitted values", "residuals",
		m.Fitted, m.Residuals)
	if err != nil {
		return err
	}

	sortedStd := make([]float64, n)
	copy(sortedStd, m.StdResiduals)
	sort.Float64s(sortedStd)
	theoretical := make([]float64, n)
	norm := distuv.UnitNormal
	for i := range theoretical {
		theoretical[i] = norm.Quantile((float64(i) + 0.5) / float64(n))
	}
	qq, err := scatterPlot("Normal Q-Q", "theoretical quantiles", "standardized residuals",
		theoretical, sortedStd)
	if err != nil {
		return err
	}

	rootAbs := make([]float64, n)
	for i, r := range m.StdResiduals {
		rootAbs[i] = math.Sqrt(math.Abs(r))
	}
	scaleLoc, err := scatterPlot("Scale-Location", "fitted values", "sqrt |standardized residuals|",
		m.Fitted, rootAbs)
	if err != nil {
		return err
	}

	resLev, err := scatterPlot("Residuals vs Leverage", "leverage", "standardized residuals",
		m.Leverage, m.StdResiduals)
	if err != nil {
		return err
	}

	return v.tile([][]*plot.Plot{{resFitted, qq}, {scaleLoc, resLev}},
		10*vg.Inch, 8*vg.Inch, "regression_diagnostics.png")
}

// PairsGrid draws a scatter grid over the columns, colored by cluster, with
// value histograms on the diagonal.
func (v *Plots) PairsGrid(t *dataset.Table, cols []string, labels []int) error {
	n := len(cols)
	grid := make([][]*plot.Plot, n)
	for i := range grid {
		grid[i] = make([]*plot.Plot, n)
		yv, err := t.Column(cols[i])
		if err != nil {
			return err
		}
		for j := range grid[i] {
			if i == j {
				p := plot.New()
				p.Title.Text = cols[i]
				hist, err := plotter.NewHist(plotter.Values(yv), 10)
				if err != nil {
					return fmt.Errorf("histogram %s: %w", cols[i], err)
				}
				p.Add(hist)
				grid[i][j] = p
				continue
			}
			xv, err := t.Column(cols[j])
			if err != nil {
				return err
			}
			p := plot.New()
			p.X.Label.Text = cols[j]
			p.Y.Label.Text = cols[i]
			if err := addClusterScatters(p, xv, yv, labels, false); err != nil {
				return err
			}
			grid[i][j] = p
		}
	}
	return v.tile(grid, vg.Length(n)*3*vg.Inch, vg.Length(n)*3*vg.Inch, "pairs_grid.png")
}

// ClusterScatter draws xCol against yCol colored by cluster label, with a
// legend naming the clusters.
func (v *Plots) ClusterScatter(t *dataset.Table, xCol, yCol string, labels []int) error {
	xv, err := t.Column(xCol)
	if err != nil {
		return err
	}
	yv, err := t.Column(yCol)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s by cluster", xCol, yCol)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol
	if err := addClusterScatters(p, xv, yv, labels, true); err != nil {
		return err
	}
	p.Add(plotter.NewGrid())
	return v.save(p, 7*vg.Inch, 5*vg.Inch, "cluster_scatter.png")
}

func scatterPlot(title, xLabel, yLabel string, xs, ys []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter %q: %w", title, err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s, plotter.NewGrid())
	return p, nil
}

// addClusterScatters adds one scatter per cluster label so each gets its
// palette color (and optionally a legend entry).
func addClusterScatters(p *plot.Plot, xs, ys []float64, labels []int, legend bool) error {
	byLabel := map[int]plotter.XYs{}
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], plotter.XY{X: xs[i], Y: ys[i]})
	}
	order := make([]int, 0, len(byLabel))
	for l := range byLabel {
		order = append(order, l)
	}
	sort.Ints(order)
	for _, l := range order {
		s, err := plotter.NewScatter(byLabel[l])
		if err != nil {
			return fmt.Errorf("cluster %d scatter: %w", l, err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Color = clusterColor(l)
		p.Add(s)
		if legend {
			p.Legend.Add(fmt.Sprintf("cluster %d", l), s)
		}
	}
	return nil
}

// tile draws a grid of plots on one PNG canvas.
func (v *Plots) tile(plots [][]*plot.Plot, w, h vg.Length, name string) error {
	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
	path := filepath.Join(v.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
