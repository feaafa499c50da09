// Package regress fits the ordinary least squares model predicting recovery
// time from the five biomarker predictors and derives the usual inferential
// statistics and residual diagnostics.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
)

// Coefficient is one fitted term with its inference statistics.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
}

// Model is a fitted OLS model. Coefficients[0] is the intercept, followed by
// one slope per predictor in input order.
type Model struct {
	Response   string
	Predictors []string

	Coefficients []Coefficient

	Fitted       []float64
	Residuals    []float64
	Leverage     []float64
	StdResiduals []float64

	N              int
	DF             int // residual degrees of freedom, n - p
	ResidualStdErr float64
	R2             float64
	AdjR2          float64
	FStat          float64
	FPValue        float64
}

// Fit estimates response ~ intercept + predictors by QR-decomposed least
// squares. A rank-deficient design matrix surfaces as the solver's error and
// is fatal for the modeling step.
func Fit(t *dataset.Table, response string, predictors []string) (*Model, error) {
	y, err := t.Column(response)
	if err != nil {
		return nil, err
	}
	n := len(y)
	p := len(predictors) + 1
	if n <= p {
		return nil, fmt.Errorf("need more than %d rows to fit %d coefficients, have %d", p, p, n)
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, name := range predictors {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	m := &Model{
		Response:   response,
		Predictors: append([]string(nil), predictors...),
		N:          n,
		DF:         n - p,
		Fitted:     make([]float64, n),
		Residuals:  make([]float64, n),
	}

	var rss float64
	for i := 0; i < n; i++ {
		fit := 0.0
		for j := 0; j < p; j++ {
			fit += x.At(i, j) * beta.At(j, 0)
		}
		m.Fitted[i] = fit
		m.Residuals[i] = y[i] - fit
		rss += m.Residuals[i] * m.Residuals[i]
	}
	ybar := stat.Mean(y, nil)
	var tss float64
	for i := 0; i < n; i++ {
		d := y[i] - ybar
		tss += d * d
	}
	sigma2 := rss / float64(m.DF)
	m.ResidualStdErr = math.Sqrt(sigma2)
	m.R2 = 1 - rss/tss
	m.AdjR2 = 1 - (1-m.R2)*float64(n-1)/float64(m.DF)
	m.FStat = ((tss - rss) / float64(p-1)) / sigma2
	fDist := distuv.F{D1: float64(p - 1), D2: float64(m.DF)}
	m.FPValue = 1 - fDist.CDF(m.FStat)

	// Coefficient covariance: sigma^2 (X'X)^-1.
	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("invert design cross-product: %w", err)
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DF)}
	names := append([]string{"(Intercept)"}, predictors...)
	m.Coefficients = make([]Coefficient, p)
	for j := 0; j < p; j++ {
		est := beta.At(j, 0)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		tstat := est / se
		m.Coefficients[j] = Coefficient{
			Name:     names[j],
			Estimate: est,
			StdErr:   se,
			TStat:    tstat,
			PValue:   2 * tDist.CDF(-math.Abs(tstat)),
		}
	}

	// Leverages h_ii = x_i' (X'X)^-1 x_i, then internally studentized
	// residuals for the diagnostic plots.
	m.Leverage = make([]float64, n)
	m.StdResiduals = make([]float64, n)
	var xi, hx mat.VecDense
	for i := 0; i < n; i++ {
		xi.CloneFromVec(x.RowView(i))
		hx.MulVec(&xtxInv, &xi)
		m.Leverage[i] = mat.Dot(&xi, &hx)
		m.StdResiduals[i] = m.Residuals[i] / (m.ResidualStdErr * math.Sqrt(1-m.Leverage[i]))
	}
	return m, nil
}
