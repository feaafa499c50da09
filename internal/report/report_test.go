package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/report"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

func loadFixture(t *testing.T) *dataset.Table {
	t.Helper()
	content := "VO2max,Blood_Lactate,Haematocrit,HR_Recovery,Sleep_Quality,Recovery_Time\n" +
		"62.1,2.4,45.0,28,7.5,18.2\n" +
		"55.3,3.1,42.5,22,6.0,24.7\n" +
		"48.9,4.2,40.1,17,5.5,31.4\n" +
		"67.4,1.9,47.2,31,8.0,14.9\n" +
		"51.7,3.8,41.3,19,5.0,28.8\n" +
		"59.6,2.7,44.1,25,7.0,20.5\n" +
		"46.2,4.6,39.5,15,4.5,33.9\n" +
		"64.8,2.1,46.3,29,7.8,16.4\n"
	p := filepath.Join(t.TempDir(), "athletes.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tab, err := dataset.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tab
}

func TestNewRunAssignsUniqueIDs(t *testing.T) {
	tab := loadFixture(t)
	a := report.NewRun("athletes.csv", tab)
	b := report.NewRun("athletes.csv", tab)
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty run IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Rows != 8 {
		t.Fatalf("expected 8 rows, got %d", a.Rows)
	}
}

func TestRenderSections(t *testing.T) {
	tab := loadFixture(t)
	run := report.NewRun("athletes.csv", tab)

	var err error
	if run.Summaries, err = stats.Describe(tab, dataset.Required); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if run.Corr, err = stats.Correlate(tab, dataset.Required); err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if run.Model, err = regress.Fit(tab, dataset.Response, dataset.Predictors); err != nil {
		t.Fatalf("fit: %v", err)
	}
	m, err := tab.Matrix(dataset.Predictors...)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	scaled := cluster.Standardize(m, dataset.Predictors)
	opt := cluster.DefaultOptions()
	opt.MaxK = 5
	if run.Elbow, err = cluster.Elbow(scaled, opt); err != nil {
		t.Fatalf("elbow: %v", err)
	}
	if run.Clusters, err = cluster.KMeans(scaled, opt); err != nil {
		t.Fatalf("kmeans: %v", err)
	}

	out := run.Render()
	for _, section := range []string{
		"[BIOMARKER ANALYSIS]",
		"[DESCRIPTIVE STATISTICS]",
		"[CORRELATIONS]",
		"[REGRESSION]",
		"[ELBOW DIAGNOSTIC]",
		"[CLUSTERS]",
	} {
		if !strings.Contains(out, section) {
			t.Fatalf("missing section %s in report:\n%s", section, out)
		}
	}
	if !strings.Contains(out, "VO2max vs Recovery_Time") {
		t.Fatalf("missing pair of interest in report:\n%s", out)
	}
	if !strings.Contains(out, "(Intercept)") {
		t.Fatalf("missing intercept row in report:\n%s", out)
	}
}

func TestRenderOmitsAbsentSections(t *testing.T) {
	tab := loadFixture(t)
	run := report.NewRun("athletes.csv", tab)
	var err error
	if run.Summaries, err = stats.Describe(tab, dataset.Required); err != nil {
		t.Fatalf("describe: %v", err)
	}
	out := run.Render()
	if strings.Contains(out, "[REGRESSION]") || strings.Contains(out, "[CLUSTERS]") {
		t.Fatalf("unexpected sections for describe-only run:\n%s", out)
	}
}
