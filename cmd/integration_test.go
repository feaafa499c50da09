package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args, resetting sticky flag state that
// may persist Changed status across invocations.
func execute(t *testing.T, args ...string) {
	t.Helper()
	resetRunFlags()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func resetRunFlags() {
	for _, f := range []string{"output", "plots-dir", "no-plots", "seed", "clusters", "restarts"} {
		if fl := runCmd.Flags().Lookup(f); fl != nil {
			fl.Changed = false
		}
		if fl := clusterCmd.Flags().Lookup(f); fl != nil {
			fl.Changed = false
		}
	}
	runOutput, runPlotsDir, runNoPlots = "", "", false
	runSeed, runClusters, runRestarts = 0, 0, 0
	clusOutput, clusPlotsDir, clusNoPlots = "", "", false
	clusSeed, clusClusters, clusRestarts = 0, 0, 0
}

func writeDataset(t *testing.T, dir string, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Athlete_ID,VO2max,Blood_Lactate,Haematocrit,HR_Recovery,Sleep_Quality,Recovery_Time\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "A%02d,%0.1f,%0.1f,%0.1f,%d,%0.1f,%0.1f\n",
			i,
			45.0+float64(i)*0.9,
			1.5+float64((i*3)%7)*0.4,
			39.0+float64((i*5)%11)*0.8,
			15+(i*2)%9,
			4.5+float64(i%6)*0.5,
			35.0-float64(i)*0.4+float64(i%4))
	}
	p := filepath.Join(dir, "athlete_biomarker_dataset.csv")
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func TestRunPipelineEndToEnd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	input := writeDataset(t, work, 50)
	output := filepath.Join(work, "processed.csv")

	execute(t, "run", input, "-o", output, "--no-plots", "--seed", "123")

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(recs) != 51 {
		t.Fatalf("expected header + 50 rows, got %d", len(recs))
	}
	if got := recs[0][len(recs[0])-1]; got != "Cluster" {
		t.Fatalf("expected Cluster as final column, got %q", got)
	}
	for i, rec := range recs[1:] {
		if l := rec[len(rec)-1]; l != "1" && l != "2" && l != "3" {
			t.Fatalf("row %d: label %q outside 1..3", i+1, l)
		}
	}
}

func TestRunPipelineDeterministicOutput(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	input := writeDataset(t, work, 30)
	out1 := filepath.Join(work, "first.csv")
	out2 := filepath.Join(work, "second.csv")

	execute(t, "run", input, "-o", out1, "--no-plots", "--seed", "123")
	execute(t, "run", input, "-o", out2, "--no-plots", "--seed", "123")

	b1, err := os.ReadFile(out1)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	b2, err := os.ReadFile(out2)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatal("same seed and input produced different exports")
	}
}

func TestDescribeCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	input := writeDataset(t, work, 12)
	execute(t, "describe", input)
}

func TestClusterCommandExports(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	input := writeDataset(t, work, 20)
	output := filepath.Join(work, "labeled.csv")
	execute(t, "cluster", input, "-o", output, "--no-plots")

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(recs) != 21 {
		t.Fatalf("expected header + 20 rows, got %d", len(recs))
	}
	if len(recs[0]) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(recs[0]))
	}
}
