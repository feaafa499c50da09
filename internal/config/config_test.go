package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/biomark-cli/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.InputPath != "athlete_biomarker_dataset.csv" {
		t.Fatalf("unexpected input path: %q", c.InputPath)
	}
	if c.OutputPath != "processed_athlete_biomarker_dataset.csv" {
		t.Fatalf("unexpected output path: %q", c.OutputPath)
	}
	if c.Seed != 123 || c.Clusters != 3 || c.Restarts != 25 {
		t.Fatalf("unexpected clustering defaults: %+v", c)
	}
	if c.ElbowMaxK != 10 || c.MaxIterations != 100 {
		t.Fatalf("unexpected elbow/iteration defaults: %+v", c)
	}
	if !c.PlotsEnabled || c.PlotsDir != "plots" {
		t.Fatalf("unexpected plot defaults: %+v", c)
	}
}

func TestLoadFromFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "input_path: custom.csv\nseed: 7\nclusters: 4\nplots_enabled: false\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.InputPath != "custom.csv" || c.Seed != 7 || c.Clusters != 4 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.PlotsEnabled {
		t.Fatal("plots_enabled=false not applied")
	}
	if c.Restarts != 25 {
		t.Fatalf("unset key lost its default: %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Seed = 99
	c.OutputPath = "out.csv"
	if err := config.Save(c, cfgFile); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Seed != 99 || again.OutputPath != "out.csv" {
		t.Fatalf("round trip lost values: %+v", again)
	}
}

func TestClusterOptionsMapping(t *testing.T) {
	c := &config.Config{Seed: 5, Clusters: 2, Restarts: 7, ElbowMaxK: 4, MaxIterations: 50}
	opt := c.ClusterOptions()
	if opt.Seed != 5 || opt.K != 2 || opt.Restarts != 7 || opt.MaxK != 4 || opt.MaxIterations != 50 {
		t.Fatalf("unexpected options: %+v", opt)
	}
}
