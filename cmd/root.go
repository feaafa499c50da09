package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/biomark-cli/internal/config"
	"github.com/KaramelBytes/biomark-cli/internal/viz"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "biomark",
	Short: "Biomark CLI: exploratory statistics over athlete biomarker data",
	Long: `Biomark is a CLI tool that runs a linear exploratory-statistics pipeline over
a tabular dataset of athlete biomarkers: descriptive statistics, a Pearson
correlation matrix, a multivariate OLS regression and a seeded k-means
clustering into physiological profiles, plus an annotated CSV export.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.biomark/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, falling back to defaults
// when the config file could not be read.
func activeConfig() (*cfgpkg.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return cfgpkg.Load("")
}

// newRenderer picks the plot sink: PNG files under dir, or a no-op when
// plotting is disabled.
func newRenderer(enabled bool, dir string) (viz.Renderer, error) {
	if !enabled {
		return viz.Nop{}, nil
	}
	return viz.NewPlots(dir)
}

// inputPath resolves the dataset path: positional argument, else config.
func inputPath(args []string, c *cfgpkg.Config) string {
	if len(args) == 1 {
		return args[0]
	}
	return c.InputPath
}
