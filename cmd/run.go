package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	cfgpkg "github.com/KaramelBytes/biomark-cli/internal/config"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/report"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

var (
	runOutput   string
	runPlotsDir string
	runNoPlots  bool
	runSeed     int64
	runClusters int
	runRestarts int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run the full pipeline: describe, correlate, regress, cluster, export",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		applyClusterFlags(cmd, c)
		path := inputPath(args, c)

		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		run := report.NewRun(path, t)

		if run.Summaries, err = stats.Describe(t, dataset.Required); err != nil {
			return err
		}
		if run.Corr, err = stats.Correlate(t, dataset.Required); err != nil {
			return err
		}
		if run.Model, err = regress.Fit(t, dataset.Response, dataset.Predictors); err != nil {
			return err
		}

		m, err := t.Matrix(dataset.Predictors...)
		if err != nil {
			return err
		}
		scaled := cluster.Standardize(m, dataset.Predictors)
		opt := c.ClusterOptions()
		if run.Elbow, err = cluster.Elbow(scaled, opt); err != nil {
			return err
		}
		res, err := cluster.KMeans(scaled, opt)
		if err != nil {
			return err
		}
		run.Clusters = res
		if err := t.AppendLabels("Cluster", res.Labels); err != nil {
			return err
		}

		plotsDir := c.PlotsDir
		if runPlotsDir != "" {
			plotsDir = runPlotsDir
		}
		r, err := newRenderer(c.PlotsEnabled && !runNoPlots, plotsDir)
		if err != nil {
			return err
		}
		if err := r.Heatmap(run.Corr); err != nil {
			return err
		}
		if err := r.RegressionDiagnostics(run.Model); err != nil {
			return err
		}
		if err := r.Elbow(run.Elbow); err != nil {
			return err
		}
		if err := r.PairsGrid(t, dataset.Required, res.Labels); err != nil {
			return err
		}
		if err := r.ClusterScatter(t, "VO2max", "Recovery_Time", res.Labels); err != nil {
			return err
		}

		output := c.OutputPath
		if runOutput != "" {
			output = runOutput
		}
		if err := dataset.Export(t, output); err != nil {
			return err
		}

		fmt.Print(run.Render())
		fmt.Printf("\n✓ Wrote %s (%d rows, %d columns)\n", output, t.Rows(), len(t.Columns))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "path for the annotated CSV (default from config)")
	runCmd.Flags().StringVar(&runPlotsDir, "plots-dir", "", "directory for plot artifacts (default from config)")
	runCmd.Flags().BoolVar(&runNoPlots, "no-plots", false, "skip rendering plot artifacts")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "clustering seed (overrides config)")
	runCmd.Flags().IntVar(&runClusters, "clusters", 0, "cluster count (overrides config)")
	runCmd.Flags().IntVar(&runRestarts, "restarts", 0, "k-means random restarts (overrides config)")
}

// applyClusterFlags folds the run command's clustering overrides into the
// loaded configuration.
func applyClusterFlags(cmd *cobra.Command, c *cfgpkg.Config) {
	f := cmd.Flags()
	if f.Changed("seed") {
		c.Seed = runSeed
	}
	if f.Changed("clusters") && runClusters > 0 {
		c.Clusters = runClusters
	}
	if f.Changed("restarts") && runRestarts > 0 {
		c.Restarts = runRestarts
	}
}
