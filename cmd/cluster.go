package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/report"
)

var (
	clusOutput   string
	clusPlotsDir string
	clusNoPlots  bool
	clusSeed     int64
	clusClusters int
	clusRestarts int
)

var clusterCmd = &cobra.Command{
	Use:   "cluster [file]",
	Short: "Standardize, run the elbow diagnostic and k-means, print profiles",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("seed") {
			c.Seed = clusSeed
		}
		if f.Changed("clusters") && clusClusters > 0 {
			c.Clusters = clusClusters
		}
		if f.Changed("restarts") && clusRestarts > 0 {
			c.Restarts = clusRestarts
		}
		path := inputPath(args, c)
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		run := report.NewRun(path, t)

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

		dir := c.PlotsDir
		if clusPlotsDir != "" {
			dir = clusPlotsDir
		}
		r, err := newRenderer(c.PlotsEnabled && !clusNoPlots, dir)
		if err != nil {
			return err
		}
		if err := r.Elbow(run.Elbow); err != nil {
			return err
		}

		fmt.Print(run.Render())
		if clusOutput != "" {
			if err := t.AppendLabels("Cluster", res.Labels); err != nil {
				return err
			}
			if err := dataset.Export(t, clusOutput); err != nil {
				return err
			}
			fmt.Printf("\n✓ Wrote %s (%d rows, %d columns)\n", clusOutput, t.Rows(), len(t.Columns))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	clusterCmd.Flags().StringVarP(&clusOutput, "output", "o", "", "optional path for the labeled CSV")
	clusterCmd.Flags().StringVar(&clusPlotsDir, "plots-dir", "", "directory for plot artifacts (default from config)")
	clusterCmd.Flags().BoolVar(&clusNoPlots, "no-plots", false, "skip rendering the elbow plot")
	clusterCmd.Flags().Int64Var(&clusSeed, "seed", 0, "clustering seed (overrides config)")
	clusterCmd.Flags().IntVar(&clusClusters, "clusters", 0, "cluster count (overrides config)")
	clusterCmd.Flags().IntVar(&clusRestarts, "restarts", 0, "k-means random restarts (overrides config)")
}
