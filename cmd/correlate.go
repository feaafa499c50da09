package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/report"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

var (
	corrPlotsDir string
	corrNoPlots  bool
)

var correlateCmd = &cobra.Command{
	Use:   "correlate [file]",
	Short: "Print the Pearson correlation matrix and render its heat-map",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		path := inputPath(args, c)
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		run := report.NewRun(path, t)
		if run.Corr, err = stats.Correlate(t, dataset.Required); err != nil {
			return err
		}
		dir := c.PlotsDir
		if corrPlotsDir != "" {
			dir = corrPlotsDir
		}
		r, err := newRenderer(c.PlotsEnabled && !corrNoPlots, dir)
		if err != nil {
			return err
		}
		if err := r.Heatmap(run.Corr); err != nil {
			return err
		}
		fmt.Print(run.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVar(&corrPlotsDir, "plots-dir", "", "directory for plot artifacts (default from config)")
	correlateCmd.Flags().BoolVar(&corrNoPlots, "no-plots", false, "skip rendering the heat-map")
}
