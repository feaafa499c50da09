package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/regress"
	"github.com/KaramelBytes/biomark-cli/internal/report"
)

var (
	regPlotsDir string
	regNoPlots  bool
)

var regressCmd = &cobra.Command{
	Use:   "regress [file]",
	Short: "Fit the recovery-time OLS model and render residual diagnostics",
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
		if run.Model, err = regress.Fit(t, dataset.Response, dataset.Predictors); err != nil {
			return err
		}
		dir := c.PlotsDir
		if regPlotsDir != "" {
			dir = regPlotsDir
		}
		r, err := newRenderer(c.PlotsEnabled && !regNoPlots, dir)
		if err != nil {
			return err
		}
		if err := r.RegressionDiagnostics(run.Model); err != nil {
			return err
		}
		fmt.Print(run.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().StringVar(&regPlotsDir, "plots-dir", "", "directory for plot artifacts (default from config)")
	regressCmd.Flags().BoolVar(&regNoPlots, "no-plots", false, "skip rendering diagnostics")
}
