package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/biomark-cli/internal/dataset"
	"github.com/KaramelBytes/biomark-cli/internal/report"
	"github.com/KaramelBytes/biomark-cli/internal/stats"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Print summary statistics for the biomarker columns",
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
		if run.Summaries, err = stats.Describe(t, dataset.Required); err != nil {
			return err
		}
		fmt.Print(run.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
