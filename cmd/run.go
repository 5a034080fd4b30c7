package cmd

import (
	"fmt"
	"strings"

	"github.com/KestrelData/tabsum-cli/internal/loader"
	"github.com/KestrelData/tabsum-cli/internal/pipeline"
	"github.com/KestrelData/tabsum-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	runBy         []string
	runDelimiter  string
	runOutputPath string
	runJSONPath   string
	runQuiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Profile a file, roll it up by each group set, and verify totals",
	Long:  `Run executes the whole pipeline: profile the original file, reduce it by every requested group set, profile each reduction, and check that numeric column totals are conserved. Each --by occurrence names one group set; columns within a set are comma-separated. With no --by flags the group sets come from the config group_sets key.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := loaderOptions(runDelimiter, runQuiet)
		if err != nil {
			return err
		}
		ds, err := loader.Load(path, opt)
		if err != nil {
			return err
		}

		sets := groupSetsFromArgs(runBy)
		if len(sets) == 0 && cfg != nil {
			sets = cfg.GroupColumnSets()
		}

		res := pipeline.Run(ds, datasetTitle(path), sets)
		text := report.RenderResult(res)

		written := false
		if runOutputPath != "" {
			if err := writeText(runOutputPath, text); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote run report to %s\n", runOutputPath)
			written = true
		}
		if runJSONPath != "" {
			if err := writeJSON(runJSONPath, res); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote JSON to %s\n", runJSONPath)
			written = true
		}
		if !written && !runQuiet {
			fmt.Println(text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runBy, "by", nil, "group set as comma-separated column names (repeat for multiple sets)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "optional path to write the run report")
	runCmd.Flags().StringVar(&runJSONPath, "json", "", "optional path to write the full result as JSON")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress progress and non-essential output")
}

// groupSetsFromArgs parses repeated --by values, one group set per value.
func groupSetsFromArgs(entries []string) [][]string {
	var sets [][]string
	for _, entry := range entries {
		var cols []string
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cols = append(cols, name)
			}
		}
		if len(cols) > 0 {
			sets = append(sets, cols)
		}
	}
	return sets
}
