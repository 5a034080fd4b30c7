package cmd

import (
	"fmt"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
	"github.com/KestrelData/tabsum-cli/internal/loader"
	"github.com/KestrelData/tabsum-cli/internal/pipeline"
	"github.com/KestrelData/tabsum-cli/internal/report"
	"github.com/KestrelData/tabsum-cli/internal/rollup"
	"github.com/KestrelData/tabsum-cli/internal/stats"
	"github.com/spf13/cobra"
)

var (
	ruBy         []string
	ruDelimiter  string
	ruOutputPath string
	ruJSONPath   string
	ruCSVPath    string
	ruQuiet      bool
)

var rollupCmd = &cobra.Command{
	Use:   "rollup <file>",
	Short: "Reduce rows by grouping columns: sum numeric columns, keep first values elsewhere",
	Long:  `Rollup groups rows that share the same values in the grouping columns, sums numeric columns within each group, and carries the first non-empty value for the rest. With no --by columns the whole file reduces to a single total row.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := loaderOptions(ruDelimiter, ruQuiet)
		if err != nil {
			return err
		}
		ds, err := loader.Load(path, opt)
		if err != nil {
			return err
		}

		agg, err := rollup.ByColumns(ds, ruBy)
		if err != nil {
			return err
		}
		label := pipeline.Label(ruBy)
		rep := stats.Analyze(agg, datasetTitle(path)+" by "+label)
		text := report.RenderRollup(label, ds.NumRows(), agg.NumRows(), rep)

		written := false
		if ruCSVPath != "" {
			b, err := dataset.EncodeCSV(agg, opt.Delimiter)
			if err != nil {
				return err
			}
			if err := writeText(ruCSVPath, string(b)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote aggregated rows to %s\n", ruCSVPath)
			written = true
		}
		if ruOutputPath != "" {
			if err := writeText(ruOutputPath, text); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote rollup report to %s\n", ruOutputPath)
			written = true
		}
		if ruJSONPath != "" {
			if err := writeJSON(ruJSONPath, rep); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote JSON to %s\n", ruJSONPath)
			written = true
		}
		if !written && !ruQuiet {
			fmt.Println(text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollupCmd)
	rollupCmd.Flags().StringSliceVar(&ruBy, "by", nil, "comma-separated grouping column names (repeatable)")
	rollupCmd.Flags().StringVar(&ruDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	rollupCmd.Flags().StringVarP(&ruOutputPath, "output", "o", "", "optional path to write the rollup report")
	rollupCmd.Flags().StringVar(&ruJSONPath, "json", "", "optional path to write the aggregate profile as JSON")
	rollupCmd.Flags().StringVar(&ruCSVPath, "csv-out", "", "optional path to write the aggregated rows as CSV")
	rollupCmd.Flags().BoolVar(&ruQuiet, "quiet", false, "suppress progress and non-essential output")
}
