package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KestrelData/tabsum-cli/internal/loader"
	"github.com/KestrelData/tabsum-cli/internal/report"
	"github.com/KestrelData/tabsum-cli/internal/stats"
	"github.com/KestrelData/tabsum-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profDelimiter  string
	profOutputPath string
	profJSONPath   string
	profQuiet      bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <files...>",
	Short: "Profile CSV/TSV/XLSX files: column types, stats, and top values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandFileArgs(args)
		if err != nil {
			return err
		}
		opt, err := loaderOptions(profDelimiter, profQuiet)
		if err != nil {
			return err
		}

		var reports []*stats.Report
		var sections []string
		total := len(files)
		for i, path := range files {
			if !profQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			ds, err := loader.Load(path, opt)
			if err != nil {
				return err
			}
			rep := stats.Analyze(ds, datasetTitle(path))
			reports = append(reports, rep)
			sections = append(sections, report.Render(rep))
		}
		text := strings.Join(sections, "\n")

		written := false
		if profOutputPath != "" {
			if err := writeText(profOutputPath, text); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote profile to %s\n", profOutputPath)
			written = true
		}
		if profJSONPath != "" {
			var payload any = reports
			if len(reports) == 1 {
				payload = reports[0]
			}
			if err := writeJSON(profJSONPath, payload); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote JSON to %s\n", profJSONPath)
			written = true
		}
		if !written && !profQuiet {
			fmt.Println(text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the text report")
	profileCmd.Flags().StringVar(&profJSONPath, "json", "", "optional path to write the report as JSON")
	profileCmd.Flags().BoolVar(&profQuiet, "quiet", false, "suppress progress and non-essential output")
}

// expandFileArgs resolves globs, dedupes, and sorts the input paths.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func writeText(path, text string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	return utils.SafeWriteFile(path, []byte(text))
}

func writeJSON(path string, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}
