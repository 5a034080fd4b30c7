package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cfgpkg "github.com/KestrelData/tabsum-cli/internal/config"
	"github.com/KestrelData/tabsum-cli/internal/loader"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool
	// Loader flags (override config if set)
	flagProgressRows int
	flagMaxRows      int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tabsum",
	Short: "TabSum CLI: profile tabular files and verify group rollups",
	Long:  `TabSum is a CLI tool that profiles CSV/TSV/XLSX files column by column, reduces rows by grouping columns, and checks that numeric totals survive the reduction.`,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabsum/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagProgressRows, "progress-rows", 0, "rows between progress updates while loading (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRows, "max-rows", -1, "maximum data rows to load, 0 = unlimited (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("progress-rows") && flagProgressRows > 0 {
		cfg.ProgressRows = flagProgressRows
	}
	if f.Changed("max-rows") && flagMaxRows >= 0 {
		cfg.MaxRows = flagMaxRows
	}
}

// loaderOptions builds loader options from the effective config plus a
// per-command delimiter flag. An empty delimiter sniffs by file extension.
func loaderOptions(delimiter string, quiet bool) (loader.Options, error) {
	var opt loader.Options
	if delimiter == "" && cfg != nil {
		delimiter = cfg.Delimiter
	}
	switch delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	if cfg != nil {
		opt.MaxRows = cfg.MaxRows
		opt.ProgressEvery = cfg.ProgressRows
	}
	if !quiet {
		opt.Progress = func(rows int) {
			fmt.Printf("  ... %d rows loaded\n", rows)
		}
	}
	return opt, nil
}

// datasetTitle derives a dataset name from a file path.
func datasetTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
