package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KestrelData/tabsum-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set TabSum configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		delim := cfg.Delimiter
		if delim == "" {
			delim = "(auto)"
		}
		fmt.Printf("delimiter: %s\n", delim)
		if len(cfg.GroupSets) > 0 {
			fmt.Printf("group_sets: %s\n", strings.Join(cfg.GroupSets, "; "))
		} else {
			fmt.Println("group_sets: (none)")
		}
		fmt.Printf("progress_rows: %d\n", cfg.ProgressRows)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  `Set a config value and save it to the config file. Keys: delimiter (','|';'|'tab'|'' for auto), group_sets (semicolon-separated group sets, columns within a set comma-separated, e.g. "page_id; page_id,ad_id"), progress_rows, max_rows.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "delimiter":
			switch val {
			case "", ",", ";", "tab", "\t":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %q (use ','|';'|'tab' or empty for auto)", val)
			}
		case "group_sets":
			var sets []string
			for _, entry := range strings.Split(val, ";") {
				if entry = strings.TrimSpace(entry); entry != "" {
					sets = append(sets, entry)
				}
			}
			cfg.GroupSets = sets
		case "progress_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for progress_rows: %v", val)
			}
			cfg.ProgressRows = i
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
