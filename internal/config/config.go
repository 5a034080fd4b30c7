package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Delimiter    string   `mapstructure:"delimiter" yaml:"delimiter"`
	GroupSets    []string `mapstructure:"group_sets" yaml:"group_sets"`
	ProgressRows int      `mapstructure:"progress_rows" yaml:"progress_rows"`
	MaxRows      int      `mapstructure:"max_rows" yaml:"max_rows"`
}

// GroupColumnSets expands the configured group_sets entries, each a
// comma-separated column list, into column name slices.
func (c *Global) GroupColumnSets() [][]string {
	var out [][]string
	for _, entry := range c.GroupSets {
		var cols []string
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cols = append(cols, name)
			}
		}
		if len(cols) > 0 {
			out = append(out, cols)
		}
	}
	return out
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.tabsum/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabsum")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABSUM")
	v.AutomaticEnv()

	// Defaults. An empty delimiter means sniff by file extension.
	v.SetDefault("delimiter", "")
	v.SetDefault("group_sets", []string{})
	v.SetDefault("progress_rows", 50000)
	v.SetDefault("max_rows", 0)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabsum")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
