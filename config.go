package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Config holds the settings for the pack command. A TOML file supplied with
// --config provides defaults; flags set explicitly on the command line win.
type Config struct {
	Input      string `toml:"input"`
	Output     string `toml:"output"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	AutoResize bool   `toml:"auto_resize"`
	AutoSize   bool   `toml:"auto_size"`
	Sort       bool   `toml:"sort"`
}

func defaultConfig() Config {
	return Config{
		Input:      "input",
		Output:     "output",
		Width:      64,
		Height:     64,
		AutoResize: true,
		AutoSize:   true,
		Sort:       true,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warn("ignoring unknown config keys", "keys", undecoded)
	}
	return cfg, nil
}

// mergeFlags overlays values from flags the user set explicitly onto cfg.
// flagCfg is the struct the command flags are bound to.
func mergeFlags(cmd *cobra.Command, cfg *Config, flagCfg Config) {
	if cmd.Flags().Changed("input") {
		cfg.Input = flagCfg.Input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flagCfg.Output
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = flagCfg.Width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = flagCfg.Height
	}
	if cmd.Flags().Changed("auto-resize") {
		cfg.AutoResize = flagCfg.AutoResize
	}
	if cmd.Flags().Changed("auto-size") {
		cfg.AutoSize = flagCfg.AutoSize
	}
	if cmd.Flags().Changed("sort") {
		cfg.Sort = flagCfg.Sort
	}
}
