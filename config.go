package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type traceConfig struct {
	Exec bool `yaml:"exec"`
	Vars bool `yaml:"vars"`
	Dump bool `yaml:"dump"`
}

// config holds the user-settable knobs read from the optional YAML
// file.  Unset keys keep their defaults.
type config struct {
	Prompt      string      `yaml:"prompt"`
	InputPrompt string      `yaml:"input_prompt"`
	ZoneWidth   int         `yaml:"zone_width"`
	HistoryFile string      `yaml:"history_file"`
	Stats       bool        `yaml:"stats"`
	Seed        *int64      `yaml:"seed"`
	Trace       traceConfig `yaml:"trace"`
}

func defaultConfig() config {

	return config{
		Prompt:      myPrompt,
		InputPrompt: executePrompt,
		ZoneWidth:   zoneWidth,
	}
}

//
// $BASIC_CONFIG names a file that must exist.  Otherwise we look for
// ~/.basic.yaml, which is optional
//

func configPath() (string, bool) {

	if path := os.Getenv("BASIC_CONFIG"); path != "" {
		return path, true
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	return filepath.Join(home, ".basic.yaml"), false
}

func loadConfig(path string, required bool) (config, error) {

	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return defaultConfig(), fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return defaultConfig(), fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

func (c *config) validate() error {

	if c.ZoneWidth < 1 || c.ZoneWidth > defaultColumns {
		return fmt.Errorf("zone_width must be between 1 and %d", defaultColumns)
	}

	return nil
}
