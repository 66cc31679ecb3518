// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Competition CompetitionConfig `toml:"competition"`
	Data        DataConfig        `toml:"data"`
}

// CompetitionConfig maps competition-related settings.
type CompetitionConfig struct {
	StartDate *string `toml:"start-date"`
	MercyDays *int    `toml:"mercy-days"`
}

// DataConfig maps data location settings.
type DataConfig struct {
	CSVPath   *string `toml:"csv-path"`
	StatePath *string `toml:"state-path"`
	DBPath    *string `toml:"db-path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
