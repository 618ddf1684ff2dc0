// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Premium  PremiumConfig  `toml:"premium"`
}

// DefaultsConfig maps default selections. Unset keys fall through to the
// flag defaults.
type DefaultsConfig struct {
	Scale   *string `toml:"scale"`
	Profile *string `toml:"profile"`
}

// PremiumConfig maps entitlement settings.
type PremiumConfig struct {
	// DevUnlock opens every premium feature without touching the stored
	// entitlement. Development use only.
	DevUnlock *bool `toml:"dev-unlock"`
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
