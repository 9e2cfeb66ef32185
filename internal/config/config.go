// Package config loads the arena workspace configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat arena workspace configuration stored in
// .arena/config.json. It locates the database and the optional engine
// settings file; all engine tuning lives in the settings file.
type Config struct {
	Version      string `json:"version"`
	DBPath       string `json:"db_path"`
	SettingsPath string `json:"settings_path,omitempty"`
}

// LoadConfig reads .arena/config.json from the specified directory.
// Resolution order: the given dir only (no home fallback).
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".arena", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the .arena directory under dir.
func SaveConfig(dir string, cfg *Config) error {
	arenaDir := filepath.Join(dir, ".arena")
	if err := os.MkdirAll(arenaDir, 0755); err != nil {
		return fmt.Errorf("failed to create .arena dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(arenaDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultDBPath returns the default database location under the user's home.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".arena", "arena.db"), nil
}
