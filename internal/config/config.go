// ABOUTME: Healthlog configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and store backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/healthlog/internal/store"
)

// Config stores healthlog tool configuration.
type Config struct {
	// Backend selects the document store backend: "charm" (default,
	// cloud-synced), "sqlite" (offline), or "memory" (ephemeral).
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the sqlite backend's data.
	// Supports ~ expansion for home directory. Defaults to
	// ~/.local/share/healthlog.
	DataDir string `json:"data_dir,omitempty"`

	// SleepGoalHours is the nightly sleep goal drawn on the weekly
	// chart. Defaults to 8.
	SleepGoalHours int `json:"sleep_goal_hours,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "charm".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "charm"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return store.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSleepGoalHours returns the configured sleep goal, defaulting to 8.
func (c *Config) GetSleepGoalHours() int {
	if c.SleepGoalHours <= 0 {
		return 8
	}
	return c.SleepGoalHours
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates a Store implementation based on the configured
// backend.
func (c *Config) OpenStore() (store.Store, error) {
	switch c.GetBackend() {
	case "charm":
		return store.InitCharmStore()
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "healthlog.db")
		return store.OpenSQLite(dbPath)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
