// Package config loads the application configuration from a YAML file,
// falling back to defaults when no file exists.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabasePath is the location of the SQLite store
	DatabasePath string `yaml:"database_path"`
	// BackupDir is where point-in-time copies of the store are written
	BackupDir string `yaml:"backup_dir"`
	// LogPath is the file the structured log is appended to
	LogPath string `yaml:"log_path"`
	// GuildID optionally scopes slash-command registration to one guild,
	// which makes commands visible immediately during development
	GuildID string `yaml:"guild_id"`
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist. Environment variables
// KANBOT_DB, KANBOT_BACKUP_DIR, and KANBOT_LOG override the file.
func Load() (*Config, error) {
	config := defaults()

	configPath, err := getConfigPath()
	if err == nil {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		}
	}

	config.applyDefaults()
	config.applyEnvOverrides()
	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kanbot", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "kanbot", "config.yaml"), nil
}

func defaults() *Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".kanbot")
	}
	return &Config{
		DatabasePath: filepath.Join(dataDir, "kanban.db"),
		BackupDir:    filepath.Join(dataDir, "backups"),
		LogPath:      filepath.Join(dataDir, "logs", "kanbot.log"),
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	d := defaults()
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.BackupDir == "" {
		c.BackupDir = d.BackupDir
	}
	if c.LogPath == "" {
		c.LogPath = d.LogPath
	}
}

// applyEnvOverrides lets the environment win over the config file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KANBOT_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("KANBOT_BACKUP_DIR"); v != "" {
		c.BackupDir = v
	}
	if v := os.Getenv("KANBOT_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("KANBOT_GUILD_ID"); v != "" {
		c.GuildID = v
	}
}
