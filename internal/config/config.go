// Package config loads the client configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level client configuration.
type Config struct {
	// ServerURL is the root URL of the tracker API.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`

	// PushURL is the websocket endpoint for out-of-band
	// notification delivery. Empty disables the push channel.
	PushURL string `mapstructure:"push_url" yaml:"push_url"`

	// PageSize is the fixed task page size.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// StoragePath is the local SQLite file for persisted state.
	StoragePath string `mapstructure:"storage_path" yaml:"storage_path"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/taskboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskboard", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		PageSize:    20,
		StoragePath: defaultStoragePath(),
		LogLevel:    "info",
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskboard.db")
	}
	return filepath.Join(home, ".config", "taskboard", "taskboard.db")
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("page_size", 20)
	v.SetDefault("storage_path", defaultStoragePath())
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server_url", cfg.ServerURL)
	v.Set("push_url", cfg.PushURL)
	v.Set("page_size", cfg.PageSize)
	v.Set("storage_path", cfg.StoragePath)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
