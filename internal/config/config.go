// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = ".mudra"
	configFileName = "config.json"
)

// Config represents the application configuration. Runtime-tunable
// values (mode, stability, scope) are only the startup defaults here;
// once running they live in the store's settings table.
type Config struct {
	CameraID      int    `json:"camera_id"`
	ListenAddr    string `json:"listen_addr"`
	RecognizerURL string `json:"recognizer_url"`
	Mode          string `json:"mode"`
	StabilityMs   int    `json:"stability_ms"`
	Scope         string `json:"scope"`
	Language      string `json:"language"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		CameraID:    0,
		ListenAddr:  ":8080",
		Mode:        "LOCAL",
		StabilityMs: 1000,
		Scope:       "WORD",
		Language:    "en",
	}
}

// Load loads configuration from the config file.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// DataDir returns the application data directory, creating it if needed.
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	return dir, nil
}

func configPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
