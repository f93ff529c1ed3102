package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration.
type Config struct {
	Port         string `json:"port"`
	DatabasePath string `json:"database_path"`
	LogLevel     string `json:"log_level"`
	GinMode      string `json:"gin_mode"`

	// Upload endpoints are the expensive ones; they get their own limits.
	UploadRatePerMinute int `json:"upload_rate_per_minute"`
	UploadBurst         int `json:"upload_burst"`
	MaxUploadRows       int `json:"max_upload_rows"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                "8080",
		DatabasePath:        "storecheck.db",
		LogLevel:            "info",
		GinMode:             "release",
		UploadRatePerMinute: 30,
		UploadBurst:         5,
		MaxUploadRows:       1000,
	}
}

// Load reads configuration from an optional JSON file, then applies
// environment overrides. A missing file is not an error; a malformed one
// is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STORECHECK_PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("STORECHECK_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("STORECHECK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STORECHECK_GIN_MODE"); v != "" {
		c.GinMode = v
	}
	if v := os.Getenv("STORECHECK_MAX_UPLOAD_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxUploadRows = n
		}
	}
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.UploadRatePerMinute <= 0 {
		return fmt.Errorf("upload rate must be positive, got %d", c.UploadRatePerMinute)
	}
	if c.MaxUploadRows <= 0 {
		return fmt.Errorf("max upload rows must be positive, got %d", c.MaxUploadRows)
	}
	return nil
}
