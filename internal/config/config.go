// Package config loads the pitinflow TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up next to the project.
const FileName = "pitinflow.toml"

// Environment overrides.
const (
	EnvPort     = "PITINFLOW_PORT"
	EnvLogLevel = "PITINFLOW_LOG_LEVEL"
)

// AppConfig is the complete application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// ReportConfig holds report content defaults.
type ReportConfig struct {
	Title     string `toml:"title"`
	Soil      string `toml:"soil"`
	OutputDir string `toml:"output_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    3000,
			DevMode: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			Title:     "Groundwater inflow calculation",
			Soil:      "Sand",
			OutputDir: ".",
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error. An empty path skips the file. Environment overrides are
// applied last.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := Parse(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping values the document omits.
func Parse(data []byte, cfg *AppConfig) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the values that would otherwise fail later at startup.
func (c *AppConfig) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

// Save writes cfg as TOML.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return cfg.Validate()
}
