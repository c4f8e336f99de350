// Package config loads server settings from defaults, an optional YAML file
// and CE_ environment variables, in that order of priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/evcraddock/campus-explorer/internal/validation"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "CE_CONFIG_PATH"

// Config is the server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	// Timezone is an IANA zone name used for calendar-day boundaries.
	// "Local" means the host zone.
	Timezone string `koanf:"timezone" validate:"required"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string `koanf:"host"`
	Port    int    `koanf:"port" validate:"gte=1,lte=65535"`
	DevMode bool   `koanf:"dev_mode"`
}

// DatabaseConfig locates the SQLite file. An empty path means db.DefaultPath.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Timezone: "Local",
	}
}

// Load builds the configuration. path names a YAML file to read; when empty,
// CE_CONFIG_PATH and then the default locations are searched, and a missing
// file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks field ranges and that the time zone exists.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DefaultPaths returns the config files searched when no path is given.
func DefaultPaths() []string {
	paths := []string{"campus-explorer.yaml", "campus-explorer.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".campus-explorer", "config.yaml"))
	}
	return paths
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envMappings = map[string]string{
	"ce_server_host":     "server.host",
	"ce_server_port":     "server.port",
	"ce_server_dev_mode": "server.dev_mode",
	"ce_dev_mode":        "server.dev_mode",
	"ce_database_path":   "database.path",
	"ce_db":              "database.path",
	"ce_timezone":        "timezone",
}

// envTransformFunc maps environment variable names to koanf keys.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
