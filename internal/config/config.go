// Package config loads watchsmith settings from the environment and
// validates user-supplied values before any file is touched.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults for the schedule embedded into the watchtower block.
const (
	DefaultHour     = 5
	DefaultTimezone = "Europe/Madrid"
	DefaultDBPath   = "/var/lib/watchsmith/watchsmith.db"
)

// Config represents the resolved application configuration. Flag values
// are layered on top by the command layer; flags win over environment.
type Config struct {
	// Hour is the local hour (0-23) at which Watchtower checks for updates
	Hour int

	// Timezone is the IANA timezone name substituted into the block
	Timezone string

	// ComposeFile is an explicit compose file path; empty means discover
	ComposeFile string

	// ContainerImage is the image substring used to locate the target container
	ContainerImage string

	// DBPath is the SQLite history database location
	DBPath string
}

// FromEnv builds a Config from environment variables, falling back to
// defaults. Invalid WATCHSMITH_HOUR values are rejected here rather than
// silently replaced.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Hour:           DefaultHour,
		Timezone:       DefaultTimezone,
		ComposeFile:    os.Getenv("WATCHSMITH_COMPOSE_FILE"),
		ContainerImage: "n8n",
		DBPath:         DefaultDBPath,
	}

	if v := os.Getenv("WATCHSMITH_HOUR"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("WATCHSMITH_HOUR must be an integer, got %q", v)
		}
		cfg.Hour = hour
	}

	if v := os.Getenv("WATCHSMITH_TZ"); v != "" {
		cfg.Timezone = v
	}

	if v := os.Getenv("WATCHSMITH_IMAGE"); v != "" {
		cfg.ContainerImage = v
	}

	if v := os.Getenv("WATCHSMITH_DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	return cfg, nil
}

// Validate runs all value-level checks and returns the combined result.
func (c *Config) Validate() ValidationResult {
	result := ValidationResult{}
	result.Merge(ValidateHour(c.Hour))
	result.Merge(ValidateTimezone(c.Timezone))
	if c.ComposeFile != "" {
		result.Merge(ValidateComposeFile(c.ComposeFile))
	}
	if c.DBPath != "" {
		result.Merge(ValidatePath(filepath.Dir(c.DBPath)))
	}
	return result
}
