package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults when environment is empty", func(t *testing.T) {
		t.Setenv("WATCHSMITH_HOUR", "")
		t.Setenv("WATCHSMITH_TZ", "")
		t.Setenv("WATCHSMITH_COMPOSE_FILE", "")
		t.Setenv("WATCHSMITH_IMAGE", "")
		t.Setenv("WATCHSMITH_DB_PATH", "")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, DefaultHour, cfg.Hour)
		assert.Equal(t, DefaultTimezone, cfg.Timezone)
		assert.Equal(t, "n8n", cfg.ContainerImage)
		assert.Equal(t, DefaultDBPath, cfg.DBPath)
		assert.Empty(t, cfg.ComposeFile)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("WATCHSMITH_HOUR", "3")
		t.Setenv("WATCHSMITH_TZ", "UTC")
		t.Setenv("WATCHSMITH_COMPOSE_FILE", "/srv/stack/docker-compose.yml")
		t.Setenv("WATCHSMITH_IMAGE", "n8nio/n8n")
		t.Setenv("WATCHSMITH_DB_PATH", "/tmp/watchsmith.db")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.Hour)
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.Equal(t, "/srv/stack/docker-compose.yml", cfg.ComposeFile)
		assert.Equal(t, "n8nio/n8n", cfg.ContainerImage)
		assert.Equal(t, "/tmp/watchsmith.db", cfg.DBPath)
	})

	t.Run("non-numeric hour is rejected", func(t *testing.T) {
		t.Setenv("WATCHSMITH_HOUR", "five")

		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestValidateHour(t *testing.T) {
	assert.True(t, ValidateHour(0).IsValid())
	assert.True(t, ValidateHour(23).IsValid())
	assert.False(t, ValidateHour(-1).IsValid())
	assert.False(t, ValidateHour(24).IsValid())
}

func TestValidateTimezone(t *testing.T) {
	assert.True(t, ValidateTimezone("UTC").IsValid())
	assert.True(t, ValidateTimezone("Europe/Madrid").IsValid())
	assert.False(t, ValidateTimezone("").IsValid())
	assert.False(t, ValidateTimezone("Mars/Olympus_Mons").IsValid())
}

func TestValidateComposeFile(t *testing.T) {
	t.Run("valid YAML passes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docker-compose.yml")
		require.NoError(t, os.WriteFile(path, []byte("n8n:\n  image: n8nio/n8n\n"), 0644))

		result := ValidateComposeFile(path)
		assert.True(t, result.IsValid())
		assert.False(t, result.HasWarnings())
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docker-compose.yml")
		require.NoError(t, os.WriteFile(path, []byte("invalid: [yaml: content"), 0644))

		result := ValidateComposeFile(path)
		assert.False(t, result.IsValid())
	})

	t.Run("missing file is only a warning", func(t *testing.T) {
		result := ValidateComposeFile("/nonexistent/docker-compose.yml")
		assert.True(t, result.IsValid())
		assert.True(t, result.HasWarnings())
	})
}

func TestValidatePath(t *testing.T) {
	t.Run("existing directory is clean", func(t *testing.T) {
		result := ValidatePath(t.TempDir())
		assert.True(t, result.IsValid())
		assert.False(t, result.HasWarnings())
	})

	t.Run("missing directory is only a warning", func(t *testing.T) {
		result := ValidatePath("/nonexistent/watchsmith")
		assert.True(t, result.IsValid())
		assert.True(t, result.HasWarnings())
	})

	t.Run("regular file is only a warning", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watchsmith.db")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		result := ValidatePath(path)
		assert.True(t, result.IsValid())
		assert.True(t, result.HasWarnings())
	})
}

func TestValidateYAML(t *testing.T) {
	assert.True(t, ValidateYAML("n8n:\n  image: n8nio/n8n\n").IsValid())
	assert.False(t, ValidateYAML("broken: [unclosed").IsValid())
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Hour: 12, Timezone: "UTC"}
	assert.True(t, cfg.Validate().IsValid())

	cfg = &Config{Hour: 99, Timezone: "Nowhere/Nothing"}
	result := cfg.Validate()
	assert.False(t, result.IsValid())
	assert.Len(t, result.Errors, 2)
}
