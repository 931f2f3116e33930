package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCompose = `n8n:
  image: n8nio/n8n

volumes:
  n8n_data:
`

// writeComposeFile creates a compose file in a temp dir and returns its path.
func writeComposeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckWritable(t *testing.T) {
	t.Run("writable file passes", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)
		assert.NoError(t, CheckWritable(path))
	})

	t.Run("read-only file fails", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)
		require.NoError(t, os.Chmod(path, 0444))

		assert.Error(t, CheckWritable(path))
	})

	t.Run("directory fails", func(t *testing.T) {
		assert.Error(t, CheckWritable(t.TempDir()))
	})

	t.Run("missing file fails", func(t *testing.T) {
		assert.Error(t, CheckWritable(filepath.Join(t.TempDir(), "docker-compose.yml")))
	})
}

func TestBackupFile(t *testing.T) {
	t.Run("creates timestamped copy alongside original", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)

		backup, err := BackupFile(path)
		require.NoError(t, err)

		assert.Equal(t, filepath.Dir(path), filepath.Dir(backup))
		assert.Contains(t, filepath.Base(backup), "docker-compose.yml.backup.")

		data, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, sampleCompose, string(data))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := BackupFile("/nonexistent/docker-compose.yml")
		assert.Error(t, err)
	})
}

func TestRestoreFromBackup(t *testing.T) {
	path := writeComposeFile(t, "docker-compose.yml", sampleCompose)

	backup, err := BackupFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("mangled: true\n"), 0644))

	require.NoError(t, RestoreFromBackup(path, backup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCompose, string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("replaces content", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)

		require.NoError(t, WriteFileAtomic(path, []byte("updated: true\n")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "updated: true\n", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)
		require.NoError(t, WriteFileAtomic(path, []byte("updated: true\n")))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "docker-compose.yml", entries[0].Name())
	})
}

func TestLatestBackup(t *testing.T) {
	t.Run("picks newest by embedded timestamp", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)
		dir := filepath.Dir(path)

		older := filepath.Join(dir, "docker-compose.yml.backup.20240101-000000")
		newer := filepath.Join(dir, "docker-compose.yml.backup.20250101-000000")
		require.NoError(t, os.WriteFile(older, []byte("old"), 0644))
		require.NoError(t, os.WriteFile(newer, []byte("new"), 0644))

		got, err := LatestBackup(path)
		require.NoError(t, err)
		assert.Equal(t, newer, got)
	})

	t.Run("errors when no backups exist", func(t *testing.T) {
		path := writeComposeFile(t, "docker-compose.yml", sampleCompose)

		_, err := LatestBackup(path)
		assert.Error(t, err)
	})
}

func TestIsComposeFile(t *testing.T) {
	assert.True(t, IsComposeFile("docker-compose.yml"))
	assert.True(t, IsComposeFile("Docker-Compose.YAML"))
	assert.True(t, IsComposeFile("compose.yaml"))
	assert.False(t, IsComposeFile("docker-compose.override.yml"))
	assert.False(t, IsComposeFile("stack.yml"))
}

func TestLocateComposeFile(t *testing.T) {
	t.Run("finds file in listed directory", func(t *testing.T) {
		path := writeComposeFile(t, "compose.yaml", sampleCompose)

		got, err := LocateComposeFile([]string{"/nonexistent", filepath.Dir(path)})
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("prefers docker-compose.yml over compose.yaml", func(t *testing.T) {
		dir := t.TempDir()
		preferred := filepath.Join(dir, "docker-compose.yml")
		require.NoError(t, os.WriteFile(preferred, []byte(sampleCompose), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "compose.yaml"), []byte(sampleCompose), 0644))

		got, err := LocateComposeFile([]string{dir})
		require.NoError(t, err)
		assert.Equal(t, preferred, got)
	})

	t.Run("errors when nothing found", func(t *testing.T) {
		_, err := LocateComposeFile([]string{t.TempDir()})
		assert.Error(t, err)
	})
}
