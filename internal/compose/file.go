package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CheckWritable verifies the compose file is a regular file the owner can
// write to. Mode bits are checked rather than opening the file, so the
// answer is the same whether or not the process runs as root.
func CheckWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access compose file %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("compose file %s is not a regular file", path)
	}

	if info.Mode().Perm()&0200 == 0 {
		return fmt.Errorf("compose file %s is not writable", path)
	}

	return nil
}

// BackupFile creates a timestamped backup of the compose file alongside
// the original and returns the backup path.
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read compose file: %w", err)
	}

	backupPath := filepath.Join(filepath.Dir(path), BackupName(filepath.Base(path), time.Now()))

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// RestoreFromBackup copies a backup over the compose file.
func RestoreFromBackup(composePath, backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if err := WriteFileAtomic(composePath, data); err != nil {
		return fmt.Errorf("failed to restore compose file: %w", err)
	}

	return nil
}

// WriteFileAtomic writes data to a temp file in the target's directory and
// renames it into place, so a partially written compose file is never
// visible to the Docker daemon or to a concurrent reader.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set temp file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace compose file: %w", err)
	}

	return nil
}

// LatestBackup returns the most recent backup of the compose file, based
// on the timestamp embedded in the backup name. Returns an error when no
// backup exists.
func LatestBackup(composePath string) (string, error) {
	dir := filepath.Dir(composePath)
	prefix := filepath.Base(composePath) + ".backup."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			backups = append(backups, entry.Name())
		}
	}

	if len(backups) == 0 {
		return "", fmt.Errorf("no backups found for %s", composePath)
	}

	// Timestamps sort lexically.
	sort.Strings(backups)
	return filepath.Join(dir, backups[len(backups)-1]), nil
}
