package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// composeFileNames are the file names probed during discovery, in order of
// preference.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// DefaultSearchDirs are the directories probed when no compose file path
// is configured. The n8n installer drops its stack in /root or /opt/n8n
// on typical hosts.
var DefaultSearchDirs = []string{".", "/root", "/opt/n8n", "/home/n8n"}

// IsComposeFile checks if a filename matches known compose file names.
// Matching is case-insensitive.
func IsComposeFile(filename string) bool {
	lower := strings.ToLower(filename)
	for _, name := range composeFileNames {
		if lower == name {
			return true
		}
	}
	return false
}

// LocateComposeFile returns the first compose file found in dirs. When
// dirs is empty, DefaultSearchDirs is used. Returns an error naming the
// searched directories when nothing is found.
func LocateComposeFile(dirs []string) (string, error) {
	if len(dirs) == 0 {
		dirs = DefaultSearchDirs
	}

	for _, dir := range dirs {
		for _, name := range composeFileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			return path, nil
		}
	}

	return "", fmt.Errorf("no compose file found in %s", strings.Join(dirs, ", "))
}
