// Package compose handles everything around the compose file itself:
// rendering the watchtower service block, locating the file on disk, and
// persisting changes safely (timestamped backup, atomic replace, restore).
package compose

import (
	"fmt"
	"strings"
	"time"
)

// ServiceName is the top-level key of the managed service block.
const ServiceName = "watchtower"

// AnchorKey is the top-level key the block is inserted before.
const AnchorKey = "volumes"

// watchtowerTemplate is the literal block spliced into the compose file.
// The schedule is a 6-field cron expression (seconds first), which is what
// Watchtower expects: minute 0, second 0, at the configured hour.
const watchtowerTemplate = `watchtower:
  image: containrrr/watchtower
  container_name: watchtower
  restart: unless-stopped
  volumes:
    - /var/run/docker.sock:/var/run/docker.sock
  environment:
    - TZ=%s
    - WATCHTOWER_CLEANUP=true
    - WATCHTOWER_SCHEDULE=0 0 %d * * *`

// BuildWatchtowerBlock renders the watchtower service block for the given
// update hour (0-23) and IANA timezone name. The timezone is substituted
// verbatim; callers validate it beforehand.
func BuildWatchtowerBlock(hour int, timezone string) (string, error) {
	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("update hour %d out of range (0-23)", hour)
	}
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return "", fmt.Errorf("timezone must not be empty")
	}
	if strings.ContainsAny(timezone, "\n\r") {
		return "", fmt.Errorf("timezone must be a single-line value")
	}

	return fmt.Sprintf(watchtowerTemplate, timezone, hour), nil
}

// ScheduleExpression returns the cron expression embedded in the block for
// the given hour, mainly so check output can show it without re-parsing.
func ScheduleExpression(hour int) string {
	return fmt.Sprintf("0 0 %d * * *", hour)
}

// BackupTimestampFormat is the layout used in backup file names.
const BackupTimestampFormat = "20060102-150405"

// BackupName returns the backup file name for base at the given time,
// e.g. "docker-compose.yml.backup.20240131-093000".
func BackupName(base string, at time.Time) string {
	return fmt.Sprintf("%s.backup.%s", base, at.Format(BackupTimestampFormat))
}
