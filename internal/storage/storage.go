// Package storage persists install run history and backup metadata in a
// local SQLite database. Storage is best-effort: the installer keeps
// working when the database is unavailable.
package storage

import (
	"context"
	"time"
)

// Run statuses recorded in install_runs.
const (
	StatusApplied   = "applied"
	StatusUpToDate  = "up_to_date"
	StatusDeclined  = "declined"
	StatusDryRun    = "dry_run"
	StatusFailed    = "failed"
	StatusRolledBck = "rolled_back"
)

// InstallRun records one invocation of the installer.
type InstallRun struct {
	ID          int64
	OperationID string
	ComposeFile string
	BackupFile  string
	Hour        int
	Timezone    string
	Status      string
	Error       string
	CreatedAt   time.Time
}

// ComposeBackup records metadata about a compose file backup.
type ComposeBackup struct {
	ID              int64
	OperationID     string
	ComposeFilePath string
	BackupFilePath  string
	BackupTimestamp time.Time
	CreatedAt       time.Time
}

// Storage defines the interface for persistent storage operations.
// Implementations must handle graceful degradation when operations fail.
type Storage interface {
	// SaveInstallRun records an install run outcome
	SaveInstallRun(ctx context.Context, run InstallRun) error

	// GetInstallRuns retrieves runs ordered newest first; limit 0 means all
	GetInstallRuns(ctx context.Context, limit int) ([]InstallRun, error)

	// SaveComposeBackup records metadata about a compose file backup
	SaveComposeBackup(ctx context.Context, backup ComposeBackup) error

	// GetComposeBackups retrieves backups for a compose file, newest first
	GetComposeBackups(ctx context.Context, composeFilePath string) ([]ComposeBackup, error)

	// Close releases the database handle
	Close() error
}
