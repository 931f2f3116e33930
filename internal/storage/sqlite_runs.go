package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveInstallRun implements Storage.SaveInstallRun.
func (s *SQLiteStorage) SaveInstallRun(ctx context.Context, run InstallRun) error {
	query := `
		INSERT INTO install_runs
		(operation_id, compose_file, backup_file, hour, timezone, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.OperationID, run.ComposeFile, run.BackupFile,
		run.Hour, run.Timezone, run.Status, run.Error)
	if err != nil {
		return fmt.Errorf("failed to save install run: %w", err)
	}

	return nil
}

// GetInstallRuns implements Storage.GetInstallRuns.
// Returns entries ordered by created_at DESC (most recent first).
func (s *SQLiteStorage) GetInstallRuns(ctx context.Context, limit int) ([]InstallRun, error) {
	query := appendLimitClause(`
		SELECT id, operation_id, compose_file, backup_file, hour, timezone, status, error, created_at
		FROM install_runs
		ORDER BY created_at DESC, id DESC
	`, limit)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query install runs: %w", err)
	}
	defer rows.Close()

	var runs []InstallRun
	for rows.Next() {
		var run InstallRun
		var backupFile, runErr sql.NullString

		if err := rows.Scan(&run.ID, &run.OperationID, &run.ComposeFile, &backupFile,
			&run.Hour, &run.Timezone, &run.Status, &runErr, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan install run: %w", err)
		}

		run.BackupFile = backupFile.String
		run.Error = runErr.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// SaveComposeBackup implements Storage.SaveComposeBackup.
func (s *SQLiteStorage) SaveComposeBackup(ctx context.Context, backup ComposeBackup) error {
	query := `
		INSERT INTO compose_backups
		(operation_id, compose_file_path, backup_file_path, backup_timestamp)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		backup.OperationID, backup.ComposeFilePath, backup.BackupFilePath, backup.BackupTimestamp)
	if err != nil {
		return fmt.Errorf("failed to save compose backup: %w", err)
	}

	return nil
}

// GetComposeBackups implements Storage.GetComposeBackups.
// Returns entries ordered by backup_timestamp DESC (most recent first).
func (s *SQLiteStorage) GetComposeBackups(ctx context.Context, composeFilePath string) ([]ComposeBackup, error) {
	query := `
		SELECT id, operation_id, compose_file_path, backup_file_path, backup_timestamp, created_at
		FROM compose_backups
		WHERE compose_file_path = ?
		ORDER BY backup_timestamp DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, composeFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to query compose backups: %w", err)
	}
	defer rows.Close()

	var backups []ComposeBackup
	for rows.Next() {
		var backup ComposeBackup
		if err := rows.Scan(&backup.ID, &backup.OperationID, &backup.ComposeFilePath,
			&backup.BackupFilePath, &backup.BackupTimestamp, &backup.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan compose backup: %w", err)
		}
		backups = append(backups, backup)
	}

	return backups, rows.Err()
}
