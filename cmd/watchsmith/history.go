package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/clevermation/watchsmith/cmd/watchsmith/terminal"
	"github.com/clevermation/watchsmith/internal/config"
	"github.com/clevermation/watchsmith/internal/output"
	"github.com/clevermation/watchsmith/internal/storage"
)

// HistoryCommand lists recorded install runs and backups.
type HistoryCommand struct {
	limit   int
	backups bool
	file    string
	json    bool
}

// NewHistoryCommand creates a new history command.
func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

// ParseFlags parses command-line flags for the history command.
func (c *HistoryCommand) ParseFlags(args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("history", flag.ExitOnError)
	fs.IntVar(&c.limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	fs.BoolVar(&c.backups, "backups", false, "List backups instead of runs")
	fs.StringVar(&c.file, "compose", cfg.ComposeFile, "Compose file path (required with -backups)")
	fs.BoolVar(&c.json, "json", false, "Output in JSON format")

	return fs.Parse(args)
}

// Run executes the history command. Storage is opened directly rather
// than through bootstrap so a broken Docker socket cannot block reading
// history, and initialization failure is fatal here.
func (c *HistoryCommand) Run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("history requires the database at %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	if c.backups {
		return c.printBackups(ctx, store)
	}
	return c.printRuns(ctx, store)
}

func (c *HistoryCommand) printRuns(ctx context.Context, store storage.Storage) error {
	runs, err := store.GetInstallRuns(ctx, c.limit)
	if err != nil {
		return err
	}

	if c.json {
		return output.WriteJSONData(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		color := terminal.Green()
		if run.Status == storage.StatusFailed || run.Status == storage.StatusRolledBck {
			color = terminal.Red()
		}

		fmt.Printf("%s  %s%-11s%s  %s  %02d:00 %s",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			color, run.Status, terminal.Reset(),
			run.ComposeFile, run.Hour, run.Timezone)
		if run.Error != "" {
			fmt.Printf("  %s(%s)%s", terminal.Gray(), run.Error, terminal.Reset())
		}
		fmt.Println()
	}

	return nil
}

func (c *HistoryCommand) printBackups(ctx context.Context, store storage.Storage) error {
	if c.file == "" {
		return fmt.Errorf("listing backups requires -compose")
	}

	backups, err := store.GetComposeBackups(ctx, c.file)
	if err != nil {
		return err
	}

	if c.json {
		return output.WriteJSONData(os.Stdout, backups)
	}

	if len(backups) == 0 {
		fmt.Printf("No backups recorded for %s.\n", c.file)
		return nil
	}

	for _, backup := range backups {
		fmt.Printf("%s  %s\n",
			backup.BackupTimestamp.Format("2006-01-02 15:04:05"),
			backup.BackupFilePath)
	}

	return nil
}
