package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/clevermation/watchsmith/cmd/watchsmith/terminal"
	"github.com/clevermation/watchsmith/internal/bootstrap"
	"github.com/clevermation/watchsmith/internal/compose"
	"github.com/clevermation/watchsmith/internal/config"
)

// RollbackCommand restores the newest backup of the compose file and
// restarts the stack from it.
type RollbackCommand struct {
	composeFile string
	yes         bool
}

// NewRollbackCommand creates a new rollback command.
func NewRollbackCommand() *RollbackCommand {
	return &RollbackCommand{}
}

// ParseFlags parses command-line flags for the rollback command.
func (c *RollbackCommand) ParseFlags(args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("rollback", flag.ExitOnError)
	fs.StringVar(&c.composeFile, "compose", cfg.ComposeFile, "Path to the compose file (default: discover)")
	fs.BoolVar(&c.yes, "yes", false, "Roll back without asking for confirmation")

	return fs.Parse(args)
}

// Run executes the rollback command.
func (c *RollbackCommand) Run(ctx context.Context) error {
	path := c.composeFile
	if path == "" {
		located, err := compose.LocateComposeFile(nil)
		if err != nil {
			return err
		}
		path = located
	}

	backup, err := compose.LatestBackup(path)
	if err != nil {
		return err
	}

	if !c.yes && !confirmOnTerminal(fmt.Sprintf("Restore %s from %s and restart the stack?", path, backup)) {
		fmt.Printf("%sAborted, nothing was changed.%s\n", terminal.Yellow(), terminal.Reset())
		return nil
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	deps, cleanup, err := bootstrap.InitializeServices(bootstrap.InitOptions{DBPath: cfg.DBPath})
	if err != nil {
		return err
	}
	defer cleanup()

	if err := deps.Compose.Available(); err != nil {
		return err
	}

	if err := compose.RestoreFromBackup(path, backup); err != nil {
		return err
	}
	fmt.Printf("%s✓ Restored %s from %s%s\n", terminal.Green(), path, backup, terminal.Reset())

	// A restored file can be identical to what a service already runs
	// with, so force recreation instead of a plain up.
	if _, err := deps.Compose.Restart(ctx, path); err != nil {
		return err
	}
	fmt.Printf("%s✓ Stack restarted%s\n", terminal.Green(), terminal.Reset())

	return nil
}
