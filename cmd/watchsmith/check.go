package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/clevermation/watchsmith/cmd/watchsmith/terminal"
	"github.com/clevermation/watchsmith/internal/compose"
	"github.com/clevermation/watchsmith/internal/config"
	"github.com/clevermation/watchsmith/internal/merge"
	"github.com/clevermation/watchsmith/internal/output"
)

// CheckCommand reports whether the compose file already carries the
// requested watchtower block. It never writes anything and does not need
// the Docker daemon.
type CheckCommand struct {
	composeFile string
	hour        int
	timezone    string
	json        bool
}

// NewCheckCommand creates a new check command.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// ParseFlags parses command-line flags for the check command.
func (c *CheckCommand) ParseFlags(args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.StringVar(&c.composeFile, "compose", cfg.ComposeFile, "Path to the compose file (default: discover)")
	fs.IntVar(&c.hour, "hour", cfg.Hour, "Local hour (0-23) for the daily update check")
	fs.StringVar(&c.timezone, "tz", cfg.Timezone, "IANA timezone for the schedule")
	fs.BoolVar(&c.json, "json", false, "Output in JSON format")

	return fs.Parse(args)
}

// Run executes the check command.
func (c *CheckCommand) Run(ctx context.Context) error {
	path := c.composeFile
	if path == "" {
		located, err := compose.LocateComposeFile(nil)
		if err != nil {
			return err
		}
		path = located
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read compose file %s: %w", path, err)
	}

	block, err := compose.BuildWatchtowerBlock(c.hour, c.timezone)
	if err != nil {
		return err
	}

	merged, err := merge.Merge(string(data), compose.ServiceName, block, compose.AnchorKey)
	if err != nil {
		return err
	}

	hasBlock := false
	for _, line := range strings.Split(string(data), "\n") {
		if key, ok := merge.TopLevelKey(line); ok && key == compose.ServiceName {
			hasBlock = true
			break
		}
	}

	if c.json {
		status := output.CheckStatus{
			ComposeFile: path,
			Hour:        c.hour,
			Timezone:    c.timezone,
			Schedule:    compose.ScheduleExpression(c.hour),
		}
		switch {
		case merged == string(data):
			status.Status = "up_to_date"
		case hasBlock:
			status.Status = "change_pending"
		default:
			status.Status = "not_installed"
		}
		return output.WriteJSONData(os.Stdout, status)
	}

	fmt.Printf("Compose file: %s\n", path)
	switch {
	case merged == string(data):
		fmt.Printf("%s✓ UP TO DATE%s: watchtower runs daily at %02d:00 (%s)\n",
			terminal.Green(), terminal.Reset(), c.hour, c.timezone)
	case hasBlock:
		fmt.Printf("%s● CHANGE PENDING%s: watchtower block present but differs from schedule %s (%s)\n",
			terminal.Yellow(), terminal.Reset(), compose.ScheduleExpression(c.hour), c.timezone)
		fmt.Println("  Run 'watchsmith install' to update it.")
	default:
		fmt.Printf("%s● NOT INSTALLED%s: no watchtower block found\n",
			terminal.Yellow(), terminal.Reset())
		fmt.Println("  Run 'watchsmith install' to add it.")
	}

	return nil
}
