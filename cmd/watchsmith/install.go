package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/clevermation/watchsmith/cmd/watchsmith/terminal"
	"github.com/clevermation/watchsmith/internal/bootstrap"
	"github.com/clevermation/watchsmith/internal/config"
	"github.com/clevermation/watchsmith/internal/install"
)

// InstallCommand implements the default install flow.
type InstallCommand struct {
	composeFile string
	hour        int
	timezone    string
	image       string
	yes         bool
	dryRun      bool
}

// NewInstallCommand creates a new install command.
func NewInstallCommand() *InstallCommand {
	return &InstallCommand{}
}

// ParseFlags parses command-line flags for the install command.
// Flags override environment variables, which override defaults.
func (c *InstallCommand) ParseFlags(args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("install", flag.ExitOnError)
	fs.StringVar(&c.composeFile, "compose", cfg.ComposeFile, "Path to the compose file (default: discover)")
	fs.IntVar(&c.hour, "hour", cfg.Hour, "Local hour (0-23) for the daily update check")
	fs.StringVar(&c.timezone, "tz", cfg.Timezone, "IANA timezone for the schedule")
	fs.StringVar(&c.image, "image", cfg.ContainerImage, "Image substring identifying the target container")
	fs.BoolVar(&c.yes, "yes", false, "Apply without asking for confirmation")
	fs.BoolVar(&c.dryRun, "dry-run", false, "Print the merged compose file without writing it")

	return fs.Parse(args)
}

// Run executes the install command.
func (c *InstallCommand) Run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	// Validate the effective values (flags layered over environment)
	// before connecting to anything.
	cfg.Hour = c.hour
	cfg.Timezone = c.timezone
	cfg.ComposeFile = c.composeFile
	validation := cfg.Validate()
	for _, warning := range validation.Warnings {
		fmt.Printf("%sWarning: %s%s\n", terminal.Yellow(), warning, terminal.Reset())
	}
	if !validation.IsValid() {
		return fmt.Errorf("invalid configuration: %s", strings.Join(validation.Errors, "; "))
	}

	deps, cleanup, err := bootstrap.InitializeServices(bootstrap.InitOptions{DBPath: cfg.DBPath})
	if err != nil {
		return err
	}
	defer cleanup()

	opts := install.Options{
		ComposeFile:    c.composeFile,
		Hour:           c.hour,
		Timezone:       c.timezone,
		ContainerImage: c.image,
		DryRun:         c.dryRun,
	}
	if !c.yes && !c.dryRun {
		opts.Confirm = confirmOnTerminal
	}

	installer := install.New(deps.Docker, deps.Compose, deps.Storage, deps.Log)
	result, err := installer.Run(ctx, opts)
	if err != nil {
		return err
	}

	switch {
	case result.UpToDate:
		fmt.Printf("%s✓ %s already has the requested watchtower block%s\n",
			terminal.Green(), result.ComposeFile, terminal.Reset())

	case c.dryRun:
		fmt.Printf("%s--- merged %s (dry run) ---%s\n", terminal.Gray(), result.ComposeFile, terminal.Reset())
		fmt.Print(result.MergedDocument)

	case result.Declined:
		fmt.Printf("%sAborted, nothing was changed.%s\n", terminal.Yellow(), terminal.Reset())

	default:
		fmt.Printf("%s✓ Watchtower installed into %s%s\n", terminal.Green(), result.ComposeFile, terminal.Reset())
		fmt.Printf("  Schedule: daily at %02d:00 (%s)\n", c.hour, c.timezone)
		fmt.Printf("  Backup:   %s\n", result.BackupFile)
		if result.RemovedLegacy != "" {
			fmt.Printf("  Removed standalone container: %s\n", result.RemovedLegacy)
		}
	}

	return nil
}

// confirmOnTerminal prompts on stdin and returns true for y/yes.
func confirmOnTerminal(summary string) bool {
	fmt.Printf("%s%s%s [y/N]: ", terminal.Bold(), summary, terminal.Reset())

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
