package docker

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ComposeCLI runs docker compose subcommands against a specific compose
// file. The SDK has no compose support, so validation and stack restarts
// go through the CLI the same way an operator would run them.
type ComposeCLI struct {
	// binary is the docker executable name, overridable for tests
	binary string
}

// NewComposeCLI creates a compose CLI runner using the docker binary on PATH.
func NewComposeCLI() *ComposeCLI {
	return &ComposeCLI{binary: "docker"}
}

// Available checks that the docker binary can be found on PATH.
func (c *ComposeCLI) Available() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("docker binary not found on PATH: %w", err)
	}
	return nil
}

// ValidateConfig asks docker compose to parse the given file without
// producing output. A non-zero exit means the file would not deploy.
func (c *ComposeCLI) ValidateConfig(ctx context.Context, composeFile string) error {
	args := validateArgs(composeFile)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("docker compose config failed: %w\nOutput: %s", err, output)
	}

	return nil
}

// Up brings the stack defined by composeFile up in detached mode. Compose
// only recreates services whose definition changed, so this both starts
// the new watchtower service and leaves untouched services running.
func (c *ComposeCLI) Up(ctx context.Context, composeFile string) (string, error) {
	args := upArgs(composeFile)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("docker compose up failed: %w\nOutput: %s", err, output)
	}

	return string(output), nil
}

// Restart recreates the stack even when service definitions are unchanged,
// which is what rollback needs after the compose file was restored to an
// earlier revision the running containers may already match.
func (c *ComposeCLI) Restart(ctx context.Context, composeFile string) (string, error) {
	args := restartArgs(composeFile)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("docker compose up --force-recreate failed: %w\nOutput: %s", err, output)
	}

	return string(output), nil
}

// validateArgs builds the argument list for config validation.
// --project-directory pins relative volume and env_file paths to the
// compose file's directory.
func validateArgs(composeFile string) []string {
	return []string{
		"compose",
		"--project-directory", filepath.Dir(composeFile),
		"-f", composeFile,
		"config",
		"-q",
	}
}

// upArgs builds the argument list for bringing the stack up.
func upArgs(composeFile string) []string {
	return []string{
		"compose",
		"--project-directory", filepath.Dir(composeFile),
		"-f", composeFile,
		"up",
		"-d",
	}
}

// restartArgs builds the argument list for a forced recreation of the stack.
func restartArgs(composeFile string) []string {
	return append(upArgs(composeFile), "--force-recreate")
}
