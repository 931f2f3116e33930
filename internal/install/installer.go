package install

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clevermation/watchsmith/internal/compose"
	"github.com/clevermation/watchsmith/internal/config"
	"github.com/clevermation/watchsmith/internal/docker"
	"github.com/clevermation/watchsmith/internal/logging"
	"github.com/clevermation/watchsmith/internal/merge"
	"github.com/clevermation/watchsmith/internal/storage"
)

// WatchtowerImage is the image reference used to spot a standalone
// watchtower container that should hand over to the compose-managed one.
const WatchtowerImage = "containrrr/watchtower"

// ComposeRunner is the subset of compose CLI operations the installer needs.
type ComposeRunner interface {
	Available() error
	ValidateConfig(ctx context.Context, composeFile string) error
	Up(ctx context.Context, composeFile string) (string, error)
}

// Options controls a single installer run.
type Options struct {
	// ComposeFile is an explicit path; empty triggers discovery
	ComposeFile string

	// SearchDirs override the default discovery directories
	SearchDirs []string

	// Hour is the local hour (0-23) for the update schedule
	Hour int

	// Timezone is the IANA zone substituted into the block
	Timezone string

	// ContainerImage is the image substring identifying the target container
	ContainerImage string

	// DryRun computes and returns the merged document without writing
	DryRun bool

	// Confirm is called with a summary before anything is written.
	// A nil Confirm means proceed without asking. Returning false
	// aborts the run cleanly (not an error).
	Confirm func(summary string) bool
}

// Result describes what a run did.
type Result struct {
	OperationID    string
	ComposeFile    string
	BackupFile     string
	MergedDocument string
	Applied        bool
	Declined       bool
	UpToDate       bool
	RemovedLegacy  string // name of the standalone watchtower container removed, if any
	RestartOutput  string
}

// Installer wires the merge into the surrounding machinery: Docker,
// compose CLI, history storage, and logging.
type Installer struct {
	docker docker.Client
	runner ComposeRunner
	store  storage.Storage // may be nil (graceful degradation)
	log    *logging.Logger
}

// New creates an installer. store may be nil; history is then skipped.
func New(dockerClient docker.Client, runner ComposeRunner, store storage.Storage, log *logging.Logger) *Installer {
	if log == nil {
		log = logging.Default()
	}
	return &Installer{
		docker: dockerClient,
		runner: runner,
		store:  store,
		log:    log,
	}
}

// Run executes the full install flow. All failure classes are terminal;
// only validation failures roll the compose file back, every earlier
// failure leaves the filesystem untouched.
func (ins *Installer) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{OperationID: uuid.NewString()}
	ctx = logging.WithOperationID(ctx, result.OperationID)

	if err := ins.preflight(ctx, opts); err != nil {
		return result, err
	}

	composeFile, err := ins.locateComposeFile(opts)
	if err != nil {
		return result, err
	}
	result.ComposeFile = composeFile
	ins.log.InfoContext(ctx, "using compose file %s", composeFile)

	if err := compose.CheckWritable(composeFile); err != nil {
		return result, &PreflightError{Err: err}
	}

	target, legacy, err := ins.discoverContainers(ctx, opts.ContainerImage)
	if err != nil {
		return result, err
	}
	ins.log.InfoContext(ctx, "found target container %s (%s)", target.Name, target.Image)

	original, err := os.ReadFile(composeFile)
	if err != nil {
		return result, NewDiscoveryError("failed to read compose file %s: %v", composeFile, err)
	}

	block, err := compose.BuildWatchtowerBlock(opts.Hour, opts.Timezone)
	if err != nil {
		return result, &PreflightError{Err: err}
	}

	merged, err := merge.Merge(string(original), compose.ServiceName, block, compose.AnchorKey)
	if err != nil {
		ins.recordRun(ctx, result, opts, storage.StatusFailed, err)
		return result, err
	}
	result.MergedDocument = merged

	if merged == string(original) {
		result.UpToDate = true
		ins.log.InfoContext(ctx, "compose file already up to date, nothing to do")
		ins.recordRun(ctx, result, opts, storage.StatusUpToDate, nil)
		return result, nil
	}

	if opts.DryRun {
		ins.log.InfoContext(ctx, "dry run, not writing %s", composeFile)
		ins.recordRun(ctx, result, opts, storage.StatusDryRun, nil)
		return result, nil
	}

	if opts.Confirm != nil && !opts.Confirm(ins.summary(composeFile, opts)) {
		result.Declined = true
		ins.log.InfoContext(ctx, "user declined, aborting without changes")
		ins.recordRun(ctx, result, opts, storage.StatusDeclined, nil)
		return result, nil
	}

	backupFile, err := compose.BackupFile(composeFile)
	if err != nil {
		return result, fmt.Errorf("failed to back up compose file: %w", err)
	}
	result.BackupFile = backupFile
	ins.log.InfoContext(ctx, "backup written to %s", backupFile)

	if err := compose.WriteFileAtomic(composeFile, []byte(merged)); err != nil {
		return result, fmt.Errorf("failed to write compose file: %w", err)
	}

	if err := ins.validate(ctx, composeFile, merged); err != nil {
		ins.log.ErrorContext(ctx, "validation failed, restoring backup: %v", err)
		if restoreErr := compose.RestoreFromBackup(composeFile, backupFile); restoreErr != nil {
			ins.log.ErrorContext(ctx, "restore failed: %v", restoreErr)
			err = fmt.Errorf("%w (restore also failed: %v)", err, restoreErr)
		}
		ins.recordRun(ctx, result, opts, storage.StatusRolledBck, err)
		return result, &ValidationError{Err: err}
	}

	if legacy != nil {
		ins.log.InfoContext(ctx, "removing standalone watchtower container %s", legacy.Name)
		if err := ins.docker.StopAndRemove(ctx, legacy.ID); err != nil {
			// The compose-managed service will still come up; the old
			// container just keeps running until removed by hand.
			ins.log.WarnContext(ctx, "failed to remove %s: %v", legacy.Name, err)
		} else {
			result.RemovedLegacy = legacy.Name
		}
	}

	output, err := ins.runner.Up(ctx, composeFile)
	result.RestartOutput = output
	if err != nil {
		ins.recordRun(ctx, result, opts, storage.StatusFailed, err)
		return result, fmt.Errorf("stack restart failed: %w", err)
	}

	result.Applied = true
	ins.log.InfoContext(ctx, "watchtower service installed, stack restarted")
	ins.recordRun(ctx, result, opts, storage.StatusApplied, nil)
	return result, nil
}

// preflight verifies prerequisites before anything is read or written.
func (ins *Installer) preflight(ctx context.Context, opts Options) error {
	if v := config.ValidateHour(opts.Hour); !v.IsValid() {
		return NewPreflightError("%s", strings.Join(v.Errors, "; "))
	}
	if v := config.ValidateTimezone(opts.Timezone); !v.IsValid() {
		return NewPreflightError("%s", strings.Join(v.Errors, "; "))
	}

	if err := ins.runner.Available(); err != nil {
		return &PreflightError{Err: err}
	}

	if err := ins.docker.Ping(ctx); err != nil {
		return &PreflightError{Err: err}
	}

	return nil
}

// locateComposeFile resolves the compose file path, discovering one when
// none was given.
func (ins *Installer) locateComposeFile(opts Options) (string, error) {
	if opts.ComposeFile != "" {
		if _, err := os.Stat(opts.ComposeFile); err != nil {
			return "", NewDiscoveryError("compose file %s: %v", opts.ComposeFile, err)
		}
		return opts.ComposeFile, nil
	}

	path, err := compose.LocateComposeFile(opts.SearchDirs)
	if err != nil {
		return "", &DiscoveryError{Err: err}
	}
	return path, nil
}

// discoverContainers finds the target container and any standalone
// watchtower container not managed by compose.
func (ins *Installer) discoverContainers(ctx context.Context, imageSubstring string) (docker.Container, *docker.Container, error) {
	containers, err := ins.docker.ListContainers(ctx)
	if err != nil {
		return docker.Container{}, nil, NewDiscoveryError("failed to list containers: %v", err)
	}

	target, found := docker.FindByImage(containers, imageSubstring)
	if !found {
		return docker.Container{}, nil, NewDiscoveryError("no container with image matching %q found", imageSubstring)
	}

	if wt, ok := docker.FindByImage(containers, WatchtowerImage); ok {
		// Compose-managed watchtower carries compose labels; only a
		// standalone one needs retiring.
		if _, managed := wt.Labels["com.docker.compose.project"]; !managed {
			return target, &wt, nil
		}
	}

	return target, nil, nil
}

// validate runs the in-process YAML check, then the compose CLI check.
func (ins *Installer) validate(ctx context.Context, composeFile, merged string) error {
	if v := config.ValidateYAML(merged); !v.IsValid() {
		return fmt.Errorf("%s", strings.Join(v.Errors, "; "))
	}
	return ins.runner.ValidateConfig(ctx, composeFile)
}

func (ins *Installer) summary(composeFile string, opts Options) string {
	return fmt.Sprintf("Install watchtower into %s (daily at %02d:00 %s)?",
		composeFile, opts.Hour, opts.Timezone)
}

// recordRun persists the outcome; storage problems only warn.
func (ins *Installer) recordRun(ctx context.Context, result *Result, opts Options, status string, runErr error) {
	if ins.store == nil {
		return
	}

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}

	run := storage.InstallRun{
		OperationID: result.OperationID,
		ComposeFile: result.ComposeFile,
		BackupFile:  result.BackupFile,
		Hour:        opts.Hour,
		Timezone:    opts.Timezone,
		Status:      status,
		Error:       errMsg,
	}

	if err := ins.store.SaveInstallRun(ctx, run); err != nil {
		ins.log.WarnContext(ctx, "failed to record install run: %v", err)
	}

	if result.BackupFile != "" {
		backup := storage.ComposeBackup{
			OperationID:     result.OperationID,
			ComposeFilePath: result.ComposeFile,
			BackupFilePath:  result.BackupFile,
			BackupTimestamp: time.Now(),
		}
		if err := ins.store.SaveComposeBackup(ctx, backup); err != nil {
			ins.log.WarnContext(ctx, "failed to record backup: %v", err)
		}
	}
}
