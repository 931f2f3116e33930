// Package bootstrap wires the service dependencies the CLI commands share.
package bootstrap

import (
	"fmt"

	"github.com/clevermation/watchsmith/internal/docker"
	"github.com/clevermation/watchsmith/internal/logging"
	"github.com/clevermation/watchsmith/internal/storage"
)

// ServiceDependencies holds all initialized service dependencies for CLI commands.
type ServiceDependencies struct {
	Docker  *docker.Service
	Compose *docker.ComposeCLI
	Storage storage.Storage // nil when history persistence is unavailable
	Log     *logging.Logger
}

// InitOptions configures service initialization behavior.
type InitOptions struct {
	// DBPath is the SQLite history database location
	DBPath string
	// RequireStorage determines if storage initialization failure should be fatal
	RequireStorage bool
}

// InitializeServices initializes all service dependencies with consistent
// error handling. Returns the dependencies and a cleanup function that
// should be deferred.
func InitializeServices(opts InitOptions) (*ServiceDependencies, func(), error) {
	log := logging.Default()
	deps := &ServiceDependencies{
		Compose: docker.NewComposeCLI(),
		Log:     log,
	}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	dockerService, err := docker.NewService()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create Docker service: %w", err)
	}
	deps.Docker = dockerService
	cleanups = append(cleanups, func() { dockerService.Close() })
	log.Debug("docker client connected")

	// Storage is optional unless a command depends on history.
	storageService, err := storage.NewSQLiteStorage(opts.DBPath)
	if err != nil {
		if opts.RequireStorage {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		log.Warn("failed to initialize storage at %s (continuing without history): %v", opts.DBPath, err)
	} else {
		deps.Storage = storageService
		cleanups = append(cleanups, func() { storageService.Close() })
		log.Debug("storage initialized at %s", opts.DBPath)
	}

	return deps, cleanup, nil
}
