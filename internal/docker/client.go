// Package docker wraps the two ways watchsmith talks to the container
// runtime: the Docker SDK for discovery and container teardown, and the
// docker compose CLI for config validation and stack restarts.
package docker

import (
	"context"
	"strings"
)

// Client defines the interface for Docker operations.
// This interface allows for easy mocking in tests and follows
// the dependency injection pattern.
type Client interface {
	// Ping verifies the daemon is reachable
	Ping(ctx context.Context) error

	// ListContainers returns all containers (running and stopped)
	ListContainers(ctx context.Context) ([]Container, error)

	// StopAndRemove stops a container (if running) and removes it
	StopAndRemove(ctx context.Context, containerID string) error

	// Close releases resources held by the Docker client
	Close() error
}

// Container represents a Docker container with relevant metadata.
type Container struct {
	ID      string
	Name    string
	Image   string
	State   string
	Labels  map[string]string
	Created int64
}

// FindByImage returns the first container whose image reference contains
// the given substring. Used to locate the n8n container and any standalone
// watchtower container that predates the compose-managed one.
func FindByImage(containers []Container, imageSubstring string) (Container, bool) {
	if imageSubstring == "" {
		return Container{}, false
	}
	for _, c := range containers {
		if strings.Contains(c.Image, imageSubstring) {
			return c, true
		}
	}
	return Container{}, false
}
