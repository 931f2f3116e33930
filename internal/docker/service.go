package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Service implements the Client interface using the Docker SDK.
type Service struct {
	cli *client.Client
}

// NewService creates a new Docker service that connects to the Docker socket.
// It uses the default Docker host from environment variables or defaults to
// unix:///var/run/docker.sock on Unix systems.
func NewService() (*Service, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &Service{cli: cli}, nil
}

// Ping verifies the Docker daemon is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return nil
}

// ListContainers retrieves all containers from the Docker daemon.
// It returns both running and stopped containers.
func (s *Service) ListContainers(ctx context.Context) ([]Container, error) {
	containers, err := s.cli.ContainerList(ctx, container.ListOptions{
		All: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]Container, 0, len(containers))
	for _, c := range containers {
		result = append(result, convertContainer(c))
	}

	return result, nil
}

// StopAndRemove stops a container when it is running, then removes it.
// Used to retire a standalone watchtower container before the compose
// stack takes over managing it.
func (s *Service) StopAndRemove(ctx context.Context, containerID string) error {
	if err := s.cli.ContainerStop(ctx, containerID, container.StopOptions{}); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", containerID, err)
	}

	if err := s.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{}); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", containerID, err)
	}

	return nil
}

// Close releases resources held by the Docker client.
func (s *Service) Close() error {
	if s.cli != nil {
		return s.cli.Close()
	}
	return nil
}

// convertContainer transforms the Docker SDK container type into our domain model.
func convertContainer(c types.Container) Container {
	// Container names start with '/', so we trim it
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	return Container{
		ID:      c.ID,
		Name:    name,
		Image:   c.Image,
		State:   c.State,
		Labels:  c.Labels,
		Created: c.Created,
	}
}
