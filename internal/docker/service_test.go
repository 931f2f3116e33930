package docker

import (
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByImage(t *testing.T) {
	containers := []Container{
		{ID: "a1", Name: "postgres", Image: "postgres:15"},
		{ID: "b2", Name: "n8n", Image: "n8nio/n8n:1.64.0"},
		{ID: "c3", Name: "watchtower", Image: "containrrr/watchtower:latest"},
	}

	t.Run("matches by image substring", func(t *testing.T) {
		c, found := FindByImage(containers, "n8n")
		require.True(t, found)
		assert.Equal(t, "b2", c.ID)

		c, found = FindByImage(containers, "containrrr/watchtower")
		require.True(t, found)
		assert.Equal(t, "c3", c.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, found := FindByImage(containers, "redis")
		assert.False(t, found)
	})

	t.Run("empty substring never matches", func(t *testing.T) {
		_, found := FindByImage(containers, "")
		assert.False(t, found)
	})
}

func TestConvertContainer(t *testing.T) {
	c := convertContainer(types.Container{
		ID:     "abc123",
		Names:  []string{"/n8n"},
		Image:  "n8nio/n8n:latest",
		State:  "running",
		Labels: map[string]string{"com.docker.compose.service": "n8n"},
	})

	assert.Equal(t, "abc123", c.ID)
	assert.Equal(t, "n8n", c.Name)
	assert.Equal(t, "n8nio/n8n:latest", c.Image)
	assert.Equal(t, "running", c.State)
	assert.Equal(t, "n8n", c.Labels["com.docker.compose.service"])
}

func TestComposeArgs(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		args := validateArgs("/srv/stack/docker-compose.yml")
		assert.Equal(t, []string{
			"compose",
			"--project-directory", "/srv/stack",
			"-f", "/srv/stack/docker-compose.yml",
			"config",
			"-q",
		}, args)
	})

	t.Run("up", func(t *testing.T) {
		args := upArgs("/srv/stack/docker-compose.yml")
		assert.Equal(t, []string{
			"compose",
			"--project-directory", "/srv/stack",
			"-f", "/srv/stack/docker-compose.yml",
			"up",
			"-d",
		}, args)
	})

	t.Run("restart forces recreation", func(t *testing.T) {
		args := restartArgs("/srv/stack/docker-compose.yml")
		assert.Equal(t, []string{
			"compose",
			"--project-directory", "/srv/stack",
			"-f", "/srv/stack/docker-compose.yml",
			"up",
			"-d",
			"--force-recreate",
		}, args)
	})
}
