package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clevermation/watchsmith/internal/merge"
)

func TestBuildWatchtowerBlock(t *testing.T) {
	t.Run("renders schedule and timezone", func(t *testing.T) {
		block, err := BuildWatchtowerBlock(5, "Europe/Madrid")
		require.NoError(t, err)

		assert.Contains(t, block, "WATCHTOWER_SCHEDULE=0 0 5 * * *")
		assert.Contains(t, block, "TZ=Europe/Madrid")
		assert.Contains(t, block, "image: containrrr/watchtower")

		key, ok := merge.TopLevelKey(block)
		require.True(t, ok)
		assert.Equal(t, ServiceName, key)

		// Every line after the key must be indented so the merge treats
		// the block as a single unit.
		lines := strings.Split(block, "\n")
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "line %q not indented", line)
		}
	})

	t.Run("accepts boundary hours", func(t *testing.T) {
		for _, hour := range []int{0, 23} {
			block, err := BuildWatchtowerBlock(hour, "UTC")
			require.NoError(t, err)
			assert.Contains(t, block, ScheduleExpression(hour))
		}
	})

	t.Run("rejects out of range hour", func(t *testing.T) {
		_, err := BuildWatchtowerBlock(24, "UTC")
		assert.Error(t, err)

		_, err = BuildWatchtowerBlock(-1, "UTC")
		assert.Error(t, err)
	})

	t.Run("rejects empty or multi-line timezone", func(t *testing.T) {
		_, err := BuildWatchtowerBlock(5, "  ")
		assert.Error(t, err)

		_, err = BuildWatchtowerBlock(5, "Europe/Madrid\nevil: true")
		assert.Error(t, err)
	})
}

func TestBackupName(t *testing.T) {
	at := time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "docker-compose.yml.backup.20240131-093000",
		BackupName("docker-compose.yml", at))
}
