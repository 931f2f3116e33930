package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONData(t *testing.T) {
	var buf bytes.Buffer

	status := CheckStatus{
		ComposeFile: "/srv/stack/docker-compose.yml",
		Status:      "up_to_date",
		Hour:        5,
		Timezone:    "UTC",
		Schedule:    "0 0 5 * * *",
	}
	require.NoError(t, WriteJSONData(&buf, status))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Equal(t, Version, resp.Version)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "up_to_date", data["status"])
	assert.Equal(t, "0 0 5 * * *", data["schedule"])
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse(errors.New("no compose file found"))

	assert.False(t, resp.Success)
	assert.Equal(t, "no compose file found", resp.Error)
	assert.Nil(t, resp.Data)
}
