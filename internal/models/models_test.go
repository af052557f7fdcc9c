package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireNamesAreSnakeCase(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	for name, v := range map[string]any{
		"profile":    Profile{ID: "u", CreatedAt: at, UpdatedAt: at},
		"generation": Generation{ID: "g", Result: json.RawMessage(`{}`), CreatedAt: at},
	} {
		body, err := json.Marshal(v)
		require.NoError(t, err, name)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields), name)
		for key := range fields {
			assert.Regexp(t, `^[a-z]+(_[a-z]+)*$`, key, name)
		}
		assert.Contains(t, fields, "created_at", name)
	}
}
