package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/186526/arin-irr-syncer/internal/app"
)

func TestParse(t *testing.T) {
	t.Run("action with target and flags", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"-to", "rpsl", "-o", "out.rpsl", "expand", "sets/example.yaml"}, &out)
		require.NoError(t, err)
		require.False(t, exit)

		assert.Equal(t, app.ActionExpand, cfg.Action)
		assert.Equal(t, "sets/example.yaml", cfg.Target)
		assert.Equal(t, "rpsl", cfg.OutFormat)
		assert.Equal(t, "out.rpsl", cfg.OutPath)
		assert.Equal(t, "irrsync.hcl", cfg.SettingsPath)
	})

	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("unknown action", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"explode", "x.yaml"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("missing target", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"expand"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "get", "AS-X"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "log-level")
	})
}
