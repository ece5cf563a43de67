package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := NewConfig(Config{Action: ActionGet, Target: "AS-EXAMPLE"})
		require.NoError(t, err)
		assert.Equal(t, ActionGet, cfg.Action)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := NewConfig(Config{Action: "explode", Target: "x"})
		assert.Error(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := NewConfig(Config{Action: ActionExpand})
		assert.Error(t, err)
	})
}
