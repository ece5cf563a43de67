package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "example.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`
as-set: AS-EXAMPLE
descr: Example network
members:
  - AS64500
  - AS-CUSTOMERS
`), 0o644))

	t.Run("yaml to rpsl on stdout", func(t *testing.T) {
		cfg, err := NewConfig(Config{
			Action:    ActionConvert,
			Target:    src,
			OutFormat: "rpsl",
			LogLevel:  "error",
		})
		require.NoError(t, err)

		var out, errOut bytes.Buffer
		a, err := NewApp(&out, &errOut, cfg)
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background(), cfg))

		assert.Contains(t, out.String(), "as-set:         AS-EXAMPLE")
		assert.Contains(t, out.String(), "AS64500, AS-CUSTOMERS")
	})

	t.Run("same format to file", func(t *testing.T) {
		dst := filepath.Join(dir, "copy.yaml")
		cfg, err := NewConfig(Config{
			Action:   ActionConvert,
			Target:   src,
			OutPath:  dst,
			LogLevel: "error",
		})
		require.NoError(t, err)

		var out, errOut bytes.Buffer
		a, err := NewApp(&out, &errOut, cfg)
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background(), cfg))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Contains(t, string(data), "as-set: AS-EXAMPLE")
		assert.Empty(t, out.String())
	})

	t.Run("unknown extension is rejected", func(t *testing.T) {
		cfg, err := NewConfig(Config{Action: ActionConvert, Target: "example.toml", LogLevel: "error"})
		require.NoError(t, err)

		var out, errOut bytes.Buffer
		a, err := NewApp(&out, &errOut, cfg)
		require.NoError(t, err)
		assert.Error(t, a.Run(context.Background(), cfg))
	})
}
