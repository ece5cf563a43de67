package expand

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/186526/arin-irr-syncer/internal/asset"
)

// fakeRunner records the invocation and replays canned output.
type fakeRunner struct {
	name   string
	args   []string
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func newTestBGPQ(host string, runner *fakeRunner) *BGPQ {
	b := NewBGPQ("bgpq4", host)
	b.run = runner.run
	return b
}

func TestListLabel(t *testing.T) {
	assert.Equal(t, "AS_FOO_Transit", ListLabel("AS-FOO:Transit"))
	assert.Equal(t, "AS64500", ListLabel("AS64500"))

	long := strings.Repeat("A", 100)
	assert.Len(t, ListLabel(long), 64)
}

func TestBGPQArguments(t *testing.T) {
	t.Run("minimal invocation", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO": []}`}
		b := newTestBGPQ("", runner)

		_, err := b.Expand(context.Background(), asset.MemberSpec{Name: "AS-FOO", Flat: true, Depth: -1}, "")
		require.NoError(t, err)
		assert.Equal(t, "bgpq4", runner.name)
		assert.Equal(t, []string{"-t", "-j", "-l", "AS_FOO", "AS-FOO"}, runner.args)
	})

	t.Run("host, sources and depth flags", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO": []}`}
		b := newTestBGPQ("rr.example.net", runner)

		spec := asset.MemberSpec{Name: "AS-FOO", Flat: true, Depth: 2}
		_, err := b.Expand(context.Background(), spec, "ARIN,RADB")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"-t", "-j", "-l", "AS_FOO",
			"-h", "rr.example.net",
			"-S", "ARIN,RADB",
			"-L", "2",
			"AS-FOO",
		}, runner.args)
	})

	t.Run("zero depth is still passed", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO": []}`}
		b := newTestBGPQ("", runner)

		_, err := b.Expand(context.Background(), asset.MemberSpec{Name: "AS-FOO", Depth: 0}, "")
		require.NoError(t, err)
		assert.Contains(t, strings.Join(runner.args, " "), "-L 0")
	})
}

func TestBGPQExpand(t *testing.T) {
	ctx := context.Background()
	spec := asset.MemberSpec{Name: "AS-FOO", Flat: true, Depth: -1}

	t.Run("numbers become AS-prefixed strings", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO": [64500, 64501, 4200000001]}`}
		members, err := newTestBGPQ("", runner).Expand(ctx, spec, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"AS64500", "AS64501", "AS4200000001"}, members)
	})

	t.Run("empty bucket is a valid result", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO": []}`}
		members, err := newTestBGPQ("", runner).Expand(ctx, spec, "")
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("falls back to the first bucket when the label was truncated", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"AS_FOO_trunc": [64500], "other": [1]}`}
		members, err := newTestBGPQ("", runner).Expand(ctx, spec, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"AS64500"}, members)
	})

	t.Run("exact label wins over earlier buckets", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{"other": [1], "AS_FOO": [64500]}`}
		members, err := newTestBGPQ("", runner).Expand(ctx, spec, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"AS64500"}, members)
	})

	t.Run("non-zero exit carries the diagnostic output", func(t *testing.T) {
		runner := &fakeRunner{stderr: "ERROR: no such as-set\n", err: errors.New("exit status 1")}
		_, err := newTestBGPQ("", runner).Expand(ctx, spec, "")

		var expErr *ExpansionError
		require.ErrorAs(t, err, &expErr)
		assert.Equal(t, "AS-FOO", expErr.Member)
		assert.Equal(t, "ERROR: no such as-set", expErr.Output)
	})

	t.Run("unparseable output", func(t *testing.T) {
		runner := &fakeRunner{stdout: "not json at all"}
		_, err := newTestBGPQ("", runner).Expand(ctx, spec, "")

		var malformed *MalformedOutputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "AS-FOO", malformed.Member)
	})

	t.Run("non-object output", func(t *testing.T) {
		runner := &fakeRunner{stdout: `[64500]`}
		_, err := newTestBGPQ("", runner).Expand(ctx, spec, "")

		var malformed *MalformedOutputError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("empty object means no members", func(t *testing.T) {
		runner := &fakeRunner{stdout: `{}`}
		members, err := newTestBGPQ("", runner).Expand(ctx, spec, "")
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
