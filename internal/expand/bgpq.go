package expand

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/186526/arin-irr-syncer/internal/asset"
	"github.com/186526/arin-irr-syncer/internal/ctxlog"
)

// maxLabelLen is the longest object name the expansion tool accepts for -l.
const maxLabelLen = 64

// runnerFunc executes one external command and returns its stdout and stderr.
// It exists as a seam so adapter tests run without a bgpq binary.
type runnerFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// BGPQ invokes a bgpq-style route-filter generator to expand one AS-SET
// member into its constituent AS numbers.
type BGPQ struct {
	// Command is the tool to invoke, e.g. "bgpq4".
	Command string
	// Host is an optional IRR server to query instead of the tool's default.
	Host string

	run runnerFunc
}

// NewBGPQ returns an adapter invoking command, querying host when non-empty.
func NewBGPQ(command, host string) *BGPQ {
	if command == "" {
		command = "bgpq4"
	}
	return &BGPQ{Command: command, Host: host, run: runCommand}
}

// Expand resolves spec into AS-number strings ("AS" + number). An empty
// result is valid: the tool legitimately reporting no members is not an
// error. The caller bounds the invocation through ctx.
func (b *BGPQ) Expand(ctx context.Context, spec asset.MemberSpec, sources string) ([]string, error) {
	label := ListLabel(spec.Name)
	args := b.buildArgs(label, spec, sources)

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Invoking expansion tool.", "command", b.Command, "args", args)

	stdout, stderr, err := b.run(ctx, b.Command, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return nil, &ExpansionError{
			Member: spec.Name,
			Output: strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}

	numbers, err := parseExpansion(stdout, label)
	if err != nil {
		return nil, &MalformedOutputError{Member: spec.Name, Err: err}
	}

	members := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if s := strings.TrimSpace(n.String()); s != "" {
			members = append(members, "AS"+s)
		}
	}
	logger.Debug("Expansion tool finished.", "member", spec.Name, "count", len(members))
	return members, nil
}

func (b *BGPQ) buildArgs(label string, spec asset.MemberSpec, sources string) []string {
	args := []string{"-t", "-j", "-l", label}
	if b.Host != "" {
		args = append(args, "-h", b.Host)
	}
	if sources != "" {
		args = append(args, "-S", sources)
	}
	if spec.Depth >= 0 {
		args = append(args, "-L", fmt.Sprint(spec.Depth))
	}
	return append(args, spec.Name)
}

// ListLabel derives the tool's object label from a member name: the tool only
// accepts alphanumerics and underscores, capped at 64 characters.
func ListLabel(name string) string {
	label := make([]byte, 0, len(name))
	for i := 0; i < len(name) && i < maxLabelLen; i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			label = append(label, c)
		default:
			label = append(label, '_')
		}
	}
	return string(label)
}

// parseExpansion extracts the AS-number bucket from the tool's JSON output.
// The bucket under label wins; when the exact label is absent (the tool
// truncates long labels in ways that are hard to predict) the first bucket in
// document order is used instead.
func parseExpansion(data []byte, label string) ([]json.Number, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("not valid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("output is not a JSON object")
	}

	var first []json.Number
	haveFirst := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading bucket name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in object", keyTok)
		}
		var values []json.Number
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("bucket %q: %w", key, err)
		}
		if key == label {
			return values, nil
		}
		if !haveFirst {
			first, haveFirst = values, true
		}
	}
	return first, nil
}
