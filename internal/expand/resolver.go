package expand

import (
	"context"
	"time"

	"github.com/186526/arin-irr-syncer/internal/asset"
	"github.com/186526/arin-irr-syncer/internal/ctxlog"
)

// Policy selects what a flat member that expands to zero AS numbers
// contributes to the output.
type Policy string

const (
	// PolicyKeep keeps the unexpandable AS-SET as an opaque literal member.
	PolicyKeep Policy = "keep"
	// PolicyEmpty drops the member from the output.
	PolicyEmpty Policy = "empty"
	// PolicyError fails the resolve with an EmptySetError.
	PolicyError Policy = "error"
)

// ParsePolicy validates a user-supplied empty-result policy name. An empty
// name selects the default, PolicyKeep.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case "":
		return PolicyKeep, nil
	case PolicyKeep, PolicyEmpty, PolicyError:
		return Policy(name), nil
	}
	return "", &invalidPolicyError{name}
}

type invalidPolicyError struct{ name string }

func (e *invalidPolicyError) Error() string {
	return "unknown on-empty policy \"" + e.name + "\" (want keep, empty or error)"
}

// Expander produces the ordered AS-number list for one member spec. BGPQ is
// the production implementation.
type Expander interface {
	Expand(ctx context.Context, spec asset.MemberSpec, sources string) ([]string, error)
}

// Options tune one resolver instance.
type Options struct {
	// Timeout bounds each external expansion invocation.
	Timeout time.Duration
	// OnEmpty selects the empty-result policy. Default PolicyKeep.
	OnEmpty Policy
}

// DefaultTimeout bounds an expansion invocation when Options leaves it unset.
const DefaultTimeout = 30 * time.Second

// Resolver turns member specs into their final contribution to an AS-SET's
// member list, deduplicating expansion work through its cache.
type Resolver struct {
	expander Expander
	cache    *Cache
	opts     Options
}

// NewResolver builds a resolver around expander with a fresh cache.
func NewResolver(expander Expander, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.OnEmpty == "" {
		opts.OnEmpty = PolicyKeep
	}
	return &Resolver{
		expander: expander,
		cache:    NewCache(),
		opts:     opts,
	}
}

// Flatten resolves one spec. Non-flat members pass through literally without
// touching the expander. Flat members are expanded against sources; when a
// targeted source list yields nothing, one retry against the default source
// set is attempted before the empty-result policy applies.
func (r *Resolver) Flatten(ctx context.Context, spec asset.MemberSpec, sources string) ([]string, error) {
	if !spec.Flat {
		return []string{spec.Name}, nil
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Flattening member.", "name", spec.Name, "depth", spec.Depth, "sources", sources)

	members, err := r.expand(ctx, spec, sources)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 && sources != "" {
		logger.Debug("Targeted sources yielded nothing, retrying against default source set.", "name", spec.Name)
		members, err = r.expand(ctx, spec, "")
		if err != nil {
			return nil, err
		}
	}
	if len(members) > 0 {
		return members, nil
	}

	switch r.opts.OnEmpty {
	case PolicyEmpty:
		logger.Warn("Member expanded to zero AS numbers, dropping it.", "name", spec.Name)
		return nil, nil
	case PolicyError:
		return nil, &EmptySetError{Member: spec.Name}
	default:
		logger.Warn("Member expanded to zero AS numbers, keeping it literally.", "name", spec.Name)
		return []string{spec.Name}, nil
	}
}

// Resolve flattens specs in input order and merges the results into one
// deduplicated member set. Per-spec source overrides fall back to
// defaultSources. The first failing spec aborts the whole resolve; there is
// no partial-result mode.
func (r *Resolver) Resolve(ctx context.Context, specs []asset.MemberSpec, defaultSources string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, spec := range specs {
		sources := spec.Sources
		if sources == "" {
			sources = defaultSources
		}
		members, err := r.Flatten(ctx, spec, sources)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	ctxlog.FromContext(ctx).Debug("Member list resolved.", "specs", len(specs), "members", len(out))
	return out, nil
}

// expand runs one deduplicated expansion call, bounding the external
// invocation with the configured timeout.
func (r *Resolver) expand(ctx context.Context, spec asset.MemberSpec, sources string) ([]string, error) {
	return r.cache.GetOrStart(ctx, Key(spec.Name, spec.Depth, sources), func() ([]string, error) {
		callCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
		return r.expander.Expand(callCtx, spec, sources)
	})
}
