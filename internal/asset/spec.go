package asset

import (
	"sort"
	"strings"
)

// reservedKeys are mapping keys that configure the other entries of the same
// mapping instead of naming a member.
var reservedKeys = map[string]struct{}{
	"flat":   {},
	"depth":  {},
	"source": {},
}

// ParseMembers normalizes a loosely-typed members list into MemberSpec
// records. Each element is either a plain string name or a mapping whose keys
// are member names; a mapping value is nil or a config object with optional
// flat/depth/source fields. The reserved keys flat, depth and source at the
// mapping's top level act as shared defaults for every member named in that
// mapping, overridden per member only for fields the member's own config
// object carries.
//
// The members list is user-edited, so parsing is permissive: entries with
// empty or whitespace-only names and entries of unrecognized shape are
// dropped silently.
func ParseMembers(items []any) []MemberSpec {
	var specs []MemberSpec
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				specs = append(specs, NewMemberSpec(name))
			}
		default:
			if entries, ok := asStringMap(item); ok {
				specs = append(specs, parseMapping(entries)...)
			}
		}
	}
	return specs
}

// parseMapping expands one members mapping into zero or more specs.
func parseMapping(entries map[string]any) []MemberSpec {
	defaults := MemberSpec{Depth: -1}
	applyConfig(&defaults, entries)

	names := make([]string, 0, len(entries))
	for key := range entries {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if name := strings.TrimSpace(key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	specs := make([]MemberSpec, 0, len(names))
	for _, name := range names {
		spec := defaults
		spec.Name = name
		if cfg, ok := asStringMap(entries[name]); ok {
			applyConfig(&spec, cfg)
		}
		specs = append(specs, spec)
	}
	return specs
}

// applyConfig overwrites spec fields for which cfg carries a usable value.
// Fields absent from cfg keep whatever the spec already holds.
func applyConfig(spec *MemberSpec, cfg map[string]any) {
	if flat, ok := asBool(cfg["flat"]); ok {
		spec.Flat = flat
	}
	if depth, ok := asInt(cfg["depth"]); ok && depth >= 0 {
		spec.Depth = depth
	}
	if source, ok := cfg["source"].(string); ok {
		spec.Sources = strings.TrimSpace(source)
	}
}

// asStringMap accepts the two mapping shapes YAML decoders produce.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for key, val := range m {
			if s, ok := key.(string); ok {
				out[s] = val
			}
		}
		return out, true
	}
	return nil, false
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt widens the numeric types YAML decoders use for integers.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
