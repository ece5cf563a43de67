// Package asset defines the AS-SET object model shared by the format codecs,
// the member resolver and the registry client, plus the permissive parser that
// turns a user-edited members list into canonical MemberSpec records.
package asset

// ASSet is the in-memory representation of one IRR AS-SET object. All three
// textual formats (YAML, RPSL, XML) decode into and encode from this struct.
type ASSet struct {
	Name        string
	Description string
	AdminC      string
	TechC       string
	Maintainer  string
	Source      string
	Remarks     []string
	Members     []MemberSpec
}

// MemberSpec is one declared AS-SET member. Specs are produced by the parser
// (or PlainMembers) and never mutated afterwards.
type MemberSpec struct {
	// Name is the trimmed, non-empty member identifier (an AS number or a
	// nested AS-SET name).
	Name string

	// Flat marks the member for recursive expansion into plain AS numbers.
	Flat bool

	// Depth bounds the expansion recursion. Negative means unbounded.
	Depth int

	// Sources names the registry databases to query during expansion,
	// e.g. "ARIN,RADB". Empty means the resolver's default source list.
	Sources string
}

// NewMemberSpec returns a plain, non-flattened spec for name with no depth
// bound and no source override.
func NewMemberSpec(name string) MemberSpec {
	return MemberSpec{Name: name, Depth: -1}
}

// PlainMembers wraps resolved member strings back into plain specs, for
// assigning a resolver result onto an AS-SET object's member list.
func PlainMembers(names []string) []MemberSpec {
	specs := make([]MemberSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, NewMemberSpec(name))
	}
	return specs
}

// MemberNames returns the declared member names in order, ignoring any
// per-member expansion annotations.
func (s *ASSet) MemberNames() []string {
	names := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		names = append(names, m.Name)
	}
	return names
}
