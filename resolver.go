package parsing

// NamedMatcher pairs a top-level matcher with the rule name it was
// parsed under. GrammarGenerator produces an ordered list of these;
// ReferenceResolver consumes it.
type NamedMatcher struct {
	Name    string
	Matcher Matcher
}

// ReferenceResolver rewrites an ordered list of named top-level
// matchers into a resolved graph where every Reference has been
// replaced by the actual matcher object it names. The resulting graph
// may be cyclic: grammar rules are recursive by nature.
type ReferenceResolver struct {
	order  []string
	byName map[string]Matcher
}

// NewReferenceResolver builds a resolver over rules, preserving rules
// in order so the first rule remains the entry point.
func NewReferenceResolver(rules []NamedMatcher) *ReferenceResolver {
	byName := make(map[string]Matcher, len(rules))
	order := make([]string, 0, len(rules))
	for _, r := range rules {
		byName[r.Name] = r.Matcher
		order = append(order, r.Name)
	}
	return &ReferenceResolver{order: order, byName: byName}
}

// Resolve rewrites the graph in place and returns the fully resolved
// entry matcher (the first rule registered). It fails with
// UnknownRuleError if any reachable Reference names a rule absent
// from the registry.
func (r *ReferenceResolver) Resolve() (Matcher, error) {
	if len(r.order) == 0 {
		return nil, UnknownRuleError{Name: ""}
	}
	return r.resolve(r.byName[r.order[0]])
}

// resolve performs a depth-first detach/reattach rewrite. Detaching a
// matcher's child list before recursing into its former children is
// what keeps a self-referential rule from
// recursing forever: when the in-progress matcher is re-encountered
// through one of its own descendants, its child list is already empty
// and the recursive call returns immediately, tying the knot once the
// outer call reattaches the real, fully resolved children.
func (r *ReferenceResolver) resolve(m Matcher) (Matcher, error) {
	if ref, ok := m.(*Reference); ok {
		target, ok := r.byName[ref.Target]
		if !ok {
			return nil, UnknownRuleError{Name: ref.Target}
		}
		return r.resolve(target)
	}

	children := m.Children()
	m.setChildren(nil)

	resolved := make([]Matcher, 0, len(children))
	for _, c := range children {
		rc, err := r.resolve(c)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rc)
	}
	m.setChildren(resolved)
	return m, nil
}
