package parsing

import "regexp"

// Matcher is the closed algebra of parsing expressions: every variant
// implements match over a text prefix and carries an optional name
// plus an ordered list of child matchers.
// Matchers are shared and may be visited multiple times; mutation
// happens only during construction and resolution (see
// ReferenceResolver) — after that the graph is read-only.
type Matcher interface {
	// match attempts to consume a prefix of text, returning the
	// produced Node and true on success, or the zero Node and
	// false on failure. match never panics on ill-formed input.
	match(text string) (Node, bool)

	Name() string
	setName(string)
	Children() []Matcher
	setChildren([]Matcher)
}

// matcherBase is embedded by every variant except Reference (which
// carries no children of its own).
type matcherBase struct {
	name     string
	children []Matcher
}

func (m *matcherBase) Name() string            { return m.name }
func (m *matcherBase) setName(n string)        { m.name = n }
func (m *matcherBase) Children() []Matcher     { return m.children }
func (m *matcherBase) setChildren(c []Matcher) { m.children = c }

// node is the shared helper every matcher uses to build its result
// Node, tagging it with the matcher's current name.
func (m *matcherBase) node(text string, children []Node) Node {
	return NewNode(m.name, text, children)
}

// ---- Literal ----

type Literal struct {
	matcherBase
	Value string
}

// NewLiteral returns a matcher that succeeds iff its input starts
// with value, consuming exactly value (the empty string succeeds
// unconditionally, consuming nothing).
func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func (m *Literal) match(text string) (Node, bool) {
	if len(text) < len(m.Value) || text[:len(m.Value)] != m.Value {
		return Node{}, false
	}
	return m.node(m.Value, nil), true
}

// ---- Regex ----

// Regex forwards a bracket-expression or other pattern to the host
// regex engine, anchored at the start of the remaining text. It never
// searches ahead.
type Regex struct {
	matcherBase
	Pattern string
	re      *regexp.Regexp
}

// NewRegex compiles pattern anchored at position 0. It panics on an
// invalid pattern, mirroring how an invalid literal-compiled regular
// expression is a construction-time programmer error, not a per-match
// failure. Only for patterns fixed at compile time by this package
// itself (the meta-grammar); patterns derived from user grammar text
// must go through newRegexFromUserPattern instead.
func NewRegex(pattern string) *Regex {
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	return &Regex{Pattern: pattern, re: re}
}

// newRegexFromUserPattern compiles pattern the same way NewRegex does,
// but reports an invalid pattern as an error instead of panicking: the
// pattern comes from a user's character class, so a syntactically
// valid class per the meta-grammar (e.g. `[z-a]`) can still be an
// invalid regular expression to the host engine, and that must surface
// as a SyntaxError, not bring the process down.
func newRegexFromUserPattern(pattern string) (*Regex, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, newSyntaxError(Span{}, "invalid character class %q: %s", pattern, err.Error())
	}
	return &Regex{Pattern: pattern, re: re}, nil
}

func (m *Regex) match(text string) (Node, bool) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return Node{}, false
	}
	return m.node(text[:loc[1]], nil), true
}

// ---- Sequence ----

// Sequence matches each child against the remaining text in order,
// failing on the first child failure with no backtracking across
// children. The matched children become the Node's children.
type Sequence struct{ matcherBase }

func NewSequence(children ...Matcher) *Sequence {
	s := &Sequence{}
	s.children = children
	return s
}

func (m *Sequence) match(text string) (Node, bool) {
	remaining := text
	var children []Node
	for _, c := range m.children {
		n, ok := c.match(remaining)
		if !ok {
			return Node{}, false
		}
		children = append(children, n)
		remaining = remaining[len(n.Text()):]
	}
	consumed := text[:len(text)-len(remaining)]
	return m.node(consumed, children), true
}

// ---- Or ----

// Or tries children left-to-right and returns on first success. The
// result Node's children is the single successful child's Node.
type Or struct{ matcherBase }

func NewOr(children ...Matcher) *Or {
	o := &Or{}
	o.children = children
	return o
}

func (m *Or) match(text string) (Node, bool) {
	for _, c := range m.children {
		n, ok := c.match(text)
		if ok {
			return m.node(n.Text(), []Node{n}), true
		}
	}
	return Node{}, false
}

// ---- Not (negative lookahead) ----

type Not struct{ matcherBase }

func NewNot(child Matcher) *Not {
	n := &Not{}
	n.children = []Matcher{child}
	return n
}

func (m *Not) match(text string) (Node, bool) {
	if _, ok := m.children[0].match(text); ok {
		return Node{}, false
	}
	return m.node("", nil), true
}

// ---- And (positive lookahead) ----

type And struct{ matcherBase }

func NewAnd(child Matcher) *And {
	a := &And{}
	a.children = []Matcher{child}
	return a
}

func (m *And) match(text string) (Node, bool) {
	if _, ok := m.children[0].match(text); !ok {
		return Node{}, false
	}
	return m.node("", nil), true
}

// ---- repetition (OneOrMore, ZeroOrMore, Optional) ----

// repeat is the shared repetition loop backing OneOrMore, ZeroOrMore
// and Optional: it repeatedly matches child against the remaining
// text, stopping when child fails or when it succeeds while consuming
// no input (the guard against infinite loops on e.g. `a*` matching
// zero-width matchers).
func repeat(child Matcher, text string, lower, upper int) ([]Node, string, bool) {
	remaining := text
	var matched []Node
	for upper < 0 || len(matched) < upper {
		n, ok := child.match(remaining)
		if !ok {
			break
		}
		matched = append(matched, n)
		remaining = remaining[len(n.Text()):]
		if len(n.Text()) == 0 {
			break
		}
	}
	if len(matched) < lower {
		return nil, text, false
	}
	consumed := text[:len(text)-len(remaining)]
	return matched, consumed, true
}

type OneOrMore struct{ matcherBase }

func NewOneOrMore(child Matcher) *OneOrMore {
	m := &OneOrMore{}
	m.children = []Matcher{child}
	return m
}

func (m *OneOrMore) match(text string) (Node, bool) {
	children, consumed, ok := repeat(m.children[0], text, 1, -1)
	if !ok {
		return Node{}, false
	}
	return m.node(consumed, children), true
}

type ZeroOrMore struct{ matcherBase }

func NewZeroOrMore(child Matcher) *ZeroOrMore {
	m := &ZeroOrMore{}
	m.children = []Matcher{child}
	return m
}

func (m *ZeroOrMore) match(text string) (Node, bool) {
	children, consumed, ok := repeat(m.children[0], text, 0, -1)
	if !ok {
		return Node{}, false
	}
	return m.node(consumed, children), true
}

type Optional struct{ matcherBase }

func NewOptional(child Matcher) *Optional {
	m := &Optional{}
	m.children = []Matcher{child}
	return m
}

func (m *Optional) match(text string) (Node, bool) {
	children, consumed, ok := repeat(m.children[0], text, 0, 1)
	if !ok {
		return Node{}, false
	}
	return m.node(consumed, children), true
}

// ---- Reference ----

// Reference is a placeholder matcher naming another rule; it carries
// no child matchers and is eliminated by ReferenceResolver. A
// Reference reachable from the root after resolution is a defect.
type Reference struct {
	name   string
	Target string
}

func NewReference(target string) *Reference {
	return &Reference{Target: target}
}

func (m *Reference) Name() string          { return m.name }
func (m *Reference) setName(n string)      { m.name = n }
func (m *Reference) Children() []Matcher   { return nil }
func (m *Reference) setChildren([]Matcher) {}

// match on an unresolved Reference is a programmer error: it should
// never be invoked, since ReferenceResolver.Resolve eliminates every
// reachable Reference before a grammar is used.
func (m *Reference) match(text string) (Node, bool) {
	panic("parsing: unresolved Reference " + m.Target + " reached at match time")
}
