package parsing

import (
	"regexp"
	"strings"
)

// generatorHandler folds one named Node, given the node itself (for
// handlers that need raw text) and its already-folded children (for
// handlers that compose them).
type generatorHandler func(n Node, children []any) (any, error)

// GrammarGenerator is a visitor keyed on Node.Name that folds a
// meta-parse tree into a list of named top-level matchers, with
// unresolved Reference nodes standing in for cross-rule calls. Nodes
// whose name has no registered handler pass through unchanged — that
// covers every synthetic trivia rule of the meta-grammar (spacing,
// comment, and, not, slash, …) whose folded value nothing downstream
// reads.
type GrammarGenerator struct {
	handlers map[string]generatorHandler
}

// NewGrammarGenerator builds a generator wired with the standard
// handler table for the meta-grammar's node names.
func NewGrammarGenerator() *GrammarGenerator {
	g := &GrammarGenerator{handlers: map[string]generatorHandler{}}
	g.handlers["identifier__regex"] = handleIdentifierRegex
	g.handlers["identifier"] = handleIdentifier
	g.handlers["literal"] = handleLiteral
	g.handlers["class"] = handleClass
	g.handlers["dot"] = handleDot
	g.handlers["definition"] = handleDefinition
	g.handlers["expression"] = handleExpression
	g.handlers["expression__zeroormore"] = handleFoldList
	g.handlers["expression__sequence"] = handleExpressionSequence
	g.handlers["grammar__oneormore"] = handleFoldList
	g.handlers["primary__sequence"] = handlePrimarySequence
	g.handlers["primary__parens"] = handlePrimaryParens
	g.handlers["primary"] = handlePrimary
	g.handlers["prefix__optional"] = handleRawOptional
	g.handlers["suffix__optional"] = handleRawOptional
	g.handlers["prefix"] = handlePrefix
	g.handlers["suffix"] = handleSuffix
	g.handlers["sequence"] = handleSequence
	g.handlers["grammar"] = handleGrammar
	return g
}

// Generate folds root (the meta-grammar's parse of a user grammar's
// source) into the ordered list of named top-level matchers, in
// source order, first rule first.
func (g *GrammarGenerator) Generate(root Node) ([]NamedMatcher, error) {
	v, err := g.fold(root)
	if err != nil {
		return nil, err
	}
	defs, ok := v.([]Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "grammar did not fold to a definition list")
	}
	rules := make([]NamedMatcher, len(defs))
	for i, m := range defs {
		rules[i] = NamedMatcher{Name: m.Name(), Matcher: m}
	}
	return rules, nil
}

func (g *GrammarGenerator) fold(n Node) (any, error) {
	children := make([]any, len(n.Children()))
	for i, c := range n.Children() {
		v, err := g.fold(c)
		if err != nil {
			return nil, err
		}
		children[i] = v
	}
	handler, ok := g.handlers[n.Name()]
	if !ok {
		return n, nil
	}
	return handler(n, children)
}

// ---- leaf handlers ----

func handleIdentifierRegex(n Node, _ []any) (any, error) {
	return n.Text(), nil
}

func handleIdentifier(_ Node, children []any) (any, error) {
	name, _ := children[0].(string)
	return NewReference(name), nil
}

var literalQuote = regexp.MustCompile(`^'.*?'|^".*?"`)

func handleLiteral(n Node, _ []any) (any, error) {
	raw := literalQuote.FindString(n.Text())
	content, err := extractQuoted(raw)
	if err != nil {
		return nil, err
	}
	value, err := unescapeLiteral(content)
	if err != nil {
		return nil, err
	}
	return NewLiteral(value), nil
}

var classBracket = regexp.MustCompile(`^\[.*?\]`)

func handleClass(n Node, _ []any) (any, error) {
	return newRegexFromUserPattern(classBracket.FindString(n.Text()))
}

func handleDot(_ Node, _ []any) (any, error) {
	return NewRegex("."), nil
}

// ---- composite handlers ----

func handleDefinition(_ Node, children []any) (any, error) {
	ref, ok := children[0].(*Reference)
	if !ok {
		return nil, newSyntaxError(Span{}, "definition is missing its identifier")
	}
	m, ok := children[2].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "definition %q is missing its expression", ref.Target)
	}
	m.setName(ref.Target)
	return m, nil
}

func handleExpression(_ Node, children []any) (any, error) {
	head, ok := children[0].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "expression is missing its first sequence")
	}
	tail, _ := children[1].([]Matcher)
	if len(tail) == 0 {
		return head, nil
	}
	return NewOr(append([]Matcher{head}, tail...)...), nil
}

func handleExpressionSequence(_ Node, children []any) (any, error) {
	m, ok := children[1].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "alternative is missing its sequence")
	}
	return m, nil
}

// handleFoldList is shared by expression__zeroormore and
// grammar__oneormore: both simply hand back the list of already
// folded matchers their repetition collected.
func handleFoldList(_ Node, children []any) (any, error) {
	list := make([]Matcher, len(children))
	for i, c := range children {
		m, ok := c.(Matcher)
		if !ok {
			return nil, newSyntaxError(Span{}, "expected a matcher in repeated item %d", i)
		}
		list[i] = m
	}
	return list, nil
}

func handlePrimarySequence(_ Node, children []any) (any, error) {
	m, ok := children[0].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "primary is missing its identifier")
	}
	return m, nil
}

func handlePrimaryParens(_ Node, children []any) (any, error) {
	m, ok := children[1].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "parenthesized primary is missing its expression")
	}
	return m, nil
}

func handlePrimary(_ Node, children []any) (any, error) {
	if len(children) == 0 {
		return nil, newSyntaxError(Span{}, "primary has no alternative")
	}
	return children[0], nil
}

// handleRawOptional is a deliberate shortcut: rather than folding
// children, it reads the node's own raw consumed text and keeps only
// the leading operator glyph, dropping the spacing (whitespace and
// comments) that trails it. Correct and simple for the
// single-character operators this engine supports.
func handleRawOptional(n Node, _ []any) (any, error) {
	text := n.Text()
	if text == "" {
		return "", nil
	}
	return text[:1], nil
}

func handlePrefix(_ Node, children []any) (any, error) {
	glyph, _ := children[0].(string)
	m, ok := children[1].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "prefix is missing its suffix")
	}
	switch glyph {
	case "&":
		return NewAnd(m), nil
	case "!":
		return NewNot(m), nil
	default:
		return m, nil
	}
}

func handleSuffix(_ Node, children []any) (any, error) {
	m, ok := children[0].(Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "suffix is missing its primary")
	}
	glyph, _ := children[1].(string)
	switch glyph {
	case "?":
		return NewOptional(m), nil
	case "*":
		return NewZeroOrMore(m), nil
	case "+":
		return NewOneOrMore(m), nil
	default:
		return m, nil
	}
}

func handleSequence(_ Node, children []any) (any, error) {
	if len(children) == 1 {
		if m, ok := children[0].(Matcher); ok {
			return m, nil
		}
	}
	list := make([]Matcher, len(children))
	for i, c := range children {
		m, ok := c.(Matcher)
		if !ok {
			return nil, newSyntaxError(Span{}, "sequence item %d is not a matcher", i)
		}
		list[i] = m
	}
	return NewSequence(list...), nil
}

func handleGrammar(_ Node, children []any) (any, error) {
	defs, ok := children[1].([]Matcher)
	if !ok {
		return nil, newSyntaxError(Span{}, "grammar has no definitions")
	}
	return defs, nil
}

// ---- literal helpers ----

// extractQuoted strips the surrounding quote characters from raw (a
// quoted literal matched verbatim, e.g. `'abc'`) and returns its
// inner content. Escaped quotes are not supported inside literals.
func extractQuoted(raw string) (string, error) {
	if len(raw) < 2 {
		return "", newSyntaxError(Span{}, "malformed literal %q", raw)
	}
	return raw[1 : len(raw)-1], nil
}

// unescapeLiteral recognizes \n, \t, \r, \\, and the matching quote;
// any other escape sequence is a grammar syntax error.
func unescapeLiteral(s string) (string, error) {
	var b strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' {
			b.WriteRune(rs[i])
			continue
		}
		i++
		if i >= len(rs) {
			return "", newSyntaxError(Span{}, "unterminated escape in literal %q", s)
		}
		switch rs[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '\\':
			b.WriteRune('\\')
		case '\'':
			b.WriteRune('\'')
		case '"':
			b.WriteRune('"')
		default:
			return "", newSyntaxError(Span{}, "unknown escape sequence \\%c in literal %q", rs[i], s)
		}
	}
	return b.String(), nil
}
