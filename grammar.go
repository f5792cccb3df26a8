package parsing

// Grammar is the façade that composes the meta-grammar parse, the
// GrammarGenerator visitor, and ReferenceResolver into a single
// pipeline from grammar source text to an executable matcher graph.
type Grammar struct {
	name string
	root Matcher
}

// Option configures optional, non-semantic behavior of a Grammar.
type Option func(*grammarOptions)

type grammarOptions struct {
	tracer Tracer
}

// WithTracer attaches a Tracer invoked on every named rule's entry
// and exit while parsing.
func WithTracer(t Tracer) Option {
	return func(o *grammarOptions) { o.tracer = t }
}

// NewGrammar compiles PEG notation source into a Grammar. The
// grammar's name is the name of the first rule parsed from source;
// Parse always starts from that root.
func NewGrammar(source string, opts ...Option) (*Grammar, error) {
	var options grammarOptions
	for _, opt := range opts {
		opt(&options)
	}

	tree, err := parseWithMetaGrammar(source)
	if err != nil {
		return nil, err
	}

	rules, err := NewGrammarGenerator().Generate(tree)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, newSyntaxError(Span{}, "grammar defines no rules")
	}
	rules = decorateWithTracer(rules, options.tracer)

	root, err := NewReferenceResolver(rules).Resolve()
	if err != nil {
		return nil, err
	}

	return &Grammar{name: rules[0].Name, root: root}, nil
}

// Name returns the name of the grammar's root rule.
func (g *Grammar) Name() string { return g.name }

// Parse matches input against the grammar's root rule. It fails with
// SyntaxError when the root match fails outright, or when it
// succeeds without consuming the entire input.
func (g *Grammar) Parse(input string) (Node, error) {
	n, ok := g.root.match(input)
	if !ok {
		return Node{}, newSyntaxError(spanFor(input, 0, 0), "no match near \"%s\"", preview(input))
	}
	if len(n.Text()) != len(input) {
		rest := input[len(n.Text()):]
		return Node{}, newSyntaxError(spanFor(input, len(n.Text()), len(n.Text())), "unexpected input near \"%s\"", preview(rest))
	}
	return n, nil
}

// parseWithMetaGrammar runs the engine's own bootstrapped meta-grammar
// over source, the grammar text a client wants compiled.
func parseWithMetaGrammar(source string) (Node, error) {
	n, ok := metaGrammar.match(source)
	if !ok {
		return Node{}, newSyntaxError(spanFor(source, 0, 0), "invalid grammar syntax near \"%s\"", preview(source))
	}
	if len(n.Text()) != len(source) {
		rest := source[len(n.Text()):]
		return Node{}, newSyntaxError(spanFor(source, len(n.Text()), len(n.Text())), "invalid grammar syntax near \"%s\"", preview(rest))
	}
	return n, nil
}
