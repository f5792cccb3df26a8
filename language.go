package parsing

import "fmt"

// RawAction is a rule callback that receives the raw matched Node and
// returns a user value.
type RawAction func(Node) any

// FoldedAction is a rule callback that receives the matched Node
// along with its already-evaluated child values, in source order.
// Distinguishing the two by named type rather than by reflecting on
// callback arity keeps dispatch a plain type switch.
type FoldedAction func(Node, []any) any

// Language binds semantic action callbacks to grammar rule names and
// folds a parse tree into user values. Rules may be registered as
// already-built Matchers or as `name <- expression` source fragments
// compiled through the same meta-grammar and generator a full Grammar
// uses. Registration order determines which rule is the root; the
// registry is meant to be built once at initialization and not
// mutated while Eval runs concurrently.
type Language struct {
	order   []string
	byName  map[string]Matcher
	actions map[string]any
	tracer  Tracer

	compiled bool
	root     Matcher
	compErr  error
}

// NewLanguage returns an empty Language with no registered rules.
func NewLanguage() *Language {
	return &Language{byName: map[string]Matcher{}, actions: map[string]any{}}
}

// SetTracer attaches a Tracer invoked on every named rule's entry and
// exit, applied the next time the registry is compiled.
func (l *Language) SetTracer(t Tracer) {
	l.tracer = t
	l.compiled = false
}

// Rule registers a rule under spec, which is either a Matcher (its
// Name must already be set) or a `name <- expression` source
// fragment, together with an optional action: nil, a RawAction, or a
// FoldedAction. Any other action type is a DispatchError. Registering
// the same name again replaces its matcher and action but keeps its
// original position in the root-determining order.
func (l *Language) Rule(spec any, action any) error {
	switch action.(type) {
	case nil, RawAction, FoldedAction:
	default:
		return DispatchError{Message: fmt.Sprintf("unsupported action type %T", action)}
	}

	name, matcher, err := ruleSpecToMatcher(spec)
	if err != nil {
		return err
	}

	if _, exists := l.byName[name]; !exists {
		l.order = append(l.order, name)
	}
	l.byName[name] = matcher
	l.actions[name] = action
	l.compiled = false
	return nil
}

func ruleSpecToMatcher(spec any) (string, Matcher, error) {
	switch v := spec.(type) {
	case Matcher:
		if v.Name() == "" {
			return "", nil, DispatchError{Message: "rule matcher has no name"}
		}
		return v.Name(), v, nil
	case string:
		tree, err := parseWithMetaGrammar(v)
		if err != nil {
			return "", nil, err
		}
		rules, err := NewGrammarGenerator().Generate(tree)
		if err != nil {
			return "", nil, err
		}
		if len(rules) != 1 {
			return "", nil, DispatchError{Message: "rule fragment must define exactly one rule"}
		}
		return rules[0].Name, rules[0].Matcher, nil
	default:
		return "", nil, DispatchError{Message: fmt.Sprintf("unsupported rule spec type %T", spec)}
	}
}

// compile resolves the current registry into an executable graph,
// caching the result until Rule or SetTracer invalidate it.
func (l *Language) compile() (Matcher, error) {
	if l.compiled {
		return l.root, l.compErr
	}
	if len(l.order) == 0 {
		l.compiled = true
		l.root, l.compErr = nil, nil
		return nil, nil
	}

	rules := make([]NamedMatcher, len(l.order))
	for i, name := range l.order {
		rules[i] = NamedMatcher{Name: name, Matcher: l.byName[name]}
	}
	rules = decorateWithTracer(rules, l.tracer)

	root, err := NewReferenceResolver(rules).Resolve()
	l.compiled = true
	l.root, l.compErr = root, err
	return l.root, l.compErr
}

// Eval accepts either source text (parsed first against the
// registry's root rule) or a pre-built Node, then folds it bottom-up
// with the registered actions, in source order. Evaluating with no
// root rule registered is a DispatchError (programmer error).
func (l *Language) Eval(input any) (any, error) {
	root, err := l.compile()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, DispatchError{Message: "eval: no root rule registered"}
	}

	var node Node
	switch v := input.(type) {
	case string:
		n, ok := root.match(v)
		if !ok {
			return nil, newSyntaxError(spanFor(v, 0, 0), "no match near \"%s\"", preview(v))
		}
		if len(n.Text()) != len(v) {
			rest := v[len(n.Text()):]
			return nil, newSyntaxError(spanFor(v, len(n.Text()), len(n.Text())), "unexpected input near \"%s\"", preview(rest))
		}
		node = n
	case Node:
		node = v
	default:
		return nil, DispatchError{Message: fmt.Sprintf("eval: unsupported input type %T", input)}
	}

	return l.fold(node)
}

// fold walks the tree strictly bottom-up: children are folded first,
// in source order, then the node's own action (if any) combines them.
func (l *Language) fold(n Node) (any, error) {
	children := make([]any, len(n.Children()))
	for i, c := range n.Children() {
		v, err := l.fold(c)
		if err != nil {
			return nil, err
		}
		children[i] = v
	}

	action, ok := l.actions[n.Name()]
	if !ok || action == nil {
		return children, nil
	}
	switch a := action.(type) {
	case RawAction:
		return a(n), nil
	case FoldedAction:
		return a(n, children), nil
	default:
		return nil, DispatchError{Message: fmt.Sprintf("unsupported action for rule %q", n.Name())}
	}
}
