package parsing

// Tracer is an optional diagnostic hook invoked on rule entry and
// exit, in the same push/pop-span shape a generated-code tracer would
// emit around each rule method. rule is the matcher's name; pos is
// how many bytes of input remained when the call was made; enter is
// true on entry, false on exit.
type Tracer func(rule string, pos int, enter bool)

// tracingMatcher decorates a named top-level rule matcher with entry
// and exit Tracer calls. It delegates Name/setName/Children/
// setChildren to inner so ReferenceResolver walks the real structure
// underneath — only match is intercepted.
type tracingMatcher struct {
	inner  Matcher
	tracer Tracer
}

func (t *tracingMatcher) Name() string           { return t.inner.Name() }
func (t *tracingMatcher) setName(n string)       { t.inner.setName(n) }
func (t *tracingMatcher) Children() []Matcher    { return t.inner.Children() }
func (t *tracingMatcher) setChildren(c []Matcher) { t.inner.setChildren(c) }

func (t *tracingMatcher) match(text string) (Node, bool) {
	name := t.inner.Name()
	t.tracer(name, len(text), true)
	n, ok := t.inner.match(text)
	t.tracer(name, len(text), false)
	return n, ok
}

// decorateWithTracer wraps every named top-level rule in rules with a
// tracingMatcher, so Reference lookups during resolution resolve to
// the traced object and every rule's entry/exit fires the tracer.
func decorateWithTracer(rules []NamedMatcher, tracer Tracer) []NamedMatcher {
	if tracer == nil {
		return rules
	}
	decorated := make([]NamedMatcher, len(rules))
	for i, r := range rules {
		decorated[i] = NamedMatcher{Name: r.Name, Matcher: &tracingMatcher{inner: r.Matcher, tracer: tracer}}
	}
	return decorated
}
