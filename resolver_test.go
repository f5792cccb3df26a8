package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasUnresolvedReference(m Matcher, seen map[Matcher]bool) bool {
	if seen[m] {
		return false
	}
	seen[m] = true
	if _, ok := m.(*Reference); ok {
		return true
	}
	for _, c := range m.Children() {
		if hasUnresolvedReference(c, seen) {
			return true
		}
	}
	return false
}

func TestResolveSimpleReference(t *testing.T) {
	rules := []NamedMatcher{
		{Name: "a", Matcher: named("a", NewSequence(NewLiteral("x"), NewReference("b")))},
		{Name: "b", Matcher: named("b", NewLiteral("y"))},
	}
	root, err := NewReferenceResolver(rules).Resolve()
	require.NoError(t, err)
	assert.False(t, hasUnresolvedReference(root, map[Matcher]bool{}))

	n, ok := root.match("xy")
	require.True(t, ok)
	assert.Equal(t, "xy", n.Text())
}

func TestResolveCyclicGrammar(t *testing.T) {
	// list <- "a" ("," list)?
	rules := []NamedMatcher{
		{Name: "list", Matcher: named("list", NewSequence(
			NewLiteral("a"),
			NewOptional(NewSequence(NewLiteral(","), NewReference("list"))),
		))},
	}
	root, err := NewReferenceResolver(rules).Resolve()
	require.NoError(t, err)
	assert.False(t, hasUnresolvedReference(root, map[Matcher]bool{}))

	n, ok := root.match("a,a,a")
	require.True(t, ok)
	assert.Equal(t, "a,a,a", n.Text())
}

func TestResolveUnknownRuleFails(t *testing.T) {
	rules := []NamedMatcher{
		{Name: "a", Matcher: named("a", NewReference("nope"))},
	}
	_, err := NewReferenceResolver(rules).Resolve()
	require.Error(t, err)
	var unknown UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)
}

func TestResolveIsIdempotent(t *testing.T) {
	rules := []NamedMatcher{
		{Name: "a", Matcher: named("a", NewSequence(NewLiteral("x"), NewReference("b")))},
		{Name: "b", Matcher: named("b", NewLiteral("y"))},
	}
	resolver := NewReferenceResolver(rules)
	first, err := resolver.Resolve()
	require.NoError(t, err)
	second, err := resolver.resolve(first)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
