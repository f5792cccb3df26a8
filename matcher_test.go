package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralMatch(t *testing.T) {
	m := NewLiteral("abc")

	n, ok := m.match("abcd")
	require.True(t, ok)
	assert.Equal(t, "abc", n.Text())

	_, ok = m.match("abd")
	assert.False(t, ok)
}

func TestLiteralEmptyStringAlwaysMatches(t *testing.T) {
	m := NewLiteral("")
	n, ok := m.match("xyz")
	require.True(t, ok)
	assert.Equal(t, "", n.Text())
}

func TestRegexAnchorsAtStart(t *testing.T) {
	m := NewRegex("[0-9]+")
	n, ok := m.match("123abc")
	require.True(t, ok)
	assert.Equal(t, "123", n.Text())

	_, ok = m.match("abc123")
	assert.False(t, ok, "regex must not search ahead")
}

func TestNewRegexFromUserPatternRejectsInvalidPatternWithoutPanic(t *testing.T) {
	_, err := newRegexFromUserPattern("[z-a]")
	require.Error(t, err)
	var syn SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestSequenceFailsOnFirstChildFailure(t *testing.T) {
	m := NewSequence(NewLiteral("a"), NewLiteral("b"), NewLiteral("c"))

	n, ok := m.match("abc")
	require.True(t, ok)
	assert.Equal(t, "abc", n.Text())
	require.Len(t, n.Children(), 3)

	_, ok = m.match("abx")
	assert.False(t, ok)
}

func TestOrTriesLeftToRightAndWrapsSingleChild(t *testing.T) {
	m := NewOr(NewLiteral("b"), NewLiteral("c"))
	n, ok := m.match("c")
	require.True(t, ok)
	require.Len(t, n.Children(), 1)
	assert.Equal(t, "c", n.Children()[0].Text())

	_, ok = m.match("d")
	assert.False(t, ok)
}

func TestNotNeverConsumes(t *testing.T) {
	m := NewNot(NewLiteral("x"))

	n, ok := m.match("a")
	require.True(t, ok)
	assert.Equal(t, "", n.Text())

	_, ok = m.match("x")
	assert.False(t, ok)
}

func TestAndNeverConsumes(t *testing.T) {
	m := NewAnd(NewLiteral("a"))

	n, ok := m.match("ab")
	require.True(t, ok)
	assert.Equal(t, "", n.Text())

	_, ok = m.match("b")
	assert.False(t, ok)
}

func TestOneOrMoreRequiresAtLeastOne(t *testing.T) {
	m := NewOneOrMore(NewLiteral("a"))

	n, ok := m.match("aaab")
	require.True(t, ok)
	assert.Equal(t, "aaa", n.Text())
	assert.Len(t, n.Children(), 3)

	_, ok = m.match("")
	assert.False(t, ok)
	_, ok = m.match("b")
	assert.False(t, ok)
}

func TestZeroOrMoreAcceptsEmpty(t *testing.T) {
	m := NewZeroOrMore(NewLiteral("a"))

	n, ok := m.match("")
	require.True(t, ok)
	assert.Equal(t, "", n.Text())
	assert.Len(t, n.Children(), 0)

	n, ok = m.match("aab")
	require.True(t, ok)
	assert.Equal(t, "aa", n.Text())
}

func TestOptionalBoundedToOne(t *testing.T) {
	m := NewOptional(NewLiteral("a"))

	n, ok := m.match("aaa")
	require.True(t, ok)
	assert.Equal(t, "a", n.Text())
	assert.Len(t, n.Children(), 1)

	n, ok = m.match("b")
	require.True(t, ok)
	assert.Equal(t, "", n.Text())
	assert.Len(t, n.Children(), 0)
}

// TestRepetitionStopsOnEmptyMatch guards against the infinite loop a
// zero-width inner matcher would otherwise cause. If repeat's
// empty-match guard regressed, this call would hang and the test
// would time out rather than fail cleanly.
func TestRepetitionStopsOnEmptyMatch(t *testing.T) {
	zeroWidth := NewNot(NewLiteral("z"))
	m := NewZeroOrMore(zeroWidth)

	n, ok := m.match("abc")
	require.True(t, ok)
	// Matches once (empty), then stops immediately per the guard.
	assert.Equal(t, "", n.Text())
	assert.Len(t, n.Children(), 1)
}

func TestMatchedNodeCarriesMatcherName(t *testing.T) {
	m := NewLiteral("abc")
	m.setName("letters")
	n, ok := m.match("abc")
	require.True(t, ok)
	assert.Equal(t, "letters", n.Name())
}

func TestUnresolvedReferencePanics(t *testing.T) {
	r := NewReference("missing")
	assert.Panics(t, func() { r.match("anything") })
}
