package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeEqual(t *testing.T) {
	t.Run("equal when name, text and children match", func(t *testing.T) {
		a := NewNode("r", "ab", []Node{NewNode("s", "a", nil), NewNode("t", "b", nil)})
		b := NewNode("r", "ab", []Node{NewNode("s", "a", nil), NewNode("t", "b", nil)})
		assert.True(t, a.Equal(b))
	})

	t.Run("not equal on differing name", func(t *testing.T) {
		a := NewNode("r", "ab", nil)
		b := NewNode("other", "ab", nil)
		assert.False(t, a.Equal(b))
	})

	t.Run("not equal on differing children", func(t *testing.T) {
		a := NewNode("r", "ab", []Node{NewNode("s", "a", nil)})
		b := NewNode("r", "ab", []Node{NewNode("s", "b", nil)})
		assert.False(t, a.Equal(b))
	})
}

func TestDumpNode(t *testing.T) {
	n := NewNode("r", "ab", []Node{NewNode("s", "a", nil)})
	out := DumpNode(n)
	assert.Contains(t, out, "r")
	assert.Contains(t, out, `"ab"`)
	assert.Contains(t, out, "s")
}
