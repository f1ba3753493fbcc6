package lilisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatScalars(t *testing.T) {
	h := NewHeap(64)

	assert.Equal(t, ".", h.Format(Nil))

	n, err := h.MkInt(42)
	require.NoError(t, err)
	assert.Equal(t, "42", h.Format(n))

	s, err := h.Intern("test")
	require.NoError(t, err)
	assert.Equal(t, "test", h.Format(s))
}

func TestFormatProperList(t *testing.T) {
	h := NewHeap(64)
	i1, _ := h.MkInt(1)
	i2, _ := h.MkInt(2)
	i3, _ := h.MkInt(3)
	l3, err := h.MkPair(i3, Nil)
	require.NoError(t, err)
	l2, err := h.MkPair(i2, l3)
	require.NoError(t, err)
	l1, err := h.MkPair(i1, l2)
	require.NoError(t, err)

	assert.Equal(t, "(1 2 3 .)", h.Format(l1))
}

func TestFormatSharedPair(t *testing.T) {
	h := NewHeap(64)
	i1, _ := h.MkInt(1)
	i2, _ := h.MkInt(2)
	a, err := h.MkPair(i1, i2)
	require.NoError(t, err)

	root, err := h.MkPair(a, a)
	require.NoError(t, err)

	name := cellName(a)
	assert.Equal(t, "("+name+":(1 2) #"+name+")", h.Format(root))
}

func TestFormatSelfCycle(t *testing.T) {
	h := NewHeap(64)
	i1, err := h.MkInt(1)
	require.NoError(t, err)
	a, err := h.MkPair(i1, Nil)
	require.NoError(t, err)
	h.SetTail(a, a) // a = (1 . a)

	root, err := h.MkPair(Nil, a)
	require.NoError(t, err)

	name := cellName(a)
	assert.Equal(t, "(. "+name+":(1 #"+name+"))", h.Format(root))
}

func TestCellNameDeterministic(t *testing.T) {
	assert.Equal(t, cellName(1), cellName(1))
	assert.NotEqual(t, cellName(1), cellName(2))
}
