package lilisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocAndFree(t *testing.T) {
	h := NewHeap(64)

	a, err := h.MkInt(10)
	require.NoError(t, err)
	b, err := h.MkInt(20)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, h.AllocatedCount())

	h.free(a)
	assert.Equal(t, 1, h.AllocatedCount())

	c, err := h.MkInt(30)
	require.NoError(t, err)
	assert.Equal(t, a, c, "free list should be reused before bumping max_index")
	assert.Equal(t, 2, h.AllocatedCount())
}

func TestHeapInternIsCanonical(t *testing.T) {
	h := NewHeap(64)

	a, err := h.Intern("foo")
	require.NoError(t, err)
	b, err := h.Intern("foo")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "foo", h.SymbolName(a))

	c, err := h.Intern("bar")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestHeapExhaustion(t *testing.T) {
	h := NewHeap(4)
	var lastErr error
	for i := 0; i < 10; i++ {
		_, err := h.MkInt(i)
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
	assert.IsType(t, HeapExhaustedError{}, lastErr)
}

func TestHeapLenientAccessors(t *testing.T) {
	h := NewHeap(64)
	i, err := h.MkInt(5)
	require.NoError(t, err)

	assert.Equal(t, Nil, h.Head(i))
	assert.Equal(t, Nil, h.Tail(i))
	assert.Equal(t, 0, h.AsInt(Nil))
	assert.True(t, h.IsPair(Nil))
	assert.False(t, h.IsPair(i))
}

func TestHeapResetReinternsNil(t *testing.T) {
	h := NewHeap(64)
	_, err := h.Intern("whatever")
	require.NoError(t, err)

	h.Reset()
	assert.Equal(t, "nil", h.SymbolName(Nil))
	assert.Equal(t, 0, h.AllocatedCount())
	assert.Equal(t, Nil, h.MaxIndex())
}

func TestHeapPairRoundTrip(t *testing.T) {
	h := NewHeap(64)
	head, err := h.MkInt(1)
	require.NoError(t, err)
	tail, err := h.MkInt(2)
	require.NoError(t, err)
	p, err := h.MkPair(head, tail)
	require.NoError(t, err)

	assert.Equal(t, head, h.Head(p))
	assert.Equal(t, tail, h.Tail(p))

	h.SetTail(p, head)
	assert.Equal(t, head, h.Tail(p))
}
