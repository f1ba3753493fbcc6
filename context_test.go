package lilisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextBuiltinIndices(t *testing.T) {
	ctx, err := NewContext(64)
	require.NoError(t, err)
	h := ctx.Heap

	cases := []struct {
		name string
		want Builtin
	}{
		{"'", BuiltinQuote},
		{"?", BuiltinIf},
		{"+", BuiltinAdd},
		{"-", BuiltinSub},
		{"*", BuiltinMul},
		{"<", BuiltinLt},
		{"=", BuiltinEq},
		{".", BuiltinCons},
		{"head", BuiltinHead},
		{"tail", BuiltinTail},
		{"lambda", BuiltinLambda},
		{"let", BuiltinLet},
		{"letrec", BuiltinLetrec},
	}
	for _, c := range cases {
		idx, err := h.Intern(c.name)
		require.NoError(t, err)
		assert.Equal(t, int(c.want), idx, "symbol %q", c.name)
	}
}

func TestGlobalEnvSelfBinding(t *testing.T) {
	ctx, err := NewContext(64)
	require.NoError(t, err)
	h := ctx.Heap

	plus, err := h.Intern("+")
	require.NoError(t, err)

	v, ok := Lookup(h, ctx.Env, plus)
	require.True(t, ok)
	assert.Equal(t, plus, v)
}

func TestLookupMiss(t *testing.T) {
	ctx, err := NewContext(64)
	require.NoError(t, err)
	h := ctx.Heap

	unbound, err := h.Intern("nonexistent")
	require.NoError(t, err)

	_, ok := Lookup(h, ctx.Env, unbound)
	assert.False(t, ok)
}
