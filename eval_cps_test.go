package lilisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalCPS(t *testing.T, src string) string {
	t.Helper()
	interp, err := NewInterpreter(Options{Strategy: StrategyCPS})
	require.NoError(t, err)
	result, err := interp.EvalString(src)
	require.NoError(t, err)
	return interp.Format(result)
}

func TestCPSArithmeticNoContinuation(t *testing.T) {
	assert.Equal(t, "2", evalCPS(t, "(- 3 1)"))
}

func TestCPSArithmeticWithContinuation(t *testing.T) {
	assert.Equal(t, "4", evalCPS(t, "(- 3 1 ((x) + x x))"))
}

func TestCPSInlineLambdaApplication(t *testing.T) {
	assert.Equal(t, "5", evalCPS(t, "(((a b) + a b) 2 3)"))
}

func TestCPSComparisonWithContinuation(t *testing.T) {
	assert.Equal(t, "5", evalCPS(t, "(< 3 1 ((a) ? a 2 5))"))
}

func TestCPSHeadTail(t *testing.T) {
	assert.Equal(t, "1", evalCPS(t, "(. 1 2 ((p) head p))"))
	assert.Equal(t, "2", evalCPS(t, "(. 1 2 ((p) tail p))"))
}

func TestCPSIfDelegateCallIdiom(t *testing.T) {
	// The "(() call…)" idiom used for Y-style recursion without
	// letrec: an if-branch that is itself a bare pair headed by the
	// empty list delegates into its own tail rather than being applied
	// as a zero-argument closure.
	assert.Equal(t, "3", evalCPS(t, "(? 1 (() + 1 2) 0)"))
	assert.Equal(t, "3", evalCPS(t, "(? () 0 (() + 1 2))"))
}

func TestCPSUnknownSymbolIsSoftError(t *testing.T) {
	interp, err := NewInterpreter(Options{Strategy: StrategyCPS})
	require.NoError(t, err)
	result, err := interp.EvalString("undefined_name")
	require.NoError(t, err)
	assert.Equal(t, ".", interp.Format(result))
	require.Error(t, interp.LastError)
}
