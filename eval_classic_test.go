package lilisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalClassic(t *testing.T, src string) string {
	t.Helper()
	interp, err := NewInterpreter(Options{Strategy: StrategyClassic})
	require.NoError(t, err)
	result, err := interp.EvalString(src)
	require.NoError(t, err)
	return interp.Format(result)
}

func TestClassicArithmetic(t *testing.T) {
	assert.Equal(t, "2", evalClassic(t, "(- 3 1)"))
	assert.Equal(t, "6", evalClassic(t, "(* 2 3)"))
	assert.Equal(t, "5", evalClassic(t, "(+ 2 3)"))
}

func TestClassicLet(t *testing.T) {
	assert.Equal(t, "4", evalClassic(t, "(let x (- 3 1) (+ x x))"))
}

func TestClassicLambda(t *testing.T) {
	assert.Equal(t, "5", evalClassic(t, "((lambda (a b) (+ a b)) 2 3)"))
}

func TestClassicIf(t *testing.T) {
	assert.Equal(t, "5", evalClassic(t, "(? (< 3 1) 2 5)"))
	assert.Equal(t, "2", evalClassic(t, "(? (< 1 3) 2 5)"))
}

func TestClassicLetrec(t *testing.T) {
	assert.Equal(t, "4", evalClassic(t, "(letrec len (lambda (l) (? l (+ 1 (len (tail l))) 0)) (len (' 1 2 3 4)))"))
}

func TestClassicQuote(t *testing.T) {
	assert.Equal(t, "(1 2 3 .)", evalClassic(t, "(' 1 2 3)"))
}

func TestClassicConsHeadTail(t *testing.T) {
	assert.Equal(t, "1", evalClassic(t, "(head (. 1 2))"))
	assert.Equal(t, "2", evalClassic(t, "(tail (. 1 2))"))
}

func TestClassicUnknownSymbolIsSoftError(t *testing.T) {
	interp, err := NewInterpreter(Options{Strategy: StrategyClassic})
	require.NoError(t, err)
	result, err := interp.EvalString("undefined_name")
	require.NoError(t, err)
	assert.Equal(t, ".", interp.Format(result))
	require.Error(t, interp.LastError)
	assert.IsType(t, unknownSymbolError{}, interp.LastError)
}
