package lilisp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSelfTests(t *testing.T) {
	require.NoError(t, RunSelfTests())
}

func TestInterpreterDefaultStrategyIsCPS(t *testing.T) {
	interp, err := NewInterpreter(DefaultOptions())
	require.NoError(t, err)
	result, err := interp.EvalString("(- 3 1)")
	require.NoError(t, err)
	assert.Equal(t, "2", interp.Format(result))
}

func TestInterpreterGCTrace(t *testing.T) {
	var buf bytes.Buffer
	interp, err := NewInterpreter(Options{Strategy: StrategyCPS, HeapCapacity: 64, GCTrace: &buf})
	require.NoError(t, err)

	// Force enough allocation pressure to trigger at least one collection.
	for i := 0; i < 5; i++ {
		_, err := interp.EvalString("(. 1 2)")
		require.NoError(t, err)
	}
	assert.Contains(t, buf.String(), "gc:")
}

func TestInterpreterEvalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(+ 1 2)"), 0o644))

	interp, err := NewInterpreter(DefaultOptions())
	require.NoError(t, err)
	result, err := interp.EvalFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3", interp.Format(result))
}
