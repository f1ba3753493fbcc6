package lilisp

import "os"

// Interpreter ties a Context to a chosen evaluation strategy, playing
// the role api.go plays for the grammar toolkit: the one type
// embedding programs construct against, hiding which concrete
// evaluator and heap back a given run.
type Interpreter struct {
	Context *Context
	Options Options

	classic *ClassicEvaluator
	cps     *CPSEvaluator

	// LastError mirrors whichever evaluator's LastError is non-nil
	// after the most recent Eval call.
	LastError error
}

// NewInterpreter builds a fresh Context sized per opts.HeapCapacity
// and wires up tracing.
func NewInterpreter(opts Options) (*Interpreter, error) {
	ctx, err := NewContext(opts.HeapCapacity)
	if err != nil {
		return nil, err
	}
	if opts.GCTrace != nil {
		ctx.Heap.SetTrace(opts.GCTrace)
	}
	interp := &Interpreter{Context: ctx, Options: opts}
	interp.classic = NewClassicEvaluator(ctx, opts)
	interp.cps = NewCPSEvaluator(ctx, opts)
	return interp, nil
}

// EvalString parses src and evaluates it under the configured
// strategy, returning the result cell's index.
func (interp *Interpreter) EvalString(src string) (int, error) {
	root, err := interp.Context.Heap.Read(src)
	if err != nil {
		return Nil, err
	}
	return interp.Eval(root)
}

// Eval evaluates an already-parsed cell graph rooted at expr against
// the interpreter's global environment.
func (interp *Interpreter) Eval(expr int) (int, error) {
	var (
		result int
		err    error
	)
	switch interp.Options.Strategy {
	case StrategyClassic:
		result, err = interp.classic.Eval(expr, interp.Context.Env)
		interp.LastError = interp.classic.LastError
	default:
		result, err = interp.cps.Eval(expr, interp.Context.Env)
		interp.LastError = interp.cps.LastError
	}
	return result, err
}

// EvalFile reads the named file and evaluates its contents the same
// way EvalString does.
func (interp *Interpreter) EvalFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Nil, err
	}
	return interp.EvalString(string(data))
}

// Format renders a result cell using the interpreter's heap.
func (interp *Interpreter) Format(i int) string {
	return interp.Context.Heap.Format(i)
}

// Reset rebuilds the global environment from scratch on a cleared
// heap; the REPL calls it before each line it evaluates.
func (interp *Interpreter) Reset() error {
	return interp.Context.Reset()
}
