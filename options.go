package lilisp

import "io"

// Strategy selects which evaluator Interpreter.Eval uses.
type Strategy int

const (
	// StrategyCPS is the continuation-passing evaluator and is the
	// default, matching the CLI's default flag selection.
	StrategyCPS Strategy = iota
	StrategyClassic
)

func (s Strategy) String() string {
	if s == StrategyClassic {
		return "classic"
	}
	return "cps"
}

// Options configures an Interpreter, playing the role config.go plays
// for the grammar toolkit: a small struct of independently-defaulted
// knobs, constructed once and passed down rather than threaded as
// separate parameters.
type Options struct {
	// Strategy selects the evaluator. Zero value is StrategyCPS.
	Strategy Strategy

	// HeapCapacity sizes the cell heap. Zero uses defaultCapacity.
	HeapCapacity int

	// GCTrace, when non-nil, receives one line per collection cycle
	// reporting slots reclaimed.
	GCTrace io.Writer

	// StepTrace, when non-nil, receives one line per evaluation step
	// showing the expression about to be reduced.
	StepTrace io.Writer
}

// DefaultOptions returns the zero-value Options, spelled out: CPS
// evaluator, default heap size, no tracing.
func DefaultOptions() Options {
	return Options{Strategy: StrategyCPS}
}
