package lilisp

import "fmt"

// selfTestCase is one entry of the built-in `-t` regression suite:
// an expression, the strategy it must be run under, and the expected
// printed result.
type selfTestCase struct {
	expr     string
	strategy Strategy
	want     string
}

// selfTests mirrors the end-to-end scenarios a complete rewrite of
// this interpreter is expected to reproduce exactly.
var selfTests = []selfTestCase{
	{"(- 3 1)", StrategyCPS, "2"},
	{"(- 3 1)", StrategyClassic, "2"},
	{"(- 3 1 ((x) + x x))", StrategyCPS, "4"},
	{"(((a b) + a b) 2 3)", StrategyCPS, "5"},
	{"(< 3 1 ((a) ? a 2 5))", StrategyCPS, "5"},
	{"(let x (- 3 1) (+ x x))", StrategyClassic, "4"},
	{"((lambda (a b) (+ a b)) 2 3)", StrategyClassic, "5"},
	{"(? (< 3 1) 2 5)", StrategyClassic, "5"},
	{"(letrec len (lambda (l) (? l (+ 1 (len (tail l))) 0)) (len (' 1 2 3 4)))", StrategyClassic, "4"},
}

// RunSelfTests evaluates every entry of selfTests against a fresh
// Interpreter and reports the first mismatch. A nil return means
// every case produced its expected printed result.
func RunSelfTests() error {
	for _, tc := range selfTests {
		interp, err := NewInterpreter(Options{Strategy: tc.strategy})
		if err != nil {
			return fmt.Errorf("%q: %w", tc.expr, err)
		}
		result, err := interp.EvalString(tc.expr)
		if err != nil {
			return fmt.Errorf("%q: %w", tc.expr, err)
		}
		got := interp.Format(result)
		if got != tc.want {
			return fmt.Errorf("%q under %s: got %q, want %q", tc.expr, tc.strategy, got, tc.want)
		}
	}
	return nil
}
