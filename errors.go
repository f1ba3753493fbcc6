package lilisp

import "fmt"

// UnmatchedParenError is reported when the parser reaches end of
// input with a list still open. Span points at the offending `(`.
type UnmatchedParenError struct {
	Span Span
}

func (e UnmatchedParenError) Error() string {
	return fmt.Sprintf("not matched '(' at %s", e.Span)
}

// TrailingInputError is reported when non-whitespace input remains
// after a complete top-level expression has been parsed.
type TrailingInputError struct {
	Span Span
	Rest string
}

func (e TrailingInputError) Error() string {
	return fmt.Sprintf("error at %s: %q", e.Span, e.Rest)
}

// HeapExhaustedError is fatal: the cell heap has no free slots left
// and a collection cycle didn't recover enough margin. There is no
// runtime recovery path, by design (the heap is fixed-size).
type HeapExhaustedError struct {
	Capacity int
}

func (e HeapExhaustedError) Error() string {
	return fmt.Sprintf("heap exhausted (capacity %d cells)", e.Capacity)
}

// UsageError is returned by the CLI argument reader for malformed
// invocations (unknown flags, missing positional argument, …).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

// unknownSymbolError is recorded (not returned) by the evaluators when
// a lookup misses: evaluation keeps going with nil as the result, the
// same way the reference prints a message to stderr and carries on.
// It satisfies the error interface so callers
// that do want to observe it (tests, -v tracing) can type-assert it
// out of Interpreter.LastError.
type unknownSymbolError struct {
	Name string
}

func (e unknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %s", e.Name)
}
