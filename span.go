package lilisp

import "fmt"

// Location is a single point within the source text, tracked the same
// way BaseParser does in the grammar toolkit this package is built
// from: a byte cursor plus the line/column it corresponds to, so error
// messages don't need to rescan the input to report position.
type Location struct {
	Cursor int
	Line   int
	Column int
}

// Span covers the input between two locations. It is attached to
// every parser error.
type Span struct {
	Start Location
	End   Location
}

func NewSpan(start, end Location) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		if s.Start.Column == s.End.Column {
			return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
		}
		return fmt.Sprintf("%d:%d..%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d..%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}
