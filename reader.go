package lilisp

// reader holds the state needed to turn source text into a cell
// graph: a byte cursor plus the line/column it corresponds to, the
// same bookkeeping BaseParser keeps in the grammar toolkit this is
// grounded on, shrunk to the handful of fields an S-expression reader
// needs — no label messages, no action callbacks, no backtracking
// stack, since lilisp's grammar never backtracks (list/int/symbol are
// distinguished by their first byte).
type reader struct {
	input  []byte
	cursor int
	line   int
	column int

	// openParen remembers the location of the most recently opened,
	// still-unmatched `(`, for UnmatchedParenError's message.
	openParen Location

	// errored is set once the reader hits EOF inside a list; it is
	// the reader-level equivalent of the reference's error_marker
	// cursor value, and once set every further read short-circuits.
	errored bool
}

func newReader(input []byte) *reader {
	return &reader{input: input, line: 1, column: 1}
}

func (r *reader) loc() Location {
	return Location{Cursor: r.cursor, Line: r.line, Column: r.column}
}

func (r *reader) peek() byte {
	if r.cursor >= len(r.input) {
		return 0
	}
	return r.input[r.cursor]
}

func (r *reader) advance() byte {
	c := r.peek()
	if c == 0 {
		return 0
	}
	r.cursor++
	if c == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	return c
}

func (r *reader) skipSpace() {
	for r.peek() != 0 && r.peek() <= ' ' {
		r.advance()
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Read parses exactly one top-level S-expression out of src and
// returns the root index of the cell graph it built. It reports
// UnmatchedParenError if a list was never closed, or
// TrailingInputError if non-whitespace input follows the expression.
func (h *Heap) Read(src string) (int, error) {
	r := newReader([]byte(src))
	r.skipSpace()
	val, err := h.readExpr(r)
	if err != nil {
		return Nil, err
	}
	r.skipSpace()
	if r.errored {
		return Nil, UnmatchedParenError{Span: NewSpan(r.openParen, r.loc())}
	}
	if r.peek() != 0 {
		start := r.loc()
		return Nil, TrailingInputError{
			Span: NewSpan(start, start),
			Rest: string(r.input[r.cursor:]),
		}
	}
	return val, nil
}

// readExpr parses one expression: a parenthesized list, a run of
// digits, or a bare symbol token.
func (h *Heap) readExpr(r *reader) (int, error) {
	r.skipSpace()
	switch {
	case r.peek() == '(':
		return h.readList(r)
	case isDigit(r.peek()):
		return h.readInt(r)
	default:
		return h.readSymbol(r)
	}
}

// readList consumes elements until `)`, building a left-leaning cons
// chain terminated by Nil. On EOF it marks the reader errored and
// remembers the opener's location, mirroring the reference's cursor
// being rewound to the error sentinel. Only the first frame to observe
// EOF records its opener: for nested unmatched parens that's the
// innermost `(`, and outer frames unwinding through the same EOF must
// not clobber it with their own, outer, opener.
func (h *Heap) readList(r *reader) (int, error) {
	opener := r.loc()
	r.advance() // consume '('

	var items []int
	for {
		r.skipSpace()
		if r.peek() == ')' {
			r.advance()
			break
		}
		if r.peek() == 0 {
			if !r.errored {
				r.errored = true
				r.openParen = opener
			}
			return Nil, nil
		}
		item, err := h.readExpr(r)
		if err != nil {
			return Nil, err
		}
		items = append(items, item)
	}

	list := Nil
	for i := len(items) - 1; i >= 0; i-- {
		var err error
		list, err = h.MkPair(items[i], list)
		if err != nil {
			return Nil, err
		}
	}
	return list, nil
}

func (h *Heap) readInt(r *reader) (int, error) {
	start := r.cursor
	for isDigit(r.peek()) {
		r.advance()
	}
	n := 0
	for _, c := range r.input[start:r.cursor] {
		n = n*10 + int(c-'0')
	}
	return h.MkInt(n)
}

// readSymbol consumes any run of bytes above space excluding
// parentheses and interns it verbatim.
func (h *Heap) readSymbol(r *reader) (int, error) {
	start := r.cursor
	for {
		c := r.peek()
		if c == 0 || c <= ' ' || c == '(' || c == ')' {
			break
		}
		r.advance()
	}
	return h.Intern(string(r.input[start:r.cursor]))
}
