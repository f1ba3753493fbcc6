package lilisp

import (
	"strconv"
	"strings"
)

// Format produces the deterministic textual form of the cell graph
// rooted at i. It is a two-pass scheme, same shape as the
// mark-then-emit pretty printers in the grammar toolkit (tree.go's
// prettyPrinter, value.go's TreePrinter): a first pass marks every
// reachable pair and flags the ones visited more than once as
// shared, then an emit pass walks the structure again, printing
// `name:` the first time a shared pair is reached and `#name` on
// every subsequent visit. This is what makes cyclic and DAG-shaped
// cell graphs printable in finite space.
//
// The mark bits used here (markSeen, markShared) are distinct from
// the GC's markGC and are always cleared again before Format
// returns, so a GC cycle and a Format call never observe each
// other's marks.
func (h *Heap) Format(i int) string {
	h.markRefs(i)
	var b strings.Builder
	h.formatRec(&b, i)
	return b.String()
}

// markRefs walks the pair spine starting at i, setting markSeen on
// first visit and markShared on any re-visit, mirroring the
// reference's format_mark_refs.
func (h *Heap) markRefs(i int) {
	for i != Nil {
		c := &h.cells[i]
		if c.m&markSeen != 0 {
			// Already visited: flag it shared and stop. Re-descending
			// here would loop forever on a cyclic tail (e.g. a pair
			// that is its own tail).
			c.m |= markShared
			return
		}
		if c.tag != TagPair {
			return
		}
		c.m |= markSeen
		h.markRefs(c.head)
		i = c.tail
	}
}

// formatRec emits the textual form of i and clears markSeen/markShared
// as it goes, following the reference's format_rec.
func (h *Heap) formatRec(b *strings.Builder, i int) {
	if i == Nil {
		b.WriteByte('.')
		return
	}
	c := &h.cells[i]
	switch c.tag {
	case TagInt:
		b.WriteString(strconv.Itoa(c.ival))
		return
	case TagSymbol:
		b.WriteString(c.sval)
		return
	}
	if c.m&markSeen == 0 {
		b.WriteByte('#')
		b.WriteString(cellName(i))
		return
	}
	if c.m&markShared != 0 {
		b.WriteString(cellName(i))
		b.WriteByte(':')
	}
	b.WriteByte('(')
	for {
		c = &h.cells[i]
		c.m &^= (markSeen | markShared)
		h.formatRec(b, c.head)
		b.WriteByte(' ')
		i = c.tail
		next := &h.cells[i]
		if i == Nil || next.m&markShared != 0 || next.m&markSeen == 0 || next.tag != TagPair {
			break
		}
	}
	h.formatRec(b, i)
	b.WriteByte(')')
}

// cellName derives a short deterministic identifier for slot index i
// by base-25 encoding it into letters 'a'..'y', the same scheme as
// the reference's name_of.
func cellName(i int) string {
	const base = 'z' - 'a' // 25
	var b strings.Builder
	for {
		b.WriteByte(byte('a' + i%base))
		i /= base
		if i == 0 {
			break
		}
	}
	return b.String()
}
