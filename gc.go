package lilisp

import (
	"fmt"
	"io"
)

// gcMargin is the minimum number of free slots the evaluators try to
// keep available before every allocation-bearing step.
const gcMargin = 20

// SetTrace installs w, which, when non-nil, receives one line per collection cycle reporting
// slots reclaimed. It is wired up from Options.GCTrace by Interpreter.
func (h *Heap) SetTrace(w io.Writer) { h.trace = w }

// MarkSweep runs one full mark-and-sweep collection cycle rooted at
// the given indices. It never fails: if, after sweeping, the heap
// still doesn't have enough margin, the next allocation itself
// reports HeapExhaustedError.
func (h *Heap) MarkSweep(roots ...int) {
	before := h.AllocatedCount()
	for _, r := range roots {
		h.mark(r)
	}
	h.sweep()
	if h.trace != nil {
		fmt.Fprintf(h.trace, "gc: reclaimed %d cells, %d live\n", before-h.AllocatedCount(), h.AllocatedCount())
	}
}

// mark walks the pair spine starting at i, setting markGC on every
// cell reached. It follows Head recursively and Tail iteratively,
// exactly as the reference's gc_mark does, and terminates because
// every cell is marked at most once — a cycle through Tail is caught
// by the "already marked" check before recursing into Head again.
func (h *Heap) mark(i int) {
	for i != Nil {
		c := &h.cells[i]
		if c.m&markGC != 0 {
			return
		}
		c.m |= markGC
		if c.tag != TagPair {
			return
		}
		h.mark(c.head)
		i = c.tail
	}
}

// sweep reclaims every slot from 1 to maxIndex that wasn't marked by
// the preceding mark phase, clearing the mark bit off everything
// else. GC's mark bit must never leak past this call.
func (h *Heap) sweep() {
	for i := 1; i <= h.maxIndex; i++ {
		c := &h.cells[i]
		if c.m&markGC != 0 {
			c.m &^= markGC
		} else if c.tag != TagFree {
			h.free(i)
		}
	}
}

// MaybeCollect runs MarkSweep when fewer than gcMargin slots remain
// free. Both evaluators call it before every potentially-allocating
// step.
func (h *Heap) MaybeCollect(roots ...int) {
	if h.Capacity()-h.AllocatedCount() < gcMargin {
		h.MarkSweep(roots...)
	}
}

// guardFrame is the classic evaluator's root-registration unit: a
// fixed set of slots belonging to one recursive activation, mutated
// in place as evaluation progresses so a GC triggered mid-step still
// sees the live intermediates. This is the same shape as `frame` in
// the grammar toolkit's vm_stack.go — a small struct of named fields
// pushed onto a slice-backed stack on entry and popped on exit —
// generalized here from parser backtracking state to evaluator
// temporaries.
type guardFrame struct {
	expr, ctx, temp, temp1 int
}

// guardStack is the classic evaluator's root set: every nested
// Eval activation owns one frame, and the GC walks all of them.
// Frames are held by pointer so a *guardFrame returned by push stays
// the one the GC reads even after later pushes grow the slice.
type guardStack struct {
	frames []*guardFrame
}

func (s *guardStack) push() *guardFrame {
	f := &guardFrame{}
	s.frames = append(s.frames, f)
	return f
}

func (s *guardStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// roots flattens every live frame's slots into one slice for MarkSweep.
func (s *guardStack) roots() []int {
	out := make([]int, 0, len(s.frames)*4)
	for _, f := range s.frames {
		out = append(out, f.expr, f.ctx, f.temp, f.temp1)
	}
	return out
}
