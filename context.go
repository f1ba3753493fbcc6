package lilisp

// Builtin identifies one of the reserved low-numbered symbol slots
// that both evaluators dispatch on directly, instead of comparing
// names at the call site.
type Builtin int

const (
	BuiltinNil Builtin = iota
	BuiltinQuote
	BuiltinIf
	BuiltinAdd
	BuiltinSub
	BuiltinMul
	BuiltinLt
	BuiltinEq
	BuiltinCons
	BuiltinHead
	BuiltinTail
	BuiltinLambda
	BuiltinLet
	BuiltinLetrec
)

// builtinNames gives the token spelling of each reserved symbol, in
// the exact order their slot indices must be interned so that
// Builtin(i) == i for every one of them. BuiltinNil is skipped here:
// slot 0 is seeded directly by Heap.Reset.
var builtinNames = []string{
	"'",      // BuiltinQuote
	"?",      // BuiltinIf
	"+",      // BuiltinAdd
	"-",      // BuiltinSub
	"*",      // BuiltinMul
	"<",      // BuiltinLt
	"=",      // BuiltinEq
	".",      // BuiltinCons
	"head",   // BuiltinHead
	"tail",   // BuiltinTail
	"lambda", // BuiltinLambda
	"let",    // BuiltinLet
	"letrec", // BuiltinLetrec
}

// maxBuiltinCPS is the highest builtin index the CPS evaluator
// recognizes; lambda/let/letrec are classic-mode only.
const maxBuiltinCPS = int(BuiltinTail)

// Context is the global interpreter state: the cell heap plus the
// root environment every top-level evaluation starts from. Unlike
// the reference's single process-wide globals, a Context is an
// ordinary value — an interpreter can hold several, the way a test
// suite wants one heap per test case.
type Context struct {
	Heap *Heap
	Env  int
}

// NewContext builds a heap of the given capacity (0 for the default),
// interns the thirteen built-in names in their fixed order, and binds
// each to itself in a fresh environment.
func NewContext(capacity int) (*Context, error) {
	h := NewHeap(capacity)
	env, err := resetGlobalEnv(h)
	if err != nil {
		return nil, err
	}
	return &Context{Heap: h, Env: env}, nil
}

// resetGlobalEnv resets h and rebuilds the self-bound builtin
// environment. It is also what Context.Reset calls to get a clean
// heap without reallocating one.
func resetGlobalEnv(h *Heap) (int, error) {
	h.Reset()
	// Intern every name before allocating any binding cell, so the
	// symbols occupy consecutive slots 1..len(builtinNames).
	syms := make([]int, len(builtinNames))
	for i, name := range builtinNames {
		sym, err := h.Intern(name)
		if err != nil {
			return Nil, err
		}
		syms[i] = sym
	}
	env := Nil
	for _, sym := range syms {
		var err error
		env, err = bind(h, env, sym, sym)
		if err != nil {
			return Nil, err
		}
	}
	return env, nil
}

// bind extends env with a new (name . value) binding at the front.
func bind(h *Heap, env, name, value int) (int, error) {
	pair, err := h.MkPair(name, value)
	if err != nil {
		return Nil, err
	}
	return h.MkPair(pair, env)
}

// Lookup walks env searching for name by slot identity (symbol
// interning makes identity equivalent to name equality) and returns
// its bound value. ok is false on a miss.
func Lookup(h *Heap, env, name int) (int, bool) {
	for env != Nil && h.IsPair(env) {
		binding := h.Head(env)
		if h.Head(binding) == name {
			return h.Tail(binding), true
		}
		env = h.Tail(env)
	}
	return Nil, false
}

// Reset rebuilds c's environment from scratch on c's existing heap.
func (c *Context) Reset() error {
	env, err := resetGlobalEnv(c.Heap)
	if err != nil {
		return err
	}
	c.Env = env
	return nil
}
