package lilisp

import "fmt"

// CPSEvaluator is the continuation-passing evaluator: there is no
// lambda/let/letrec, every binding arrives through an explicit
// trailing continuation, and the whole reduction is one flat loop —
// no Go-level recursion is needed for the object language itself,
// since operand positions never hold a further call, only a literal,
// a symbol, or an inline lambda to be captured as a closure.
type CPSEvaluator struct {
	ctx  *Context
	opts Options

	n, env, temp, temp1 int // the collector's two live roots, plus scratch

	LastError error
}

func NewCPSEvaluator(ctx *Context, opts Options) *CPSEvaluator {
	return &CPSEvaluator{ctx: ctx, opts: opts}
}

func (e *CPSEvaluator) roots() []int { return []int{e.n, e.env, e.temp, e.temp1} }

// evalParam evaluates x at a non-call position: literals and symbols
// resolve as usual, but a pair is never itself invoked — it is
// captured as a closure over the current environment, ready to be
// applied or delivered to later.
func (e *CPSEvaluator) evalParam(x, env int) (int, error) {
	h := e.ctx.Heap
	switch {
	case x == Nil || h.IsInt(x):
		return x, nil
	case h.IsSymbol(x):
		v, ok := Lookup(h, env, x)
		if !ok {
			e.LastError = unknownSymbolError{Name: h.SymbolName(x)}
			return Nil, nil
		}
		return v, nil
	default:
		return h.MkPair(env, x)
	}
}

// jmp binds a continuation closure's single formal to value and
// returns the (expr, env) pair the outer loop should continue with.
func (e *CPSEvaluator) jmp(cont, value int) (int, int, error) {
	h := e.ctx.Heap
	capturedEnv := h.Head(cont)
	fnLit := h.Tail(cont)
	formal := h.Head(h.Head(fnLit))
	body := h.Tail(fnLit)
	newEnv, err := bind(h, capturedEnv, formal, value)
	return body, newEnv, err
}

// Eval reduces expr in env to a value using the continuation-passing
// strategy.
func (e *CPSEvaluator) Eval(expr, env int) (int, error) {
	h := e.ctx.Heap
	for {
		e.n, e.env = expr, env
		h.MaybeCollect(e.roots()...)
		if e.opts.StepTrace != nil {
			fmt.Fprintf(e.opts.StepTrace, "eval: %s\n", h.Format(expr))
		}

		switch {
		case expr == Nil || h.IsInt(expr):
			return expr, nil

		case h.IsSymbol(expr):
			v, ok := Lookup(h, env, expr)
			if !ok {
				e.LastError = unknownSymbolError{Name: h.SymbolName(expr)}
				return Nil, nil
			}
			return v, nil

		default:
			fnExpr := h.Head(expr)
			args := h.Tail(expr)

			fn, err := e.evalParam(fnExpr, env)
			if err != nil {
				return Nil, err
			}
			e.temp = fn

			if h.IsSymbol(fn) && fn >= Nil && fn <= maxBuiltinCPS {
				next, nextEnv, result, done, err := e.applyBuiltin(Builtin(fn), args, env)
				if err != nil {
					return Nil, err
				}
				if done {
					return result, nil
				}
				expr, env = next, nextEnv
				continue
			}

			// fn is a closure: bind params to args in lockstep, same
			// as the classic evaluator's application rule.
			closureEnv := h.Head(fn)
			fnLit := h.Tail(fn)
			params := h.Head(fnLit)
			body := h.Tail(fnLit)

			newEnv := closureEnv
			p, a := params, args
			for h.IsPair(p) && p != Nil && h.IsPair(a) && a != Nil {
				argVal, err := e.evalParam(h.Head(a), env)
				if err != nil {
					return Nil, err
				}
				e.temp1 = argVal
				newEnv, err = bind(h, newEnv, h.Head(p), argVal)
				if err != nil {
					return Nil, err
				}
				e.temp = newEnv
				p, a = h.Tail(p), h.Tail(a)
			}
			expr, env = body, newEnv
		}
	}
}

// applyBuiltin dispatches a primitive call. It returns either a
// (expr, env) pair to continue the loop with, or a final result with
// done = true.
func (e *CPSEvaluator) applyBuiltin(b Builtin, args, env int) (int, int, int, bool, error) {
	h := e.ctx.Heap

	switch b {
	case BuiltinNil:
		if args == Nil {
			// The continuation value most recently bound: the value
			// (tail) of the current environment's front binding.
			return Nil, Nil, h.Tail(h.Head(env)), true, nil
		}
		var v int
		var err error
		for args != Nil {
			v, err = e.evalParam(h.Head(args), env)
			if err != nil {
				return Nil, Nil, Nil, true, err
			}
			e.temp = v
			args = h.Tail(args)
		}
		return Nil, Nil, v, true, nil

	case BuiltinQuote:
		// Same convention as the classic evaluator: args is already the
		// literal value being quoted.
		return Nil, Nil, args, true, nil

	case BuiltinIf:
		cond, err := e.evalParam(h.Head(args), env)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		rest := h.Tail(args)
		var y int
		if cond != Nil {
			y = h.Head(rest)
		} else {
			y = h.Head(h.Tail(rest))
		}
		if h.IsPair(y) && y != Nil {
			// The "(() call…)" idiom used for Y-style recursion without
			// letrec: evalParam would wrap y into a closure (env . y)
			// over the current env. Entering that closure with zero
			// arguments leaves env unchanged and continues with y's
			// body, i.e. y with its own empty parameter list stripped.
			return h.Tail(y), env, Nil, false, nil
		}
		return y, env, Nil, false, nil

	case BuiltinHead, BuiltinTail:
		v, err := e.evalParam(h.Head(args), env)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		e.temp = v
		var proj int
		if b == BuiltinHead {
			proj = h.Head(v)
		} else {
			proj = h.Tail(v)
		}
		return e.deliver(args, 1, proj, env)

	case BuiltinAdd, BuiltinSub, BuiltinMul:
		a, b2, err := e.evalBinary(args, env)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		var v int
		switch b {
		case BuiltinAdd:
			v = h.AsInt(a) + h.AsInt(b2)
		case BuiltinSub:
			v = h.AsInt(a) - h.AsInt(b2)
		case BuiltinMul:
			v = h.AsInt(a) * h.AsInt(b2)
		}
		res, err := h.MkInt(v)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		return e.deliver(args, 2, res, env)

	case BuiltinLt, BuiltinEq:
		a, b2, err := e.evalBinary(args, env)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		var ok bool
		if b == BuiltinLt {
			ok = h.AsInt(a) < h.AsInt(b2)
		} else {
			ok = h.AsInt(a) == h.AsInt(b2)
		}
		res := Nil
		if ok {
			// Truthy-as-pair, same convention as the classic evaluator:
			// any opaque non-nil value. There is no call cell to reuse
			// here, so allocate one from the operands instead.
			var err error
			res, err = h.MkPair(a, b2)
			if err != nil {
				return Nil, Nil, Nil, true, err
			}
		}
		return e.deliver(args, 2, res, env)

	case BuiltinCons:
		a, b2, err := e.evalBinary(args, env)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		e.temp, e.temp1 = a, b2
		res, err := h.MkPair(a, b2)
		if err != nil {
			return Nil, Nil, Nil, true, err
		}
		return e.deliver(args, 2, res, env)
	}

	return Nil, Nil, Nil, true, fmt.Errorf("unreachable cps builtin %v", b)
}

// evalBinary evaluates the first two elements of args as operands.
func (e *CPSEvaluator) evalBinary(args, env int) (int, int, error) {
	h := e.ctx.Heap
	a, err := e.evalParam(h.Head(args), env)
	if err != nil {
		return Nil, Nil, err
	}
	e.temp = a
	b2, err := e.evalParam(h.Head(h.Tail(args)), env)
	if err != nil {
		return Nil, Nil, err
	}
	e.temp1 = b2
	return a, b2, nil
}

// deliver looks past the arity-th element of args for a trailing
// continuation. If present, it jmps into it with value; otherwise
// value is the call's final result.
func (e *CPSEvaluator) deliver(args, arity, value, env int) (int, int, int, bool, error) {
	h := e.ctx.Heap
	rest := args
	for i := 0; i < arity; i++ {
		rest = h.Tail(rest)
	}
	if rest == Nil {
		return Nil, Nil, value, true, nil
	}
	cont, err := e.evalParam(h.Head(rest), env)
	if err != nil {
		return Nil, Nil, Nil, true, err
	}
	expr, newEnv, err := e.jmp(cont, value)
	if err != nil {
		return Nil, Nil, Nil, true, err
	}
	return expr, newEnv, Nil, false, nil
}
