package lilisp

import "fmt"

// ClassicEvaluator is the recursive tree-walking evaluator: lambda,
// let and letrec are native forms, tail positions (if/let/letrec
// bodies, closure bodies) are rewritten in place inside an explicit
// loop so linear recursion doesn't consume native stack, and every
// activation's live intermediates are exposed to the collector
// through a guardStack frame — the same push-mutate-pop discipline
// vm_stack.go uses for parser backtracking state, generalized here to
// evaluator roots.
type ClassicEvaluator struct {
	ctx    *Context
	opts   Options
	guards guardStack

	// LastError records the most recent soft evaluation error (an
	// unknown symbol lookup); evaluation itself never aborts because
	// of it, matching the reference's behavior of printing a
	// diagnostic and carrying on with nil.
	LastError error
}

func NewClassicEvaluator(ctx *Context, opts Options) *ClassicEvaluator {
	return &ClassicEvaluator{ctx: ctx, opts: opts}
}

// Eval reduces expr in env to a value, per the classic evaluator's
// rules: nil/integers are self-evaluating, symbols resolve through
// env, and pairs are calls dispatched either to a builtin or to a
// user closure.
func (e *ClassicEvaluator) Eval(expr, env int) (int, error) {
	h := e.ctx.Heap
	frame := e.guards.push()
	defer e.guards.pop()

	for {
		frame.expr, frame.ctx = expr, env
		h.MaybeCollect(e.guards.roots()...)
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

		default: // pair: a call
			fnExpr := h.Head(expr)
			args := h.Tail(expr)
			frame.temp = args

			fn, err := e.Eval(fnExpr, env)
			if err != nil {
				return Nil, err
			}
			frame.temp = fn

			if h.IsSymbol(fn) && fn >= int(BuiltinQuote) && fn <= int(BuiltinLetrec) {
				next, result, done, err := e.applyBuiltin(Builtin(fn), expr, args, env, frame)
				if err != nil {
					return Nil, err
				}
				if done {
					return result, nil
				}
				expr, env = next.expr, next.env
				continue
			}

			// fn must be a closure: (ctx' . (params body)), the lambda
			// form's argument list captured as is.
			closureEnv := h.Head(fn)
			fnLit := h.Tail(fn)
			params := h.Head(fnLit)
			body := h.Head(h.Tail(fnLit))
			frame.temp = closureEnv

			newEnv := closureEnv
			p, a := params, args
			for h.IsPair(p) && p != Nil && h.IsPair(a) && a != Nil {
				argVal, err := e.Eval(h.Head(a), env)
				if err != nil {
					return Nil, err
				}
				frame.temp1 = argVal
				newEnv, err = bind(h, newEnv, h.Head(p), argVal)
				if err != nil {
					return Nil, err
				}
				frame.temp = newEnv
				p, a = h.Tail(p), h.Tail(a)
			}
			expr, env = body, newEnv
		}
	}
}

// tailCall is the pair of (expr, env) a builtin hands back when it
// wants the outer loop to continue rather than return.
type tailCall struct {
	expr, env int
}

// applyBuiltin dispatches one of the reserved low-numbered symbols.
// It returns either a tailCall for the outer loop to continue with,
// or a final result with done = true.
func (e *ClassicEvaluator) applyBuiltin(b Builtin, call, args, env int, frame *guardFrame) (tailCall, int, bool, error) {
	h := e.ctx.Heap

	evalArg := func(i int) (int, error) { return e.Eval(i, env) }

	switch b {
	case BuiltinQuote:
		// args is already the literal list of everything following the
		// quote mark: `(' 1 2 3 4)` quotes the 4-element list (1 2 3 4),
		// not just its first element.
		return tailCall{}, args, true, nil

	case BuiltinIf:
		cond, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = cond
		rest := h.Tail(args)
		if cond != Nil {
			return tailCall{expr: h.Head(rest), env: env}, Nil, false, nil
		}
		return tailCall{expr: h.Head(h.Tail(rest)), env: env}, Nil, false, nil

	case BuiltinAdd, BuiltinSub, BuiltinMul:
		a, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = a
		b2, err := evalArg(h.Head(h.Tail(args)))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp1 = b2
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
		return tailCall{}, res, true, err

	case BuiltinLt, BuiltinEq:
		a, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = a
		b2, err := evalArg(h.Head(h.Tail(args)))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp1 = b2
		var ok bool
		if b == BuiltinLt {
			ok = h.AsInt(a) < h.AsInt(b2)
		} else {
			ok = h.AsInt(a) == h.AsInt(b2)
		}
		if ok {
			// Truthy-as-pair: the call cell itself, an opaque non-nil value.
			return tailCall{}, call, true, nil
		}
		return tailCall{}, Nil, true, nil

	case BuiltinCons:
		a, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = a
		b2, err := evalArg(h.Head(h.Tail(args)))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp1 = b2
		res, err := h.MkPair(a, b2)
		return tailCall{}, res, true, err

	case BuiltinHead:
		v, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		return tailCall{}, h.Head(v), true, nil

	case BuiltinTail:
		v, err := evalArg(h.Head(args))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		return tailCall{}, h.Tail(v), true, nil

	case BuiltinLambda:
		closure, err := h.MkPair(env, args)
		return tailCall{}, closure, true, err

	case BuiltinLet:
		name := h.Head(args)
		rest := h.Tail(args)
		v, err := evalArg(h.Head(rest))
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = v
		newEnv, err := bind(h, env, name, v)
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		body := h.Head(h.Tail(rest))
		return tailCall{expr: body, env: newEnv}, Nil, false, nil

	case BuiltinLetrec:
		name := h.Head(args)
		rest := h.Tail(args)
		newEnv, err := bind(h, env, name, Nil)
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		frame.temp = newEnv
		binding := h.Head(newEnv)
		v, err := e.Eval(h.Head(rest), newEnv)
		if err != nil {
			return tailCall{}, Nil, true, err
		}
		h.SetTail(binding, v)
		body := h.Head(h.Tail(rest))
		return tailCall{expr: body, env: newEnv}, Nil, false, nil
	}

	return tailCall{}, Nil, true, fmt.Errorf("unreachable builtin %v", b)
}
