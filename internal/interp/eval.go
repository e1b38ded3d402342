// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/giorgioyu125/golisp/internal/value"
)

// Unbounded marks a primitive's declared arity as variadic.
const Unbounded = -1

// PrimFn is the signature shared by every strict primitive: it
// receives the already-evaluated argument list, the calling
// environment (needed by eval/apply), and returns a result or error
// value. The Context is reached through ip.Ctx.
type PrimFn func(ip *Interp, args value.Value, env value.Value) value.Value

// formResult is what a special form hands back to the evaluator's
// main loop: either a final value, or a (expr, env) pair to continue
// evaluating in tail position.
type formResult struct {
	tail bool
	val  value.Value
	expr value.Value
	env  value.Value
}

func final(v value.Value) formResult { return formResult{val: v} }
func loop(expr, env value.Value) formResult {
	return formResult{tail: true, expr: expr, env: env}
}

// SpecialFn is the signature for a special form: it receives the
// argument list unevaluated.
type SpecialFn func(ip *Interp, args value.Value, env value.Value) formResult

// PrimEntry is one row of the primitives table: a name, its
// implementation, and its declared arity (or Unbounded for variadic
// primitives). Special is set for the special forms, which are
// invoked with unevaluated arguments and may request a tail loop.
type PrimEntry struct {
	Name    string
	Arity   int
	Fn      PrimFn
	Special SpecialFn
}

func (e PrimEntry) isSpecialForm() bool { return e.Special != nil }

// Eval is the recursive evaluator. It dispatches on expr's tag and,
// for function-application Cons forms, loops on (expr, env) rather
// than recursing so that tail calls in closure bodies, if-branches,
// and the last form of let* do not grow the host call stack.
func Eval(ip *Interp, expr, env value.Value) value.Value {
	for {
		switch expr.Kind() {
		case value.KindNil, value.KindNumber, value.KindString:
			return expr
		case value.KindAtom:
			return Lookup(ip.Ctx, expr.Text(), env)
		case value.KindCons:
		default:
			// Error, Undefined, Primitive, Closure, Macro values
			// occasionally flow back through Eval (e.g. quoted data
			// containing a closure); they evaluate to themselves.
			return expr
		}

		headExpr := value.Car(expr)
		argsExpr := value.Cdr(expr)

		head := Eval(ip, headExpr, env)
		if head.Kind() == value.KindError {
			return head
		}

		switch head.Kind() {
		case value.KindMacro:
			clo := head.Closure()
			newEnv, ok := Bind(ip.Ctx.Scratch, clo.Params, argsExpr, clo.Env)
			if !ok {
				n, variadic := CountParams(clo.Params)
				return arityError(ip, n, variadic, value.Length(argsExpr))
			}
			expansion := Eval(ip, clo.Body, newEnv)
			if expansion.Kind() == value.KindError {
				return expansion
			}
			// Open question resolved: the expansion is re-evaluated in
			// the macro's own binding environment, not the caller's —
			// see DESIGN.md.
			expr, env = expansion, newEnv
			continue

		case value.KindPrimitive:
			entry := ip.Primitives[head.PrimitiveIndex()]
			if entry.isSpecialForm() {
				if n := value.Length(argsExpr); entry.Arity != Unbounded && n != entry.Arity {
					return value.Errorf(ip.Ctx.Scratch, "%s expects %d arguments, but got %d", entry.Name, entry.Arity, n)
				}
				res := entry.Special(ip, argsExpr, env)
				if res.tail {
					expr, env = res.expr, res.env
					continue
				}
				return res.val
			}

			evaled, errv := evalList(ip, argsExpr, env)
			if errv.Kind() == value.KindError {
				return errv
			}
			n := value.Length(evaled)
			if entry.Arity != Unbounded && n != entry.Arity {
				return value.Errorf(ip.Ctx.Scratch, "%s expects %d arguments, but got %d", entry.Name, entry.Arity, n)
			}
			return entry.Fn(ip, evaled, env)

		case value.KindClosure:
			clo := head.Closure()
			evaled, errv := evalList(ip, argsExpr, env)
			if errv.Kind() == value.KindError {
				return errv
			}
			n, variadic := CountParams(clo.Params)
			actual := value.Length(evaled)
			if !variadic && n != actual {
				return arityError(ip, n, variadic, actual)
			}
			newEnv, ok := Bind(ip.Ctx.Scratch, clo.Params, evaled, clo.Env)
			if !ok {
				return arityError(ip, n, variadic, actual)
			}
			expr, env = clo.Body, newEnv
			continue

		default:
			return value.Errorf(ip.Ctx.Scratch, "cannot apply a non-function value of type %s", value.TypeName(head))
		}
	}
}

func arityError(ip *Interp, want int, variadic bool, got int) value.Value {
	if variadic {
		return value.Errorf(ip.Ctx.Scratch, "expects at least %d arguments, but got %d", want, got)
	}
	return value.Errorf(ip.Ctx.Scratch, "expects %d arguments, but got %d", want, got)
}

// evalList evaluates each element of a (possibly improper, though in
// practice always proper) argument list in order, short-circuiting on
// the first Error.
func evalList(ip *Interp, args, env value.Value) (value.Value, value.Value) {
	if args.Kind() != value.KindCons {
		return value.Nil(), value.Nil()
	}
	head := Eval(ip, value.Car(args), env)
	if head.Kind() == value.KindError {
		return value.Nil(), head
	}
	rest, errv := evalList(ip, value.Cdr(args), env)
	if errv.Kind() == value.KindError {
		return value.Nil(), errv
	}
	return value.ConsOf(ip.Ctx.Scratch, head, rest), value.Nil()
}

// ApplyValue applies fn to an already-evaluated argument list, the
// mechanism shared by the apply primitive and the higher-order
// primitives (mapcar, filter, reduce). Unlike the main Eval loop this
// recurses rather than looping, since callers here are themselves
// primitive bodies rather than tail position in user code.
func ApplyValue(ip *Interp, fn, args value.Value) value.Value {
	switch fn.Kind() {
	case value.KindClosure:
		clo := fn.Closure()
		n, variadic := CountParams(clo.Params)
		actual := value.Length(args)
		if !variadic && n != actual {
			return arityError(ip, n, variadic, actual)
		}
		newEnv, ok := Bind(ip.Ctx.Scratch, clo.Params, args, clo.Env)
		if !ok {
			return arityError(ip, n, variadic, actual)
		}
		return Eval(ip, clo.Body, newEnv)

	case value.KindPrimitive:
		entry := ip.Primitives[fn.PrimitiveIndex()]
		if entry.isSpecialForm() {
			return value.Errorf(ip.Ctx.Scratch, "cannot apply special form %s", entry.Name)
		}
		n := value.Length(args)
		if entry.Arity != Unbounded && n != entry.Arity {
			return value.Errorf(ip.Ctx.Scratch, "%s expects %d arguments, but got %d", entry.Name, entry.Arity, n)
		}
		return entry.Fn(ip, args, value.Nil())

	default:
		return value.Errorf(ip.Ctx.Scratch, "cannot apply a non-function value of type %s", value.TypeName(fn))
	}
}
