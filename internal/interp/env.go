// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/value"
)

// Lookup walks env from head to tail looking for var, returning the
// bound value of the first matching frame. A binding whose value is
// Undefined (cleared by undefine!) reports the same "undefined
// variable" error a missing binding would, per the lookup contract.
func Lookup(ctx *Context, name string, env value.Value) value.Value {
	for v := env; v.Kind() == value.KindCons; v = value.Cdr(v) {
		frame := value.Car(v)
		if frame.Kind() != value.KindCons {
			continue
		}
		if value.Car(frame).Kind() == value.KindAtom && value.Car(frame).Text() == name {
			bound := value.Cdr(frame)
			if bound.Kind() == value.KindUndefined {
				return undefinedVariableError(ctx, name)
			}
			return bound
		}
	}
	return undefinedVariableError(ctx, name)
}

func undefinedVariableError(ctx *Context, name string) value.Value {
	if suggestion := ctx.suggest(name); suggestion != "" {
		return value.Errorf(ctx.Scratch, "undefined variable: %s (did you mean %s?)", name, suggestion)
	}
	return value.Errorf(ctx.Scratch, "undefined variable: %s", name)
}

// FindFrame walks env looking for var and returns the frame Cons
// itself, so callers can mutate its Cdr in place (set!/undefine!), or
// Nil if var is not bound anywhere in env.
func FindFrame(name string, env value.Value) value.Value {
	for v := env; v.Kind() == value.KindCons; v = value.Cdr(v) {
		frame := value.Car(v)
		if frame.Kind() != value.KindCons {
			continue
		}
		if value.Car(frame).Kind() == value.KindAtom && value.Car(frame).Text() == name {
			return frame
		}
	}
	return value.Nil()
}

// Extend prepends a new frame binding var to val ahead of env. It
// never mutates env's existing cells; shadowing is expressed purely
// by which frame is found first during Lookup.
func Extend(a *arena.Arena, name string, val value.Value, env value.Value) value.Value {
	frame := value.ConsOf(a, value.Atom(a, name), val)
	return value.ConsOf(a, frame, env)
}

// Bind performs the recursive parallel descent described for lambda
// application: each corresponding (param, arg) pair is prepended as a
// frame, and if params terminates in a bare atom rather than Nil, that
// atom is bound to the remaining (possibly empty) arg tail — the
// dotted-parameter rest-list convention.
func Bind(a *arena.Arena, params, args, env value.Value) (value.Value, bool) {
	switch params.Kind() {
	case value.KindNil:
		return env, args.Kind() == value.KindNil
	case value.KindAtom:
		return Extend(a, params.Text(), args, env), true
	case value.KindCons:
		if args.Kind() != value.KindCons {
			return value.Nil(), false
		}
		env = Extend(a, value.Car(params).Text(), value.Car(args), env)
		return Bind(a, value.Cdr(params), value.Cdr(args), env)
	default:
		return value.Nil(), false
	}
}

// CountParams returns the number of formal parameters in a params
// list, and whether the list is variadic (terminates in a bare atom
// rather than Nil).
func CountParams(params value.Value) (count int, variadic bool) {
	for params.Kind() == value.KindCons {
		count++
		params = value.Cdr(params)
	}
	return count, params.Kind() == value.KindAtom
}
