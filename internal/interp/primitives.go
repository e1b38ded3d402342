// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"os"

	"github.com/giorgioyu125/golisp/internal/value"
)

// registerPrimitives returns the complete primitives table: the
// special forms first, then every strict primitive. Index order
// determines the Primitive value's table reference, so this slice is
// appended to ip.Primitives in exactly this order during bootstrap.
func registerPrimitives() []PrimEntry {
	entries := registerSpecialForms()
	entries = append(entries,
		PrimEntry{Name: "+", Arity: Unbounded, Fn: primAdd},
		PrimEntry{Name: "-", Arity: Unbounded, Fn: primSub},
		PrimEntry{Name: "*", Arity: Unbounded, Fn: primMul},
		PrimEntry{Name: "/", Arity: Unbounded, Fn: primDiv},
		PrimEntry{Name: "%", Arity: 2, Fn: primMod},

		PrimEntry{Name: "<", Arity: Unbounded, Fn: chain(func(a, b float64) bool { return a < b })},
		PrimEntry{Name: ">", Arity: Unbounded, Fn: chain(func(a, b float64) bool { return a > b })},
		PrimEntry{Name: "<=", Arity: Unbounded, Fn: chain(func(a, b float64) bool { return a <= b })},
		PrimEntry{Name: ">=", Arity: Unbounded, Fn: chain(func(a, b float64) bool { return a >= b })},
		PrimEntry{Name: "=", Arity: Unbounded, Fn: chain(func(a, b float64) bool { return a == b })},

		PrimEntry{Name: "eq?", Arity: 2, Fn: primEqP},
		PrimEntry{Name: "not", Arity: 1, Fn: primNot},
		PrimEntry{Name: "pair?", Arity: 1, Fn: kindPredicate(value.KindCons)},
		PrimEntry{Name: "list?", Arity: 1, Fn: primListP},
		PrimEntry{Name: "number?", Arity: Unbounded, Fn: allOfKind(value.KindNumber)},
		PrimEntry{Name: "atom?", Arity: 1, Fn: kindPredicate(value.KindAtom)},
		PrimEntry{Name: "string?", Arity: 1, Fn: kindPredicate(value.KindString)},
		PrimEntry{Name: "nil?", Arity: 1, Fn: kindPredicate(value.KindNil)},

		PrimEntry{Name: "cons", Arity: 2, Fn: primCons},
		PrimEntry{Name: "list", Arity: Unbounded, Fn: primList},
		PrimEntry{Name: "car", Arity: 1, Fn: primCar},
		PrimEntry{Name: "cdr", Arity: 1, Fn: primCdr},
		PrimEntry{Name: "reverse", Arity: 1, Fn: primReverse},
		PrimEntry{Name: "len", Arity: 1, Fn: primLen},

		PrimEntry{Name: "mapcar", Arity: 2, Fn: primMapcar},
		PrimEntry{Name: "filter", Arity: 2, Fn: primFilter},
		PrimEntry{Name: "reduce", Arity: Unbounded, Fn: primReduce},

		PrimEntry{Name: "apply", Arity: 2, Fn: primApply},
		PrimEntry{Name: "eval", Arity: 1, Fn: primEval},

		PrimEntry{Name: "display", Arity: 1, Fn: primDisplay},
		PrimEntry{Name: "tap", Arity: Unbounded, Fn: primTap},
	)
	return entries
}

func numArg(ip *Interp, v value.Value) (float64, value.Value) {
	if v.Kind() != value.KindNumber {
		return 0, value.Errorf(ip.Ctx.Scratch, "expected number, got %s", value.TypeName(v))
	}
	return v.Num(), value.Nil()
}

func primAdd(ip *Interp, args, env value.Value) value.Value {
	sum := 0.0
	for a := args; a.Kind() == value.KindCons; a = value.Cdr(a) {
		n, errv := numArg(ip, value.Car(a))
		if errv.Kind() == value.KindError {
			return errv
		}
		sum += n
	}
	return value.Number(sum)
}

func primSub(ip *Interp, args, env value.Value) value.Value {
	if args.Kind() != value.KindCons {
		return value.Errorf(ip.Ctx.Scratch, "-: expects at least 1 argument, but got 0")
	}
	first, errv := numArg(ip, value.Car(args))
	if errv.Kind() == value.KindError {
		return errv
	}
	rest := value.Cdr(args)
	if rest.Kind() != value.KindCons {
		return value.Number(-first)
	}
	acc := first
	for a := rest; a.Kind() == value.KindCons; a = value.Cdr(a) {
		n, errv := numArg(ip, value.Car(a))
		if errv.Kind() == value.KindError {
			return errv
		}
		acc -= n
	}
	return value.Number(acc)
}

func primMul(ip *Interp, args, env value.Value) value.Value {
	prod := 1.0
	for a := args; a.Kind() == value.KindCons; a = value.Cdr(a) {
		n, errv := numArg(ip, value.Car(a))
		if errv.Kind() == value.KindError {
			return errv
		}
		prod *= n
	}
	return value.Number(prod)
}

func primDiv(ip *Interp, args, env value.Value) value.Value {
	if args.Kind() != value.KindCons {
		return value.Errorf(ip.Ctx.Scratch, "/: expects at least 1 argument, but got 0")
	}
	first, errv := numArg(ip, value.Car(args))
	if errv.Kind() == value.KindError {
		return errv
	}
	rest := value.Cdr(args)
	if rest.Kind() != value.KindCons {
		if first == 0 {
			return value.Errorf(ip.Ctx.Scratch, "division by zero")
		}
		return value.Number(1 / first)
	}
	acc := first
	for a := rest; a.Kind() == value.KindCons; a = value.Cdr(a) {
		n, errv := numArg(ip, value.Car(a))
		if errv.Kind() == value.KindError {
			return errv
		}
		if n == 0 {
			return value.Errorf(ip.Ctx.Scratch, "division by zero")
		}
		acc /= n
	}
	return value.Number(acc)
}

func primMod(ip *Interp, args, env value.Value) value.Value {
	a, errv := numArg(ip, value.Car(args))
	if errv.Kind() == value.KindError {
		return errv
	}
	b, errv2 := numArg(ip, value.Car(value.Cdr(args)))
	if errv2.Kind() == value.KindError {
		return errv2
	}
	if b == 0 {
		return value.Errorf(ip.Ctx.Scratch, "division by zero")
	}
	return value.Number(float64(int64(a) % int64(b)))
}

// chain builds a variadic comparison primitive from a binary relation,
// reporting true only if cmp holds between every consecutive pair.
func chain(cmp func(a, b float64) bool) PrimFn {
	return func(ip *Interp, args, env value.Value) value.Value {
		if args.Kind() != value.KindCons {
			return ip.True
		}
		prev, errv := numArg(ip, value.Car(args))
		if errv.Kind() == value.KindError {
			return errv
		}
		for a := value.Cdr(args); a.Kind() == value.KindCons; a = value.Cdr(a) {
			cur, errv := numArg(ip, value.Car(a))
			if errv.Kind() == value.KindError {
				return errv
			}
			if !cmp(prev, cur) {
				return value.Nil()
			}
			prev = cur
		}
		return ip.True
	}
}

func primEqP(ip *Interp, args, env value.Value) value.Value {
	if value.Equal(value.Car(args), value.Car(value.Cdr(args))) {
		return ip.True
	}
	return value.Nil()
}

func primNot(ip *Interp, args, env value.Value) value.Value {
	if value.IsTruthy(value.Car(args)) {
		return value.Nil()
	}
	return ip.True
}

func kindPredicate(k value.Kind) PrimFn {
	return func(ip *Interp, args, env value.Value) value.Value {
		if value.Car(args).Kind() == k {
			return ip.True
		}
		return value.Nil()
	}
}

// allOfKind builds a variadic all-true-of predicate: it requires at
// least one argument and every argument to have kind k.
func allOfKind(k value.Kind) PrimFn {
	return func(ip *Interp, args, env value.Value) value.Value {
		if args.Kind() != value.KindCons {
			return value.Nil()
		}
		for a := args; a.Kind() == value.KindCons; a = value.Cdr(a) {
			if value.Car(a).Kind() != k {
				return value.Nil()
			}
		}
		return ip.True
	}
}

func primListP(ip *Interp, args, env value.Value) value.Value {
	if value.IsProperList(value.Car(args)) {
		return ip.True
	}
	return value.Nil()
}

func primCons(ip *Interp, args, env value.Value) value.Value {
	return value.ConsOf(ip.Ctx.Scratch, value.Car(args), value.Car(value.Cdr(args)))
}

func primList(ip *Interp, args, env value.Value) value.Value {
	return args
}

func primCar(ip *Interp, args, env value.Value) value.Value {
	v := value.Car(args)
	if v.Kind() != value.KindCons {
		return value.Errorf(ip.Ctx.Scratch, "car: expected pair, got %s", value.TypeName(v))
	}
	return value.Car(v)
}

func primCdr(ip *Interp, args, env value.Value) value.Value {
	v := value.Car(args)
	if v.Kind() != value.KindCons {
		return value.Errorf(ip.Ctx.Scratch, "cdr: expected pair, got %s", value.TypeName(v))
	}
	return value.Cdr(v)
}

func primReverse(ip *Interp, args, env value.Value) value.Value {
	out := value.Nil()
	for l := value.Car(args); l.Kind() == value.KindCons; l = value.Cdr(l) {
		out = value.ConsOf(ip.Ctx.Scratch, value.Car(l), out)
	}
	return out
}

func primLen(ip *Interp, args, env value.Value) value.Value {
	return value.Number(float64(value.Length(value.Car(args))))
}

func primMapcar(ip *Interp, args, env value.Value) value.Value {
	fn := value.Car(args)
	list := value.Car(value.Cdr(args))
	if list.Kind() != value.KindCons {
		return value.Nil()
	}
	head := ApplyValue(ip, fn, value.ConsOf(ip.Ctx.Scratch, value.Car(list), value.Nil()))
	if head.Kind() == value.KindError {
		return head
	}
	rest := primMapcar(ip, value.ConsOf(ip.Ctx.Scratch, fn, value.ConsOf(ip.Ctx.Scratch, value.Cdr(list), value.Nil())), env)
	if rest.Kind() == value.KindError {
		return rest
	}
	return value.ConsOf(ip.Ctx.Scratch, head, rest)
}

func primFilter(ip *Interp, args, env value.Value) value.Value {
	fn := value.Car(args)
	list := value.Car(value.Cdr(args))
	if list.Kind() != value.KindCons {
		return value.Nil()
	}
	elem := value.Car(list)
	keep := ApplyValue(ip, fn, value.ConsOf(ip.Ctx.Scratch, elem, value.Nil()))
	if keep.Kind() == value.KindError {
		return keep
	}
	rest := primFilter(ip, value.ConsOf(ip.Ctx.Scratch, fn, value.ConsOf(ip.Ctx.Scratch, value.Cdr(list), value.Nil())), env)
	if rest.Kind() == value.KindError {
		return rest
	}
	if value.IsTruthy(keep) {
		return value.ConsOf(ip.Ctx.Scratch, elem, rest)
	}
	return rest
}

// primReduce implements both the 2-arg form, (reduce fn list), which
// uses the list's head as the seed and folds over the rest, and the
// 3-arg form, (reduce fn seed list), which folds the full list over
// an explicit seed.
func primReduce(ip *Interp, args, env value.Value) value.Value {
	fn := value.Car(args)
	rest := value.Cdr(args)

	var acc, list value.Value
	switch value.Length(rest) {
	case 1:
		list = value.Car(rest)
		if list.Kind() != value.KindCons {
			return value.Errorf(ip.Ctx.Scratch, "reduce: 2-arg form requires a non-empty list")
		}
		acc = value.Car(list)
		list = value.Cdr(list)
	case 2:
		acc = value.Car(rest)
		list = value.Car(value.Cdr(rest))
	default:
		return value.Errorf(ip.Ctx.Scratch, "reduce expects 2 or 3 arguments, but got %d", value.Length(args))
	}

	for l := list; l.Kind() == value.KindCons; l = value.Cdr(l) {
		callArgs := value.ConsOf(ip.Ctx.Scratch, acc, value.ConsOf(ip.Ctx.Scratch, value.Car(l), value.Nil()))
		result := ApplyValue(ip, fn, callArgs)
		if result.Kind() == value.KindError {
			return result
		}
		acc = result
	}
	return acc
}

func primApply(ip *Interp, args, env value.Value) value.Value {
	fn := value.Car(args)
	callArgs := value.Car(value.Cdr(args))
	if !value.IsProperList(callArgs) {
		return value.Errorf(ip.Ctx.Scratch, "apply: expected list of arguments, got %s", value.TypeName(callArgs))
	}
	return ApplyValue(ip, fn, callArgs)
}

func primEval(ip *Interp, args, env value.Value) value.Value {
	// ApplyValue has no caller env and passes Nil; use the globals then.
	if env.Kind() == value.KindNil {
		env = ip.Global
	}
	return Eval(ip, value.Car(args), env)
}

func primDisplay(ip *Interp, args, env value.Value) value.Value {
	v := value.Car(args)
	fmt.Fprintln(os.Stdout, formatValue(v))
	return v
}

// primTap is a debugging identity function: it prints its value (and
// an optional leading label) to stdout, then returns the value
// unchanged, regardless of the configured log level.
func primTap(ip *Interp, args, env value.Value) value.Value {
	n := value.Length(args)
	var label, v value.Value
	switch n {
	case 1:
		v = value.Car(args)
	case 2:
		label = value.Car(args)
		v = value.Car(value.Cdr(args))
	default:
		return value.Errorf(ip.Ctx.Scratch, "tap expects 1 or 2 arguments, but got %d", n)
	}

	if n == 2 {
		fmt.Fprintf(os.Stdout, "%s: %s\n", formatValue(label), formatValue(v))
	} else {
		fmt.Fprintln(os.Stdout, formatValue(v))
	}
	return v
}

// formatValue is a minimal structural renderer used by display/tap;
// the full pretty-printer lives in package printer.
func formatValue(v value.Value) string {
	switch v.Kind() {
	case value.KindNil:
		return "()"
	case value.KindNumber:
		return fmt.Sprintf("%g", v.Num())
	case value.KindAtom:
		return v.Text()
	case value.KindString:
		return fmt.Sprintf("%q", v.Text())
	case value.KindError:
		return "error: " + v.Text()
	case value.KindPrimitive:
		return "<primitive>"
	case value.KindClosure:
		return "<closure>"
	case value.KindMacro:
		return "<macro>"
	case value.KindUndefined:
		return "<undefined>"
	case value.KindCons:
		s := "("
		first := true
		for cur := v; ; {
			if cur.Kind() == value.KindCons {
				if !first {
					s += " "
				}
				first = false
				s += formatValue(value.Car(cur))
				cur = value.Cdr(cur)
				continue
			}
			if cur.Kind() == value.KindNil {
				break
			}
			s += " . " + formatValue(cur)
			break
		}
		return s + ")"
	default:
		return "?"
	}
}
