// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package value implements the tagged union of runtime value kinds
// that every other interpreter subsystem operates on: numbers, atoms,
// strings, primitives, cons pairs, closures, macros, errors, and the
// undefined sentinel.
package value

import (
	"fmt"
	"unique"

	"github.com/giorgioyu125/golisp/internal/arena"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindNumber
	KindAtom
	KindString
	KindPrimitive
	KindCons
	KindClosure
	KindMacro
	KindError
	KindUndefined
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindAtom:
		return "atom"
	case KindString:
		return "string"
	case KindPrimitive:
		return "primitive"
	case KindCons:
		return "pair"
	case KindClosure:
		return "closure"
	case KindMacro:
		return "macro"
	case KindError:
		return "error"
	case KindUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// textHandle is the interned-string representation shared by atoms,
// strings, and error messages. Interning gives O(1) identity-style
// equality and lets text outlive any single arena's reset cycle,
// which is why atoms compare equal by name even after the scratch
// arena that first read them has been reset.
type textHandle = unique.Handle[string]

// Cons is the universal compound constructor: a pair of values. Every
// Cons is allocated from exactly one arena; its address is its
// identity for equality and for environment-frame mutation.
type Cons struct {
	Car Value
	Cdr Value
}

// Closure is a user-defined function or macro: formal parameters,
// a single body expression, and the environment captured at creation
// time. The same struct backs both Value.Kind == KindClosure and
// KindMacro; only the tag on the referencing Value differs.
type Closure struct {
	Params Value
	Body   Value
	Env    Value
}

// Value is the tagged union described by the data model: every
// runtime value, regardless of kind, is one of these structs, copied
// by value except for the Cons/Closure payload which is reached
// through a stable arena pointer.
type Value struct {
	kind Kind
	num  float64
	text textHandle
	prim int
	cons *Cons
	clo  *Closure
}

// Kind returns the value's variant tag.
func (v Value) Kind() Kind { return v.kind }

// Nil returns the empty-list / false value.
func Nil() Value { return Value{kind: KindNil} }

// Undefined returns the sentinel for a removed binding.
func Undefined() Value { return Value{kind: KindUndefined} }

// Number constructs a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Atom constructs an interned symbol. The arena argument is accepted
// for symmetry with the other constructors and to account allocation
// pressure in metrics, but atom text itself is interned process-wide
// via unique.Handle rather than duplicated per arena: interning
// already gives atoms a lifetime independent of any single arena's
// reset cycle, and by-name identity for free. See DESIGN.md for the
// rationale (this replaces the spec's literal "duplicate into target
// arena" text-copy for the Atom/String/Error kinds).
func Atom(a *arena.Arena, name string) Value {
	if a != nil {
		a.Alloc(0) // account the (amortized) bookkeeping cost of interning
	}
	return Value{kind: KindAtom, text: unique.Make(name)}
}

// String constructs a self-evaluating string value.
func String(a *arena.Arena, s string) Value {
	if a != nil {
		a.Alloc(0)
	}
	return Value{kind: KindString, text: unique.Make(s)}
}

// maxErrorLen bounds error messages per the "bounded buffer" contract.
const maxErrorLen = 256

// Errorf formats and constructs a propagating Error value. The
// message is truncated to maxErrorLen characters, matching the
// bounded-buffer contract for make_error.
func Errorf(a *arena.Arena, format string, args ...any) Value {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	if a != nil {
		a.Alloc(0)
	}
	return Value{kind: KindError, text: unique.Make(msg)}
}

// Primitive constructs a reference to the primitives table entry at
// the given index.
func Primitive(idx int) Value { return Value{kind: KindPrimitive, prim: idx} }

// ConsOf allocates a new pair in a and returns a value referencing it.
func ConsOf(a *arena.Arena, car, cdr Value) Value {
	c := arena.AllocFor[Cons](a)
	c.Car = car
	c.Cdr = cdr
	return Value{kind: KindCons, cons: c}
}

// Lambda allocates a new closure in a.
func Lambda(a *arena.Arena, params, body, env Value) Value {
	c := arena.AllocFor[Closure](a)
	c.Params = params
	c.Body = body
	c.Env = env
	return Value{kind: KindClosure, clo: c}
}

// MacroOf allocates a new macro in a.
func MacroOf(a *arena.Arena, params, body, env Value) Value {
	c := arena.AllocFor[Closure](a)
	c.Params = params
	c.Body = body
	c.Env = env
	return Value{kind: KindMacro, clo: c}
}

// Text returns the interned text payload of an Atom, String, or
// Error value. It panics for any other kind; callers must check Kind
// first.
func (v Value) Text() string {
	switch v.kind {
	case KindAtom, KindString, KindError:
		return v.text.Value()
	default:
		panic(fmt.Sprintf("value: Text() called on %s", v.kind))
	}
}

// PrimitiveIndex returns the primitives-table index of a Primitive
// value.
func (v Value) PrimitiveIndex() int { return v.prim }

// Pair returns the underlying Cons pointer of a Cons value.
func (v Value) Pair() *Cons { return v.cons }

// Closure returns the underlying Closure pointer of a Closure or
// Macro value.
func (v Value) Closure() *Closure { return v.clo }

// Num returns the float64 payload of a Number value.
func (v Value) Num() float64 { return v.num }

// WrapCons reconstructs a Cons Value from a raw *Cons pointer. It
// exists for subsystems (the global-frame cache, in particular) that
// need to hand a previously-resolved Cons pointer back to evaluator
// code as an ordinary Value.
func WrapCons(c *Cons) Value {
	if c == nil {
		return Nil()
	}
	return Value{kind: KindCons, cons: c}
}

// Car/Cdr are convenience accessors over a Cons value; both are
// no-ops (returning Nil) on a non-Cons Nil value so list walking code
// doesn't need to special-case the empty list at every step. Callers
// that must distinguish "not a pair" from "empty tail" should check
// Kind() == KindCons first.
func Car(v Value) Value {
	if v.kind != KindCons {
		return Nil()
	}
	return v.cons.Car
}

func Cdr(v Value) Value {
	if v.kind != KindCons {
		return Nil()
	}
	return v.cons.Cdr
}

// IsNil reports whether v is the empty list.
func IsNil(v Value) bool { return v.kind == KindNil }

// IsTruthy reports whether v is anything other than Nil, the sole
// falsy value in this language.
func IsTruthy(v Value) bool { return v.kind != KindNil }

// TypeName returns the printable type name used in type-error
// messages.
func TypeName(v Value) string { return v.kind.String() }

// Equal implements are_equal: numbers by value, atoms/strings/error
// messages by content (which, being interned, is also a handle
// compare), pairs/closures/macros by address, primitives by table
// index, and Nil/Undefined trivially equal to their own kind.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil, KindUndefined:
		return true
	case KindNumber:
		return a.num == b.num
	case KindAtom, KindString, KindError:
		return a.text == b.text
	case KindPrimitive:
		return a.prim == b.prim
	case KindCons:
		return a.cons == b.cons
	case KindClosure, KindMacro:
		return a.clo == b.clo
	default:
		return false
	}
}

// IsProperList reports whether v is a chain of Cons cells terminating
// in Nil, using Floyd's tortoise-and-hare to detect cycles rather than
// looping forever on a circular list.
func IsProperList(v Value) bool {
	slow, fast := v, v
	for {
		if fast.kind == KindNil {
			return true
		}
		if fast.kind != KindCons {
			return false
		}
		fast = Cdr(fast)
		if fast.kind == KindNil {
			return true
		}
		if fast.kind != KindCons {
			return false
		}
		fast = Cdr(fast)
		slow = Cdr(slow)
		if fast.cons == slow.cons {
			return false
		}
	}
}

// Length returns the number of Cons cells traversed before reaching a
// non-Cons tail (the value of len for a possibly-improper list).
func Length(v Value) int {
	n := 0
	for v.kind == KindCons {
		n++
		v = Cdr(v)
	}
	return n
}
