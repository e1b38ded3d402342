// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/value"
)

// CopyTo recursively reconstructs v in dest, preserving structure.
// Atomic variants (Nil, Number, Primitive, Undefined) are returned
// verbatim since they carry no arena-owned payload. Atom/String/Error
// values are likewise returned verbatim: their text is interned
// process-wide via unique.Handle, so it already outlives any single
// arena's reset cycle and needs no re-duplication (see value.Atom's
// doc comment). Cons cells are rebuilt recursively in dest. Closures
// have their Params and Body copied, but their captured Env is shared
// by reference rather than copied — it is typically dest's own
// global environment.
//
// This is used exclusively by define and set! when moving a
// freshly-evaluated result out of the scratch arena and into the
// permanent one.
func CopyTo(dest *arena.Arena, v value.Value) value.Value {
	switch v.Kind() {
	case value.KindNil, value.KindNumber, value.KindPrimitive, value.KindUndefined,
		value.KindAtom, value.KindString, value.KindError:
		return v
	case value.KindCons:
		car := CopyTo(dest, value.Car(v))
		cdr := CopyTo(dest, value.Cdr(v))
		return value.ConsOf(dest, car, cdr)
	case value.KindClosure, value.KindMacro:
		clo := v.Closure()
		params := CopyTo(dest, clo.Params)
		body := CopyTo(dest, clo.Body)
		if v.Kind() == value.KindMacro {
			return value.MacroOf(dest, params, body, clo.Env)
		}
		return value.Lambda(dest, params, body, clo.Env)
	default:
		return v
	}
}
