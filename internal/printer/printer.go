// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package printer renders Values back to source text: a structural
// traversal with no design weight of its own beyond matching the
// reader's syntax closely enough that output is usually re-readable.
package printer

import (
	"strconv"
	"strings"

	"github.com/giorgioyu125/golisp/internal/value"
)

// Print renders v per the value-printing contract: Nil as "()",
// numbers in shortest round-trip decimal form, strings quoted and
// escaped, atoms bare, cons cells as "(a b ... )" or "(a b . c)" when
// improper, closures/macros opaquely, and errors as their bare message
// text. Print has no access to primitive names, so every primitive
// prints as "<primitive>"; WithPrimitiveNames renders
// "<primitive:NAME>".
func Print(v value.Value) string {
	var sb strings.Builder
	write(&sb, v, nil)
	return sb.String()
}

// write takes an optional name-lookup function so Primitive values can
// be rendered with their bound name; nameOf may be nil, in which case
// Primitive values print as a bare "<primitive>".
func write(sb *strings.Builder, v value.Value, nameOf func(int) string) {
	switch v.Kind() {
	case value.KindNil:
		sb.WriteString("()")
	case value.KindNumber:
		sb.WriteString(formatNumber(v.Num()))
	case value.KindString:
		sb.WriteString(quote(v.Text()))
	case value.KindAtom:
		sb.WriteString(v.Text())
	case value.KindPrimitive:
		if nameOf != nil {
			sb.WriteString("<primitive:" + nameOf(v.PrimitiveIndex()) + ">")
		} else {
			sb.WriteString("<primitive>")
		}
	case value.KindClosure:
		sb.WriteString("<closure>")
	case value.KindMacro:
		sb.WriteString("<macro>")
	case value.KindUndefined:
		sb.WriteString("<undefined>")
	case value.KindError:
		sb.WriteString(v.Text())
	case value.KindCons:
		writeList(sb, v, nameOf)
	default:
		sb.WriteString("?")
	}
}

func writeList(sb *strings.Builder, v value.Value, nameOf func(int) string) {
	sb.WriteByte('(')
	first := true
	cur := v
	for cur.Kind() == value.KindCons {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		write(sb, value.Car(cur), nameOf)
		cur = value.Cdr(cur)
	}
	if cur.Kind() != value.KindNil {
		sb.WriteString(" . ")
		write(sb, cur, nameOf)
	}
	sb.WriteByte(')')
}

// formatNumber renders f as the shortest decimal string that
// round-trips back to the same float64, matching Go's 'g' format with
// the minimal-digits precision flag.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// WithPrimitiveNames returns a Print variant that resolves Primitive
// values to their bound name via names, typically Interp.Primitives
// indexed by PrimitiveIndex.
func WithPrimitiveNames(names []string) func(value.Value) string {
	lookup := func(idx int) string {
		if idx >= 0 && idx < len(names) {
			return names[idx]
		}
		return "?"
	}
	return func(v value.Value) string {
		var sb strings.Builder
		write(&sb, v, lookup)
		return sb.String()
	}
}
