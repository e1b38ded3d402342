// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package printer

import (
	"testing"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/value"
)

func TestPrintAtomicValues(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Nil(), "()"},
		{value.Number(3.5), "3.5"},
		{value.Number(3), "3"},
		{value.String(a, "hi\n"), `"hi\n"`},
		{value.Atom(a, "foo"), "foo"},
		{value.Undefined(), "<undefined>"},
	}
	for _, c := range cases {
		if got := Print(c.v); got != c.want {
			t.Errorf("Print(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPrintList(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	list := value.ConsOf(a, value.Number(1), value.ConsOf(a, value.Number(2), value.Nil()))
	if got, want := Print(list), "(1 2)"; got != want {
		t.Errorf("Print(list) = %q, want %q", got, want)
	}
}

func TestPrintDottedPair(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	pair := value.ConsOf(a, value.Number(1), value.Number(2))
	if got, want := Print(pair), "(1 . 2)"; got != want {
		t.Errorf("Print(pair) = %q, want %q", got, want)
	}
}

func TestPrintClosureIsOpaque(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	clo := value.Lambda(a, value.Nil(), value.Nil(), value.Nil())
	if got, want := Print(clo), "<closure>"; got != want {
		t.Errorf("Print(closure) = %q, want %q", got, want)
	}
}

func TestPrintErrorIsBareMessage(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	e := value.Errorf(a, "undefined variable: %s", "x")
	if got, want := Print(e), "undefined variable: x"; got != want {
		t.Errorf("Print(error) = %q, want %q", got, want)
	}
}

func TestWithPrimitiveNames(t *testing.T) {
	names := []string{"car", "cdr"}
	p := WithPrimitiveNames(names)
	if got, want := p(value.Primitive(1)), "<primitive:cdr>"; got != want {
		t.Errorf("Print(primitive) = %q, want %q", got, want)
	}
}
