// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/giorgioyu125/golisp/internal/arena"
)

func TestAtomEqualityIsByName(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	x := Atom(a, "foo")
	y := Atom(a, "foo")
	z := Atom(a, "bar")

	if !Equal(x, y) {
		t.Fatalf("two atoms with the same name should be Equal")
	}
	if Equal(x, z) {
		t.Fatalf("atoms with different names should not be Equal")
	}
}

func TestAtomSurvivesSourceArenaReset(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	x := Atom(a, "survivor")
	a.Reset()
	y := Atom(a, "survivor")

	if !Equal(x, y) || x.Text() != "survivor" {
		t.Fatalf("interned atom text did not survive a scratch-arena reset")
	}
}

func TestConsCarCdr(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	pair := ConsOf(a, Number(1), Number(2))

	if Car(pair).Num() != 1 {
		t.Fatalf("Car = %v, want 1", Car(pair))
	}
	if Cdr(pair).Num() != 2 {
		t.Fatalf("Cdr = %v, want 2", Cdr(pair))
	}
}

func TestConsIdentityEquality(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	p1 := ConsOf(a, Number(1), Nil())
	p2 := ConsOf(a, Number(1), Nil())

	if Equal(p1, p2) {
		t.Fatalf("structurally-identical but distinct Cons cells should not be Equal")
	}
	if !Equal(p1, p1) {
		t.Fatalf("a Cons should be Equal to itself")
	}
}

func TestIsProperList(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	list := ConsOf(a, Number(1), ConsOf(a, Number(2), Nil()))
	improper := ConsOf(a, Number(1), Number(2))

	if !IsProperList(list) {
		t.Fatalf("(1 2) should be a proper list")
	}
	if IsProperList(improper) {
		t.Fatalf("(1 . 2) should not be a proper list")
	}
}

func TestIsProperListDetectsCycles(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	cell := ConsOf(a, Number(1), Nil())
	cell.Pair().Cdr = cell // manufacture a cycle

	if IsProperList(cell) {
		t.Fatalf("a circular list must not be reported as proper")
	}
}

func TestLength(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	list := ConsOf(a, Number(1), ConsOf(a, Number(2), ConsOf(a, Number(3), Nil())))
	if got := Length(list); got != 3 {
		t.Fatalf("Length = %d, want 3", got)
	}
}

func TestIsTruthy(t *testing.T) {
	if IsTruthy(Nil()) {
		t.Fatalf("Nil must be falsy")
	}
	if !IsTruthy(Number(0)) {
		t.Fatalf("the number 0 must be truthy (Nil is the sole falsy value)")
	}
}

func TestErrorfTruncatesLongMessages(t *testing.T) {
	a := arena.New("t", 64, arena.Hooks{})
	long := ""
	for i := 0; i < maxErrorLen+50; i++ {
		long += "x"
	}
	e := Errorf(a, "%s", long)
	if len(e.Text()) != maxErrorLen {
		t.Fatalf("Errorf message length = %d, want %d", len(e.Text()), maxErrorLen)
	}
}
