// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/printer"
	"github.com/giorgioyu125/golisp/internal/value"
)

func TestCopyToPreservesPrintedStructure(t *testing.T) {
	src := arena.New("src", 4096, arena.Hooks{})
	dest := arena.New("dest", 4096, arena.Hooks{})

	original := value.ConsOf(src, value.Number(1),
		value.ConsOf(src, value.Atom(src, "foo"),
			value.ConsOf(src, value.String(src, "bar"), value.Nil())))

	copied := CopyTo(dest, original)

	if diff := cmp.Diff(printer.Print(original), printer.Print(copied)); diff != "" {
		t.Errorf("CopyTo changed printed structure (-original +copied):\n%s", diff)
	}
}

func TestCopyToSurvivesSourceArenaReset(t *testing.T) {
	src := arena.New("src", 4096, arena.Hooks{})
	dest := arena.New("dest", 4096, arena.Hooks{})

	original := value.ConsOf(src, value.Number(10), value.ConsOf(src, value.Number(20), value.Nil()))
	copied := CopyTo(dest, original)

	src.Reset()

	if got, want := printer.Print(copied), "(10 20)"; got != want {
		t.Errorf("copied structure after source reset = %q, want %q", got, want)
	}
}

func TestCopyToSharesClosureEnvByReference(t *testing.T) {
	src := arena.New("src", 4096, arena.Hooks{})
	dest := arena.New("dest", 4096, arena.Hooks{})

	env := value.ConsOf(src, value.ConsOf(src, value.Atom(src, "x"), value.Number(1)), value.Nil())
	clo := value.Lambda(src, value.Atom(src, "y"), value.Atom(src, "y"), env)

	copied := CopyTo(dest, clo)

	if copied.Closure().Env.Pair() != env.Pair() {
		t.Errorf("CopyTo should share a closure's captured Env by reference, not copy it")
	}
}
