// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package reader

import (
	"testing"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/printer"
)

func readOne(t *testing.T, src string) string {
	t.Helper()
	a := arena.New("t", 4096, arena.Hooks{})
	r := New(a, src)
	v, err := r.ReadForm()
	if err != nil {
		t.Fatalf("ReadForm(%q) error: %v", src, err)
	}
	return printer.Print(v)
}

func TestReadAtomsAndNumbers(t *testing.T) {
	cases := map[string]string{
		"foo":    "foo",
		"3.14":   "3.14",
		"-5":     "-5",
		`"hi"`:   `"hi"`,
		`"a\nb"`: `"a\nb"`,
	}
	for src, want := range cases {
		if got := readOne(t, src); got != want {
			t.Errorf("read(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestReadQuoteSugar(t *testing.T) {
	cases := map[string]string{
		"'x":  "(quote x)",
		"`x":  "(backquote x)",
		",x":  "(comma x)",
		"'(1 2)": "(quote (1 2))",
	}
	for src, want := range cases {
		if got := readOne(t, src); got != want {
			t.Errorf("read(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestReadList(t *testing.T) {
	if got, want := readOne(t, "(1 2 3)"), "(1 2 3)"; got != want {
		t.Errorf("read = %q, want %q", got, want)
	}
}

func TestReadDottedPair(t *testing.T) {
	if got, want := readOne(t, "(1 . 2)"), "(1 . 2)"; got != want {
		t.Errorf("read = %q, want %q", got, want)
	}
}

func TestReadNestedList(t *testing.T) {
	if got, want := readOne(t, "(1 (2 3) 4)"), "(1 (2 3) 4)"; got != want {
		t.Errorf("read = %q, want %q", got, want)
	}
}

func TestUnclosedListIsAnError(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	r := New(a, "(1 2")
	_, err := r.ReadForm()
	if err == nil {
		t.Fatalf("expected an error for an unclosed list")
	}
}

func TestUnexpectedCloseParenIsAnError(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	r := New(a, ")")
	_, err := r.ReadForm()
	if err == nil {
		t.Fatalf("expected an error for an unexpected )")
	}
}

func TestReadMultipleTopLevelForms(t *testing.T) {
	a := arena.New("t", 4096, arena.Hooks{})
	r := New(a, "1 2 3")
	var got []string
	for {
		v, err := r.ReadForm()
		if err != nil {
			if IsEOF(err) {
				break
			}
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, printer.Print(v))
	}
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("form %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	if got, want := readOne(t, "; a comment\n42"), "42"; got != want {
		t.Errorf("read = %q, want %q", got, want)
	}
}
