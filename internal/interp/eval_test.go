// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/printer"
	"github.com/giorgioyu125/golisp/internal/reader"
	"github.com/giorgioyu125/golisp/internal/value"
)

func newTestInterp(t *testing.T) *Interp {
	t.Helper()
	ctx := NewContext(0, 0, arena.Hooks{}, arena.Hooks{})
	logger := logrus.NewEntry(logrus.New())
	return New(ctx, logger)
}

// evalAll reads and evaluates every top-level form in src in order
// and returns the printed result of the last one.
func evalAll(t *testing.T, ip *Interp, src string) string {
	t.Helper()
	r := reader.New(ip.Ctx.Scratch, src)
	var last value.Value
	for {
		form, err := r.ReadForm()
		if err != nil {
			if reader.IsEOF(err) {
				break
			}
			t.Fatalf("parse error: %v", err)
		}
		last = Eval(ip, form, ip.Global)
	}
	return printer.Print(last)
}

func TestSelfEvaluatingForms(t *testing.T) {
	ip := newTestInterp(t)
	cases := map[string]string{
		`42`:      "42",
		`"hi"`:    `"hi"`,
		`()`:      "()",
	}
	for src, want := range cases {
		if got := evalAll(t, ip, src); got != want {
			t.Errorf("eval(%s) = %s, want %s", src, got, want)
		}
	}
}

func TestQuoteReturnsUnevaluated(t *testing.T) {
	ip := newTestInterp(t)
	if got, want := evalAll(t, ip, `(quote (a b c))`), "(a b c)"; got != want {
		t.Errorf("(quote (a b c)) = %s, want %s", got, want)
	}
	if got, want := evalAll(t, ip, `'foo`), "foo"; got != want {
		t.Errorf("'foo = %s, want %s", got, want)
	}
}

func TestConsCarCdrLaws(t *testing.T) {
	ip := newTestInterp(t)
	if got, want := evalAll(t, ip, `(car (cons 1 2))`), "1"; got != want {
		t.Errorf("(car (cons 1 2)) = %s, want %s", got, want)
	}
	if got, want := evalAll(t, ip, `(cdr (cons 1 2))`), "2"; got != want {
		t.Errorf("(cdr (cons 1 2)) = %s, want %s", got, want)
	}
}

func TestListLength(t *testing.T) {
	ip := newTestInterp(t)
	if got, want := evalAll(t, ip, `(len (list 1 2 3 4))`), "4"; got != want {
		t.Errorf("(len (list 1 2 3 4)) = %s, want %s", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	ip := newTestInterp(t)
	cases := map[string]string{
		`(+ 1 2 3)`:   "6",
		`(- 10 3 2)`:  "5",
		`(* 2 3 4)`:   "24",
		`(/ 100 5 2)`: "10",
	}
	for src, want := range cases {
		if got := evalAll(t, ip, src); got != want {
			t.Errorf("eval(%s) = %s, want %s", src, got, want)
		}
	}
}

func TestDivisionByZeroIsAnErrorValue(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `(/ 1 0)`)
	if got != "division by zero" {
		t.Errorf("(/ 1 0) = %s, want an error mentioning division by zero", got)
	}
}

func TestArityErrorOnClosureCall(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `(define f (lambda (x y) (+ x y))) (f 1)`)
	if got == "" || got[:6] != "expect" {
		t.Errorf("arity mismatch should produce an 'expects N arguments' error, got %q", got)
	}
}

func TestIfBranching(t *testing.T) {
	ip := newTestInterp(t)
	if got, want := evalAll(t, ip, `(if #t 1 2)`), "1"; got != want {
		t.Errorf("(if #t 1 2) = %s, want %s", got, want)
	}
	if got, want := evalAll(t, ip, `(if () 1 2)`), "2"; got != want {
		t.Errorf("(if () 1 2) = %s, want %s", got, want)
	}
}

func TestGlobalClosureSeesLaterDefine(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `
		(define f (lambda (x) (+ x y)))
		(define y 100)
		(f 1)
	`)
	if got != "101" {
		t.Errorf("closure defined before its free variable should still see the later define; got %s, want 101", got)
	}
}

func TestRedefinitionOfLiveBindingIsAnError(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `(define x 1) (define x 2)`)
	if got == "" || !contains(got, "cannot redefine") {
		t.Errorf("redefining a live global should error, got %q", got)
	}
}

func TestUndefineThenRedefine(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `(define x 1) (undefine! x) (define x 2) x`)
	if got != "2" {
		t.Errorf("define after undefine! should succeed, got %s", got)
	}
}

func TestLetStarSelfReferentialLambda(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `
		(let* ((fact (lambda (n) (if (<= n 1) 1 (* n (fact (- n 1)))))))
		  (fact 5))
	`)
	if got != "120" {
		t.Errorf("self-referential let* lambda factorial(5) = %s, want 120", got)
	}
}

func TestTailCallDoesNotOverflowHostStack(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `
		(let* ((loop (lambda (n acc) (if (<= n 0) acc (loop (- n 1) (+ acc 1))))))
		  (loop 100000 0))
	`)
	if got != "100000" {
		t.Errorf("tail-recursive loop to 100000 = %s, want 100000", got)
	}
}

func TestMacroExpansionUsesItsOwnEnv(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `
		(define my-if (macro (c a b) (list (quote cond) (list c a) (list #t b))))
		(my-if #t 1 2)
	`)
	if got != "1" {
		t.Errorf("macro expansion my-if true branch = %s, want 1", got)
	}
}

func TestHigherOrderPrimitives(t *testing.T) {
	ip := newTestInterp(t)
	cases := map[string]string{
		`(mapcar (lambda (x) (* x x)) (list 1 2 3))`: "(1 4 9)",
		`(filter (lambda (x) (> x 2)) (list 1 2 3 4))`: "(3 4)",
		`(reduce (lambda (a b) (+ a b)) 0 (list 1 2 3 4))`: "10",
	}
	for src, want := range cases {
		if got := evalAll(t, ip, src); got != want {
			t.Errorf("eval(%s) = %s, want %s", src, got, want)
		}
	}
}

func TestBackquoteSplicesComma(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, "(define x 5) `(a ,x c)")
	if got != "(a 5 c)" {
		t.Errorf("backquote splice = %s, want (a 5 c)", got)
	}
}

func TestUndefinedVariableError(t *testing.T) {
	ip := newTestInterp(t)
	got := evalAll(t, ip, `nope`)
	if !contains(got, "undefined variable: nope") {
		t.Errorf("eval(nope) = %s, want an undefined-variable error", got)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
