// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import "github.com/giorgioyu125/golisp/internal/value"

// registerSpecialForms returns the table entries for every special
// form: quote, backquote, if, cond, and, or, lambda, macro, define,
// set!, undefine!, and let*. The evaluator recognizes these by their
// table entry (entry.Special != nil) and invokes them with unevaluated
// arguments.
func registerSpecialForms() []PrimEntry {
	return []PrimEntry{
		{Name: "quote", Arity: 1, Special: sfQuote},
		{Name: "backquote", Arity: 1, Special: sfBackquote},
		{Name: "if", Arity: Unbounded, Special: sfIf},
		{Name: "cond", Arity: Unbounded, Special: sfCond},
		{Name: "and", Arity: Unbounded, Special: sfAnd},
		{Name: "or", Arity: Unbounded, Special: sfOr},
		{Name: "lambda", Arity: 2, Special: sfLambda},
		{Name: "macro", Arity: 2, Special: sfMacro},
		{Name: "define", Arity: 2, Special: sfDefine},
		{Name: "set!", Arity: 2, Special: sfSet},
		{Name: "undefine!", Arity: 1, Special: sfUndefine},
		{Name: "let*", Arity: Unbounded, Special: sfLetStar},
	}
}

func sfQuote(ip *Interp, args, env value.Value) formResult {
	return final(value.Car(args))
}

func sfIf(ip *Interp, args, env value.Value) formResult {
	cond := Eval(ip, value.Car(args), env)
	if cond.Kind() == value.KindError {
		return final(cond)
	}
	rest := value.Cdr(args)
	if value.IsTruthy(cond) {
		return loop(value.Car(rest), env)
	}
	elseBranch := value.Cdr(rest)
	if elseBranch.Kind() != value.KindCons {
		return final(value.Nil())
	}
	return loop(value.Car(elseBranch), env)
}

func sfCond(ip *Interp, args, env value.Value) formResult {
	for clauses := args; clauses.Kind() == value.KindCons; clauses = value.Cdr(clauses) {
		clause := value.Car(clauses)
		pred := Eval(ip, value.Car(clause), env)
		if pred.Kind() == value.KindError {
			return final(pred)
		}
		if value.IsTruthy(pred) {
			return loop(value.Car(value.Cdr(clause)), env)
		}
	}
	return final(value.Nil())
}

func sfAnd(ip *Interp, args, env value.Value) formResult {
	if args.Kind() != value.KindCons {
		return final(ip.True)
	}
	for {
		next := value.Cdr(args)
		if next.Kind() != value.KindCons {
			return loop(value.Car(args), env)
		}
		v := Eval(ip, value.Car(args), env)
		if v.Kind() == value.KindError {
			return final(v)
		}
		if !value.IsTruthy(v) {
			return final(value.Nil())
		}
		args = next
	}
}

func sfOr(ip *Interp, args, env value.Value) formResult {
	for args.Kind() == value.KindCons {
		next := value.Cdr(args)
		if next.Kind() != value.KindCons {
			return loop(value.Car(args), env)
		}
		v := Eval(ip, value.Car(args), env)
		if v.Kind() == value.KindError {
			return final(v)
		}
		if value.IsTruthy(v) {
			return final(v)
		}
		args = next
	}
	return final(value.Nil())
}

func sfLambda(ip *Interp, args, env value.Value) formResult {
	params := value.Car(args)
	body := value.Car(value.Cdr(args))
	return final(value.Lambda(ip.Ctx.Scratch, params, body, env))
}

func sfMacro(ip *Interp, args, env value.Value) formResult {
	params := value.Car(args)
	body := value.Car(value.Cdr(args))
	return final(value.MacroOf(ip.Ctx.Scratch, params, body, env))
}

func isLambdaForm(v value.Value) bool {
	return v.Kind() == value.KindCons &&
		value.Car(v).Kind() == value.KindAtom &&
		value.Car(v).Text() == "lambda"
}

// sfLetStar sequentially extends env, each binding visible to
// subsequent initializer expressions. A binding whose initializer is
// itself a (lambda ...) form is built self-referentially: the frame
// is allocated and linked into the environment before the lambda's
// body is evaluated, so the closure's captured env already contains
// its own binding — enabling recursive local definitions.
func sfLetStar(ip *Interp, args, env value.Value) formResult {
	bindings := value.Car(args)
	body := value.Cdr(args)
	cur := env

	for b := bindings; b.Kind() == value.KindCons; b = value.Cdr(b) {
		pair := value.Car(b)
		name := value.Car(pair).Text()
		initExpr := value.Car(value.Cdr(pair))

		if isLambdaForm(initExpr) {
			frame := value.ConsOf(ip.Ctx.Scratch, value.Atom(ip.Ctx.Scratch, name), value.Nil())
			newEnv := value.ConsOf(ip.Ctx.Scratch, frame, cur)
			clo := Eval(ip, initExpr, newEnv)
			if clo.Kind() == value.KindError {
				return final(clo)
			}
			frame.Pair().Cdr = clo
			cur = newEnv
			continue
		}

		v := Eval(ip, initExpr, cur)
		if v.Kind() == value.KindError {
			return final(v)
		}
		cur = Extend(ip.Ctx.Scratch, name, v, cur)
	}

	if body.Kind() != value.KindCons {
		return final(value.Nil())
	}
	for {
		next := value.Cdr(body)
		if next.Kind() != value.KindCons {
			return loop(value.Car(body), cur)
		}
		v := Eval(ip, value.Car(body), cur)
		if v.Kind() == value.KindError {
			return final(v)
		}
		body = next
	}
}

// sfDefine implements define's three cases: binding a fresh global
// name, reviving a name whose value was set to Undefined by
// undefine!, or erroring on redefinition of a live binding. The
// evaluated result is deep-copied into the permanent arena before it
// is linked into the global chain — the cross-arena discipline that
// keeps global bindings valid across scratch-arena resets.
func sfDefine(ip *Interp, args, env value.Value) formResult {
	nameV := value.Car(args)
	if nameV.Kind() != value.KindAtom {
		return final(value.Errorf(ip.Ctx.Scratch, "define: expected atom, got %s", value.TypeName(nameV)))
	}
	name := nameV.Text()
	expr := value.Car(value.Cdr(args))

	frame := ip.FindGlobalFrame(name)
	if frame.Kind() == value.KindCons {
		if value.Cdr(frame).Kind() != value.KindUndefined {
			return final(value.Errorf(ip.Ctx.Scratch, "cannot redefine already-bound variable: %s", name))
		}
		v := Eval(ip, expr, env)
		if v.Kind() == value.KindError {
			return final(v)
		}
		copied := CopyTo(ip.Ctx.Permanent, v)
		frame.Pair().Cdr = copied
		return final(value.Atom(ip.Ctx.Permanent, name))
	}

	v := Eval(ip, expr, env)
	if v.Kind() == value.KindError {
		return final(v)
	}
	copied := CopyTo(ip.Ctx.Permanent, v)
	newFrame := value.ConsOf(ip.Ctx.Permanent, value.Atom(ip.Ctx.Permanent, name), copied)
	ip.globalHead.Cdr = value.ConsOf(ip.Ctx.Permanent, newFrame, ip.globalHead.Cdr)
	ip.registerGlobalName(name)
	ip.invalidateFrameCache()
	return final(value.Atom(ip.Ctx.Permanent, name))
}

func sfSet(ip *Interp, args, env value.Value) formResult {
	nameV := value.Car(args)
	if nameV.Kind() != value.KindAtom {
		return final(value.Errorf(ip.Ctx.Scratch, "set!: expected atom, got %s", value.TypeName(nameV)))
	}
	name := nameV.Text()
	expr := value.Car(value.Cdr(args))

	frame := ip.FindGlobalFrame(name)
	if frame.Kind() != value.KindCons {
		return final(value.Errorf(ip.Ctx.Scratch, "undefined variable: %s", name))
	}
	v := Eval(ip, expr, env)
	if v.Kind() == value.KindError {
		return final(v)
	}
	copied := CopyTo(ip.Ctx.Permanent, v)
	frame.Pair().Cdr = copied
	return final(copied)
}

func sfUndefine(ip *Interp, args, env value.Value) formResult {
	nameV := value.Car(args)
	if nameV.Kind() != value.KindAtom {
		return final(value.Errorf(ip.Ctx.Scratch, "undefine!: expected atom, got %s", value.TypeName(nameV)))
	}
	name := nameV.Text()
	frame := ip.FindGlobalFrame(name)
	if frame.Kind() != value.KindCons {
		return final(value.Errorf(ip.Ctx.Scratch, "undefined variable: %s", name))
	}
	frame.Pair().Cdr = value.Undefined()
	return final(value.Nil())
}

// sfBackquote performs template expansion: the template is walked
// structurally, any (comma e) sub-expression is evaluated and spliced
// in, and everything else is copied structurally. If no comma ever
// appears the original template value is returned unchanged by
// address (cheap sharing — no new Cons cells are allocated).
func sfBackquote(ip *Interp, args, env value.Value) formResult {
	tmpl := value.Car(args)
	expanded, changed := expandTemplate(ip, tmpl, env)
	if changed.Kind() == value.KindError {
		return final(changed)
	}
	return final(expanded)
}

func isCommaForm(v value.Value) bool {
	return v.Kind() == value.KindCons &&
		value.Car(v).Kind() == value.KindAtom &&
		value.Car(v).Text() == "comma"
}

// expandTemplate returns the expanded value, or an Error value as its
// second return if evaluating a comma sub-expression failed.
func expandTemplate(ip *Interp, v, env value.Value) (value.Value, value.Value) {
	if isCommaForm(v) {
		result := Eval(ip, value.Car(value.Cdr(v)), env)
		if result.Kind() == value.KindError {
			return value.Nil(), result
		}
		return result, value.Nil()
	}
	if v.Kind() != value.KindCons {
		return v, value.Nil()
	}

	car, errv := expandTemplate(ip, value.Car(v), env)
	if errv.Kind() == value.KindError {
		return value.Nil(), errv
	}
	cdr, errv2 := expandTemplate(ip, value.Cdr(v), env)
	if errv2.Kind() == value.KindError {
		return value.Nil(), errv2
	}

	if value.Equal(car, value.Car(v)) && value.Equal(cdr, value.Cdr(v)) {
		return v, value.Nil()
	}
	return value.ConsOf(ip.Ctx.Scratch, car, cdr), value.Nil()
}
