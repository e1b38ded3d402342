// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import (
	"sort"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/value"
)

// Interp holds every piece of process-wide interpreter state: the two
// arenas (via Ctx), the global environment, the primitives table, and
// the small set of caches/loggers that make repeated global lookups
// and diagnostics cheap. There is exactly one Interp per process, per
// the single-execution-context concurrency model.
type Interp struct {
	Ctx *Context

	// globalHead is a permanent sentinel Cons cell whose Cdr is the
	// real chain of global frames. Its address never changes, so any
	// closure that captures Global (which wraps this same pointer) by
	// reference automatically observes every later define/set! — the
	// "binding cell captured by reference" indirection the design
	// notes call for, rather than a rewire-every-closure step.
	globalHead *value.Cons
	Global     value.Value

	True value.Value

	Primitives []PrimEntry
	primByName map[string]int

	globalNames []string // for levenshtein "did you mean" suggestions
	frameCache  *lru.Cache[string, *value.Cons]

	Logger *logrus.Entry
}

// New creates a fully bootstrapped interpreter over ctx's arenas: the
// global environment seeded with "#t -> #t", and the primitives table
// registered into it.
func New(ctx *Context, logger *logrus.Entry) *Interp {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	cache, _ := lru.New[string, *value.Cons](1024)

	ip := &Interp{
		Ctx:        ctx,
		globalHead: arena.AllocFor[value.Cons](ctx.Permanent),
		Logger:     logger,
		primByName: map[string]int{},
		frameCache: cache,
	}
	*ip.globalHead = value.Cons{Car: value.Nil(), Cdr: value.Nil()}
	ip.Global = value.WrapCons(ip.globalHead)

	ctx.SuggestFn = ip.suggestGlobalName

	ip.True = value.Atom(ctx.Permanent, "#t")
	ip.defineGlobalRaw("#t", ip.True)

	for _, entry := range registerPrimitives() {
		ip.addPrimitive(entry)
	}

	return ip
}

// addPrimitive appends a primitive to the table and binds its name in
// the global environment to a Primitive value referencing its index.
func (ip *Interp) addPrimitive(e PrimEntry) {
	idx := len(ip.Primitives)
	ip.Primitives = append(ip.Primitives, e)
	ip.primByName[e.Name] = idx
	ip.defineGlobalRaw(e.Name, value.Primitive(idx))
}

// defineGlobalRaw prepends a frame without going through the define
// special form's redefinition checks; used only during bootstrap.
func (ip *Interp) defineGlobalRaw(name string, v value.Value) {
	frame := value.ConsOf(ip.Ctx.Permanent, value.Atom(ip.Ctx.Permanent, name), v)
	ip.globalHead.Cdr = value.ConsOf(ip.Ctx.Permanent, frame, ip.globalHead.Cdr)
	ip.globalNames = append(ip.globalNames, name)
}

// FindGlobalFrame resolves name to its global frame Cons, consulting
// (and populating) the LRU frame cache first. The cache is purged
// wholesale on every structural mutation of the global chain
// (define of a new name); set!/undefine! mutate an existing frame's
// Cdr in place and so never invalidate it.
func (ip *Interp) FindGlobalFrame(name string) value.Value {
	if c, ok := ip.frameCache.Get(name); ok {
		return value.WrapCons(c)
	}
	frame := FindFrame(name, ip.Global)
	if frame.Kind() == value.KindCons {
		ip.frameCache.Add(name, frame.Pair())
	}
	return frame
}

// invalidateFrameCache drops every cached frame lookup; called after
// prepending a brand-new global frame, since cached misses for that
// name (if any were cached indirectly) and positional assumptions no
// longer hold.
func (ip *Interp) invalidateFrameCache() {
	ip.frameCache.Purge()
}

func (ip *Interp) registerGlobalName(name string) {
	for _, n := range ip.globalNames {
		if n == name {
			return
		}
	}
	ip.globalNames = append(ip.globalNames, name)
}

// suggestGlobalName implements the "did you mean" diagnostic: it
// returns the closest global name within edit distance 2 of name, or
// "" if none is close enough. Names cleared by undefine! are still
// candidates.
func (ip *Interp) suggestGlobalName(name string) string {
	type cand struct {
		name string
		dist int
	}
	var best *cand
	for _, n := range ip.globalNames {
		d := levenshtein.ComputeDistance(name, n)
		if d > 2 {
			continue
		}
		if best == nil || d < best.dist {
			best = &cand{n, d}
		}
	}
	if best == nil {
		return ""
	}
	return best.name
}

// GlobalNames returns a sorted snapshot of every global name that has
// been bound, including names since cleared by undefine!, used by the
// REPL's :env introspection command.
func (ip *Interp) GlobalNames() []string {
	out := append([]string(nil), ip.globalNames...)
	sort.Strings(out)
	return out
}
