// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package interp

import "github.com/giorgioyu125/golisp/internal/arena"

// Context is the pair of arena handles threaded through every
// allocation site and every primitive call. It replaces what would
// otherwise be global allocator state, making the allocation-site
// decision ("is this long-lived or scratch?") explicit at every call.
type Context struct {
	Permanent *arena.Arena
	Scratch   *arena.Arena

	// SuggestFn, when set, proposes a "did you mean" correction for an
	// undefined-variable error. Wired by Interp to a levenshtein scan
	// over currently bound global names; nil in contexts (tests) that
	// don't need it.
	SuggestFn func(name string) string
}

// NewContext creates a Context over freshly created arenas, sized
// permBytes and scratchBytes respectively. A size <= 0 falls back to
// the package's own default, mirroring arena.New's own defensive
// handling of a non-positive initialSize.
func NewContext(permBytes, scratchBytes int, permHooks, scratchHooks arena.Hooks) *Context {
	if permBytes <= 0 {
		permBytes = 64 * 1024
	}
	if scratchBytes <= 0 {
		scratchBytes = 256 * 1024
	}
	return &Context{
		Permanent: arena.New("permanent", permBytes, permHooks),
		Scratch:   arena.New("scratch", scratchBytes, scratchHooks),
	}
}

func (c *Context) suggest(name string) string {
	if c.SuggestFn == nil {
		return ""
	}
	return c.SuggestFn(name)
}
