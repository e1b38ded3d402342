// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/giorgioyu125/golisp/internal/arena"
	"github.com/giorgioyu125/golisp/internal/interp"
	"github.com/giorgioyu125/golisp/internal/metrics"
	"github.com/giorgioyu125/golisp/internal/printer"
	"github.com/giorgioyu125/golisp/internal/reader"
	"github.com/giorgioyu125/golisp/internal/session"
	"github.com/giorgioyu125/golisp/internal/tracing"
	"github.com/giorgioyu125/golisp/internal/value"
)

// printerKind renders a value's kind for the eval-cycle span's result
// attribute, matching the same taxonomy value.Kind.String() uses.
func printerKind(v value.Value) string { return v.Kind().String() }

// driver bundles one interpreter instance with the ambient services
// a top-level eval cycle touches: metrics, tracing, and the optional
// session store. Both the REPL and file-mode commands share it.
type driver struct {
	ip      *interp.Interp
	ctx     *interp.Context
	logger  *logrus.Entry
	reg     *metrics.Registry
	tracer  *tracing.Tracer
	sess    *session.Store
	sessCtx context.Context
}

func newDriver(cfg *config, logger *logrus.Entry, sessionID string) (*driver, error) {
	var reg *metrics.Registry
	var hooks arena.Hooks
	if cfg.MetricsAddr != "" {
		reg = metrics.New()
		hooks = reg.Hooks()
	}

	ctx := interp.NewContext(cfg.PermanentArenaBytes, cfg.ScratchArenaBytes, hooks, hooks)
	arena.OnFatal = func(msg string) {
		logger.Fatal(msg)
	}

	ip := interp.New(ctx, logger)

	d := &driver{ip: ip, ctx: ctx, logger: logger, reg: reg, sessCtx: context.Background()}

	tracer, err := tracing.Start(d.sessCtx, "golisp", sessionID, cfg.OTLPEndpoint)
	if err != nil {
		logger.WithError(err).Warn("failed to start tracer, proceeding without eval-cycle spans")
	} else {
		d.tracer = tracer
	}

	if cfg.SessionStore != "" {
		store, err := session.Open(cfg.SessionStore)
		if err != nil {
			return nil, fmt.Errorf("opening session store: %w", err)
		}
		d.sess = store
		if err := d.restoreSession(); err != nil {
			logger.WithError(err).Warn("failed to fully restore session store")
		}
	}

	return d, nil
}

func (d *driver) restoreSession() error {
	sources, err := d.sess.All()
	if err != nil {
		return err
	}
	for _, src := range sources {
		d.EvalCycle(src)
	}
	return nil
}

// EvalCycle parses and evaluates the top-level forms in src in order,
// returning the printed result of the last form evaluated (or "" if
// no form was read). It stops at the first parse error or at the
// first form whose result is an Error value; later forms are not
// evaluated. It resets the scratch arena after the cycle
// completes, restoring the invariant that nothing reachable from the
// global environment resides in scratch memory between cycles.
func (d *driver) EvalCycle(src string) string {
	var endSpan func(resultKind string)
	if d.tracer != nil {
		_, span := d.tracer.StartCycle(d.sessCtx, len(src))
		endSpan = func(resultKind string) {
			tracing.AnnotateResult(span, resultKind)
			span.End()
		}
	}

	r := reader.New(d.ctx.Scratch, src)
	var last value.Value
	hadForm := false

	for {
		form, err := r.ReadForm()
		if err != nil {
			if reader.IsEOF(err) {
				break
			}
			d.logger.WithError(err).Warn("parse error, abandoning current top-level form")
			break
		}
		hadForm = true
		last = interp.Eval(d.ip, form, d.ip.Global)
		if last.Kind() == value.KindError {
			break
		}
		if d.sess != nil && isDefineResult(form, last) {
			d.persistDefinition(form)
		}
	}

	if d.reg != nil {
		d.reg.ObserveCycle(hadForm && last.Kind() == value.KindError)
	}
	if endSpan != nil {
		endSpan(printerKind(last))
	}

	d.ctx.Scratch.Reset()

	if !hadForm {
		return ""
	}
	return printer.Print(last)
}

func isDefineResult(form, result value.Value) bool {
	return value.Car(form).Kind() == value.KindAtom &&
		value.Car(form).Text() == "define" &&
		result.Kind() != value.KindError
}

func (d *driver) persistDefinition(form value.Value) {
	name := value.Car(value.Cdr(form)).Text()
	if err := d.sess.Put(name, printer.Print(form)); err != nil {
		d.logger.WithError(err).Warn("failed to persist definition to session store")
	}
}

// Close releases the driver's ambient services.
func (d *driver) Close() {
	if d.sess != nil {
		d.sess.Close()
	}
	if d.tracer != nil {
		d.tracer.Shutdown(d.sessCtx)
	}
}
