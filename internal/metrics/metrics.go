// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics exposes the interpreter's two arenas and evaluator
// as Prometheus instruments. It is entirely optional: nothing in the
// core evaluator depends on it, and an uninstalled Registry is simply
// never observed.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giorgioyu125/golisp/internal/arena"
)

// Registry bundles the gauges/counters this process exposes, each
// labeled by arena name so "permanent" and "scratch" show up as
// distinct series on the same metric.
type Registry struct {
	reg *prometheus.Registry

	arenaUsed  *prometheus.GaugeVec
	arenaCap   *prometheus.GaugeVec
	allocBytes *prometheus.CounterVec
	resets     *prometheus.CounterVec
	grows      *prometheus.CounterVec

	evalCycles prometheus.Counter
	evalErrors prometheus.Counter
}

// New creates a Registry with all instruments registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		arenaUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "golisp",
			Subsystem: "arena",
			Name:      "used_bytes",
			Help:      "Bytes bumped from the arena since the last reset.",
		}, []string{"arena"}),
		arenaCap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "golisp",
			Subsystem: "arena",
			Name:      "capacity_bytes",
			Help:      "Total bytes currently backing the arena.",
		}, []string{"arena"}),
		allocBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golisp",
			Subsystem: "arena",
			Name:      "allocated_bytes_total",
			Help:      "Cumulative bytes allocated from the arena.",
		}, []string{"arena"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golisp",
			Subsystem: "arena",
			Name:      "resets_total",
			Help:      "Number of bulk resets performed on the arena.",
		}, []string{"arena"}),
		grows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golisp",
			Subsystem: "arena",
			Name:      "grows_total",
			Help:      "Number of chunk-growth events on the arena.",
		}, []string{"arena"}),
		evalCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golisp",
			Name:      "eval_cycles_total",
			Help:      "Number of top-level read-eval-print cycles completed.",
		}),
		evalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golisp",
			Name:      "eval_errors_total",
			Help:      "Number of top-level cycles whose result was an Error value.",
		}),
	}

	reg.MustRegister(r.arenaUsed, r.arenaCap, r.allocBytes, r.resets, r.grows, r.evalCycles, r.evalErrors)
	return r
}

// Gatherer exposes the underlying prometheus.Gatherer for the HTTP
// handler to scrape.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Hooks returns arena.Hooks wired to this registry's instruments, to
// be passed to arena.New for both the permanent and scratch arenas.
func (r *Registry) Hooks() arena.Hooks {
	return arena.Hooks{
		OnGrow: func(name string, oldCap, newCap int) {
			r.arenaCap.WithLabelValues(name).Set(float64(newCap))
			r.grows.WithLabelValues(name).Inc()
		},
		OnReset: func(name string, used int) {
			r.arenaUsed.WithLabelValues(name).Set(0)
			r.resets.WithLabelValues(name).Inc()
		},
		OnAlloc: func(name string, n int) {
			r.arenaUsed.WithLabelValues(name).Add(float64(n))
			r.allocBytes.WithLabelValues(name).Add(float64(n))
		},
	}
}

// ObserveCycle records the completion of one top-level evaluation
// cycle, incrementing the error counter when the cycle's result was
// an Error value.
func (r *Registry) ObserveCycle(isError bool) {
	r.evalCycles.Inc()
	if isError {
		r.evalErrors.Inc()
	}
}
