// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/giorgioyu125/golisp/internal/metrics"
)

// serveMetrics starts a background HTTP server exposing reg at
// /metrics on addr. It never blocks the caller and logs (rather than
// panics) if the listener fails, since metrics are an optional,
// best-effort ambient service.
func serveMetrics(addr string, reg *metrics.Registry, logger *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.Gatherer(), promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithError(err).Warn("metrics server stopped")
		}
	}()
}
