// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg *config, sessionID string) *logrus.Entry {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log.WithField("session", sessionID)
}

func newSessionID() string { return uuid.NewString() }
