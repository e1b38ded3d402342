// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cli wires the interpreter core to a cobra/viper command
// line: flag and config parsing, the REPL and file-mode drivers, and
// the optional metrics/tracing/session-store ambient services.
package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds every knob SPEC_FULL.md's Configuration section names:
// arena sizing, log level/format, and the optional observability and
// persistence endpoints. Populated from flags, GOLISP_* environment
// variables, and an optional golisp.yaml/golisp.ini file, in that
// precedence order (viper's default).
type config struct {
	PermanentArenaBytes int
	ScratchArenaBytes   int

	LogLevel  string
	LogFormat string

	MetricsAddr  string
	OTLPEndpoint string
	SessionStore string
	Watch        bool
}

func bindConfigFlags(flags *pflag.FlagSet) {
	flags.Int("permanent-arena-bytes", 64*1024, "initial size of the permanent arena, in bytes")
	flags.Int("scratch-arena-bytes", 256*1024, "initial size of the scratch arena, in bytes")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	flags.String("otlp-endpoint", "", "if set, export eval-cycle spans via OTLP/HTTP to this collector endpoint")
	flags.String("session-store", "", "if set, persist and restore defined globals from this Badger directory")
	flags.Bool("watch", false, "file mode only: re-evaluate the file from a fresh global environment on every change")
}

func loadConfig(flags *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("GOLISP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("golisp")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &config{
		PermanentArenaBytes: v.GetInt("permanent-arena-bytes"),
		ScratchArenaBytes:   v.GetInt("scratch-arena-bytes"),
		LogLevel:            v.GetString("log-level"),
		LogFormat:           v.GetString("log-format"),
		MetricsAddr:         v.GetString("metrics-addr"),
		OTLPEndpoint:        v.GetString("otlp-endpoint"),
		SessionStore:        v.GetString("session-store"),
		Watch:               v.GetBool("watch"),
	}, nil
}
