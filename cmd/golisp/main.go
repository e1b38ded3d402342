// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command golisp is the REPL and file-mode driver: no arguments starts
// an interactive REPL, one file argument (or "run <file>") evaluates
// that file's top-level forms in order, "version" prints the version,
// and any other invocation is a usage error.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/giorgioyu125/golisp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
