// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at release build time via -ldflags.
var version = "dev"

// Execute builds and runs the root cobra command: no subcommand and
// no args starts the REPL; a single file argument, or "run <file>",
// evaluates a file; "version" prints the build version. Any other
// argv shape is a usage error (cobra's own arg-count handling covers
// this).
func Execute() error {
	root := &cobra.Command{
		Use:   "golisp [file]",
		Short: "golisp is a small Lisp-family interpreter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg, err := loadConfig(cmd.Flags())
				if err != nil {
					return err
				}
				sessionID := newSessionID()
				logger := newLogger(cfg, sessionID)
				if cfg.Watch {
					return runFileWatched(cmd, cfg, logger, sessionID, args[0])
				}
				return runFileOnce(cmd, cfg, logger, sessionID, args[0])
			}
			return runREPL(cmd)
		},
	}
	bindConfigFlags(root.PersistentFlags())

	root.AddCommand(newRunCommand())
	root.AddCommand(newVersionCommand())

	return root.Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the golisp version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
