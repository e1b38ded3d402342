// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "evaluate a file's top-level forms in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			path := args[0]
			sessionID := newSessionID()
			logger := newLogger(cfg, sessionID)

			if cfg.Watch {
				return runFileWatched(cmd, cfg, logger, sessionID, path)
			}
			return runFileOnce(cmd, cfg, logger, sessionID, path)
		},
	}
	return cmd
}

func runFileOnce(cmd *cobra.Command, cfg *config, logger *logrus.Entry, sessionID, path string) error {
	d, err := newDriver(cfg, logger, sessionID)
	if err != nil {
		return err
	}
	defer d.Close()
	if cfg.MetricsAddr != "" && d.reg != nil {
		serveMetrics(cfg.MetricsAddr, d.reg, logger)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	start := time.Now()
	result := d.EvalCycle(string(src))
	elapsed := time.Since(start)

	if result != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "; evaluated %s in %s\n", path, elapsed)
	return nil
}

// runFileWatched re-reads and re-evaluates path from a fresh global
// environment (a brand-new driver/interpreter instance) every time it
// changes on disk, as a live-reload development loop. It runs until
// the process is interrupted.
func runFileWatched(cmd *cobra.Command, cfg *config, logger *logrus.Entry, sessionID, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	evalOnce := func() {
		if err := runFileOnce(cmd, cfg, logger, sessionID, path); err != nil {
			logger.WithError(err).Warn("evaluation failed")
		}
	}

	evalOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.WithField("file", path).Info("file changed, re-evaluating from a fresh global environment")
				evalOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("file watcher error")
		}
	}
}
