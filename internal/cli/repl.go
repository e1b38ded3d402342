// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/giorgioyu125/golisp/internal/printer"
	"github.com/giorgioyu125/golisp/internal/value"
)

const prompt = "> "

// runREPL implements the interactive read-eval-print loop: prompt
// "> ", line editing and history via liner, clean termination on
// end-of-input, and a small set of ":"-prefixed meta-commands
// (":env" lists bound globals, ":quit" exits) that supplement the
// bare read-eval-print loop with REPL introspection.
func runREPL(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	sessionID := newSessionID()
	logger := newLogger(cfg, sessionID)

	d, err := newDriver(cfg, logger, sessionID)
	if err != nil {
		return err
	}
	defer d.Close()
	if cfg.MetricsAddr != "" && d.reg != nil {
		serveMetrics(cfg.MetricsAddr, d.reg, logger)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if handleMetaCommand(cmd, d, trimmed) {
				return nil
			}
			continue
		}

		result := d.EvalCycle(input)
		if result != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
	}
}

// handleMetaCommand processes a ":"-prefixed REPL command. It returns
// true if the REPL loop should terminate.
func handleMetaCommand(cmd *cobra.Command, d *driver, line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":env":
		printEnv(cmd, d)
		return false
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown command: %s\n", line)
		return false
	}
}

// printEnv renders every global frame as an ASCII table (name, kind,
// printed value; a name cleared by undefine! shows kind "undefined"),
// resolving each frame directly rather
// than re-walking Global's Cons chain, so the table reflects exactly
// what lookup would see.
func printEnv(cmd *cobra.Command, d *driver) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Name", "Kind", "Value")

	for _, name := range d.ip.GlobalNames() {
		frame := d.ip.FindGlobalFrame(name)
		if frame.Kind() != value.KindCons {
			continue
		}
		bound := value.Cdr(frame)
		table.Append([]string{name, bound.Kind().String(), printer.Print(bound)})
	}
	table.Render()
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".golisp_history"
	}
	return filepath.Join(home, ".golisp_history")
}
