package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// runRepl re-parses and dispatches one whitespace-split command line per
// loop iteration, the same shape as the original editor-driven loop: read a
// line, split on whitespace, match the first token against a known command,
// re-parse the rest against that command's own argument grammar.
func runRepl(st *state) error {
	rl, err := readline.New("(memscan) ")
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" {
			return nil
		}

		// Rebuilt fresh per line: cobra flag values (e.g. scan next's
		// --eq StringArray) persist across Execute calls on the same
		// *cobra.Command, which would leak one line's filters into the
		// next.
		root := newRootCommand(st)
		root.SetArgs(fields)
		if err := root.Execute(); err != nil {
			st.log.Warnln(err)
		}
	}
}

// newRootCommand rebuilds the command tree fresh; cobra commands are
// stateful across Execute calls (parsed flag values, usage errors), so each
// REPL iteration gets its own tree rather than reusing one across lines.
func newRootCommand(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "memscan",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDumpCommand(st), newScanCommand(st), newWriteCommand(st))
	return root
}
