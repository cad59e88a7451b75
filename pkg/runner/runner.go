// Package runner executes external tools one at a time and echoes every command line
// before it runs.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/syntax"
)

// Command is a single process invocation. It is consumed by Run and not retained.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one
	Dir string
	// PrintOnly logs the command without executing it
	PrintOnly bool
}

// Argv returns the full argument vector including the executable name
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command the way it is echoed before execution
func (c Command) String() string {
	return FormatCommand(c.Argv()...)
}

// Status describes a finished process
type Status struct {
	ExitCode int
}

// Success reports whether the process exited with code 0
func (s *Status) Success() bool {
	return s != nil && s.ExitCode == 0
}

// Runner runs commands. Implementations must block until the process has finished.
//
// A nil status with a nil error means the command was only printed (dry run).
// A process that exits with a non-zero code is reported through the status, not the error;
// the error is reserved for processes that could not be started at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Status, error)
}

// ExecRunner runs commands as child processes of the current process
type ExecRunner struct {
	// DryRun turns every command into a print-only command
	DryRun bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process' standard streams
func NewExecRunner(dryRun bool) *ExecRunner {
	return &ExecRunner{
		DryRun: dryRun,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run echoes cmd and, unless this is a dry run, executes it and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Status, error) {
	Echo(ctx, cmd.Argv()...)
	if r.DryRun || cmd.PrintOnly {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdin = r.Stdin
	proc.Stdout = r.Stdout
	proc.Stderr = r.Stderr

	err := proc.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if eris.As(err, &exitErr) {
			return &Status{ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, eris.Wrapf(err, "Failed to run %s", cmd.Name)
	}

	return &Status{ExitCode: 0}, nil
}

// Echo logs a command line without running it.
func Echo(ctx context.Context, argv ...string) {
	Log(ctx).Info().
		Bool("command", true).
		Msg(FormatCommand(argv...))
}

// FormatCommand joins argv into a single line that can be pasted into a shell.
func FormatCommand(argv ...string) string {
	parts := make([]string, len(argv))
	for idx, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = strconv.Quote(arg)
		}
		parts[idx] = quoted
	}
	return strings.Join(parts, " ")
}
