// Package runnertest provides a runner.Runner that records commands instead of starting
// processes.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/ngld/ktbind/pkg/runner"
)

// Handler simulates a tool. It returns the exit code the fake process should report.
type Handler func(cmd runner.Command) (int, error)

// Recorder records every command it is asked to run. Handlers are matched by the
// executable name; commands without a handler exit with code 0.
type Recorder struct {
	lock     sync.Mutex
	commands []runner.Command
	handlers map[string]Handler
	DryRun   bool
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{handlers: map[string]Handler{}}
}

// Handle registers fn for commands whose executable is name
func (r *Recorder) Handle(name string, fn Handler) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.handlers[name] = fn
}

// Run implements runner.Runner
func (r *Recorder) Run(ctx context.Context, cmd runner.Command) (*runner.Status, error) {
	runner.Echo(ctx, cmd.Argv()...)

	r.lock.Lock()
	r.commands = append(r.commands, cmd)
	handler := r.handlers[cmd.Name]
	r.lock.Unlock()

	if r.DryRun || cmd.PrintOnly {
		return nil, nil
	}

	if handler == nil {
		return &runner.Status{}, nil
	}

	code, err := handler(cmd)
	if err != nil {
		return nil, err
	}
	return &runner.Status{ExitCode: code}, nil
}

// Commands returns a copy of the recorded commands in execution order
func (r *Recorder) Commands() []runner.Command {
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]runner.Command, len(r.commands))
	copy(result, r.commands)
	return result
}

// Lines returns the recorded commands rendered as space separated argv strings
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	result := make([]string, len(cmds))
	for idx, cmd := range cmds {
		result[idx] = strings.Join(cmd.Argv(), " ")
	}
	return result
}

// Count returns how many recorded commands used the executable name
func (r *Recorder) Count(name string) int {
	n := 0
	for _, cmd := range r.Commands() {
		if cmd.Name == name {
			n++
		}
	}
	return n
}
