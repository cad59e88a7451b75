package pipeline

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrLibraryBuild is returned when cargo fails to build the native library. Nothing
	// after the library build runs once it is returned.
	ErrLibraryBuild = eris.New("Failed to build library")
	// ErrStepFailed is returned when a tool invoked by a step exits with a non-zero code.
	ErrStepFailed = eris.New("Command failed")
	// ErrMissingOutput is returned when a tool succeeded but did not produce the expected file.
	ErrMissingOutput = eris.New("Expected output is missing")
	// ErrTestsFailed is returned after all test scripts ran and at least one of them failed.
	ErrTestsFailed = eris.New("Tests failed")
)

// StepError records which command of a step failed and how it exited. It unwraps to one of
// the sentinel errors above, so callers can use eris.Is on the result.
type StepError struct {
	Step     string
	Command  string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: `%s` exited with code %d", e.Err.Error(), e.Command, e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
