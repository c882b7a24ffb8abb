// Package externaltool wraps the two child-process tools the
// deployer orchestrates: OpenTofu (infrastructure) and Ansible
// (configuration).
package externaltool

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// ExecutionError wraps a failed invocation of an external tool with
// its full command line and captured output.
type ExecutionError struct {
	Tool     string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Cause    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s %v failed (exit %d): %s", e.Tool, e.Args, e.ExitCode, e.Cause)
}
func (e *ExecutionError) Unwrap() error { return e.Cause }
func (e *ExecutionError) TraceFormat() string {
	return fmt.Sprintf("%s\nstdout: %s\nstderr: %s", e.Error(), e.Stdout, e.Stderr)
}
func (e *ExecutionError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *ExecutionError) ErrorKind() traceable.ErrorKind {
	return traceable.KindCommandExecution
}
