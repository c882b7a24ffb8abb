// Package sshtransport provides the SSH client used to wait for
// connectivity and run validation commands against a provisioned
// instance. It wraps golang.org/x/crypto/ssh behind a small interface
// so remote actions and steps can be tested against a mock instead of
// a live connection.
package sshtransport

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// CommandError wraps a failed remote command with its exit status and
// captured output.
type CommandError struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	Cause    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("remote command %q failed (exit %d): %s", e.Command, e.ExitCode, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
func (e *CommandError) TraceFormat() string {
	return fmt.Sprintf("%s\nstdout: %s\nstderr: %s", e.Error(), e.Stdout, e.Stderr)
}
func (e *CommandError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *CommandError) ErrorKind() traceable.ErrorKind {
	return traceable.KindCommandExecution
}

// ConnectivityTimeoutError is returned when WaitForConnectivity never
// observes a successful connection within its deadline.
type ConnectivityTimeoutError struct {
	Host  string
	Port  int
	Cause error
}

func (e *ConnectivityTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for SSH connectivity to %s:%d: %s", e.Host, e.Port, e.Cause)
}
func (e *ConnectivityTimeoutError) Unwrap() error { return e.Cause }
func (e *ConnectivityTimeoutError) TraceFormat() string {
	return e.Error()
}
func (e *ConnectivityTimeoutError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *ConnectivityTimeoutError) ErrorKind() traceable.ErrorKind {
	return traceable.KindNetworkConnectivity
}
