// Package remoteaction implements the leaf-level operations that
// connect to a provisioned instance to validate its state: the
// lowest level of the command -> step -> remote action layering.
package remoteaction

import (
	"context"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// RemoteAction is one atomic check or operation run against a
// provisioned instance.
type RemoteAction interface {
	Name() string
	Execute(ctx context.Context, ip string) error
}

// Kind classifies why a RemoteActionError occurred.
type Kind string

const (
	KindSSHCommandFailed Kind = "SSHCommandFailed"
	KindValidationFailed Kind = "ValidationFailed"
	KindExecutionFailed  Kind = "ExecutionFailed"
)

// RemoteActionError is returned by every RemoteAction implementation.
type RemoteActionError struct {
	Action string
	Kind   Kind
	Detail string
	Cause  error
}

func (e *RemoteActionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %s", e.Action, e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Action, e.Kind, e.Detail)
}
func (e *RemoteActionError) Unwrap() error { return e.Cause }
func (e *RemoteActionError) TraceFormat() string {
	return e.Error()
}
func (e *RemoteActionError) TraceSource() (traceable.Traceable, bool) {
	if t, ok := e.Cause.(traceable.Traceable); ok {
		return t, true
	}
	return nil, false
}
func (e *RemoteActionError) ErrorKind() traceable.ErrorKind {
	switch e.Kind {
	case KindSSHCommandFailed:
		return traceable.KindCommandExecution
	case KindValidationFailed:
		return traceable.KindValidationFailed
	default:
		return traceable.KindInfrastructureOperation
	}
}
