// Package command implements the four lifecycle handlers
// (ProvisionHandler, ConfigureHandler, ReleaseHandler, RunHandler) plus
// CreateHandler, DestroyHandler, and TestHandler. Every handler follows
// the same shape: load from the repository, run a straight-line
// sequence of steps, transition and persist on success, or capture,
// trace, transition and persist on the first failure.
package command

import (
	"fmt"
	"time"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/traceable"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// HandlerError is returned by a handler after it has captured,
// traced, transitioned, and persisted a step failure. It carries
// enough detail for the CLI layer to print a useful message without
// re-deriving any of it.
type HandlerError struct {
	Command    string
	FailedStep string
	TracePath  string
	Cause      error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: step %q failed, trace written to %s: %v", e.Command, e.FailedStep, e.TracePath, e.Cause)
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// buildBaseFailureContext assembles the metadata common to every
// failed-state variant. The trace file path is filled in afterwards,
// once the trace writer has run.
func buildBaseFailureContext(clk clock.Clock, startedAt time.Time, cause traceable.Traceable) state.BaseFailureContext {
	failedAt := clk.Now()
	return state.BaseFailureContext{
		ErrorSummary:       cause.Error(),
		FailedAt:           failedAt,
		ExecutionStartedAt: startedAt,
		ExecutionDuration:  failedAt.Sub(startedAt),
		TraceID:            valueobject.NewTraceID().String(),
	}
}

func withTracePath(base state.BaseFailureContext, path string) state.BaseFailureContext {
	base.TraceFilePath = &path
	return base
}

// asTraceable recovers the Traceable interface every error returned by
// internal/step ultimately satisfies. opaqueError covers the rare case
// of a stdlib error reaching a handler directly (e.g. os.ReadFile).
func asTraceable(err error) traceable.Traceable {
	if t, ok := err.(traceable.Traceable); ok {
		return t
	}
	return &opaqueError{cause: err}
}

type opaqueError struct{ cause error }

func (e *opaqueError) Error() string      { return e.cause.Error() }
func (e *opaqueError) TraceFormat() string { return e.cause.Error() }
func (e *opaqueError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *opaqueError) ErrorKind() traceable.ErrorKind {
	return traceable.KindInfrastructureOperation
}
