package jsonrepo

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// ConflictError is returned when the file lock could not be acquired:
// either a timeout or another process holds it.
type ConflictError struct {
	Path  string
	Cause error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict accessing %s: %s", e.Path, e.Cause)
}
func (e *ConflictError) Unwrap() error { return e.Cause }
func (e *ConflictError) TraceFormat() string {
	return e.Error()
}
func (e *ConflictError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *ConflictError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// InternalError wraps an I/O, serialization, or other unexpected
// failure, preserving the full underlying cause chain.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal persistence error: %s", e.Cause)
}
func (e *InternalError) Unwrap() error { return e.Cause }
func (e *InternalError) TraceFormat() string {
	return e.Error()
}
func (e *InternalError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *InternalError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}
