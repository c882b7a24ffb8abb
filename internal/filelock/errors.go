package filelock

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/torrust/tracker-deployer/internal/traceable"
)

var errUnknownOutcome = errors.New("unreachable lock acquisition outcome")

// AcquisitionTimeoutError is returned when the lock timeout expires
// while another live process still holds it.
type AcquisitionTimeoutError struct {
	Path      string
	HolderPID int
	Timeout   time.Duration
}

func (e *AcquisitionTimeoutError) Error() string {
	return fmt.Sprintf("timed out acquiring lock %s after %s (held by pid %d)", e.Path, e.Timeout, e.HolderPID)
}

// Tip is a one-line troubleshooting hint.
func (e *AcquisitionTimeoutError) Tip() string {
	return fmt.Sprintf("check whether process %d is still running a deployer command against this environment", e.HolderPID)
}

func (e *AcquisitionTimeoutError) TraceFormat() string { return e.Error() }
func (e *AcquisitionTimeoutError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *AcquisitionTimeoutError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// CreateFailedError is returned when the lock file cannot be created
// for a reason other than EEXIST (e.g. permissions).
type CreateFailedError struct {
	Path  string
	Cause error
}

func (e *CreateFailedError) Error() string {
	return fmt.Sprintf("failed to create lock file %s: %s", e.Path, e.Cause)
}
func (e *CreateFailedError) Tip() string {
	return "check filesystem permissions on the data directory"
}
func (e *CreateFailedError) TraceFormat() string { return e.Error() }
func (e *CreateFailedError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *CreateFailedError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// ReadFailedError is returned when an existing lock file cannot be
// read.
type ReadFailedError struct {
	Path  string
	Cause error
}

func (e *ReadFailedError) Error() string {
	return fmt.Sprintf("failed to read lock file %s: %s", e.Path, e.Cause)
}
func (e *ReadFailedError) Tip() string {
	return "check filesystem permissions on the data directory"
}
func (e *ReadFailedError) TraceFormat() string { return e.Error() }
func (e *ReadFailedError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *ReadFailedError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// InvalidLockFileError is returned when a lock file's content cannot
// be parsed as a PID after repeated retries.
type InvalidLockFileError struct {
	Path    string
	Content string
}

func (e *InvalidLockFileError) Error() string {
	return fmt.Sprintf("lock file %s has invalid content %q", e.Path, e.Content)
}
func (e *InvalidLockFileError) Tip() string {
	return "remove the lock file manually if no deployer process is running"
}
func (e *InvalidLockFileError) TraceFormat() string { return e.Error() }
func (e *InvalidLockFileError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *InvalidLockFileError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// ReleaseFailedError is returned when the lock file cannot be removed
// on release.
type ReleaseFailedError struct {
	Path  string
	Cause error
}

func (e *ReleaseFailedError) Error() string {
	return fmt.Sprintf("failed to release lock file %s: %s", e.Path, e.Cause)
}
func (e *ReleaseFailedError) Tip() string {
	return "remove the lock file manually if no deployer process is running"
}
func (e *ReleaseFailedError) TraceFormat() string { return e.Error() }
func (e *ReleaseFailedError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *ReleaseFailedError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// Help returns the multi-line troubleshooting page for err, if err is
// one of this package's error types.
func Help(err error) string {
	switch e := err.(type) {
	case *AcquisitionTimeoutError:
		return fmt.Sprintf(
			"Lock acquisition timed out.\n\n"+
				"  Path:       %s\n"+
				"  Holder PID: %d\n"+
				"  Timeout:    %s\n\n"+
				"Troubleshooting:\n"+
				"  Unix:    ps -p %d\n"+
				"  Windows: tasklist /FI \"PID eq %d\"\n"+
				"If the process is gone, delete the lock file and retry.\n",
			e.Path, e.HolderPID, e.Timeout, e.HolderPID, e.HolderPID,
		)
	case *CreateFailedError, *ReadFailedError, *ReleaseFailedError, *InvalidLockFileError:
		return fmt.Sprintf("Lock file error: %s\n", e)
	default:
		return err.Error()
	}
}
