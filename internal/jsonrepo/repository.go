// Package jsonrepo implements a generic, lock-protected, atomically
// written JSON file store. Every operation — including reads — takes
// the file lock first, trading a little throughput for the guarantee
// that a reader never observes a torn write.
package jsonrepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/filelock"
)

// DefaultLockTimeout is used when the caller does not override it.
const DefaultLockTimeout = 5 * time.Second

// Repository is a generic atomic JSON file store for values of type T.
type Repository[T any] struct {
	lockTimeout time.Duration
}

// New returns a Repository using DefaultLockTimeout.
func New[T any]() *Repository[T] {
	return &Repository[T]{lockTimeout: DefaultLockTimeout}
}

// NewWithTimeout returns a Repository using a caller-supplied lock
// timeout, e.g. a shorter one for interactive commands.
func NewWithTimeout[T any](timeout time.Duration) *Repository[T] {
	return &Repository[T]{lockTimeout: timeout}
}

// Save writes v to path: ensure parent dir exists, serialize to
// pretty JSON, write to a sibling temp file, fsync, then atomically
// rename over the target. A crash at any point leaves either the old
// content or nothing — never a half-written file.
func (r *Repository[T]) Save(path string, v T) error {
	lock, err := filelock.Acquire(path, r.lockTimeout)
	if err != nil {
		return &ConflictError{Path: path, Cause: err}
	}
	defer lock.Release()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &InternalError{Cause: errors.Wrapf(err, "creating parent directory for %s", path)}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &InternalError{Cause: errors.Wrapf(err, "serializing %s", path)}
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &InternalError{Cause: errors.Wrapf(err, "opening temp file for %s", path)}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &InternalError{Cause: errors.Wrapf(err, "writing temp file for %s", path)}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return &InternalError{Cause: errors.Wrapf(err, "syncing temp file for %s", path)}
	}

	if err := f.Close(); err != nil {
		return &InternalError{Cause: errors.Wrapf(err, "closing temp file for %s", path)}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &InternalError{Cause: errors.Wrapf(err, "renaming temp file into place for %s", path)}
	}

	return nil
}

// Load reads and deserializes path. The second return value is false
// if the file does not exist.
func (r *Repository[T]) Load(path string) (T, bool, error) {
	var zero T

	lock, err := filelock.Acquire(path, r.lockTimeout)
	if err != nil {
		return zero, false, &ConflictError{Path: path, Cause: err}
	}
	defer lock.Release()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, &InternalError{Cause: errors.Wrapf(err, "reading %s", path)}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false, &InternalError{Cause: errors.Wrapf(err, "deserializing %s", path)}
	}

	return v, true, nil
}

// Delete removes path. It is idempotent: deleting an absent file
// succeeds.
func (r *Repository[T]) Delete(path string) error {
	lock, err := filelock.Acquire(path, r.lockTimeout)
	if err != nil {
		return &ConflictError{Path: path, Cause: err}
	}
	defer lock.Release()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &InternalError{Cause: errors.Wrapf(err, "deleting %s", path)}
	}
	return nil
}

// Exists reports whether path currently exists. This does not take
// the lock: it is a best-effort check, not a linearizable read.
func (r *Repository[T]) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
