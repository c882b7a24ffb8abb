// Package repository maps environment names onto jsonrepo's generic
// atomic JSON store, translating its generic errors into the
// domain-specific errors command handlers expect.
package repository

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/jsonrepo"
	"github.com/torrust/tracker-deployer/internal/traceable"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// Repository persists one AnyEnvironmentState per environment name,
// under <root>/<name>/state.json.
type Repository struct {
	root  string
	store *jsonrepo.Repository[state.AnyEnvironmentState]
}

// New returns a Repository rooted at root, using jsonrepo's default
// lock timeout.
func New(root string) *Repository {
	return &Repository{root: root, store: jsonrepo.New[state.AnyEnvironmentState]()}
}

// NewWithLockTimeout returns a Repository using a caller-supplied lock
// acquisition timeout, e.g. a shorter one for interactive commands.
func NewWithLockTimeout(root string, timeout time.Duration) *Repository {
	return &Repository{root: root, store: jsonrepo.NewWithTimeout[state.AnyEnvironmentState](timeout)}
}

func (r *Repository) pathFor(name valueobject.EnvironmentName) string {
	return filepath.Join(r.root, name.String(), "state.json")
}

// Save persists the current state of the named environment.
func (r *Repository) Save(name valueobject.EnvironmentName, s state.AnyEnvironmentState) error {
	if err := r.store.Save(r.pathFor(name), s); err != nil {
		return translate(name, err)
	}
	return nil
}

// Load retrieves the current state of the named environment.
func (r *Repository) Load(name valueobject.EnvironmentName) (state.AnyEnvironmentState, error) {
	s, ok, err := r.store.Load(r.pathFor(name))
	if err != nil {
		return state.AnyEnvironmentState{}, translate(name, err)
	}
	if !ok {
		return state.AnyEnvironmentState{}, &NotFoundError{Name: name.String()}
	}
	return s, nil
}

// Delete removes the named environment's persisted state, e.g. after a
// successful destroy.
func (r *Repository) Delete(name valueobject.EnvironmentName) error {
	if err := r.store.Delete(r.pathFor(name)); err != nil {
		return translate(name, err)
	}
	return nil
}

// Exists reports whether the named environment currently has persisted
// state.
func (r *Repository) Exists(name valueobject.EnvironmentName) bool {
	return r.store.Exists(r.pathFor(name))
}

func translate(name valueobject.EnvironmentName, err error) error {
	var conflict *jsonrepo.ConflictError
	if errors.As(err, &conflict) {
		return &LockedError{Name: name.String(), Cause: conflict}
	}
	return err
}

// NotFoundError is returned when no state has been persisted for an
// environment name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "environment not found: " + e.Name
}
func (e *NotFoundError) TraceFormat() string { return e.Error() }
func (e *NotFoundError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *NotFoundError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}

// LockedError is returned when another process holds the environment's
// state file lock, or the acquisition attempt timed out.
type LockedError struct {
	Name  string
	Cause error
}

func (e *LockedError) Error() string {
	return "environment " + e.Name + " is locked by another process: " + e.Cause.Error()
}
func (e *LockedError) Unwrap() error { return e.Cause }
func (e *LockedError) TraceFormat() string {
	return e.Error()
}
func (e *LockedError) TraceSource() (traceable.Traceable, bool) {
	if t, ok := e.Cause.(traceable.Traceable); ok {
		return t, true
	}
	return nil, false
}
func (e *LockedError) ErrorKind() traceable.ErrorKind {
	return traceable.KindLockConflict
}
