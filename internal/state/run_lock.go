package state

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another pipeline invocation on this
// host holds the run lock.
var ErrAlreadyRunning = errors.New("state: another run is already in progress")

// RunLock serializes pipeline invocations on a single host so that an
// overlapping scheduled tick cannot race the cursor. Cross-host overlap is
// out of scope.
type RunLock struct {
	fl *flock.Flock
}

// NewRunLock creates a RunLock at the given path. An empty path falls back
// to the OS temp dir.
func NewRunLock(path string) *RunLock {
	if path == "" {
		path = filepath.Join(os.TempDir(), "foldersense.lock")
	}
	return &RunLock{fl: flock.New(path)}
}

// TryLock acquires the lock without blocking. Returns ErrAlreadyRunning if
// another process holds it.
func (l *RunLock) TryLock() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyRunning
	}
	return nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	return l.fl.Unlock()
}
