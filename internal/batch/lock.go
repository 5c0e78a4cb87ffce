package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the destination root while a run is active.
const LockFileName = ".mkvreorder.lock"

// ErrLocked reports that another run holds the destination lock.
var ErrLocked = errors.New("another mkvreorder run is writing to this destination")

// LockDestination creates destDir if needed and takes an exclusive,
// non-blocking lock on it. The returned function releases the lock.
func LockDestination(destDir string) (func() error, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}
	lock := flock.New(filepath.Join(destDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, lock.Path())
	}
	return lock.Unlock, nil
}
