package runlock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrEmptyPath is returned by Acquire when no lock file path is given.
const ErrEmptyPath = sentinel.Error("lock file path must not be empty")

// retryInterval is the pause between attempts to take a held lock.
const retryInterval = 50 * time.Millisecond

// Lock is a held run lock.
type Lock struct {
	fl  *flock.Flock
	log *slog.Logger
}

// Acquire blocks until it holds the exclusive lock on path or ctx is done.
// Missing parent directories of path are created.
func Acquire(ctx context.Context, path string, log *slog.Logger) (*Lock, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for lock file %s: %w", path, err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, retryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock %s: %w", path, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring run lock %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring run lock %s: lock not acquired", path)
	}

	log.Debug("run lock acquired", "path", path)
	return &Lock{fl: fl, log: log}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release gives up the lock. Errors are logged, not returned; calling Release
// on a nil or already released Lock is a no-op.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Close(); err != nil {
		l.log.Debug("failed to release run lock", "path", l.fl.Path(), "err", err)
	}
	l.fl = nil
}
