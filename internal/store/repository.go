package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

// DefaultLockTimeout bounds how long Lock waits for another process.
const DefaultLockTimeout = 5 * time.Second

// lockRetryDelay is the interval between lock attempts.
const lockRetryDelay = 50 * time.Millisecond

// Repository loads and saves a Store between invocations.
// Commands receive the repository and the loaded store explicitly.
type Repository interface {
	// Lock takes exclusive ownership of the persisted state until release is called.
	// Implementations without locking return a no-op release.
	Lock(ctx context.Context) (release func(), err error)

	// Load returns the persisted store, or an empty one if nothing was persisted yet.
	Load(ctx context.Context) (*Store, error)

	// Save replaces the persisted state with s.
	Save(ctx context.Context, s *Store) error
}

// Compile-time check to ensure FileRepository implements Repository.
var _ Repository = (*FileRepository)(nil)

// FileRepository persists a Store as a single JSON file.
type FileRepository struct {
	path        string
	lock        bool
	lockTimeout time.Duration
}

// NewFileRepository creates a repository for the file at path.
// If lock is true, Lock takes an advisory lock on path + ".lock",
// waiting at most lockTimeout (0 means DefaultLockTimeout).
func NewFileRepository(path string, lock bool, lockTimeout time.Duration) *FileRepository {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &FileRepository{
		path:        path,
		lock:        lock,
		lockTimeout: lockTimeout,
	}
}

// Path returns the task file path.
func (r *FileRepository) Path() string {
	return r.path
}

// LockPath returns the path of the advisory lock file.
func (r *FileRepository) LockPath() string {
	return r.path + ".lock"
}

// Lock implements Repository.
func (r *FileRepository) Lock(ctx context.Context) (func(), error) {
	if !r.lock {
		return func() {}, nil
	}

	logger := log.FromContext(ctx)
	lockPath := r.LockPath()
	fl := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	logger.Debug("waiting for lock", "path", lockPath, "timeout", r.lockTimeout)
	ok, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("held by another process, gave up after %s", r.lockTimeout)
		}
		return nil, &PersistenceError{Op: OpLock, Path: lockPath, Err: err}
	}
	if !ok {
		return nil, &PersistenceError{Op: OpLock, Path: lockPath, Err: errors.New("held by another process")}
	}
	logger.Debug("acquired lock", "path", lockPath)

	return func() {
		if err := fl.Unlock(); err != nil {
			logger.Warn("release lock", "path", lockPath, "err", err)
			return
		}
		logger.Debug("released lock", "path", lockPath)
	}, nil
}

// Load implements Repository.
func (r *FileRepository) Load(ctx context.Context) (*Store, error) {
	s, err := Load(r.path)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("loaded store", "path", r.path, "tasks", s.Len(), "next_id", s.NextID)
	return s, nil
}

// Save implements Repository.
func (r *FileRepository) Save(ctx context.Context, s *Store) error {
	if err := Save(r.path, s); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("saved store", "path", r.path, "tasks", s.Len(), "next_id", s.NextID)
	return nil
}
