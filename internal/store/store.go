package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/WhosEdo/gallerylog/internal/auth"
	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// logFileMode is applied when the log file is first created:
// owner read/write only.
const logFileMode = os.FileMode(0o600)

// lockRetryDelay is the polling interval used when lock acquisition is
// bounded by a timeout.
const lockRetryDelay = 50 * time.Millisecond

// Store coordinates access to one log file on behalf of an authenticated
// caller. Credentials are injected at construction and treated as
// immutable configuration.
type Store struct {
	path        string
	creds       *auth.Store
	clock       Clock
	logger      *slog.Logger
	lockTimeout time.Duration // zero means block forever
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall-clock source for new records.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger attaches a logger for replay and locking diagnostics.
// The store never logs secrets or hashes. A nil logger keeps the
// default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLockTimeout bounds how long lock acquisition may block. Zero keeps
// the default behavior of blocking until the lock is granted.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// New creates a store for the log file at path. The file itself is not
// touched until an operation needs it.
func New(path string, creds *auth.Store, opts ...Option) *Store {
	s := &Store{
		path:   path,
		creds:  creds,
		clock:  systemClock{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpError is an operational failure: I/O, locking, or a short write.
// Its message is generic on purpose — no filesystem paths, no secrets —
// while the underlying cause stays reachable through Unwrap for
// diagnostics that never cross the user boundary.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return e.Op
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// acquire takes the advisory lock on the log file, exclusive for writers
// and shared for readers. With no timeout configured it blocks until
// granted. The returned release func is safe to call exactly once.
func (s *Store) acquire(ctx context.Context, exclusive bool) (release func(), err error) {
	lk := flock.New(s.path, flock.SetPermissions(logFileMode))

	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()

		var ok bool
		if exclusive {
			ok, err = lk.TryLockContext(ctx, lockRetryDelay)
		} else {
			ok, err = lk.TryRLockContext(ctx, lockRetryDelay)
		}
		if err != nil || !ok {
			if err == nil {
				err = fmt.Errorf("lock not granted")
			}
			return nil, &OpError{Op: "failed to acquire log file lock", Err: err}
		}
	} else {
		if exclusive {
			err = lk.Lock()
		} else {
			err = lk.RLock()
		}
		if err != nil {
			return nil, &OpError{Op: "failed to acquire log file lock", Err: err}
		}
	}

	return func() {
		if err := lk.Unlock(); err != nil {
			s.logger.Warn("unlock failed", "error", err)
		}
	}, nil
}

// replay reads the whole log file and parses it into ordered valid
// records. Must be called while holding the lock appropriate to the
// caller's operation. A missing file is an empty log.
func (s *Store) replay() ([]ledger.Record, error) {
	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &OpError{Op: "failed to read log file", Err: err}
	}

	records, malformed := ledger.ParseAll(string(body))
	if malformed > 0 {
		s.logger.Debug("skipped malformed log lines", "count", malformed)
	}
	s.logger.Debug("log replayed", "records", len(records))
	return records, nil
}
