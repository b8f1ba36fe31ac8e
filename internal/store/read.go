package store

import (
	"context"
	"os"

	"github.com/WhosEdo/gallerylog/internal/auth"
	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// ReadAll authenticates for the read operation and returns every valid
// record in file order. Malformed lines are skipped, never fatal.
//
// A log file that does not exist yet is an empty ledger, not an error:
// the empty slice (not nil) is returned so callers can range and
// serialize it uniformly.
func (s *Store) ReadAll(ctx context.Context, secret string) ([]ledger.Record, error) {
	if _, err := s.creds.Authenticate(secret, auth.OpRead); err != nil {
		return nil, err
	}

	// Absent file means no events yet. Checked before locking so a pure
	// read never creates the file as a side effect.
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return []ledger.Record{}, nil
		}
		return nil, &OpError{Op: "failed to open log file for reading", Err: err}
	}

	release, err := s.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	records, err := s.replay()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []ledger.Record{}
	}
	return records, nil
}
