package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

// With a bounded lock wait, a held exclusive lock turns into an
// operational failure instead of an indefinite stall, and nothing is
// written.
func TestAppend_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.log")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("create log: %v", err)
	}

	holder := flock.New(path)
	if err := holder.Lock(); err != nil {
		t.Fatalf("take holder lock: %v", err)
	}
	defer holder.Unlock()

	s := New(path, testCreds(t), WithLockTimeout(150*time.Millisecond))
	_, err := s.Append(context.Background(), AppendRequest{
		Secret: guardSecret, PersonID: "emp001", Action: "ENTER", RoomID: "lobby",
	})

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("got %v, want *OpError", err)
	}
	if n := countLines(t, path); n != 0 {
		t.Errorf("log has %d lines after timed-out append, want 0", n)
	}
}

func TestReadAll_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.log")
	if err := os.WriteFile(path, []byte("1700000000|guard_alex|emp001|ENTER|lobby\n"), 0o600); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	holder := flock.New(path)
	if err := holder.Lock(); err != nil {
		t.Fatalf("take holder lock: %v", err)
	}
	defer holder.Unlock()

	s := New(path, testCreds(t), WithLockTimeout(150*time.Millisecond))
	_, err := s.ReadAll(context.Background(), managerSecret)

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("got %v, want *OpError", err)
	}
}

// Concurrent readers coexist: a held shared lock does not block another
// shared acquisition.
func TestReadAll_SharedLocksCoexist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.log")
	if err := os.WriteFile(path, []byte("1700000000|guard_alex|emp001|ENTER|lobby\n"), 0o600); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	holder := flock.New(path)
	if err := holder.RLock(); err != nil {
		t.Fatalf("take holder read lock: %v", err)
	}
	defer holder.Unlock()

	s := New(path, testCreds(t), WithLockTimeout(time.Second))
	records, err := s.ReadAll(context.Background(), managerSecret)
	if err != nil {
		t.Fatalf("ReadAll() under shared lock failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
}
