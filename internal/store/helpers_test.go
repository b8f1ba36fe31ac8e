package store

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/WhosEdo/gallerylog/internal/auth"
)

// Secrets used throughout the store tests. The hashes are computed at
// test start, never hardcoded.
const (
	guardSecret   = "guard-secret"
	managerSecret = "manager-secret"
	adminSecret   = "admin-secret"
)

func testCreds(t *testing.T) *auth.Store {
	t.Helper()
	s, err := auth.NewStore([]auth.Credential{
		{ActorID: "guard_alex", Permission: auth.PermAppendOnly, SecretHash: auth.HashSecret(guardSecret)},
		{ActorID: "manager_kim", Permission: auth.PermReadOnly, SecretHash: auth.HashSecret(managerSecret)},
		{ActorID: "admin_lee", Permission: auth.PermReadWrite, SecretHash: auth.HashSecret(adminSecret)},
	})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return s
}

// fixedClock pins append timestamps for deterministic assertions.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func testStore(t *testing.T, path string) *Store {
	t.Helper()
	return New(path, testCreds(t), WithClock(fixedClock{t: time.Unix(1700000000, 0)}))
}

// countLines returns the number of newline-terminated lines in the log
// file, zero if it does not exist.
func countLines(t *testing.T, path string) int {
	t.Helper()
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Count(string(body), "\n")
}
