package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/WhosEdo/gallerylog/internal/auth"
)

func seedLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.log")
	body := "1700000000|guard_alex|emp001|ENTER|lobby\n" +
		"1700000100|guard_alex|emp001|MOVE|gallery1\n" +
		"garbage line\n" +
		"1700000200|guard_alex|emp001|EXIT|-\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return path
}

func TestExport_Snapshot(t *testing.T) {
	logPath := seedLog(t)
	dbPath := filepath.Join(t.TempDir(), "gallery.db")
	s := testStore(t, logPath)

	n, err := s.Export(context.Background(), managerSecret, dbPath)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("exported = %d, want 3 (garbage excluded)", n)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT seq, person_id, action, room_id FROM events ORDER BY seq")
	if err != nil {
		t.Fatalf("query snapshot: %v", err)
	}
	defer rows.Close()

	want := []struct {
		action string
		room   string
	}{
		{"ENTER", "lobby"},
		{"MOVE", "gallery1"},
		{"EXIT", "-"},
	}
	i := 0
	for rows.Next() {
		var seq int
		var person, action, room string
		if err := rows.Scan(&seq, &person, &action, &room); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if seq != i+1 {
			t.Errorf("row %d: seq = %d, want %d", i, seq, i+1)
		}
		if action != want[i].action || room != want[i].room {
			t.Errorf("row %d = %s %s, want %s %s", i, action, room, want[i].action, want[i].room)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if i != 3 {
		t.Errorf("snapshot rows = %d, want 3", i)
	}
}

func TestExport_RebuiltFromScratch(t *testing.T) {
	logPath := seedLog(t)
	dbPath := filepath.Join(t.TempDir(), "gallery.db")
	s := testStore(t, logPath)
	ctx := context.Background()

	if _, err := s.Export(ctx, managerSecret, dbPath); err != nil {
		t.Fatalf("first Export() failed: %v", err)
	}
	if _, err := s.Export(ctx, managerSecret, dbPath); err != nil {
		t.Fatalf("second Export() failed: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("rows after re-export = %d, want 3 (no duplicates)", count)
	}
}

func TestExport_RequiresReadPermission(t *testing.T) {
	logPath := seedLog(t)
	dbPath := filepath.Join(t.TempDir(), "gallery.db")
	s := testStore(t, logPath)

	_, err := s.Export(context.Background(), guardSecret, dbPath)
	if !errors.Is(err, auth.ErrAuthentication) {
		t.Fatalf("append-only export: got %v, want ErrAuthentication", err)
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("snapshot database created despite auth failure")
	}
}
