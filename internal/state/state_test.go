package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	m := &Manager{db: db}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLastFile_Empty(t *testing.T) {
	m := setupTestDB(t)

	path, err := m.LastFile()
	if err != nil {
		t.Fatalf("LastFile() error: %v", err)
	}
	if path != "" {
		t.Errorf("LastFile() = %q, want empty", path)
	}
}

func TestSetLastFile_Update(t *testing.T) {
	m := setupTestDB(t)

	for _, p := range []string{"/books/a.m4b", "/books/b.mp3"} {
		if err := m.SetLastFile(p); err != nil {
			t.Fatalf("SetLastFile(%q) error: %v", p, err)
		}
	}

	path, err := m.LastFile()
	if err != nil {
		t.Fatalf("LastFile() error: %v", err)
	}
	if path != "/books/b.mp3" {
		t.Errorf("LastFile() = %q, want /books/b.mp3", path)
	}
}

func TestRecordPosition_UpsertAndOrder(t *testing.T) {
	m := setupTestDB(t)
	base := time.Unix(1_700_000_000, 0)

	entries := []Entry{
		{Path: "/a.m4b", Title: "A", Artist: "Author", Position: 90 * time.Second, UpdatedAt: base},
		{Path: "/b.m4b", Title: "B", Position: 10 * time.Second, UpdatedAt: base.Add(time.Hour)},
		{Path: "/a.m4b", Title: "A", Artist: "Author", Position: 120 * time.Second, UpdatedAt: base.Add(2 * time.Hour)},
	}
	for _, e := range entries {
		if err := m.RecordPosition(e); err != nil {
			t.Fatalf("RecordPosition() error: %v", err)
		}
	}

	got, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(got))
	}
	if got[0].Path != "/a.m4b" || got[0].Position != 120*time.Second {
		t.Errorf("first entry = %+v, want /a.m4b at 120s", got[0])
	}
	if got[0].Artist != "Author" {
		t.Errorf("first entry artist = %q, want Author", got[0].Artist)
	}
	if got[1].Path != "/b.m4b" || got[1].Artist != "" {
		t.Errorf("second entry = %+v, want /b.m4b without artist", got[1])
	}
	if !got[1].UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("second entry UpdatedAt = %v", got[1].UpdatedAt)
	}
}

func TestRecent_Limit(t *testing.T) {
	m := setupTestDB(t)
	for i, p := range []string{"/1", "/2", "/3"} {
		err := m.RecordPosition(Entry{Path: p, Title: p, UpdatedAt: time.Unix(int64(i+1), 0)})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := m.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 2 || got[0].Path != "/3" || got[1].Path != "/2" {
		t.Errorf("Recent(2) = %+v", got)
	}
}

func TestOpenPath_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "uap.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	defer m.Close()

	if err := m.SetLastFile("/x.m4b"); err != nil {
		t.Fatalf("SetLastFile() error: %v", err)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := setupTestDB(t)
	if err := initSchema(m.db); err != nil {
		t.Errorf("second initSchema() error: %v", err)
	}
}

func TestMock_Recent(t *testing.T) {
	m := NewMock()
	_ = m.RecordPosition(Entry{Path: "/old", UpdatedAt: time.Unix(1, 0)})
	_ = m.RecordPosition(Entry{Path: "/new", UpdatedAt: time.Unix(2, 0)})

	got, _ := m.Recent(1)
	if len(got) != 1 || got[0].Path != "/new" {
		t.Errorf("Mock.Recent(1) = %+v", got)
	}
}
