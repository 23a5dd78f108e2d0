package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorageItems(t *testing.T) {
	db := tempDB(t)

	if v, err := db.GetItem("missing"); err != nil || v != "" {
		t.Fatalf("missing key: got %q, %v", v, err)
	}
	if err := db.SetItem("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetItem("theme", "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ := db.GetItem("theme"); v != "light" {
		t.Fatalf("want light, got %q", v)
	}
	if err := db.RemoveItem("theme"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if v, _ := db.GetItem("theme"); v != "" {
		t.Fatalf("want empty after remove, got %q", v)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := tempDB(t)

	s, err := db.LoadSession()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if !s.IsGuest() {
		t.Fatalf("fresh store should yield a guest session")
	}

	if err := db.SaveSession(NewSession("tok", "a@b.c", []string{"user", "admin"})); err != nil {
		t.Fatalf("save: %v", err)
	}
	s, err = db.LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Token != "tok" || s.Email != "a@b.c" || !s.IsAdmin() {
		t.Fatalf("unexpected session %+v roles=%v", s, s.Roles())
	}
}

func TestClearSessionDropsLoansSnapshot(t *testing.T) {
	db := tempDB(t)
	now := time.Now()

	if err := db.SaveSession(NewSession("tok", "a@b.c", nil)); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := db.SaveSnapshot(LoansSnapshot("a@b.c"), []LoanRecord{}, now); err != nil {
		t.Fatalf("save loans: %v", err)
	}
	if err := db.SaveSnapshot(SnapshotCatalog, []BookRecord{{ID: 1, Title: "Kept"}}, now); err != nil {
		t.Fatalf("save catalog: %v", err)
	}

	if err := db.ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	s, _ := db.LoadSession()
	if !s.IsGuest() {
		t.Fatalf("session survived logout")
	}
	var loans []LoanRecord
	if _, err := db.LoadSnapshot(LoansSnapshot("a@b.c"), &loans); !errors.Is(err, ErrNotFound) {
		t.Fatalf("loans snapshot should be gone, got %v", err)
	}
	var books []BookRecord
	if _, err := db.LoadSnapshot(SnapshotCatalog, &books); err != nil || len(books) != 1 {
		t.Fatalf("catalog snapshot should survive logout: %v", err)
	}
}

func TestSnapshotKeepsFetchTime(t *testing.T) {
	db := tempDB(t)
	fetched := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	isbn := "978-0"

	in := []BookRecord{{ID: 7, Title: "Dune", Author: "Herbert", ISBN: &isbn, AvailableCopies: 1, TotalCopies: 2}}
	if err := db.SaveSnapshot(SnapshotCatalog, in, fetched); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out []BookRecord
	at, err := db.LoadSnapshot(SnapshotCatalog, &out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !at.Equal(fetched) {
		t.Fatalf("fetched_at: want %v, got %v", fetched, at)
	}
	if len(out) != 1 || out[0].Title != "Dune" || out[0].ISBN == nil || *out[0].ISBN != isbn {
		t.Fatalf("unexpected snapshot %+v", out)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := db.SetItem("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	db.Close()

	db, err = NewDatabase(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()
	if v, _ := db.GetItem("k"); v != "v" {
		t.Fatalf("value lost across reopen: %q", v)
	}
}
