package visit

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/evcraddock/campus-explorer/internal/db"
)

func TestAddAndList(t *testing.T) {
	repo, _ := testSetup(t)

	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	v, err := New("alice", "Robarts Library", at)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := repo.Add(v); err != nil {
		t.Fatalf("add: %v", err)
	}

	visits, err := repo.ListByUsername("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1", len(visits))
	}
	got := visits[0]
	if got.ID != v.ID {
		t.Errorf("id = %q, want %q", got.ID, v.ID)
	}
	if got.LandmarkName != "Robarts Library" {
		t.Errorf("landmark = %q, want %q", got.LandmarkName, "Robarts Library")
	}
	if !got.VisitedAt.Equal(at) {
		t.Errorf("visited_at = %v, want %v", got.VisitedAt, at)
	}
	if got.VisitedAt.Location() != time.UTC {
		t.Errorf("visited_at location = %v, want UTC", got.VisitedAt.Location())
	}
}

func TestAddRejectsUnbuiltVisit(t *testing.T) {
	repo, _ := testSetup(t)

	err := repo.Add(Visit{ID: "x", Username: "alice", LandmarkName: "Robarts Library"})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestAddUnknownLandmark(t *testing.T) {
	repo, _ := testSetup(t)

	v, err := New("alice", "Nowhere Hall", time.Now())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := repo.Add(v); err == nil {
		t.Fatal("expected foreign key error")
	}
}

func TestListInsertionOrder(t *testing.T) {
	repo, _ := testSetup(t)

	// Recorded out of time order; listing must keep insertion order.
	times := []time.Time{
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	var ids []string
	for _, at := range times {
		v, err := New("alice", "Robarts Library", at)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if err := repo.Add(v); err != nil {
			t.Fatalf("add: %v", err)
		}
		ids = append(ids, v.ID)
	}

	visits, err := repo.ListByUsername("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("got %d visits, want 3", len(visits))
	}
	for i, v := range visits {
		if v.ID != ids[i] {
			t.Errorf("visit %d id = %q, want %q", i, v.ID, ids[i])
		}
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	repo, _ := testSetup(t)

	visits, err := repo.ListByUsername("nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if visits == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(visits) != 0 {
		t.Errorf("got %d visits, want 0", len(visits))
	}
}

func TestDelete(t *testing.T) {
	repo, _ := testSetup(t)

	v, err := New("alice", "Robarts Library", time.Now())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := repo.Add(v); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Delete("alice", v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	visits, err := repo.ListByUsername("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 0 {
		t.Errorf("got %d visits after delete, want 0", len(visits))
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := testSetup(t)

	err := repo.Delete("alice", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteOtherUsersVisit(t *testing.T) {
	repo, d := testSetup(t)
	if _, err := d.Exec(`INSERT INTO users (username) VALUES (?)`, "bob"); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	v, err := New("alice", "Robarts Library", time.Now())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := repo.Add(v); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Delete("bob", v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func testSetup(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	if _, err := d.Exec(`INSERT INTO users (username) VALUES (?)`, "alice"); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO landmarks (name) VALUES (?)`, "Robarts Library"); err != nil {
		t.Fatalf("insert landmark: %v", err)
	}

	return NewRepository(d), d
}
