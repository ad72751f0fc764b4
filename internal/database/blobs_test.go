package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := OpenSQLiteMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestBlobRoundTrip(t *testing.T) {
	repo := NewBlobRepository(setupTestDB(t))
	ctx := context.Background()

	if _, _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	rev, err := repo.Put(ctx, "doc", []byte(`{"a":1}`), 0)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("Expected revision 1, got %d", rev)
	}

	rev, err = repo.Put(ctx, "doc", []byte(`{"a":2}`), 1)
	if err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}
	if rev != 2 {
		t.Errorf("Expected revision 2, got %d", rev)
	}

	value, got, err := repo.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"a":2}` || got != 2 {
		t.Errorf("Expected {\"a\":2} at revision 2, got %s at %d", value, got)
	}
}

func TestBlobStaleRevision(t *testing.T) {
	repo := NewBlobRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.Put(ctx, "doc", []byte(`{}`), 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := repo.Put(ctx, "doc", []byte(`{"x":1}`), 7); !errors.Is(err, ErrVersion) {
		t.Errorf("Expected ErrVersion, got %v", err)
	}

	rev, err := repo.Put(ctx, "doc", []byte(`{"x":2}`), AnyRevision)
	if err != nil {
		t.Fatalf("Unchecked Put failed: %v", err)
	}
	if rev != 2 {
		t.Errorf("Expected revision 2, got %d", rev)
	}
}

func TestBlobDelete(t *testing.T) {
	repo := NewBlobRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.Put(ctx, "vortex_session/abc", []byte(`{}`), AnyRevision); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Delete(ctx, "vortex_session/abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, _, err := repo.Get(ctx, "vortex_session/abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Deleting a missing key should succeed, got %v", err)
	}
}
