package session

import (
	"context"
	"testing"

	"github.com/localnerve/vortex-console/internal/database"
	"github.com/rs/zerolog"
)

func newManager(t *testing.T) *Manager {
	db, err := database.OpenSQLiteMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return NewManager(database.NewBlobRepository(db), zerolog.Nop())
}

func TestGetUnknownCreatesSession(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	for _, id := range []string{"", "not-a-uuid", "5d0f3f5e-3a0e-4f7e-8a0e-5a3d1d1b6c11"} {
		s, err := m.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", id, err)
		}
		if s.ID == "" || s.ID == id || s.CurrentView != "login" || s.Authenticated() {
			t.Errorf("Expected a fresh login session for %q, got %+v", id, s)
		}
	}
}

func TestSaveAndReload(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	s := m.Create()
	s.SignIn("user-1")
	s.CurrentView = "gaming"
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.MenuOpen = true
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != *s {
		t.Errorf("Expected %+v, got %+v", s, got)
	}

	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	fresh, _ := m.Get(ctx, s.ID)
	if fresh.ID == s.ID {
		t.Error("Expected a new session after delete")
	}
}

func TestToggleAuthModeAndLogout(t *testing.T) {
	s := &Session{ID: "x", CurrentView: "login"}
	s.ToggleAuthMode()
	if !s.IsRegisterMode || s.CurrentView != "register" {
		t.Errorf("Expected register mode, got %+v", s)
	}
	s.ToggleAuthMode()
	if s.IsRegisterMode || s.CurrentView != "login" {
		t.Errorf("Expected login mode, got %+v", s)
	}

	s.SignIn("u")
	s.CurrentView = "admin"
	s.MenuOpen = true
	s.AccountOpen = true
	s.Logout()
	if s.Authenticated() || s.CurrentView != "login" || s.MenuOpen || s.AccountOpen {
		t.Errorf("Expected a cleared session, got %+v", s)
	}
}

func TestOverlayToggles(t *testing.T) {
	s := &Session{ID: "x", CurrentUserID: "u", CurrentView: "market"}

	s.ToggleMenu()
	s.ToggleSearch()
	s.ToggleAccount()
	if !s.MenuOpen || !s.SearchOpen || !s.AccountOpen {
		t.Errorf("Expected all overlays open, got %+v", s)
	}
	s.ToggleSearch()
	if !s.MenuOpen || s.SearchOpen || !s.AccountOpen {
		t.Errorf("Expected only search closed, got %+v", s)
	}
	s.CloseOverlays()
	if s.MenuOpen || s.SearchOpen || s.AccountOpen {
		t.Errorf("Expected overlays closed, got %+v", s)
	}
	if s.CurrentView != "market" || !s.Authenticated() {
		t.Error("Overlays must not change the view or identity")
	}
}
