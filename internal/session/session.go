// Package session holds per-visitor UI state, persisted apart from the
// business document.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/internal/database"
	"github.com/rs/zerolog"
)

const (
	// CookieName carries the session id.
	CookieName = "vortex_session"

	keyPrefix = "vortex_session/"
)

// Session is the identity and navigation state of one visitor.
type Session struct {
	ID             string `json:"id"`
	CurrentUserID  string `json:"currentUserId,omitempty"`
	CurrentView    string `json:"currentView"`
	IsRegisterMode bool   `json:"isRegisterMode"`
	MenuOpen       bool   `json:"menuOpen"`
	SearchOpen     bool   `json:"searchOpen"`
	AccountOpen    bool   `json:"accountOpen"`
}

func (s *Session) Authenticated() bool {
	return s.CurrentUserID != ""
}

// SignIn records the authenticated user. The next view is chosen by the router.
func (s *Session) SignIn(userID string) {
	s.CurrentUserID = userID
	s.IsRegisterMode = false
}

// Logout clears the identity and returns to the login view.
func (s *Session) Logout() {
	s.CurrentUserID = ""
	s.CurrentView = "login"
	s.IsRegisterMode = false
	s.CloseOverlays()
}

// CloseOverlays hides the side menu, the search field and the account card.
func (s *Session) CloseOverlays() {
	s.MenuOpen = false
	s.SearchOpen = false
	s.AccountOpen = false
}

func (s *Session) ToggleMenu() {
	s.MenuOpen = !s.MenuOpen
}

func (s *Session) ToggleSearch() {
	s.SearchOpen = !s.SearchOpen
}

func (s *Session) ToggleAccount() {
	s.AccountOpen = !s.AccountOpen
}

// ToggleAuthMode flips between the login and register forms.
func (s *Session) ToggleAuthMode() {
	s.IsRegisterMode = !s.IsRegisterMode
	if s.IsRegisterMode {
		s.CurrentView = "register"
	} else {
		s.CurrentView = "login"
	}
}

// Blobs is the subset of the key/value medium sessions need.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, uint64, error)
	Put(ctx context.Context, key string, value []byte, expected uint64) (uint64, error)
	Delete(ctx context.Context, key string) error
}

type Manager struct {
	blobs Blobs
	log   zerolog.Logger
}

func NewManager(blobs Blobs, log zerolog.Logger) *Manager {
	return &Manager{
		blobs: blobs,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// Get returns the stored session for id, or a new unsaved one when id is
// empty, unknown or unreadable.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return m.Create(), nil
	}

	blob, _, err := m.blobs.Get(ctx, keyPrefix+id)
	if errors.Is(err, database.ErrNotFound) {
		return m.Create(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(blob, &s); err != nil || s.ID != id {
		m.log.Warn().Err(err).Str("session", id).Msg("discarding unreadable session")
		return m.Create(), nil
	}
	return &s, nil
}

// Create returns a new session on the login view.
func (m *Manager) Create() *Session {
	return &Session{ID: uuid.NewString(), CurrentView: "login"}
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := m.blobs.Put(ctx, keyPrefix+s.ID, blob, database.AnyRevision); err != nil {
		m.log.Error().Err(err).Str("session", s.ID).Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.blobs.Delete(ctx, keyPrefix+id)
}
