package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/auth"
)

// SessionState is what a SessionStore persists between runs.
type SessionState struct {
	Token     string    `json:"token"`
	Role      auth.Role `json:"role"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *SessionState) complete() bool {
	return s != nil && s.Token != "" && s.Role.Valid()
}

// SessionStore persists the session. Load returns nil and no error when
// nothing has been saved.
type SessionStore interface {
	Load() (*SessionState, error)
	Save(state *SessionState) error
	Clear() error
}

// FileStore keeps the session as a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

var _ SessionStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (*SessionState, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FileStore.Load: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("FileStore.Load: %w", err)
	}
	return &state, nil
}

func (f *FileStore) Save(state *SessionState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("FileStore.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("FileStore.Save: %w", err)
	}
	if err := os.WriteFile(f.Path, raw, 0o600); err != nil {
		return fmt.Errorf("FileStore.Save: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(f.Path, 0o600)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("FileStore.Clear: %w", err)
	}
	return nil
}

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu    sync.Mutex
	state *SessionState
}

var _ SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	state := *m.state
	return &state, nil
}

func (m *MemoryStore) Save(state *SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *state
	m.state = &saved
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}

// Session is the authenticated identity of the client. The zero value is
// logged out and has no store until Init is called.
type Session struct {
	mu    sync.RWMutex
	store SessionStore
	state *SessionState
}

// Init attaches store and restores a saved session when it carries both a
// token and a role. A partial saved session is ignored.
func (s *Session) Init(store SessionStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = store
	s.state = nil

	state, err := store.Load()
	if err != nil {
		return err
	}
	if state.complete() {
		s.state = state
	}
	return nil
}

// Login records a new session and persists it.
func (s *Session) Login(state SessionState) error {
	if !state.complete() {
		return errors.New("session needs a token and a role")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &state
	if s.store == nil {
		return nil
	}
	return s.store.Save(&state)
}

// Teardown forgets the session and clears the store.
func (s *Session) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// Token is the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return ""
	}
	return s.state.Token
}

func (s *Session) Role() auth.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return ""
	}
	return s.state.Role
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	return s.Role() == auth.RoleAdmin
}

// State returns a copy of the current session, or nil when logged out.
func (s *Session) State() *SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil
	}
	state := *s.state
	return &state
}
