package orbit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the bearer token pair held by a client. Tokens are opaque
// strings issued by the backend; they are never fabricated locally.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`

	// LegacyAuthToken is the single-token entry of the pre-refresh
	// authentication scheme. It is only ever read so it can be dropped
	// when the session is next saved or cleared.
	LegacyAuthToken string `json:"auth_token,omitempty"`
}

// TokenStore persists a session across process restarts. Save and Clear
// are called synchronously with every in-memory session change.
type TokenStore interface {
	Load() (Session, error)
	Save(session Session) error
	Clear() error
}

// MemoryTokenStore keeps the session in process memory only.
type MemoryTokenStore struct {
	mu      sync.Mutex
	session Session
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *MemoryTokenStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.LegacyAuthToken = ""
	s.session = session
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	return nil
}

// FileTokenStore persists the session as a JSON file with owner-only
// permissions, e.g. ~/.orbit/session.json.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("decoding session file: %w", err)
	}
	return session, nil
}

// Save writes the token pair, dropping any legacy single-token entry
// still present in the file.
func (s *FileTokenStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.LegacyAuthToken = ""
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file entirely, including the legacy entry.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
