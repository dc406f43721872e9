// Package session holds the two opaque bearer tokens and the identity derived
// from them. The session is created once at app start, injected into the
// transport client and the UI root, and torn down at logout.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const sessionFile = "session.json"

// Session is the durable token store. Tokens are opaque to the client; the
// only invariant is "no access token, no user identity".
type Session struct {
	mu sync.Mutex

	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`

	path string
}

// ConfigDir resolves the directory holding client state.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.nota).
	if v := strings.TrimSpace(os.Getenv("NOTA_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nota"), nil
}

// Load reads the stored session, if any. A missing file yields an empty
// (anonymous) session, not an error.
func Load() (*Session, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	s := &Session{path: filepath.Join(dir, sessionFile)}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		// A corrupt session file should not lock the user out; start anonymous.
		return &Session{path: s.path}, nil
	}
	return s, nil
}

// Save persists the current tokens.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Session) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// SetTokens stores a new token pair and persists it.
func (s *Session) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AccessToken = access
	if refresh != "" {
		s.RefreshToken = refresh
	}
	return s.saveLocked()
}

// Clear drops both tokens and removes the stored file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AccessToken = ""
	s.RefreshToken = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Access returns the current access token ("" when anonymous).
func (s *Session) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.AccessToken
}

// Refresh returns the current refresh token.
func (s *Session) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.RefreshToken
}

// Authenticated reports whether an access token is present. Validity is only
// known after a who-am-I call.
func (s *Session) Authenticated() bool {
	return s.Access() != ""
}
