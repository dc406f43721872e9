package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsAnonymous(t *testing.T) {
	t.Setenv("NOTA_CONFIG_DIR", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected anonymous session, got access token %q", s.Access())
	}
}

func TestSetTokens_RoundTrip(t *testing.T) {
	t.Setenv("NOTA_CONFIG_DIR", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.SetTokens("acc-1", "ref-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	s2, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s2.Access() != "acc-1" || s2.Refresh() != "ref-1" {
		t.Fatalf("tokens not persisted: access=%q refresh=%q", s2.Access(), s2.Refresh())
	}
}

func TestSetTokens_EmptyRefreshKeepsExisting(t *testing.T) {
	t.Setenv("NOTA_CONFIG_DIR", t.TempDir())

	s, _ := Load()
	if err := s.SetTokens("acc-1", "ref-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	// Token refresh responses carry a new access token only.
	if err := s.SetTokens("acc-2", ""); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if s.Access() != "acc-2" || s.Refresh() != "ref-1" {
		t.Fatalf("expected refresh token kept; access=%q refresh=%q", s.Access(), s.Refresh())
	}
}

func TestClear_RemovesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOTA_CONFIG_DIR", dir)

	s, _ := Load()
	if err := s.SetTokens("acc", "ref"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected anonymous after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, sessionFile)); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err=%v", err)
	}
}

func TestLoad_CorruptFileStartsAnonymous(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOTA_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, sessionFile), []byte("not-json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected anonymous session for corrupt file")
	}
}
