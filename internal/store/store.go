// Package store persists the client's session state between runs: the bearer
// token, its type, and the last-known user snapshot. It is the only shared
// mutable resource across operations, so every mutation goes through one
// mutex — concurrent login/logout cannot interleave partial writes.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/openguild/guildhall/pkg/domain"
)

const (
	tokenFile     = "token"
	tokenTypeFile = "token_type"
	userFile      = "user.json"
)

// Store is a file-backed key-value store rooted at a state directory
// (typically ~/.guildhall).
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a store rooted at dir. The directory is created on first write,
// not here, so a read-only run never touches the filesystem.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns ~/.guildhall.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".guildhall"), nil
}

// Token returns the stored bearer token, or empty when absent.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(tokenFile)
}

// TokenType returns the stored token type (e.g. "bearer"), or empty.
func (s *Store) TokenType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(tokenTypeFile)
}

// User returns the last-known user snapshot, or nil when absent or unreadable.
// The snapshot is a cache for display on startup, never an authority — only a
// validation pass against the backend makes a user current.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// SetSession persists the full credential triple after a successful login.
func (s *Store) SetSession(token, tokenType string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(tokenFile, token); err != nil {
		return err
	}
	if err := s.write(tokenTypeFile, tokenType); err != nil {
		return err
	}
	return s.writeUser(user)
}

// SetToken persists only the bearer token (guest issuance returns no user;
// the follow-up validation fills the snapshot in).
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tokenFile, token)
}

// SetUser persists the user snapshot.
func (s *Store) SetUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeUser(user)
}

// Clear removes all persisted session state. Safe to call when nothing is
// stored.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{tokenFile, tokenTypeFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) read(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *Store) write(name, value string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(value), 0600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeUser(user *domain.User) error {
	if user == nil {
		if err := os.Remove(filepath.Join(s.dir, userFile)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", userFile, err)
		}
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.write(userFile, string(data))
}
