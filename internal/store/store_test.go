package store

import (
	"testing"

	"github.com/openguild/guildhall/pkg/domain"
)

func TestSessionRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	user := &domain.User{ID: "u1", UserType: domain.UserTypeRegistered, Name: "Minh"}
	if err := s.SetSession("T1", "bearer", user); err != nil {
		t.Fatalf("SetSession() error: %v", err)
	}

	if got := s.Token(); got != "T1" {
		t.Errorf("Token() = %q, want %q", got, "T1")
	}
	if got := s.TokenType(); got != "bearer" {
		t.Errorf("TokenType() = %q, want %q", got, "bearer")
	}
	u := s.User()
	if u == nil {
		t.Fatal("User() = nil, want snapshot")
	}
	if u.ID != "u1" || u.Name != "Minh" {
		t.Errorf("User() = %+v, want id u1 name Minh", u)
	}
}

func TestEmptyStore(t *testing.T) {
	s := New(t.TempDir())

	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
	if u := s.User(); u != nil {
		t.Errorf("User() = %+v, want nil", u)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := New(t.TempDir())
	if err := s.SetSession("T1", "bearer", &domain.User{ID: "u1", UserType: domain.UserTypeGuest}); err != nil {
		t.Fatalf("SetSession() error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q after Clear, want empty", got)
	}
	if u := s.User(); u != nil {
		t.Errorf("User() = %+v after Clear, want nil", u)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}
}

func TestSetTokenAloneKeepsUserAbsent(t *testing.T) {
	s := New(t.TempDir())
	if err := s.SetToken("G1"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	if got := s.Token(); got != "G1" {
		t.Errorf("Token() = %q, want %q", got, "G1")
	}
	if u := s.User(); u != nil {
		t.Errorf("User() = %+v, want nil before validation", u)
	}
}

func TestSetUserNilRemovesSnapshot(t *testing.T) {
	s := New(t.TempDir())
	if err := s.SetUser(&domain.User{ID: "u1", UserType: domain.UserTypeGuest}); err != nil {
		t.Fatalf("SetUser() error: %v", err)
	}
	if err := s.SetUser(nil); err != nil {
		t.Fatalf("SetUser(nil) error: %v", err)
	}
	if u := s.User(); u != nil {
		t.Errorf("User() = %+v, want nil", u)
	}
}

func TestCorruptUserSnapshotReadsAsNil(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.write(userFile, "{not json"); err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}
	if u := s.User(); u != nil {
		t.Errorf("User() = %+v for corrupt snapshot, want nil", u)
	}
}
