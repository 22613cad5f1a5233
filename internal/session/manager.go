// Package session owns the authentication lifecycle: token acquisition,
// validation against the backend, guest issuance and promotion, and logout.
// It is the single source of truth for "who is the current user" and the
// single writer of the persistent token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/openguild/guildhall/internal/store"
	"github.com/openguild/guildhall/pkg/client"
	"github.com/openguild/guildhall/pkg/domain"
)

// State is the session's lifecycle position. Pending only exists while a
// validation is in flight; every operation ends in a terminal state.
type State int

const (
	StateUnauthenticated State = iota
	StatePending
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Manager coordinates the API client and the persistent store. All session
// and token-store mutations funnel through its mutex, so concurrent
// operations cannot interleave partial writes.
type Manager struct {
	api   *client.Client
	store *store.Store
	log   *zap.Logger

	mu    sync.Mutex
	state State
	user  *domain.User
}

// NewManager creates a session manager. The stored token, if any, is pushed
// into the API client so the first validation pass can use it; the session
// stays unauthenticated until that pass succeeds.
func NewManager(api *client.Client, st *store.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{api: api, store: st, log: log}
	if tok := st.Token(); tok != "" && api.Token() == "" {
		api.SetToken(tok)
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the validated user, or nil when not authenticated.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the bearer token currently in use, or empty.
func (m *Manager) Token() string {
	return m.api.Token()
}

// IsAuthenticated reports whether a validated user is present.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Validate resolves the stored token into a terminal state. No token means
// unauthenticated. A 401 is the only proof of an invalid token: the store is
// purged before anything else changes. Any other failure clears just the
// in-memory user and keeps the token for a later retry.
func (m *Manager) Validate(ctx context.Context) error {
	tok := m.store.Token()
	if env := m.api.Token(); env != "" && tok == "" {
		// Token injected via environment rather than the store.
		tok = env
	}
	if tok == "" {
		m.setSession(StateUnauthenticated, nil)
		return nil
	}

	m.setSession(StatePending, nil)
	m.api.SetToken(tok)

	user, err := m.api.Me(ctx)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			// Purge first so no later read can observe the dead token.
			if clearErr := m.store.Clear(); clearErr != nil {
				m.log.Warn("clear store after 401", zap.Error(clearErr))
			}
			m.api.SetToken("")
			m.setSession(StateUnauthenticated, nil)
			m.log.Info("token rejected, session cleared")
			return nil
		}
		m.setSession(StateUnauthenticated, nil)
		m.log.Warn("validation failed, token retained", zap.Error(err))
		return fmt.Errorf("session.Validate: %w", err)
	}

	m.setSession(StateAuthenticated, user)
	if err := m.store.SetUser(user); err != nil {
		m.log.Warn("persist user snapshot", zap.Error(err))
	}
	m.log.Info("session validated", zap.String("user_id", user.ID), zap.String("user_type", user.UserType))
	return nil
}

// Login exchanges credentials for a session. On success the token, type, and
// user are persisted and the in-memory session becomes authenticated. On
// failure nothing changes and the backend's message (or a generic fallback)
// comes back as the error.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, errors.New(client.Detail(err, "login failed"))
	}

	if err := m.store.SetSession(resp.AccessToken, resp.TokenType, &resp.User); err != nil {
		return nil, fmt.Errorf("session.Login: persist session: %w", err)
	}
	m.api.SetToken(resp.AccessToken)
	user := resp.User
	m.setSession(StateAuthenticated, &user)
	m.log.Info("login succeeded", zap.String("user_id", user.ID))
	return resp, nil
}

// Register creates an account. Success does not create a session; callers
// log in separately. Failure semantics mirror Login.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	if err := m.api.Register(ctx, email, password); err != nil {
		return errors.New(client.Detail(err, "registration failed"))
	}
	m.log.Info("registration succeeded")
	return nil
}

// ContinueAsGuest asks the backend for a guest session, persists the token,
// and runs a validation pass to populate the user. On failure the session is
// untouched. Retrying is safe: the issuance request is idempotency-keyed.
func (m *Manager) ContinueAsGuest(ctx context.Context) error {
	resp, err := m.api.CreateGuest(ctx)
	if err != nil {
		return errors.New(client.Detail(err, "could not start guest session"))
	}
	if err := m.store.SetToken(resp.AccessToken); err != nil {
		return fmt.Errorf("session.ContinueAsGuest: persist token: %w", err)
	}
	m.log.Info("guest token issued")
	return m.Validate(ctx)
}

// RefreshGuest extends the current guest session with a fresh token from the
// backend. Registered sessions have nothing to refresh.
func (m *Manager) RefreshGuest(ctx context.Context) error {
	u := m.User()
	if u == nil || !u.IsGuest() {
		return errors.New("no guest session to refresh")
	}
	resp, err := m.api.RefreshGuest(ctx)
	if err != nil {
		return errors.New(client.Detail(err, "refresh failed"))
	}
	if err := m.store.SetToken(resp.AccessToken); err != nil {
		return fmt.Errorf("session.RefreshGuest: persist token: %w", err)
	}
	m.api.SetToken(resp.AccessToken)
	m.log.Info("guest token refreshed")
	return nil
}

// UpgradeGuest converts the current guest session into a registered account,
// then re-validates so the session reflects the upgraded user.
func (m *Manager) UpgradeGuest(ctx context.Context, email, password string) error {
	u := m.User()
	if u == nil || !u.IsGuest() {
		return errors.New("no guest session to upgrade")
	}
	resp, err := m.api.UpgradeGuest(ctx, email, password)
	if err != nil {
		return errors.New(client.Detail(err, "upgrade failed"))
	}
	if resp.AccessToken != "" {
		if err := m.store.SetSession(resp.AccessToken, resp.TokenType, &resp.User); err != nil {
			return fmt.Errorf("session.UpgradeGuest: persist session: %w", err)
		}
		m.api.SetToken(resp.AccessToken)
	}
	m.log.Info("guest upgraded", zap.String("user_id", resp.User.ID))
	return m.Validate(ctx)
}

// Logout purges the stored token and cached snapshot and clears the
// in-memory session, all before returning — callers may navigate immediately
// afterwards without observing a stale user. Safe to call when already
// logged out.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.api.SetToken("")
	m.setSession(StateUnauthenticated, nil)
	if err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	m.log.Info("logged out")
	return nil
}

// setSession applies one atomic state transition. Observers never see a user
// without its matching state.
func (m *Manager) setSession(state State, user *domain.User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()
}
