// Package guild wraps the guild endpoints with the client-side rules the
// backend does not enforce for us: exact-name lookup over fuzzy search,
// auth-gated mutations, and the derived "explorable" listing.
package guild

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/openguild/guildhall/internal/session"
	"github.com/openguild/guildhall/pkg/client"
	"github.com/openguild/guildhall/pkg/domain"
)

// ErrAuthRequired is returned before any network call when a mutation needs a
// session and none is present.
var ErrAuthRequired = errors.New("sign in to manage guild membership")

// Manager is the guild-side counterpart of session.Manager. It holds no guild
// state of its own; callers own their copies and the manager applies
// backend-confirmed deltas to them.
type Manager struct {
	api     *client.Client
	session *session.Manager
	log     *zap.Logger
}

// NewManager creates a guild manager bound to a session.
func NewManager(api *client.Client, sess *session.Manager, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{api: api, session: sess, log: log}
}

// FetchByName resolves a guild by its exact name. The backend search is
// fuzzy, so the result is filtered here; (nil, nil) means no such guild.
func (m *Manager) FetchByName(ctx context.Context, name string) (*domain.Guild, error) {
	guilds, err := m.api.SearchGuilds(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("guild.FetchByName: %w", err)
	}
	for i := range guilds {
		if guilds[i].GuildName == name {
			return &guilds[i], nil
		}
	}
	return nil, nil
}

// Create creates a guild owned by the current user. Duplicate names come back
// as backend errors.
func (m *Manager) Create(ctx context.Context, name, description string) (*domain.Guild, error) {
	if m.session.Token() == "" {
		return nil, ErrAuthRequired
	}
	g, err := m.api.CreateGuild(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("guild.Create: %w", err)
	}
	m.log.Info("guild created", zap.String("guild", g.GuildName))
	return g, nil
}

// Join adds the current user to g. Without a token it fails before touching
// the network. On success the confirmed delta is applied to g; nothing is
// changed speculatively.
func (m *Manager) Join(ctx context.Context, g *domain.Guild) error {
	if m.session.Token() == "" {
		return ErrAuthRequired
	}
	if err := m.api.JoinGuild(ctx, g.GuildName); err != nil {
		return fmt.Errorf("guild.Join: %w", err)
	}
	if u := m.session.User(); u != nil {
		g.AddMember(u.ID)
	}
	m.log.Info("joined guild", zap.String("guild", g.GuildName))
	return nil
}

// Leave removes the current user from g. Same auth and delta rules as Join.
func (m *Manager) Leave(ctx context.Context, g *domain.Guild) error {
	if m.session.Token() == "" {
		return ErrAuthRequired
	}
	if err := m.api.LeaveGuild(ctx, g.GuildName); err != nil {
		return fmt.Errorf("guild.Leave: %w", err)
	}
	if u := m.session.User(); u != nil {
		g.RemoveMember(u.ID)
	}
	m.log.Info("left guild", zap.String("guild", g.GuildName))
	return nil
}

// ListMine returns the current user's guilds. Without a token there is
// nothing to list, which is an empty result rather than an error.
func (m *Manager) ListMine(ctx context.Context) ([]domain.Guild, error) {
	if m.session.Token() == "" {
		return nil, nil
	}
	guilds, err := m.api.MyGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("guild.ListMine: %w", err)
	}
	return guilds, nil
}

// ListExplorable returns the public listing, optionally filtered by minimum
// member count. No session needed.
func (m *Manager) ListExplorable(ctx context.Context, minMembers int) ([]domain.Guild, error) {
	guilds, err := m.api.ExploreGuilds(ctx, minMembers)
	if err != nil {
		return nil, fmt.Errorf("guild.ListExplorable: %w", err)
	}
	return guilds, nil
}

// Invite invites another user into the caller's guild.
func (m *Manager) Invite(ctx context.Context, userID string) error {
	if m.session.Token() == "" {
		return ErrAuthRequired
	}
	if err := m.api.InviteToGuild(ctx, userID); err != nil {
		return fmt.Errorf("guild.Invite: %w", err)
	}
	return nil
}

// Reconcile checks the owner-in-members invariant and, when it does not hold,
// replaces the local copy with a fresh fetch. Local state is never patched to
// look right; the backend is the truth.
func (m *Manager) Reconcile(ctx context.Context, g *domain.Guild) (*domain.Guild, error) {
	if g.OwnerPresent() {
		return g, nil
	}
	m.log.Warn("guild missing its owner, re-fetching", zap.String("guild", g.GuildName))
	fresh, err := m.FetchByName(ctx, g.GuildName)
	if err != nil {
		return g, err
	}
	if fresh == nil {
		return g, nil
	}
	return fresh, nil
}

// ExplorableView derives the listing shown under "explore": every public
// guild when the user belongs to none, otherwise the public list minus the
// guilds already joined. Pure; inputs are not modified.
func ExplorableView(raw, mine []domain.Guild) []domain.Guild {
	if len(mine) == 0 {
		return raw
	}
	joined := make(map[string]struct{}, len(mine))
	for _, g := range mine {
		joined[g.GuildName] = struct{}{}
	}
	out := make([]domain.Guild, 0, len(raw))
	for _, g := range raw {
		if _, ok := joined[g.GuildName]; !ok {
			out = append(out, g)
		}
	}
	return out
}
