package domain

import "time"

// Guild is a named group with an owner and a member set. The backend is the
// source of truth for membership; the helpers below only apply deltas it has
// already confirmed. guild_name doubles as the routing key, so it is unique.
type Guild struct {
	ID          string    `json:"id"`
	GuildName   string    `json:"guild_name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasMember reports whether the given user ID is in the member list.
func (g *Guild) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember appends a user ID to the member list. Membership is a set in
// meaning, so adding an existing member is a no-op.
func (g *Guild) AddMember(userID string) {
	if g.HasMember(userID) {
		return
	}
	g.Members = append(g.Members, userID)
}

// RemoveMember removes a user ID from the member list, preserving order.
func (g *Guild) RemoveMember(userID string) {
	for i, m := range g.Members {
		if m == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return
		}
	}
}

// OwnerPresent reports whether the owner is in the member list. This must
// hold after every create/join/leave; a violation means local state has
// drifted and the guild should be re-fetched, not patched.
func (g *Guild) OwnerPresent() bool {
	return g.HasMember(g.OwnerID)
}

// Desc returns the description or an empty string when absent.
func (g *Guild) Desc() string {
	if g.Description == nil {
		return ""
	}
	return *g.Description
}
