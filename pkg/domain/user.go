package domain

// Account kinds reported by the backend in the user_type field.
const (
	UserTypeRegistered = "registered"
	UserTypeGuest      = "guest"
)

// User represents the authenticated principal as returned by the backend.
// Only the identifier and account kind are guaranteed; everything else is
// optional and absent fields stay nil rather than zero so callers can tell
// "not reported" from "reported as zero".
type User struct {
	ID               string   `json:"_id"`
	UserType         string   `json:"user_type"`
	Name             string   `json:"name,omitempty"`
	Email            string   `json:"email,omitempty"`
	Avatar           string   `json:"avatar,omitempty"`
	SessionID        string   `json:"session_id,omitempty"`
	KickerSkills     []string `json:"kicker_skills,omitempty"`
	GoalkeeperSkills []string `json:"goalkeeper_skills,omitempty"`
	RemainingMatches *int     `json:"remaining_matches,omitempty"`
	TotalPoint       *int     `json:"total_point,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
	LastActivity     string   `json:"last_activity,omitempty"`
}

// IsGuest reports whether the user is a guest account.
func (u *User) IsGuest() bool {
	return u.UserType == UserTypeGuest
}

// DisplayName returns the best available human-readable name.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.IsGuest() {
		return "guest"
	}
	return u.ID
}
