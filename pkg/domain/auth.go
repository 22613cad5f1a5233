package domain

// AuthResponse is the backend's reply to a successful credential login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// GuestResponse is the backend's reply to guest-session issuance.
type GuestResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
