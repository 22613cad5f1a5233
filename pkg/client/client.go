package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openguild/guildhall/pkg/domain"
)

// LoginRequest is the payload for credential login and registration.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateGuildRequest is the payload for creating a new guild.
type CreateGuildRequest struct {
	GuildName   string `json:"guild_name"`
	Description string `json:"description,omitempty"`
}

// guildNameRequest is the payload for join/leave, which address guilds by name.
type guildNameRequest struct {
	GuildName string `json:"guild_name"`
}

// Client is the Guildhall API client. The bearer token is mutable so the
// session layer can swap it on login/logout; all reads and writes of it go
// through the mutex.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client. token may be empty for an unauthenticated client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Auth ---

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates a new account. Success does not imply a session; callers
// log in separately.
func (c *Client) Register(ctx context.Context, email, password string) error {
	if err := c.post(ctx, "/api/auth/register", LoginRequest{Email: email, Password: password}, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Me returns the user record for the current bearer token. A 401 means the
// token is invalid, surfaced as an APIError.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// CreateGuest asks the backend to issue a guest session. The request carries
// an idempotency key so a user-initiated retry cannot mint a second guest.
func (c *Client) CreateGuest(ctx context.Context) (*domain.GuestResponse, error) {
	var resp domain.GuestResponse
	if err := c.postIdempotent(ctx, "/api/guest", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateGuest: %w", err)
	}
	return &resp, nil
}

// RefreshGuest extends the current guest session's token.
func (c *Client) RefreshGuest(ctx context.Context) (*domain.GuestResponse, error) {
	var resp domain.GuestResponse
	if err := c.post(ctx, "/api/guest/refresh", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.RefreshGuest: %w", err)
	}
	return &resp, nil
}

// UpgradeGuest converts the current guest session into a registered account
// keyed by the given credentials.
func (c *Client) UpgradeGuest(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, "/api/upgrade", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("client.UpgradeGuest: %w", err)
	}
	return &resp, nil
}

// --- Guilds ---

// SearchGuilds returns guilds whose name matches the keyword. The backend
// match is fuzzy; callers wanting an exact name must filter the result.
func (c *Client) SearchGuilds(ctx context.Context, keyword string) ([]domain.Guild, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var guilds []domain.Guild
	if err := c.get(ctx, "/api/guild/search?"+params.Encode(), &guilds); err != nil {
		return nil, fmt.Errorf("client.SearchGuilds: %w", err)
	}
	return guilds, nil
}

// CreateGuild creates a guild owned by the current user. Duplicate names are
// rejected by the backend.
func (c *Client) CreateGuild(ctx context.Context, name, description string) (*domain.Guild, error) {
	var g domain.Guild
	if err := c.postIdempotent(ctx, "/api/guild/create", CreateGuildRequest{GuildName: name, Description: description}, &g); err != nil {
		return nil, fmt.Errorf("client.CreateGuild: %w", err)
	}
	return &g, nil
}

// JoinGuild adds the current user to the named guild.
func (c *Client) JoinGuild(ctx context.Context, name string) error {
	if err := c.post(ctx, "/api/guild/join", guildNameRequest{GuildName: name}, nil); err != nil {
		return fmt.Errorf("client.JoinGuild: %w", err)
	}
	return nil
}

// LeaveGuild removes the current user from the named guild.
func (c *Client) LeaveGuild(ctx context.Context, name string) error {
	if err := c.post(ctx, "/api/guild/leave", guildNameRequest{GuildName: name}, nil); err != nil {
		return fmt.Errorf("client.LeaveGuild: %w", err)
	}
	return nil
}

// MyGuilds returns the guilds the current user belongs to, as reported by the
// backend's per-user listing.
func (c *Client) MyGuilds(ctx context.Context) ([]domain.Guild, error) {
	var guilds []domain.Guild
	if err := c.get(ctx, "/api/guild/me", &guilds); err != nil {
		return nil, fmt.Errorf("client.MyGuilds: %w", err)
	}
	return guilds, nil
}

// ExploreGuilds returns the public guild listing. minMembers <= 0 leaves the
// filter unset.
func (c *Client) ExploreGuilds(ctx context.Context, minMembers int) ([]domain.Guild, error) {
	path := "/api/guild/explore"
	if minMembers > 0 {
		params := url.Values{}
		params.Set("min_members", strconv.Itoa(minMembers))
		path += "?" + params.Encode()
	}

	var guilds []domain.Guild
	if err := c.get(ctx, path, &guilds); err != nil {
		return nil, fmt.Errorf("client.ExploreGuilds: %w", err)
	}
	return guilds, nil
}

// InviteToGuild invites another user into the guild the caller owns.
func (c *Client) InviteToGuild(ctx context.Context, userID string) error {
	params := url.Values{}
	params.Set("user_id", userID)
	if err := c.doRequest(ctx, http.MethodPost, "/api/guild/invite?"+params.Encode(), nil, nil, nil); err != nil {
		return fmt.Errorf("client.InviteToGuild: %w", err)
	}
	return nil
}

// --- Plumbing ---

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out)
}

// postIdempotent posts with a fresh Idempotency-Key header so the backend can
// dedupe a retried mutation.
func (c *Client) postIdempotent(ctx context.Context, path string, body any, out any) error {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	return c.doRequest(ctx, http.MethodPost, path, headers, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls the human-readable message out of an error body. Auth
// routes report "message", guild routes report "detail"; some proxies use
// "error". Falls back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Detail != "":
			return payload.Detail
		case payload.Error != "":
			return payload.Error
		}
	}
	return string(body)
}
