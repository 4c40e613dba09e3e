package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// User is the identity-provider view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Session is a provider-issued bearer token plus its owner.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// ErrUnauthorized reports a token the provider rejected.
var ErrUnauthorized = errors.New("identity: unauthorized")

// Client talks to the external identity provider.
type Client struct {
	BaseURL string

	HTTP *http.Client
}

type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	User      User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.openSession(ctx, "/api/v1/auth/login", map[string]any{
		"email":    strings.TrimSpace(email),
		"password": password,
	})
}

func (c *Client) Signup(ctx context.Context, email, password, displayName string) (Session, error) {
	return c.openSession(ctx, "/api/v1/auth/signup", map[string]any{
		"email":        strings.TrimSpace(email),
		"password":     password,
		"display_name": strings.TrimSpace(displayName),
	})
}

func (c *Client) openSession(ctx context.Context, path string, payload map[string]any) (Session, error) {
	base, err := c.base()
	if err != nil {
		return Session{}, err
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Session{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Session{}, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, fmt.Errorf("identity %s http %d: %s", path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var sr sessionResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return Session{}, err
	}
	exp, _ := time.Parse(time.RFC3339, strings.TrimSpace(sr.ExpiresAt))
	return Session{Token: strings.TrimSpace(sr.Token), ExpiresAt: exp, User: sr.User}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("identity logout http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// Verify resolves a bearer token to its user. ErrUnauthorized means the
// provider rejected the token; other errors are transport failures.
func (c *Client) Verify(ctx context.Context, token string) (User, error) {
	base, err := c.base()
	if err != nil {
		return User{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/v1/auth/verify", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return User{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return User{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return User{}, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return User{}, fmt.Errorf("identity verify http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(u.ID) == "" {
		return User{}, fmt.Errorf("identity verify: response carries no user id")
	}
	return u, nil
}

func (c *Client) base() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", errors.New("identity base url is empty")
	}
	return base, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}
