package backend

import (
	"context"

	"roomdesk/internal/models"
)

// Credentials is the auth payload carried by login/register responses:
// the user profile plus the bearer token for subsequent calls.
type Credentials struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Login exchanges email/password for a user and token.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var creds Credentials
	body := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, "login", "POST", "/auth/login", body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Register creates an account and returns the same credentials shape as
// Login so a fresh registration goes straight into a session.
func (c *Client) Register(ctx context.Context, name, email, password, phone string) (*Credentials, error) {
	var creds Credentials
	body := registerRequest{Name: name, Email: email, Password: password, Phone: phone}
	if err := c.doJSON(ctx, "register", "POST", "/auth/register", body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
