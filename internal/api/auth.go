package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nota-cli/internal/model"
)

// Credentials is the token pair plus the identity a successful login or
// registration returns.
type Credentials struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    model.User `json:"user"`
}

// Login authenticates and stores the returned token pair in the session.
func (c *Client) Login(ctx context.Context, username, password string) (model.User, error) {
	var out Credentials
	err := c.doJSON(ctx, http.MethodPost, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	}, &out, false)
	if err != nil {
		return model.User{}, err
	}
	if err := c.sess.SetTokens(out.Access, out.Refresh); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// Register creates an account and stores the returned token pair.
// The password-confirmation equality check belongs to the caller: a mismatch
// must never reach the network.
func (c *Client) Register(ctx context.Context, username, email, password, password2 string) (model.User, error) {
	var out Credentials
	err := c.doJSON(ctx, http.MethodPost, "/auth/register/", map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"password2": password2,
	}, &out, false)
	if err != nil {
		return model.User{}, err
	}
	if err := c.sess.SetTokens(out.Access, out.Refresh); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// Me validates the stored access token and returns the current identity.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/me/", nil, &out, true)
	return out, err
}

// Logout clears the session immediately and fires a best-effort server-side
// token revocation that is never awaited: the UI transitions to anonymous
// regardless of whether revocation succeeds.
func (c *Client) Logout() error {
	refresh := c.sess.Refresh()
	access := c.sess.Access()
	err := c.sess.Clear()

	if refresh != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if revokeErr := c.revoke(ctx, access, refresh); revokeErr != nil {
				c.log.Debug("token revocation failed", zap.Error(revokeErr))
			}
		}()
	}
	return err
}

// revoke posts the refresh token to the blacklist endpoint. The session is
// already cleared, so the access token is passed explicitly.
func (c *Client) revoke(ctx context.Context, access, refresh string) error {
	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/logout/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
