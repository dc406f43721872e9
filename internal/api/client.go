// Package api is the REST transport client. It injects the session's access
// token into every authenticated request and, on an authorization failure,
// attempts exactly one token refresh before replaying the original request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nota-cli/internal/session"
)

// DefaultBaseURL matches the development backend.
const DefaultBaseURL = "http://localhost:8000/api"

type Client struct {
	base string
	http *http.Client
	sess *session.Session
	log  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client against base. The session may be anonymous; public
// endpoints never carry a token.
func New(base string, sess *session.Session, log *zap.Logger, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
		sess: sess,
		log:  log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session exposes the injected session (the UI root owns its lifecycle).
func (c *Client) Session() *session.Session { return c.sess }

// request carries everything needed to send (and replay) one call. Bodies are
// byte slices so the single refresh-and-replay can resend them.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	auth        bool

	// progress, when set, receives fractional upload completion in 0..100.
	progress func(pct float64)

	// retried marks a request already replayed after a token refresh; such a
	// request is never retried again.
	retried bool
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, auth bool) error {
	req := request{method: method, path: path, auth: auth}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		req.body = body
		req.contentType = "application/json"
	}
	return c.send(ctx, req, out)
}

func (c *Client) send(ctx context.Context, req request, out any) error {
	var body io.Reader = bytes.NewReader(req.body)
	if req.progress != nil {
		body = &progressReader{r: body, total: int64(len(req.body)), fn: req.progress}
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.base+req.path, body)
	if err != nil {
		return err
	}
	httpReq.ContentLength = int64(len(req.body))
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if req.auth {
		if tok := c.sess.Access(); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("request failed", zap.String("method", req.method), zap.String("path", req.path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && req.auth && !req.retried {
		io.Copy(io.Discard, resp.Body)
		if err := c.refreshToken(ctx); err != nil {
			return err
		}
		req.retried = true
		return c.send(ctx, req, out)
	}

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp)
		c.log.Warn("request rejected",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// refreshToken performs the single token refresh. On failure both tokens are
// cleared and ErrAuthExpired is returned; the caller decides whether the
// "back to login" transition applies (the public view suppresses it).
func (c *Client) refreshToken(ctx context.Context) error {
	refresh := c.sess.Refresh()
	if refresh == "" {
		_ = c.sess.Clear()
		return ErrAuthExpired
	}

	body, _ := json.Marshal(map[string]string{"refresh": refresh})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/token/refresh/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("token refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		c.log.Info("token refresh rejected; clearing session", zap.Int("status", resp.StatusCode))
		_ = c.sess.Clear()
		return ErrAuthExpired
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode token refresh: %w", err)
	}
	return c.sess.SetTokens(out.Access, "")
}
