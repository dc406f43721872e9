package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrAuthExpired signals that the access token expired and the single refresh
// attempt failed; both tokens have been cleared.
var ErrAuthExpired = errors.New("session expired")

// APIError is a structured error response from the backend. The user-facing
// message picks the first available field error: password, then username,
// then the generic error, then detail.
type APIError struct {
	Status int

	Password []string `json:"password"`
	Username []string `json:"username"`
	Email    []string `json:"email"`
	Err      string   `json:"error"`
	Detail   string   `json:"detail"`
}

func (e *APIError) Error() string {
	return e.Message()
}

// Message extracts the human-readable message in field priority order.
func (e *APIError) Message() string {
	switch {
	case len(e.Password) > 0:
		return e.Password[0]
	case len(e.Username) > 0:
		return e.Username[0]
	case len(e.Email) > 0:
		return e.Email[0]
	case e.Err != "":
		return e.Err
	case e.Detail != "":
		return e.Detail
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	// Non-JSON error bodies (proxies, HTML error pages) fall back to the
	// status-only message.
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
