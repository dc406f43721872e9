package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_MessagePriority(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{
			name: "password error wins over everything",
			err: APIError{
				Status:   400,
				Password: []string{"This password is too common."},
				Username: []string{"Already taken."},
				Err:      "Registration failed",
			},
			want: "This password is too common.",
		},
		{
			name: "username error wins over generic",
			err: APIError{
				Status:   400,
				Username: []string{"Already taken."},
				Err:      "Registration failed",
			},
			want: "Already taken.",
		},
		{
			name: "generic error field",
			err:  APIError{Status: 401, Err: "Invalid credentials"},
			want: "Invalid credentials",
		},
		{
			name: "detail as last structured field",
			err:  APIError{Status: 401, Detail: "token expired"},
			want: "token expired",
		},
		{
			name: "status-only fallback",
			err:  APIError{Status: 502},
			want: "request failed (status 502)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: 404}))
	assert.False(t, IsNotFound(&APIError{Status: 500}))
	assert.False(t, IsNotFound(assert.AnError))
}
