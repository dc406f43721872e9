package api

import (
	"context"
	"fmt"
	"net/http"

	"nota-cli/internal/model"
)

// ListComments returns the comments attached to one block.
func (c *Client) ListComments(ctx context.Context, blockID int64) ([]model.Comment, error) {
	var out []model.Comment
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/comments/?block=%d", blockID), nil, &out, true)
	return out, err
}

// CreateComment attaches a comment to a block.
func (c *Client) CreateComment(ctx context.Context, blockID int64, content string) (model.Comment, error) {
	var out model.Comment
	err := c.doJSON(ctx, http.MethodPost, "/comments/", map[string]any{
		"block":   blockID,
		"content": content,
	}, &out, true)
	return out, err
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/", id), nil, nil, true)
}
