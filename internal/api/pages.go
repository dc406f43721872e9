package api

import (
	"context"
	"fmt"
	"net/http"

	"nota-cli/internal/model"
)

// PagePatch is a partial page update; nil fields are left untouched.
type PagePatch struct {
	Title           *string `json:"title,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	Parent          *int64  `json:"parent,omitempty"`
}

// ListPages returns every page owned by the session.
func (c *Client) ListPages(ctx context.Context) ([]model.Page, error) {
	var out []model.Page
	err := c.doJSON(ctx, http.MethodGet, "/pages/", nil, &out, true)
	return out, err
}

// GetPage fetches one page.
func (c *Client) GetPage(ctx context.Context, id int64) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/pages/%d/", id), nil, &out, true)
	return out, err
}

// CreatePage creates a page; the server fills the default title when empty.
func (c *Client) CreatePage(ctx context.Context, title string) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodPost, "/pages/", map[string]string{"title": title}, &out, true)
	return out, err
}

// UpdatePage applies a field-level patch and returns the server's page.
func (c *Client) UpdatePage(ctx context.Context, id int64, patch PagePatch) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/pages/%d/", id), patch, &out, true)
	return out, err
}

// DeletePage removes a page; cascading block deletion is the server's job.
func (c *Client) DeletePage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/pages/%d/", id), nil, nil, true)
}

// DuplicatePage copies a page with all of its blocks and returns the copy.
func (c *Client) DuplicatePage(ctx context.Context, id int64) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/pages/%d/duplicate/", id), nil, &out, true)
	return out, err
}

// ToggleShare flips the page's public-sharing flag. A page can be public
// without a share token: that is the "sharing enabled, link not yet
// generated" state and requires a separate GenerateShareLink call.
func (c *Client) ToggleShare(ctx context.Context, id int64) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/pages/%d/toggle_share/", id), nil, &out, true)
	return out, err
}

// GenerateShareLink mints the share token and returns the page carrying the
// token and its fully qualified URL.
func (c *Client) GenerateShareLink(ctx context.Context, id int64) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/pages/%d/generate_share_link/", id), nil, &out, true)
	return out, err
}
