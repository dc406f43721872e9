package api

import (
	"context"
	"fmt"
	"net/http"

	"nota-cli/internal/model"
)

// PublicPage fetches the read-only projection of a shared page by its share
// token. No token is attached; the endpoint is unauthenticated.
func (c *Client) PublicPage(ctx context.Context, shareToken string) (model.Page, error) {
	var out model.Page
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/public/share/%s/", shareToken), nil, &out, false)
	return out, err
}

// PublicBlocks fetches the shared page's block list by share token.
func (c *Client) PublicBlocks(ctx context.Context, shareToken string) ([]model.Block, error) {
	var out []model.Block
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/public/share/%s/blocks/", shareToken), nil, &out, false)
	return out, err
}

// ResolvePublicBlocks implements the fallback-before-failure order for the
// public view: try the dedicated blocks endpoint first, fall back to the
// block array embedded in the page payload, and only then fail.
func (c *Client) ResolvePublicBlocks(ctx context.Context, page model.Page) ([]model.Block, error) {
	blocks, err := c.PublicBlocks(ctx, page.ShareToken)
	if err == nil {
		return blocks, nil
	}
	if len(page.Blocks) > 0 {
		return page.Blocks, nil
	}
	return nil, err
}
