package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"nota-cli/internal/model"
)

// BlockPatch is a partial block update; nil fields are left untouched.
type BlockPatch struct {
	Content *string `json:"content,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
}

// ListBlocks returns the page's blocks in server order.
func (c *Client) ListBlocks(ctx context.Context, pageID int64) ([]model.Block, error) {
	var out []model.Block
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/blocks/?page=%d", pageID), nil, &out, true)
	return out, err
}

// CreateBlock appends an empty block of the given type. The caller passes the
// current sibling count as order; the server is authoritative for id and
// timestamps.
func (c *Client) CreateBlock(ctx context.Context, pageID int64, blockType model.BlockType, order int) (model.Block, error) {
	var out model.Block
	err := c.doJSON(ctx, http.MethodPost, "/blocks/", map[string]any{
		"page":       pageID,
		"block_type": blockType,
		"content":    "",
		"order":      order,
	}, &out, true)
	return out, err
}

// UpdateBlock applies a content/flag patch to one block.
func (c *Client) UpdateBlock(ctx context.Context, id int64, patch BlockPatch) (model.Block, error) {
	var out model.Block
	err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/blocks/%d/", id), patch, &out, true)
	return out, err
}

// DeleteBlock removes one block.
func (c *Client) DeleteBlock(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/blocks/%d/", id), nil, nil, true)
}

// ReorderBlocks persists the full renormalized {id, order} set for a page's
// siblings in one batched call.
func (c *Client) ReorderBlocks(ctx context.Context, orders []model.BlockOrder) error {
	return c.doJSON(ctx, http.MethodPost, "/blocks/reorder/", map[string]any{"blocks": orders}, nil, true)
}

// UploadFile attaches a file to a block via a single multipart request and
// returns the server's block representation carrying the file reference.
// progress, when non-nil, receives fractional completion in 0..100.
func (c *Client) UploadFile(ctx context.Context, blockID int64, filename string, r io.Reader, progress func(pct float64)) (model.Block, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return model.Block{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.Block{}, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.Block{}, err
	}

	var out model.Block
	err = c.send(ctx, request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/blocks/%d/upload_file/", blockID),
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
		auth:        true,
		progress:    progress,
	}, &out)
	if err != nil {
		return model.Block{}, err
	}
	return out, nil
}

// progressReader reports fractional read progress of a known-length body.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    func(pct float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		p.fn(pct)
	}
	return n, err
}
