package model

import "time"

// BlockType tags one content unit on a page. The set is closed on the server
// side, but the client keeps it string-typed so an unknown tag from a newer
// server round-trips instead of failing the page load.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockHeading1 BlockType = "heading1"
	BlockHeading2 BlockType = "heading2"
	BlockHeading3 BlockType = "heading3"
	BlockImage    BlockType = "image"
	BlockVideo    BlockType = "video"
	BlockAudio    BlockType = "audio"
	BlockFile     BlockType = "file"
	BlockQuote    BlockType = "quote"
	BlockList     BlockType = "list"
	BlockCheckbox BlockType = "checkbox"
	BlockDivider  BlockType = "divider"
)

// KnownBlockTypes lists every type the client can render, in menu order.
var KnownBlockTypes = []BlockType{
	BlockText,
	BlockHeading1,
	BlockHeading2,
	BlockHeading3,
	BlockCheckbox,
	BlockQuote,
	BlockList,
	BlockDivider,
	BlockImage,
	BlockVideo,
	BlockAudio,
	BlockFile,
}

// Known reports whether t is a type this client understands. Unknown types
// render as an empty slot rather than an error.
func (t BlockType) Known() bool {
	for _, k := range KnownBlockTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Media reports whether the block's payload is an attached file rather than
// its content string.
func (t BlockType) Media() bool {
	switch t {
	case BlockImage, BlockVideo, BlockAudio, BlockFile:
		return true
	}
	return false
}

type Page struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Icon            string    `json:"icon,omitempty"`
	BackgroundColor string    `json:"background_color,omitempty"`
	CoverImageURL   string    `json:"cover_image_url,omitempty"`
	Parent          *int64    `json:"parent,omitempty"`
	IsPublic        bool      `json:"is_public,omitempty"`
	ShareToken      string    `json:"share_token,omitempty"`
	ShareURL        string    `json:"share_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Blocks is a denormalized convenience field the server may embed in
	// public page payloads. The public view uses it as a fallback when the
	// dedicated blocks endpoint fails.
	Blocks []Block `json:"blocks,omitempty"`
}

// DisplayTitle is the title shown in lists and headers. Pages can carry an
// empty title.
func (p Page) DisplayTitle() string {
	if p.Title == "" {
		return "Untitled"
	}
	return p.Title
}

type Block struct {
	ID        int64     `json:"id"`
	Page      int64     `json:"page"`
	Type      BlockType `json:"block_type"`
	Content   string    `json:"content"`
	Checked   bool      `json:"checked,omitempty"`
	FileURL   string    `json:"file_url,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
	FileSize  int64     `json:"file_size,omitempty"`
	Order     int       `json:"order"`
	Parent    *int64    `json:"parent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Block     int64     `json:"block"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlockOrder is one entry of the batched reorder payload.
type BlockOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}
