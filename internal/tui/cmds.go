package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nota-cli/internal/api"
	"nota-cli/internal/model"
)

const requestTimeout = 30 * time.Second

func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m appModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		user, err := m.client.Login(ctx, username, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m appModel) registerCmd(username, email, password, password2 string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		user, err := m.client.Register(ctx, username, email, password, password2)
		return registerDoneMsg{user: user, err: err}
	}
}

func (m appModel) loadPagesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		pages, err := m.client.ListPages(ctx)
		return pagesLoadedMsg{pages: pages, err: err}
	}
}

func (m appModel) loadBlocksCmd(pageID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		blocks, err := m.client.ListBlocks(ctx, pageID)
		return blocksLoadedMsg{pageID: pageID, blocks: blocks, err: err}
	}
}

func (m appModel) createPageCmd(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		page, err := m.client.CreatePage(ctx, title)
		return pageMutatedMsg{page: page, err: err}
	}
}

func (m appModel) renamePageCmd(id int64, title string) tea.Cmd {
	return m.patchPageCmd(id, api.PagePatch{Title: &title})
}

func (m appModel) patchPageCmd(id int64, patch api.PagePatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		page, err := m.client.UpdatePage(ctx, id, patch)
		return pageMutatedMsg{page: page, err: err}
	}
}

func (m appModel) duplicatePageCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		page, err := m.client.DuplicatePage(ctx, id)
		return pageMutatedMsg{page: page, err: err}
	}
}

func (m appModel) deletePageCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := m.client.DeletePage(ctx, id)
		return pageDeletedMsg{id: id, err: err}
	}
}

func (m appModel) toggleShareCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		page, err := m.client.ToggleShare(ctx, id)
		if err == nil && page.IsPublic && page.ShareToken == "" {
			// Sharing enabled but no link minted yet.
			page, err = m.client.GenerateShareLink(ctx, id)
		}
		return pageMutatedMsg{page: page, err: err}
	}
}

func (m appModel) createBlockCmd(pageID int64, bt model.BlockType, order int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		block, err := m.client.CreateBlock(ctx, pageID, bt, order)
		return blockCreatedMsg{pageID: pageID, block: block, err: err}
	}
}

func (m appModel) saveBlockCmd(blockID int64, seq int, patch api.BlockPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		block, err := m.client.UpdateBlock(ctx, blockID, patch)
		return blockSavedMsg{blockID: blockID, seq: seq, block: block, err: err}
	}
}

func (m appModel) deleteBlockCmd(blockID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := m.client.DeleteBlock(ctx, blockID)
		return blockDeletedMsg{blockID: blockID, err: err}
	}
}

func (m appModel) reorderCmd(pageID int64, orders []model.BlockOrder) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := m.client.ReorderBlocks(ctx, orders)
		return reorderDoneMsg{pageID: pageID, err: err}
	}
}

func (m appModel) loadPublicCmd(token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		page, err := m.client.PublicPage(ctx, token)
		if err != nil {
			return publicLoadedMsg{err: err}
		}
		blocks, err := m.client.ResolvePublicBlocks(ctx, page)
		return publicLoadedMsg{page: page, blocks: blocks, err: err}
	}
}

// uploadStream carries upload progress from the worker goroutine back into
// the update loop one message at a time.
type uploadStream struct {
	blockID int64
	ch      chan tea.Msg
}

func (m appModel) startUploadCmd(blockID int64, path string) (tea.Cmd, *uploadStream) {
	stream := &uploadStream{blockID: blockID, ch: make(chan tea.Msg, 16)}
	start := func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			stream.ch <- uploadDoneMsg{blockID: blockID, err: err}
			close(stream.ch)
			return nil
		}
		go func() {
			defer f.Close()
			defer close(stream.ch)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			block, err := m.client.UploadFile(ctx, blockID, filepath.Base(path), f, func(pct float64) {
				select {
				case stream.ch <- uploadProgressMsg{blockID: blockID, pct: pct}:
				default:
					// Drop intermediate ticks rather than stall the upload.
				}
			})
			stream.ch <- uploadDoneMsg{blockID: blockID, block: block, err: err}
		}()
		return nil
	}
	return tea.Batch(start, waitForUpload(stream)), stream
}

func waitForUpload(stream *uploadStream) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-stream.ch
		if !ok {
			return nil
		}
		return msg
	}
}

func isAuthExpired(err error) bool {
	return errors.Is(err, api.ErrAuthExpired)
}
