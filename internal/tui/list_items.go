package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"nota-cli/internal/model"
)

type pageItem struct {
	page model.Page
}

func (i pageItem) FilterValue() string { return i.page.DisplayTitle() }

func (i pageItem) Title() string {
	t := i.page.DisplayTitle()
	if icon := pageIcon(i.page.Icon); icon != "" {
		t = icon + " " + t
	}
	if i.page.IsPublic {
		t = t + " " + glyphShared()
	}
	return t
}

func (i pageItem) Description() string {
	return formatRelative(i.page.UpdatedAt, time.Now())
}

type blockRowItem struct {
	block     model.Block
	uploading bool
	pct       float64
}

func (i blockRowItem) FilterValue() string { return i.block.Content }

// Title renders the block's single-line list representation. Unknown block
// types render as an empty slot so the row count always matches the page.
func (i blockRowItem) Title() string {
	b := i.block
	switch b.Type {
	case model.BlockHeading1:
		return "# " + b.Content
	case model.BlockHeading2:
		return "## " + b.Content
	case model.BlockHeading3:
		return "### " + b.Content
	case model.BlockQuote:
		return glyphQuoteBar() + " " + b.Content
	case model.BlockList:
		return glyphBullet() + " " + b.Content
	case model.BlockCheckbox:
		return glyphCheckbox(b.Checked) + " " + b.Content
	case model.BlockDivider:
		return strings.Repeat(glyphDivider(), 20)
	case model.BlockImage, model.BlockVideo, model.BlockAudio, model.BlockFile:
		if b.FileURL == "" {
			return glyphAttachment() + " (" + string(b.Type) + ": no file yet)"
		}
		return glyphAttachment() + " " + b.FileURL
	case model.BlockText:
		return b.Content
	default:
		return ""
	}
}

func (i blockRowItem) Description() string {
	if i.uploading {
		return uploadLabel(i.pct)
	}
	return string(i.block.Type)
}

func uploadLabel(pct float64) string {
	return fmt.Sprintf("uploading %d%%", int(pct))
}

func newList(title, help string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("row", "rows")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
