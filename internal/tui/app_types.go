package tui

import (
	"nota-cli/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewPages
	viewPage
	viewPublic
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewPage
	modalRenamePage
	modalConfirmDeletePage
	modalPageIcon
	modalPageColor
	modalNewBlock
	modalEditBlock
	modalConfirmDeleteBlock
	modalUpload
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// Messages delivered back to the update loop by async commands. Every network
// call finishes as exactly one of these; the loop stays single-threaded.

type loginDoneMsg struct {
	user model.User
	err  error
}

type registerDoneMsg struct {
	user model.User
	err  error
}

type pagesLoadedMsg struct {
	pages []model.Page
	err   error
}

type pageMutatedMsg struct {
	page model.Page
	err  error
}

type pageDeletedMsg struct {
	id  int64
	err error
}

type blocksLoadedMsg struct {
	pageID int64
	blocks []model.Block
	err    error
}

type blockCreatedMsg struct {
	pageID int64
	block  model.Block
	err    error
}

// blockSavedMsg carries the edit sequence number the save was issued under.
// Responses for superseded edits are dropped on arrival.
type blockSavedMsg struct {
	blockID int64
	seq     int
	block   model.Block
	err     error
}

type blockDeletedMsg struct {
	blockID int64
	err     error
}

type reorderDoneMsg struct {
	pageID int64
	err    error
}

type uploadProgressMsg struct {
	blockID int64
	pct     float64
}

type uploadDoneMsg struct {
	blockID int64
	block   model.Block
	err     error
}

type publicLoadedMsg struct {
	page   model.Page
	blocks []model.Block
	err    error
}
