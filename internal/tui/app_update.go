package tui

import (
	"errors"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nota-cli/internal/api"
	"nota-cli/internal/blockseq"
	"nota-cli/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case loginDoneMsg:
		m.loginForm.busy = false
		if msg.err != nil {
			m.loginForm.err = errMessage(msg.err)
			return m, nil
		}
		m.view = viewPages
		m.loading = true
		return m, m.loadPagesCmd()

	case registerDoneMsg:
		m.registerForm.busy = false
		if msg.err != nil {
			m.registerForm.err = errMessage(msg.err)
			return m, nil
		}
		m.view = viewPages
		m.loading = true
		return m, m.loadPagesCmd()

	case pagesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		// Most recently edited pages first.
		sort.SliceStable(msg.pages, func(i, j int) bool {
			return msg.pages[i].UpdatedAt.After(msg.pages[j].UpdatedAt)
		})
		m.pages = msg.pages
		m.syncPagesList(true)
		return m, nil

	case pageMutatedMsg:
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		m.upsertPage(msg.page)
		if m.curPage.ID == msg.page.ID {
			m.curPage = msg.page
		}
		if msg.page.IsPublic && msg.page.ShareURL != "" {
			m.statusMsg = "shared at " + msg.page.ShareURL
		}
		return m, nil

	case pageDeletedMsg:
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		m.removePage(msg.id)
		// After deleting the open page, land on the first remaining one.
		m.syncPagesList(false)
		if m.view == viewPage && m.curPage.ID == msg.id {
			m.view = viewPages
			m.curPage = model.Page{}
			m.blocks = nil
		}
		return m, nil

	case blocksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.handleErr(msg.err)
			// A failed load keeps the list empty rather than stale.
			if m.curPage.ID == msg.pageID {
				m.blocks = nil
				m.syncBlocksList(false)
			}
			return m, nil
		}
		if m.curPage.ID != msg.pageID {
			return m, nil
		}
		blockseq.SortByOrder(msg.blocks)
		m.blocks = msg.blocks
		m.syncBlocksList(true)
		return m, nil

	case blockCreatedMsg:
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		if m.curPage.ID != msg.pageID {
			return m, nil
		}
		m.blocks = append(m.blocks, msg.block)
		m.syncBlocksList(true)
		m.blocksList.Select(len(m.blocks) - 1)
		return m, nil

	case blockSavedMsg:
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		// Drop confirmations for edits that have since been superseded.
		if msg.seq != m.editSeq[msg.blockID] {
			return m, nil
		}
		m.mergeBlock(msg.block)
		m.syncBlocksList(true)
		return m, nil

	case blockDeletedMsg:
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		m.blocks = blockseq.Remove(m.blocks, msg.blockID)
		delete(m.editSeq, msg.blockID)
		delete(m.uploads, msg.blockID)
		m.syncBlocksList(false)
		return m, nil

	case reorderDoneMsg:
		if msg.err != nil {
			// Roll back by reloading server truth.
			m.handleErr(msg.err)
			if m.curPage.ID == msg.pageID {
				return m, m.loadBlocksCmd(msg.pageID)
			}
		}
		return m, nil

	case uploadProgressMsg:
		var cmd tea.Cmd
		if stream, ok := m.uploadStreams[msg.blockID]; ok {
			cmd = waitForUpload(stream)
		}
		if _, ok := m.uploads[msg.blockID]; ok {
			m.uploads[msg.blockID] = msg.pct
			m.syncBlocksList(true)
		}
		return m, cmd

	case uploadDoneMsg:
		delete(m.uploads, msg.blockID)
		delete(m.uploadStreams, msg.blockID)
		if msg.err != nil {
			m.handleErr(msg.err)
			m.syncBlocksList(true)
			return m, nil
		}
		m.mergeBlock(msg.block)
		m.syncBlocksList(true)
		return m, nil

	case publicLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.handleErr(msg.err)
			return m, nil
		}
		blockseq.SortByOrder(msg.blocks)
		m.publicPage = msg.page
		m.publicBlocks = msg.blocks
		m.view = viewPublic
		return m, nil
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.updateModalKey(msg)
	}

	switch m.view {
	case viewLogin:
		return m.updateLoginKey(msg)
	case viewRegister:
		return m.updateRegisterKey(msg)
	case viewPages:
		return m.updatePagesKey(msg)
	case viewPage:
		return m.updatePageKey(msg)
	case viewPublic:
		switch msg.String() {
		case "q", "esc":
			if m.sess.Authenticated() {
				m.view = viewPages
				return m, m.loadPagesCmd()
			}
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.loginForm.cycleFocus(false)
		return m, nil
	case "shift+tab", "up":
		m.loginForm.cycleFocus(true)
		return m, nil
	case "ctrl+r":
		m.view = viewRegister
		m.registerForm.reset()
		return m, nil
	case "enter":
		username := m.loginForm.value(0)
		password := m.loginForm.inputs[1].Value()
		if username == "" || password == "" {
			m.loginForm.err = "Username and password are required"
			return m, nil
		}
		m.loginForm.err = ""
		m.loginForm.busy = true
		return m, m.loginCmd(username, password)
	}
	cmd := m.loginForm.update(msg)
	return m, cmd
}

func (m appModel) updateRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.registerForm.cycleFocus(false)
		return m, nil
	case "shift+tab", "up":
		m.registerForm.cycleFocus(true)
		return m, nil
	case "esc":
		m.view = viewLogin
		m.loginForm.reset()
		return m, nil
	case "enter":
		username := m.registerForm.value(0)
		email := m.registerForm.value(1)
		password := m.registerForm.inputs[2].Value()
		confirm := m.registerForm.inputs[3].Value()
		if username == "" || password == "" {
			m.registerForm.err = "Username and password are required"
			return m, nil
		}
		// Mismatch is caught locally; no request goes out.
		if password != confirm {
			m.registerForm.err = "Passwords do not match"
			return m, nil
		}
		m.registerForm.err = ""
		m.registerForm.busy = true
		return m, m.registerCmd(username, email, password, confirm)
	}
	cmd := m.registerForm.update(msg)
	return m, cmd
}

func (m appModel) updatePagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pagesList.SettingFilter() {
		var cmd tea.Cmd
		m.pagesList, cmd = m.pagesList.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if p, ok := m.selectedPage(); ok {
			m.curPage = p
			m.view = viewPage
			m.blocks = nil
			m.syncBlocksList(false)
			m.loading = true
			m.errMsg = ""
			return m, m.loadBlocksCmd(p.ID)
		}
	case "n":
		m.openInputModal(modalNewPage, "")
		return m, textinput.Blink
	case "r":
		if p, ok := m.selectedPage(); ok {
			m.openInputModal(modalRenamePage, p.Title)
			return m, textinput.Blink
		}
	case "d":
		if _, ok := m.selectedPage(); ok {
			m.modal = modalConfirmDeletePage
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}
	case "s":
		if p, ok := m.selectedPage(); ok {
			return m, m.toggleShareCmd(p.ID)
		}
	case "D":
		if p, ok := m.selectedPage(); ok {
			return m, m.duplicatePageCmd(p.ID)
		}
	case "i":
		if _, ok := m.selectedPage(); ok {
			m.modal = modalPageIcon
			m.typeIndex = 0
			return m, nil
		}
	case "b":
		if _, ok := m.selectedPage(); ok {
			m.modal = modalPageColor
			m.typeIndex = 0
			return m, nil
		}
	case "v":
		if p, ok := m.selectedPage(); ok && p.IsPublic && p.ShareToken != "" {
			m.loading = true
			return m, m.loadPublicCmd(p.ShareToken)
		}
		m.errMsg = "page is not shared"
		return m, nil
	case "R":
		m.loading = true
		return m, m.loadPagesCmd()
	}
	var cmd tea.Cmd
	m.pagesList, cmd = m.pagesList.Update(msg)
	return m, cmd
}

func (m appModel) updatePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.blocksList.SettingFilter() {
		var cmd tea.Cmd
		m.blocksList, cmd = m.blocksList.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewPages
		m.errMsg = ""
		return m, m.loadPagesCmd()
	case "n":
		m.modal = modalNewBlock
		m.typeIndex = 0
		return m, nil
	case "enter":
		if b, ok := m.selectedBlock(); ok && b.Type.Known() && b.Type != model.BlockDivider && !b.Type.Media() {
			m.targetBlock = b.ID
			m.openInputModal(modalEditBlock, b.Content)
			return m, textinput.Blink
		}
	case " ":
		// Checkbox toggle waits for the server like any other content edit.
		if b, ok := m.selectedBlock(); ok && b.Type == model.BlockCheckbox {
			checked := !b.Checked
			m.editSeq[b.ID]++
			return m, m.saveBlockCmd(b.ID, m.editSeq[b.ID], api.BlockPatch{Checked: &checked})
		}
	case "d":
		if b, ok := m.selectedBlock(); ok {
			m.targetBlock = b.ID
			m.modal = modalConfirmDeleteBlock
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}
	case "u":
		if b, ok := m.selectedBlock(); ok && b.Type.Media() {
			m.targetBlock = b.ID
			m.openInputModal(modalUpload, "")
			return m, textinput.Blink
		}
		m.errMsg = "select an image, video, audio or file block first"
		return m, nil
	case "J", "ctrl+down":
		idx := m.blocksList.Index()
		if cmd := m.applyMove(idx, idx+1); cmd != nil {
			return m, cmd
		}
	case "K", "ctrl+up":
		idx := m.blocksList.Index()
		if cmd := m.applyMove(idx, idx-1); cmd != nil {
			return m, cmd
		}
	case "R":
		m.loading = true
		return m, m.loadBlocksCmd(m.curPage.ID)
	}
	var cmd tea.Cmd
	m.blocksList, cmd = m.blocksList.Update(msg)
	return m, cmd
}

func (m appModel) updateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDeletePage, modalConfirmDeleteBlock:
		switch msg.String() {
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			confirmed := m.confirmFocus == confirmFocusConfirm
			kind := m.modal
			m.modal = modalNone
			if !confirmed {
				return m, nil
			}
			if kind == modalConfirmDeletePage {
				if p, ok := m.selectedPage(); ok {
					return m, m.deletePageCmd(p.ID)
				}
				return m, nil
			}
			return m, m.deleteBlockCmd(m.targetBlock)
		}
		return m, nil

	case modalPageIcon, modalPageColor:
		tokens := pickerTokens(m.modal)
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "up", "k":
			if m.typeIndex > 0 {
				m.typeIndex--
			}
			return m, nil
		case "down", "j":
			if m.typeIndex < len(tokens)-1 {
				m.typeIndex++
			}
			return m, nil
		case "enter":
			kind := m.modal
			m.modal = modalNone
			p, ok := m.selectedPage()
			if !ok {
				return m, nil
			}
			token := tokens[m.typeIndex]
			var patch api.PagePatch
			if kind == modalPageIcon {
				patch.Icon = &token
			} else {
				patch.BackgroundColor = &token
			}
			return m, m.patchPageCmd(p.ID, patch)
		}
		return m, nil

	case modalNewBlock:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "up", "k":
			if m.typeIndex > 0 {
				m.typeIndex--
			}
			return m, nil
		case "down", "j":
			if m.typeIndex < len(model.KnownBlockTypes)-1 {
				m.typeIndex++
			}
			return m, nil
		case "enter":
			m.modal = modalNone
			bt := model.KnownBlockTypes[m.typeIndex]
			// New blocks land at the end: order = current count.
			return m, m.createBlockCmd(m.curPage.ID, bt, blockseq.AppendOrder(m.blocks))
		}
		return m, nil

	case modalNewPage, modalRenamePage, modalEditBlock, modalUpload:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			kind := m.modal
			value := strings.TrimSpace(m.input.Value())
			m.modal = modalNone
			switch kind {
			case modalNewPage:
				return m, m.createPageCmd(value)
			case modalRenamePage:
				if p, ok := m.selectedPage(); ok {
					return m, m.renamePageCmd(p.ID, value)
				}
			case modalEditBlock:
				content := m.input.Value()
				m.editSeq[m.targetBlock]++
				return m, m.saveBlockCmd(m.targetBlock, m.editSeq[m.targetBlock], api.BlockPatch{Content: &content})
			case modalUpload:
				if value == "" {
					return m, nil
				}
				m.uploads[m.targetBlock] = 0
				m.syncBlocksList(true)
				cmd, stream := m.startUploadCmd(m.targetBlock, value)
				m.uploadStreams[m.targetBlock] = stream
				return m, cmd
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pickerTokens returns the closed token set behind a picker modal; the empty
// leading token clears the field.
func pickerTokens(kind modalKind) []string {
	if kind == modalPageIcon {
		return append([]string{""}, pageIconTokens...)
	}
	return append([]string{""}, pageBackgroundTokens...)
}

func (m *appModel) openInputModal(kind modalKind, initial string) {
	m.modal = kind
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) upsertPage(p model.Page) {
	for i := range m.pages {
		if m.pages[i].ID == p.ID {
			m.pages[i] = p
			m.syncPagesList(true)
			return
		}
	}
	m.pages = append(m.pages, p)
	m.syncPagesList(true)
	m.pagesList.Select(len(m.pages) - 1)
}

func (m *appModel) removePage(id int64) {
	out := m.pages[:0]
	for _, p := range m.pages {
		if p.ID != id {
			out = append(out, p)
		}
	}
	m.pages = out
}

func (m *appModel) mergeBlock(b model.Block) {
	for i := range m.blocks {
		if m.blocks[i].ID == b.ID {
			// Keep the local order; reordering is settled separately.
			b.Order = m.blocks[i].Order
			m.blocks[i] = b
			return
		}
	}
}

func errMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}
