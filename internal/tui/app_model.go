package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nota-cli/internal/api"
	"nota-cli/internal/blockseq"
	"nota-cli/internal/model"
	"nota-cli/internal/session"
)

type appModel struct {
	client *api.Client
	sess   *session.Session

	width  int
	height int

	view  view
	modal modalKind

	loginForm    authForm
	registerForm authForm

	pagesList list.Model
	pages     []model.Page

	curPage    model.Page
	blocks     []model.Block
	blocksList list.Model

	// Modal state. input backs text modals; typeIndex drives the new-block
	// type picker; targetBlock is the block a modal is acting on.
	input        textinput.Model
	confirmFocus confirmModalFocus
	typeIndex    int
	targetBlock  int64

	// Per-block edit sequence numbers. A save response is applied only when
	// its sequence still matches; superseded responses are dropped.
	editSeq map[int64]int

	uploads       map[int64]float64
	uploadStreams map[int64]*uploadStream
	uploadBar     progress.Model

	publicPage   model.Page
	publicBlocks []model.Block

	statusMsg string
	errMsg    string
	loading   bool
}

func newAppModel(c *api.Client, sess *session.Session) appModel {
	m := appModel{
		client:  c,
		sess:    sess,
		editSeq:       map[int64]int{},
		uploads:       map[int64]float64{},
		uploadStreams: map[int64]*uploadStream{},
	}
	m.loginForm = newLoginForm()
	m.registerForm = newRegisterForm()
	m.pagesList = newList("Pages", "Select a page", nil)
	m.blocksList = newList("Blocks", "Navigate blocks", nil)
	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 500
	m.uploadBar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.uploadBar.Width = 30

	if sess.Authenticated() {
		m.view = viewPages
		m.loading = true
	} else {
		m.view = viewLogin
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewPages {
		return m.loadPagesCmd()
	}
	return textinput.Blink
}

func (m *appModel) resizeLists() {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.pagesList.SetSize(m.width, h)
	m.blocksList.SetSize(m.width, h)
}

func (m *appModel) syncPagesList(keepSelection bool) {
	idx := m.pagesList.Index()
	items := make([]list.Item, 0, len(m.pages))
	for _, p := range m.pages {
		items = append(items, pageItem{page: p})
	}
	m.pagesList.SetItems(items)
	if keepSelection && idx < len(items) {
		m.pagesList.Select(idx)
	} else if len(items) > 0 {
		m.pagesList.Select(0)
	}
}

func (m *appModel) syncBlocksList(keepSelection bool) {
	idx := m.blocksList.Index()
	items := make([]list.Item, 0, len(m.blocks))
	for _, b := range m.blocks {
		pct, uploading := m.uploads[b.ID]
		items = append(items, blockRowItem{block: b, uploading: uploading, pct: pct})
	}
	m.blocksList.SetItems(items)
	if keepSelection && idx < len(items) {
		m.blocksList.Select(idx)
	} else if len(items) > 0 {
		m.blocksList.Select(0)
	}
}

func (m *appModel) selectedBlock() (model.Block, bool) {
	if it, ok := m.blocksList.SelectedItem().(blockRowItem); ok {
		return it.block, true
	}
	return model.Block{}, false
}

func (m *appModel) selectedPage() (model.Page, bool) {
	if it, ok := m.pagesList.SelectedItem().(pageItem); ok {
		return it.page, true
	}
	return model.Page{}, false
}

// handleErr routes request failures. Expired sessions send the user back to
// the login screen, except on the public view, which needs no account.
func (m *appModel) handleErr(err error) {
	if err == nil {
		return
	}
	if isAuthExpired(err) {
		if m.view == viewPublic {
			m.errMsg = "session expired (read-only view still available)"
			return
		}
		m.view = viewLogin
		m.loginForm.reset()
		m.loginForm.err = "Session expired. Please log in again."
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		m.errMsg = apiErr.Message()
		return
	}
	m.errMsg = err.Error()
}

// applyMove performs the optimistic half of a drag: splice locally, push the
// dense order set, and let reorderDoneMsg decide whether a reload is needed.
func (m *appModel) applyMove(from, to int) tea.Cmd {
	if from == to || from < 0 || from >= len(m.blocks) || to < 0 || to >= len(m.blocks) {
		return nil
	}
	m.blocks = blockseq.Move(m.blocks, from, to)
	m.syncBlocksList(false)
	m.blocksList.Select(to)
	return m.reorderCmd(m.curPage.ID, blockseq.OrderPayload(m.blocks))
}
