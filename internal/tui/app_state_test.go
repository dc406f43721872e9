package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nota-cli/internal/api"
	"nota-cli/internal/model"
	"nota-cli/internal/session"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, blocks []model.Block) appModel {
	t.Helper()
	t.Setenv("NOTA_CONFIG_DIR", t.TempDir())
	sess, err := session.Load()
	require.NoError(t, err)
	require.NoError(t, sess.SetTokens("acc", "ref"))

	m := newAppModel(api.New("http://backend/api", sess, nil), sess)
	m.width, m.height = 100, 40
	m.resizeLists()
	m.view = viewPage
	m.curPage = model.Page{ID: 1, Title: "Test"}
	m.blocks = blocks
	m.syncBlocksList(false)
	return m
}

func threeBlocks() []model.Block {
	return []model.Block{
		{ID: 10, Page: 1, Type: model.BlockText, Content: "first", Order: 0},
		{ID: 11, Page: 1, Type: model.BlockText, Content: "second", Order: 1},
		{ID: 12, Page: 1, Type: model.BlockCheckbox, Content: "task", Order: 2},
	}
}

func blockIDs(blocks []model.Block) []int64 {
	ids := make([]int64, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func TestMoveBlock_OptimisticWithDenseOrders(t *testing.T) {
	m := newTestModel(t, threeBlocks())
	m.blocksList.Select(0)

	next, cmd := m.Update(keyRune('J'))
	m = next.(appModel)

	require.NotNil(t, cmd, "a reorder request must be issued")
	assert.Equal(t, []int64{11, 10, 12}, blockIDs(m.blocks))
	for i, b := range m.blocks {
		assert.Equal(t, i, b.Order)
	}
	assert.Equal(t, 1, m.blocksList.Index(), "selection follows the moved block")
}

func TestMoveBlock_FailureReloadsServerTruth(t *testing.T) {
	m := newTestModel(t, threeBlocks())
	m.blocksList.Select(0)
	next, _ := m.Update(keyRune('J'))
	m = next.(appModel)

	// The server rejected the reorder; the model must ask for a reload.
	next, cmd := m.Update(reorderDoneMsg{pageID: 1, err: fmt.Errorf("boom")})
	m = next.(appModel)
	require.NotNil(t, cmd, "failed reorder must trigger a reload")

	// Fresh server state arrives; local order is fully replaced.
	serverTruth := threeBlocks()
	next, _ = m.Update(blocksLoadedMsg{pageID: 1, blocks: serverTruth})
	m = next.(appModel)
	assert.Equal(t, []int64{10, 11, 12}, blockIDs(m.blocks))
}

func TestMoveBlock_EdgesAreNoOps(t *testing.T) {
	m := newTestModel(t, threeBlocks())

	m.blocksList.Select(0)
	next, _ := m.Update(keyRune('K'))
	m = next.(appModel)
	assert.Equal(t, []int64{10, 11, 12}, blockIDs(m.blocks))

	m.blocksList.Select(2)
	next, _ = m.Update(keyRune('J'))
	m = next.(appModel)
	assert.Equal(t, []int64{10, 11, 12}, blockIDs(m.blocks))
}

func TestCreateBlock_AppendsOnlyAfterConfirmation(t *testing.T) {
	m := newTestModel(t, threeBlocks())

	next, _ := m.Update(keyRune('n'))
	m = next.(appModel)
	require.Equal(t, modalNewBlock, m.modal)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	require.NotNil(t, cmd)
	assert.Len(t, m.blocks, 3, "nothing is inserted before the server confirms")

	created := model.Block{ID: 13, Page: 1, Type: model.BlockText, Order: 3}
	next, _ = m.Update(blockCreatedMsg{pageID: 1, block: created})
	m = next.(appModel)
	require.Len(t, m.blocks, 4)
	assert.Equal(t, int64(13), m.blocks[3].ID)
	assert.Equal(t, 3, m.blocks[3].Order)
	assert.Equal(t, 3, m.blocksList.Index(), "selection jumps to the new block")
}

func TestEditBlock_StaleSaveResponseDropped(t *testing.T) {
	m := newTestModel(t, threeBlocks())

	// Two edits were sent in quick succession.
	m.editSeq[10] = 2

	stale := model.Block{ID: 10, Page: 1, Type: model.BlockText, Content: "old edit", Order: 0}
	next, _ := m.Update(blockSavedMsg{blockID: 10, seq: 1, block: stale})
	m = next.(appModel)
	assert.Equal(t, "first", m.blocks[0].Content, "superseded response is ignored")

	fresh := model.Block{ID: 10, Page: 1, Type: model.BlockText, Content: "new edit", Order: 0}
	next, _ = m.Update(blockSavedMsg{blockID: 10, seq: 2, block: fresh})
	m = next.(appModel)
	assert.Equal(t, "new edit", m.blocks[0].Content)
}

func TestCheckboxToggle_WaitsForServer(t *testing.T) {
	m := newTestModel(t, threeBlocks())
	m.blocksList.Select(2)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(appModel)
	require.NotNil(t, cmd)
	assert.False(t, m.blocks[2].Checked, "toggle is not applied optimistically")

	saved := m.blocks[2]
	saved.Checked = true
	next, _ = m.Update(blockSavedMsg{blockID: 12, seq: m.editSeq[12], block: saved})
	m = next.(appModel)
	assert.True(t, m.blocks[2].Checked)
}

func TestDeleteBlock_RenormalizesRemaining(t *testing.T) {
	m := newTestModel(t, threeBlocks())

	next, _ := m.Update(blockDeletedMsg{blockID: 11})
	m = next.(appModel)
	require.Equal(t, []int64{10, 12}, blockIDs(m.blocks))
	for i, b := range m.blocks {
		assert.Equal(t, i, b.Order)
	}
}

func TestDeleteOpenPage_ReturnsToListAndSelectsFirst(t *testing.T) {
	m := newTestModel(t, threeBlocks())
	m.pages = []model.Page{
		{ID: 1, Title: "Open"},
		{ID: 2, Title: "Other"},
		{ID: 3, Title: "Third"},
	}
	m.syncPagesList(false)

	next, _ := m.Update(pageDeletedMsg{id: 1})
	m = next.(appModel)
	assert.Equal(t, viewPages, m.view)
	require.Len(t, m.pages, 2)
	assert.Equal(t, 0, m.pagesList.Index())
	sel, ok := m.selectedPage()
	require.True(t, ok)
	assert.Equal(t, int64(2), sel.ID)
}

func TestUnknownBlockType_RendersEmptySlot(t *testing.T) {
	row := blockRowItem{block: model.Block{ID: 1, Type: "table", Content: "should not show"}}
	assert.Equal(t, "", row.Title())
	assert.Equal(t, "", renderPublicBlock(row.block, 60))
}

func TestRegisterMismatch_NeverIssuesRequest(t *testing.T) {
	m := newTestModel(t, nil)
	m.view = viewRegister
	m.registerForm.inputs[0].SetValue("bob")
	m.registerForm.inputs[1].SetValue("bob@example.com")
	m.registerForm.inputs[2].SetValue("one")
	m.registerForm.inputs[3].SetValue("two")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	assert.Nil(t, cmd, "mismatched confirmation must not reach the network")
	assert.Equal(t, "Passwords do not match", m.registerForm.err)
	assert.Equal(t, viewRegister, m.view)
}

func TestAuthExpired_RedirectsExceptOnPublicView(t *testing.T) {
	m := newTestModel(t, nil)

	m.view = viewPages
	m.handleErr(fmt.Errorf("wrapped: %w", api.ErrAuthExpired))
	assert.Equal(t, viewLogin, m.view)
	assert.Equal(t, "Session expired. Please log in again.", m.loginForm.err)

	m = newTestModel(t, nil)
	m.view = viewPublic
	m.handleErr(fmt.Errorf("wrapped: %w", api.ErrAuthExpired))
	assert.Equal(t, viewPublic, m.view, "public readers are never bounced to login")
}

func TestUploadProgress_TracksAndClears(t *testing.T) {
	blocks := threeBlocks()
	blocks = append(blocks, model.Block{ID: 14, Page: 1, Type: model.BlockImage, Order: 3})
	m := newTestModel(t, blocks)
	m.uploads[14] = 0
	m.uploadStreams[14] = &uploadStream{blockID: 14, ch: make(chan tea.Msg, 1)}
	m.syncBlocksList(false)

	next, cmd := m.Update(uploadProgressMsg{blockID: 14, pct: 42})
	m = next.(appModel)
	require.NotNil(t, cmd, "progress handler must keep listening for the next tick")
	assert.Equal(t, 42.0, m.uploads[14])

	done := model.Block{ID: 14, Page: 1, Type: model.BlockImage, FileURL: "/media/x.png", Order: 3}
	next, _ = m.Update(uploadDoneMsg{blockID: 14, block: done})
	m = next.(appModel)
	_, tracking := m.uploads[14]
	assert.False(t, tracking, "finished uploads leave the progress table")
	assert.Equal(t, "/media/x.png", m.blocks[3].FileURL)
}
