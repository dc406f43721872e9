package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nota-cli/internal/model"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewLogin:
		body = m.loginForm.view(m.width, "enter: log in   ctrl+r: create account   ctrl+c: quit")
	case viewRegister:
		body = m.registerForm.view(m.width, "enter: create account   esc: back to login   ctrl+c: quit")
	case viewPages:
		body = m.viewPages()
	case viewPage:
		body = m.viewPage()
	case viewPublic:
		body = m.viewPublic()
	}

	if m.modal != modalNone {
		body = body + "\n\n" + m.viewModal()
	}
	return body
}

func (m appModel) header(title string, bg string) string {
	st := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if c, ok := pageBackground(bg); ok {
		st = st.Background(c)
	} else {
		st = st.Foreground(colorAccent)
	}
	return st.Render(title)
}

func (m appModel) footer(help string) string {
	var parts []string
	if m.statusMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorDone).Render(m.statusMsg))
	}
	if m.errMsg != "" {
		parts = append(parts, styleError().Render(m.errMsg))
	}
	if m.loading {
		parts = append(parts, styleMuted().Render("loading..."))
	}
	parts = append(parts, styleMuted().Render(help))
	return strings.Join(parts, "\n")
}

func (m appModel) viewPages() string {
	head := m.header("Pages", "")
	if len(m.pages) == 0 && !m.loading {
		empty := styleMuted().Render("No pages yet. Press n to create one.")
		return head + "\n\n" + empty + "\n\n" + m.footer(pagesHelp)
	}
	return head + "\n" + m.pagesList.View() + "\n" + m.footer(pagesHelp)
}

const pagesHelp = "enter: open   n: new   r: rename   i: icon   b: color   d: delete   D: duplicate   s: share   v: preview shared   R: reload   q: quit"

const pageHelp = "enter: edit   space: check   n: new block   J/K: move   d: delete   u: upload   esc: back   q: quit"

func (m appModel) viewPage() string {
	title := m.curPage.DisplayTitle()
	if icon := pageIcon(m.curPage.Icon); icon != "" {
		title = icon + " " + title
	}
	head := m.header(title, m.curPage.BackgroundColor)
	bar := m.uploadBarView()
	if len(m.blocks) == 0 && !m.loading {
		empty := styleMuted().Render("Empty page. Press n to add a block.")
		return head + "\n\n" + empty + "\n\n" + bar + m.footer(pageHelp)
	}
	return head + "\n" + m.blocksList.View() + "\n" + bar + m.footer(pageHelp)
}

// uploadBarView renders one progress bar for the furthest-behind upload.
func (m appModel) uploadBarView() string {
	if len(m.uploads) == 0 {
		return ""
	}
	lowest := 100.0
	for _, pct := range m.uploads {
		if pct < lowest {
			lowest = pct
		}
	}
	return m.uploadBar.ViewAs(lowest/100) + " " + styleMuted().Render(uploadLabel(lowest)) + "\n"
}

// viewPublic renders the shared page as a read-only document.
func (m appModel) viewPublic() string {
	title := m.publicPage.DisplayTitle()
	if icon := pageIcon(m.publicPage.Icon); icon != "" {
		title = icon + " " + title
	}
	head := m.header(title, m.publicPage.BackgroundColor)

	width := m.width - 2
	if width < 20 {
		width = 60
	}
	var b strings.Builder
	for _, bl := range m.publicBlocks {
		b.WriteString(renderPublicBlock(bl, width))
		b.WriteString("\n")
	}
	return head + "\n\n" + b.String() + "\n" + m.footer("esc: back   ctrl+c: quit")
}

func renderPublicBlock(b model.Block, width int) string {
	switch b.Type {
	case model.BlockText:
		return renderMarkdown(b.Content, width)
	case model.BlockHeading1:
		return lipgloss.NewStyle().Bold(true).Render(b.Content)
	case model.BlockHeading2, model.BlockHeading3:
		return lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg).Render(b.Content)
	case model.BlockQuote:
		return glyphQuoteBar() + " " + b.Content
	case model.BlockList:
		return glyphBullet() + " " + b.Content
	case model.BlockCheckbox:
		line := glyphCheckbox(b.Checked) + " " + b.Content
		if b.Checked {
			return lipgloss.NewStyle().Foreground(colorDone).Render(line)
		}
		return line
	case model.BlockDivider:
		return styleMuted().Render(strings.Repeat(glyphDivider(), min(width, 40)))
	case model.BlockImage, model.BlockVideo, model.BlockAudio, model.BlockFile:
		if b.FileURL == "" {
			return ""
		}
		return glyphAttachment() + " " + b.FileURL
	default:
		// Unknown block types keep their slot but render nothing.
		return ""
	}
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalNewPage:
		return renderModalBox(m.width, "New page", renderInputLine(modalBodyWidth(m.width), m.input.View()))
	case modalRenamePage:
		return renderModalBox(m.width, "Rename page", renderInputLine(modalBodyWidth(m.width), m.input.View()))
	case modalEditBlock:
		return renderModalBox(m.width, "Edit block", renderInputLine(modalBodyWidth(m.width), m.input.View()))
	case modalUpload:
		return renderModalBox(m.width, "Attach file (path)", renderInputLine(modalBodyWidth(m.width), m.input.View()))
	case modalPageIcon, modalPageColor:
		tokens := pickerTokens(m.modal)
		title := "Page icon"
		if m.modal == modalPageColor {
			title = "Page color"
		}
		var b strings.Builder
		for i, token := range tokens {
			label := token
			if token == "" {
				label = "(none)"
			} else if m.modal == modalPageIcon {
				label = pageIcon(token) + " " + token
			} else if c, ok := pageBackground(token); ok {
				label = lipgloss.NewStyle().Background(c).Render("  ") + " " + token
			}
			line := "  " + label
			if i == m.typeIndex {
				line = lipgloss.NewStyle().
					Foreground(colorSelectedFg).
					Background(colorSelectedBg).
					Render("> " + label)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("enter: apply   esc: cancel"))
		return renderModalBox(m.width, title, b.String())
	case modalNewBlock:
		var b strings.Builder
		for i, bt := range model.KnownBlockTypes {
			line := "  " + string(bt)
			if i == m.typeIndex {
				line = lipgloss.NewStyle().
					Foreground(colorSelectedFg).
					Background(colorSelectedBg).
					Render("> " + string(bt))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("enter: add   esc: cancel"))
		return renderModalBox(m.width, "New block", b.String())
	case modalConfirmDeletePage:
		name := ""
		if p, ok := m.selectedPage(); ok {
			name = p.DisplayTitle()
		}
		return renderConfirmModal(m.width, "Delete page",
			"Delete \""+name+"\" and all of its blocks?", "Delete", "Cancel", m.confirmFocus)
	case modalConfirmDeleteBlock:
		return renderConfirmModal(m.width, "Delete block",
			"Delete the selected block?", "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}
