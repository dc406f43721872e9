package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// authForm backs both the login and register screens. Field order is fixed;
// register adds email and a confirmation field.
type authForm struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
	busy   bool
}

func newAuthForm(title string, fields ...string) authForm {
	f := authForm{title: title, labels: fields}
	for i, name := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 150
		if strings.Contains(strings.ToLower(name), "password") {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		f.inputs = append(f.inputs, in)
	}
	return f
}

func newLoginForm() authForm {
	return newAuthForm("Log in", "Username", "Password")
}

func newRegisterForm() authForm {
	return newAuthForm("Create account", "Username", "Email", "Password", "Confirm password")
}

func (f *authForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *authForm) cycleFocus(back bool) {
	f.inputs[f.focus].Blur()
	if back {
		f.focus--
		if f.focus < 0 {
			f.focus = len(f.inputs) - 1
		}
	} else {
		f.focus = (f.focus + 1) % len(f.inputs)
	}
	f.inputs[f.focus].Focus()
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
	f.err = ""
	f.busy = false
}

func (f *authForm) view(width int, footer string) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	labelStyle := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(renderInputLine(min(width-4, 48), in.View()))
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(styleError().Render(f.err))
		b.WriteString("\n")
	}
	if f.busy {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("working..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(footer))
	return b.String()
}
