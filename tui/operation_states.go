package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botsend/dispatch"
)

// DialogKind selects the icon and colour of a dialog
type DialogKind int

const (
	DialogInfo DialogKind = iota
	DialogWarning
	DialogError
)

func (k DialogKind) String() string {
	switch k {
	case DialogInfo:
		return "info"
	case DialogWarning:
		return "warning"
	case DialogError:
		return "error"
	}
	return "unknown"
}

// Dialog is a modal message box. Only the first queued dialog is shown.
type Dialog struct {
	Kind  DialogKind
	Title string
	Text  string
}

func (m *Model) showInfo(title, text string) {
	m.dialogs = append(m.dialogs, Dialog{Kind: DialogInfo, Title: title, Text: text})
}

func (m *Model) showWarning(title, text string) {
	m.dialogs = append(m.dialogs, Dialog{Kind: DialogWarning, Title: title, Text: text})
}

func (m Model) hasDialog() bool { return len(m.dialogs) > 0 }

// dialogForResult turns a dispatch result into its dialog
func dialogForResult(res dispatch.Result) Dialog {
	switch res.Kind() {
	case dispatch.KindNone:
		return Dialog{Kind: DialogInfo, Title: res.Title(), Text: res.Text()}
	case dispatch.KindValidation:
		return Dialog{Kind: DialogWarning, Title: res.Title(), Text: res.Text()}
	}
	return Dialog{Kind: DialogError, Title: res.Title(), Text: res.Text()}
}

// updateDialog dismisses the visible dialog
func (m Model) updateDialog(key string) Model {
	switch key {
	case "enter", "esc", " ", "q":
		m.dialogs = m.dialogs[1:]
	}
	return m
}

func (m Model) viewDialog() string {
	d := m.dialogs[0]

	var icon string
	var color lipgloss.TerminalColor
	var titleStyled string
	switch d.Kind {
	case DialogInfo:
		icon, color = "✅", successColor
		titleStyled = successStyle.Render(d.Title)
	case DialogWarning:
		icon, color = "⚠", warningColor
		titleStyled = warningStyle.Render(d.Title)
	default:
		icon, color = "✖", errorColor
		titleStyled = errorStyle.Render(d.Title)
	}

	width := 50
	if m.width > 0 && m.width-10 < width {
		width = m.width - 10
	}
	if width < 20 {
		width = 20
	}

	var s strings.Builder
	s.WriteString(icon + " " + titleStyled + "\n\n")
	for _, line := range m.wrapText(d.Text, width-6) {
		s.WriteString(line + "\n")
	}
	s.WriteString("\n" + helpStyle.Render("Enter to dismiss"))
	if extra := len(m.dialogs) - 1; extra > 0 {
		s.WriteString("\n" + helpStyle.Render(pluralize(extra, "more message", "more messages")))
	}

	box := dialogStyle.BorderForeground(color).Width(width).Render(s.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
