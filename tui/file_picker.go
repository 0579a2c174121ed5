package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"botsend/utils"
)

// openFilePicker switches to a new picker, starting in the directory of the
// current attachment when there is one.
func (m Model) openFilePicker() (tea.Model, tea.Cmd) {
	dir := m.startDir
	if m.attachmentPath != "" {
		dir = filepath.Dir(m.attachmentPath)
	}
	m.filePicker = newFilePicker(m.pickerHeight)
	m.filePicker.CurrentDirectory = dir
	m.state = StateFilePicker
	return m, m.filePicker.Init()
}

// File picker state handlers
func (m Model) updateFilePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.cancelFilePicker(), nil
		}
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if selected, path := m.filePicker.DidSelectFile(msg); selected {
		return m.applySelectedFile(path), cmd
	}

	return m, cmd
}

// cancelFilePicker returns to the form. The previous selection is kept.
func (m Model) cancelFilePicker() Model {
	m.state = StateForm
	m.logger.Debug("file selection cancelled", zap.String("kept", m.attachmentPath))
	return m
}

// applySelectedFile stores path as the attachment when it can be uploaded,
// otherwise keeps the previous selection and warns.
func (m Model) applySelectedFile(path string) Model {
	m.state = StateForm

	size, err := utils.ValidateAttachment(path)
	if err != nil {
		m.showWarning("Invalid File", err.Error())
		return m
	}

	m.attachmentPath = path
	m.attachmentSize = size
	m.showInfo("File Selected", baseName(path))
	m.logger.Debug("file selected", zap.String("path", path), zap.Int64("size", size))
	return m
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Select File") + "\n")
	s.WriteString(helpStyle.Render(m.filePicker.CurrentDirectory) + "\n\n")
	s.WriteString(m.filePicker.View() + "\n\n")

	if m.attachmentPath != "" {
		s.WriteString("Current file: " + highlightStyle.Render(baseName(m.attachmentPath)) + "\n\n")
	}

	s.WriteString(helpStyle.Render("↑/↓ to move, →/Enter to open, ←/Backspace to go up, Enter to select, Esc to cancel"))

	return m.renderWithDynamicWidth(s.String())
}

func baseName(path string) string {
	return filepath.Base(path)
}
