package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"botsend/models"
	"botsend/utils"
)

var formLabels = []string{"Bot Token:", "Channel ID:", "Message:"}

// Form state handlers
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab", "up":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return m.submit()
	case "ctrl+o":
		return m.openFilePicker()
	case "ctrl+x":
		m.clearAttachment()
		return m, nil
	case "ctrl+l":
		m.clearOutputSummary()
		return m, nil
	case "enter":
		switch m.focus {
		case focusSelectFile:
			return m.openFilePicker()
		case focusSend:
			return m.submit()
		default:
			return m.setFocus(m.focus + 1)
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

// setFocus moves focus to position i, focusing or blurring the text inputs
func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	var cmd tea.Cmd
	for idx := range m.inputs {
		if idx == i {
			cmd = m.inputs[idx].Focus()
		} else {
			m.inputs[idx].Blur()
		}
	}
	return m, cmd
}

// request builds a SendRequest from the current form values
func (m Model) request() models.SendRequest {
	return models.NewSendRequest(
		m.inputs[focusToken].Value(),
		m.inputs[focusChannel].Value(),
		m.inputs[focusMessage].Value(),
		m.attachmentPath,
	)
}

// submit validates the form and starts a send. Nothing touches the network
// when validation fails.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req := m.request()
	if err := req.Validate(); err != nil {
		m.showWarning("Missing Info", err.Error())
		m.logger.Debug("send rejected by validation", zap.Error(err))
		return m, nil
	}

	m.inFlight++
	m.enableRightPane()
	m.addFormattedAction(fmt.Sprintf("Send #%d started", m.sent+m.failed+m.inFlight))
	m.addFormattedStatusIndented("Channel", req.ChannelID)
	if req.HasAttachment() {
		m.addFormattedStatusIndented("File", req.AttachmentName())
	}

	cmds := []tea.Cmd{sendCmd(m.ctx, m.sender, req)}
	if m.inFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) clearAttachment() {
	if m.attachmentPath == "" {
		return
	}
	m.attachmentPath = ""
	m.attachmentSize = 0
}

func (m Model) viewForm() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Discord Bot Messenger") + "\n")
	s.WriteString(subtitleStyle.Render("Send one message, with an optional file, as your bot") + "\n")

	for i, label := range formLabels {
		style := labelStyle
		if m.focus == i {
			style = focusedLabelStyle
		}
		line := style.Render(label) + " " + m.inputs[i].View()
		if i == focusChannel {
			if hint := m.channelHint(); hint != "" {
				line += "  " + hintStyle.Render(hint)
			}
		}
		s.WriteString(line + "\n\n")
	}

	s.WriteString(labelStyle.Render("File:") + " ")
	if m.attachmentPath == "" {
		s.WriteString(placeholderStyle.Render("no file selected"))
	} else {
		s.WriteString(highlightStyle.Render(utils.TruncateString(baseName(m.attachmentPath), 40)))
		s.WriteString(" " + helpStyle.Render("("+utils.FormatFileSize(m.attachmentSize)+")"))
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderButton("Select File", focusSelectFile))
	s.WriteString(m.renderButton("Send Message", focusSend))
	s.WriteString("\n\n")

	if m.inFlight > 0 {
		s.WriteString(m.spinner.View() + " " + warningStyle.Render(
			fmt.Sprintf("Sending... %s in flight", pluralize(m.inFlight, "message", "messages"))) + "\n\n")
	}

	s.WriteString(helpStyle.Render("Tab/↑/↓ to move, Enter to press, Ctrl+S to send, Ctrl+O to pick a file, Ctrl+X to clear it, Ctrl+L to clear the summary, Esc to quit"))

	return m.renderWithDynamicWidth(s.String())
}

func (m Model) renderButton(label string, pos int) string {
	if m.focus == pos {
		return focusedButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

// channelHint returns "#name" when the channel ID in the form was sent to
// before.
func (m Model) channelHint() string {
	id := strings.TrimSpace(m.inputs[focusChannel].Value())
	if id == "" || m.hints == nil {
		return ""
	}
	if name, ok := m.hints.Get(id); ok && name != "" {
		return "#" + name
	}
	return ""
}
