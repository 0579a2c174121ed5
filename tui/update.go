package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"botsend/dispatch"
	"botsend/utils"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case tea.MouseMsg:
		return m.handleMouseMessage(msg)
	case SendResultMsg:
		return m.handleSendResult(msg.Result), nil
	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateFilePicker {
		return m.updateFilePicker(msg)
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layoutPanes()

	height := m.height - 14
	if height < 5 {
		height = 5
	}
	m.pickerHeight = height
	m.filePicker.SetHeight(height)

	return m, nil
}

func (m *Model) layoutPanes() {
	if m.showRightPane {
		m.leftPaneWidth = int(float64(m.width) * 0.6)    // 60% for left pane
		m.rightPaneWidth = m.width - m.leftPaneWidth - 1 // 40% for right pane (minus 1 for separator)
	} else {
		m.leftPaneWidth = m.width
		m.rightPaneWidth = 0
	}
}

func (m *Model) enableRightPane() {
	if m.showRightPane {
		return
	}
	m.showRightPane = true
	if m.width > 0 {
		m.layoutPanes()
	}
}

// handleKeyMessage handles keyboard input based on current state
func (m Model) handleKeyMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A visible dialog is modal
	if m.hasDialog() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateDialog(msg.String()), nil
	}

	// Global scroll keys for the right pane
	if m.showRightPane {
		switch msg.String() {
		case "pgup", "ctrl+u":
			m.scrollOutput(-5)
			return m, nil
		case "pgdown", "ctrl+d":
			m.scrollOutput(5)
			return m, nil
		}
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateFilePicker:
		return m.updateFilePicker(msg)
	}

	return m, nil
}

// handleMouseMessage handles mouse wheel scrolling of the right pane
func (m Model) handleMouseMessage(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.showRightPane || m.hasDialog() {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollOutput(-2)
	case tea.MouseButtonWheelDown:
		m.scrollOutput(2)
	}

	return m, nil
}

func (m *Model) scrollOutput(delta int) {
	maxScroll := len(m.outputSummary) - 10 // Approximate visible lines
	if maxScroll < 0 {
		maxScroll = 0
	}
	m.outputScrollOffset += delta
	if m.outputScrollOffset < 0 {
		m.outputScrollOffset = 0
	}
	if m.outputScrollOffset > maxScroll {
		m.outputScrollOffset = maxScroll
	}
}

// handleSendResult records a finished send and queues its dialog
func (m Model) handleSendResult(res dispatch.Result) Model {
	if m.inFlight > 0 {
		m.inFlight--
	}

	m.enableRightPane()
	if res.Success() {
		m.sent++
		if res.ChannelName != "" && m.hints != nil {
			m.hints.Set(res.Request.ChannelID, res.ChannelName)
		}
		m.addFormattedAction("Message sent")
		if res.ChannelName != "" {
			m.addFormattedStatusIndented("Channel", "#"+res.ChannelName)
		}
		m.addFormattedStatusIndented("Status", "completed in "+utils.FormatDuration(res.Duration()))
	} else {
		m.failed++
		m.addFormattedAction("Send failed")
		m.addFormattedStatusIndented("Channel", res.Request.ChannelID)
		m.addFormattedStatusIndented("Error", res.Text())
		m.logger.Debug("send result", zap.String("send_id", res.ID), zap.Error(res.Err))
	}

	d := dialogForResult(res)
	m.dialogs = append(m.dialogs, d)
	return m
}
