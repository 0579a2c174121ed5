package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderOutputSummary generates the content for the right pane with scrolling
func (m Model) renderOutputSummary() string {
	var s strings.Builder

	// Title for the output summary pane
	s.WriteString(highlightStyle.Render("Session Summary") + "\n\n")

	if len(m.outputSummary) == 0 {
		s.WriteString(helpStyle.Render("No messages sent yet."))
	} else {
		// Calculate visible area (approximate based on height)
		visibleLines := m.height - 8 // Account for borders, padding, title
		if visibleLines < 5 {
			visibleLines = 5
		}

		// Apply scroll offset
		startIdx := m.outputScrollOffset
		endIdx := startIdx + visibleLines

		if startIdx >= len(m.outputSummary) {
			startIdx = len(m.outputSummary) - 1
			if startIdx < 0 {
				startIdx = 0
			}
		}

		if endIdx > len(m.outputSummary) {
			endIdx = len(m.outputSummary)
		}

		// Render visible lines
		for i := startIdx; i < endIdx; i++ {
			if i < len(m.outputSummary) {
				s.WriteString(m.outputSummary[i])
				if i < endIdx-1 {
					s.WriteString("\n")
				}
			}
		}

		// Add scroll indicator if content is scrollable
		if len(m.outputSummary) > visibleLines {
			s.WriteString("\n\n" + helpStyle.Render("PgUp/PgDn, Ctrl+U/D, or mouse wheel to scroll"))
		}
	}

	return s.String()
}

// addToOutputSummary adds an item to the output summary
func (m *Model) addToOutputSummary(item string) {
	m.outputSummary = append(m.outputSummary, item)
}

// clearOutputSummary clears the output summary
func (m *Model) clearOutputSummary() {
	m.outputSummary = []string{}
	m.outputScrollOffset = 0
}

// formatSessionAction formats an action description with italic styling
func formatSessionAction(action string) string {
	return sessionActionStyle.Render(action)
}

// formatSessionStatus formats a status line with key: value format and intelligent coloring
func formatSessionStatus(key, value string) string {
	keyStyled := sessionStatusStyle.Render(key + ": ")
	valueStyled := determineValueStyle(key, value).Render(value)
	return keyStyled + valueStyled
}

// determineValueStyle picks the style for a status value from its key and content
func determineValueStyle(key, value string) lipgloss.Style {
	lowerKey := strings.ToLower(key)
	lowerValue := strings.ToLower(value)

	switch lowerKey {
	case "error":
		return sessionErrorValueStyle
	case "file", "channel":
		return sessionWarningValueStyle
	}

	for _, pattern := range []string{"complete", "completed", "success", "sent", "selected"} {
		if strings.Contains(lowerValue, pattern) {
			return sessionSuccessValueStyle
		}
	}

	for _, pattern := range []string{"error", "failed", "not found", "missing", "invalid"} {
		if strings.Contains(lowerValue, pattern) {
			return sessionErrorValueStyle
		}
	}

	for _, pattern := range []string{"timeout", "cancelled", "canceled"} {
		if strings.Contains(lowerValue, pattern) {
			return sessionWarningValueStyle
		}
	}

	return sessionNeutralValueStyle
}

// addFormattedAction adds a formatted action to the output summary
func (m *Model) addFormattedAction(action string) {
	m.addToOutputSummary(formatSessionAction(action))
}

// addFormattedStatusIndented adds a formatted status line with indentation
func (m *Model) addFormattedStatusIndented(key, value string) {
	m.addToOutputSummary("  " + formatSessionStatus(key, value))
}
