package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"botsend/dispatch"
	"botsend/models"
)

// SendResultMsg carries a finished dispatch session back to the event loop.
// Workers never touch the UI directly; their result arrives here.
type SendResultMsg struct {
	Result dispatch.Result
}

// sendCmd runs a dispatch session on the command goroutine.
func sendCmd(ctx context.Context, sender Sender, req models.SendRequest) tea.Cmd {
	return func() tea.Msg {
		return SendResultMsg{Result: sender.Send(ctx, req)}
	}
}
