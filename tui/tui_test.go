package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"botsend/cache"
	"botsend/dispatch"
	"botsend/models"
)

// fakeSender answers every send with a fixed error and counts calls.
type fakeSender struct {
	calls int32
	err   error
	name  string
}

func (s *fakeSender) Send(ctx context.Context, req models.SendRequest) dispatch.Result {
	atomic.AddInt32(&s.calls, 1)
	now := time.Now()
	res := dispatch.Result{ID: "op-1", Request: req, Err: s.err, Started: now, Finished: now}
	if s.err == nil {
		res.ChannelName = s.name
		res.MessageID = "999"
	}
	return res
}

func (s *fakeSender) count() int { return int(atomic.LoadInt32(&s.calls)) }

func newTestModel(t *testing.T, s Sender, token, channel string) Model {
	t.Helper()
	hints := cache.NewMemoryCache(time.Hour, 8)
	t.Cleanup(hints.Close)
	return NewModel(s, models.Config{Token: token, ChannelID: channel, StartDir: t.TempDir()}, WithChannelHints(hints))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// runSend executes cmd the way the program would and returns the send result.
func runSend(t *testing.T, cmd tea.Cmd) SendResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("no command returned")
	}

	switch msg := cmd().(type) {
	case SendResultMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if res, ok := c().(SendResultMsg); ok {
				return res
			}
		}
	}
	t.Fatal("command did not produce a SendResultMsg")
	return SendResultMsg{}
}

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestSubmit_missingFieldsShowsWarning(t *testing.T) {
	tests := []struct {
		n       string
		token   string
		channel string
		text    string
	}{
		{n: "no_token", channel: "123", text: "Token and Channel ID are required."},
		{n: "no_channel", token: "tok", text: "Token and Channel ID are required."},
		{n: "blank_both", token: "   ", channel: "  ", text: "Token and Channel ID are required."},
		{n: "non_numeric_channel", token: "tok", channel: "general", text: "Channel ID must be numeric."},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			s := &fakeSender{}
			m := newTestModel(t, s, tt.token, tt.channel)

			m, cmd := update(t, m, keyPress(tea.KeyCtrlS))

			if cmd != nil {
				t.Fatal("validation failure returned a command")
			}
			if s.count() != 0 {
				t.Fatalf("sender called %d times", s.count())
			}
			if m.InFlight() != 0 {
				t.Fatalf("InFlight() = %d", m.InFlight())
			}

			dialogs := m.Dialogs()
			if len(dialogs) != 1 {
				t.Fatalf("got %d dialogs, want 1", len(dialogs))
			}
			if d := dialogs[0]; d.Kind != DialogWarning || d.Title != "Missing Info" || d.Text != tt.text {
				t.Fatalf("dialog = %+v", d)
			}
		})
	}
}

func TestSubmit_successShowsOneInfoDialog(t *testing.T) {
	s := &fakeSender{name: "general"}
	m := newTestModel(t, s, "tok", "123456")
	m.inputs[focusMessage].SetValue("hello there")

	m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	if m.InFlight() != 1 {
		t.Fatalf("InFlight() = %d, want 1", m.InFlight())
	}
	if len(m.Dialogs()) != 0 {
		t.Fatalf("dialog shown before the result: %+v", m.Dialogs())
	}

	res := runSend(t, cmd)
	if s.count() != 1 {
		t.Fatalf("sender called %d times, want 1", s.count())
	}
	if res.Result.Request.Message != "hello there" || res.Result.Request.AttachmentPath != "" {
		t.Fatalf("request = %+v", res.Result.Request)
	}

	m, _ = update(t, m, res)

	dialogs := m.Dialogs()
	if len(dialogs) != 1 {
		t.Fatalf("got %d dialogs, want 1", len(dialogs))
	}
	if d := dialogs[0]; d.Kind != DialogInfo || d.Title != "Success" || d.Text != "Message sent!" {
		t.Fatalf("dialog = %+v", d)
	}
	if m.InFlight() != 0 {
		t.Fatalf("InFlight() = %d", m.InFlight())
	}
	if hint := m.channelHint(); hint != "#general" {
		t.Fatalf("channelHint() = %q", hint)
	}
}

func TestSubmit_enterOnSendButton(t *testing.T) {
	s := &fakeSender{}
	m := newTestModel(t, s, "tok", "1")

	m, _ = update(t, m, keyPress(tea.KeyShiftTab))
	if m.focus != focusSend {
		t.Fatalf("focus = %d, want send button", m.focus)
	}

	_, cmd := update(t, m, keyPress(tea.KeyEnter))
	runSend(t, cmd)
	if s.count() != 1 {
		t.Fatalf("sender called %d times", s.count())
	}
}

func TestSendResult_failureDialogs(t *testing.T) {
	tests := []struct {
		n    string
		err  error
		text string
	}{
		{n: "invalid_token", err: errors.Wrap(dispatch.ErrAuthentication, "401"), text: "Invalid token."},
		{n: "unknown_channel", err: dispatch.ErrChannelNotFound, text: "Channel not found."},
		{n: "transmission", err: &dispatch.TransmissionError{Op: "send", Err: errors.New("Missing Access")}, text: "Missing Access"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			s := &fakeSender{err: tt.err}
			m := newTestModel(t, s, "tok", "1")

			m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
			m, _ = update(t, m, runSend(t, cmd))

			dialogs := m.Dialogs()
			if len(dialogs) != 1 {
				t.Fatalf("got %d dialogs, want 1", len(dialogs))
			}
			if d := dialogs[0]; d.Kind != DialogError || d.Title != "Error" || d.Text != tt.text {
				t.Fatalf("dialog = %+v", d)
			}
			if m.channelHint() != "" {
				t.Fatal("failed send recorded a channel hint")
			}
		})
	}
}

func TestDialogs_queueAndDismiss(t *testing.T) {
	s := &fakeSender{}
	m := newTestModel(t, s, "tok", "1")

	m, c1 := update(t, m, keyPress(tea.KeyCtrlS))
	m, c2 := update(t, m, keyPress(tea.KeyCtrlS))
	if m.InFlight() != 2 {
		t.Fatalf("InFlight() = %d, want 2", m.InFlight())
	}

	m, _ = update(t, m, runSend(t, c1))
	m, _ = update(t, m, runSend(t, c2))
	if len(m.Dialogs()) != 2 {
		t.Fatalf("got %d dialogs, want 2", len(m.Dialogs()))
	}

	// Keys other than the dismiss keys do nothing while a dialog is visible.
	m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	if cmd != nil || len(m.Dialogs()) != 2 || s.count() != 2 {
		t.Fatal("dialog did not block the form")
	}

	m, _ = update(t, m, keyPress(tea.KeyEnter))
	if len(m.Dialogs()) != 1 {
		t.Fatalf("got %d dialogs after dismiss, want 1", len(m.Dialogs()))
	}
	m, _ = update(t, m, keyPress(tea.KeyEsc))
	if len(m.Dialogs()) != 0 {
		t.Fatalf("got %d dialogs after dismiss, want 0", len(m.Dialogs()))
	}
	if m.View() == "" {
		t.Fatal("empty view")
	}
}

func TestFilePicker_selectAndCancel(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(file, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, &fakeSender{}, "tok", "1")

	m = m.applySelectedFile(file)
	if m.AttachmentPath() != file || m.attachmentSize != 8 {
		t.Fatalf("attachment = %q (%d bytes)", m.AttachmentPath(), m.attachmentSize)
	}
	if d := m.Dialogs(); len(d) != 1 || d[0].Kind != DialogInfo || d[0].Text != "report.pdf" {
		t.Fatalf("dialogs = %+v", d)
	}
	m, _ = update(t, m, keyPress(tea.KeyEnter))

	m, _ = update(t, m, keyPress(tea.KeyCtrlO))
	if m.state != StateFilePicker {
		t.Fatalf("state = %d, want file picker", m.state)
	}
	if m.filePicker.CurrentDirectory != dir {
		t.Fatalf("picker opened in %q, want %q", m.filePicker.CurrentDirectory, dir)
	}

	m, _ = update(t, m, keyPress(tea.KeyEsc))
	if m.state != StateForm {
		t.Fatalf("state = %d, want form", m.state)
	}
	if m.AttachmentPath() != file {
		t.Fatalf("cancel changed the attachment to %q", m.AttachmentPath())
	}
	if len(m.Dialogs()) != 0 {
		t.Fatalf("cancel showed dialogs: %+v", m.Dialogs())
	}
}

func TestFilePicker_rejectsInvalidSelection(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ok.txt")
	if err := os.WriteFile(file, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, &fakeSender{}, "tok", "1")
	m = m.applySelectedFile(file)
	m.dialogs = nil

	m = m.applySelectedFile(filepath.Join(dir, "gone.txt"))
	if m.AttachmentPath() != file {
		t.Fatalf("invalid selection replaced the attachment: %q", m.AttachmentPath())
	}
	if d := m.Dialogs(); len(d) != 1 || d[0].Kind != DialogWarning || d[0].Title != "Invalid File" {
		t.Fatalf("dialogs = %+v", d)
	}
}

func TestSubmit_includesAttachment(t *testing.T) {
	file := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(file, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := &fakeSender{}
	m := newTestModel(t, s, "tok", "1")
	m = m.applySelectedFile(file)
	m.dialogs = nil

	_, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	res := runSend(t, cmd)
	if res.Result.Request.AttachmentPath != file || res.Result.Request.HasMessage() {
		t.Fatalf("request = %+v", res.Result.Request)
	}

	m, _ = update(t, m, keyPress(tea.KeyCtrlX))
	if m.AttachmentPath() != "" {
		t.Fatalf("ctrl+x kept %q", m.AttachmentPath())
	}
}

func TestSpinnerTick_ignoredWhenIdle(t *testing.T) {
	m := newTestModel(t, &fakeSender{}, "", "")
	if _, cmd := update(t, m, spinner.TickMsg{}); cmd != nil {
		t.Fatal("idle model kept the spinner running")
	}
}

func TestView_layouts(t *testing.T) {
	m := newTestModel(t, &fakeSender{}, "tok", "1")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.View() == "" {
		t.Fatal("empty form view")
	}

	m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	m, _ = update(t, m, runSend(t, cmd))
	if !m.showRightPane || m.rightPaneWidth <= 0 {
		t.Fatalf("summary pane not shown: %d", m.rightPaneWidth)
	}
	if m.View() == "" {
		t.Fatal("empty dialog view")
	}
}

// drive feeds msg to the model and then the messages its command produces,
// the way the program loop would for directory reads.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := update(t, m, msg)
	if cmd == nil || m.state != StateFilePicker {
		return m
	}
	if next := cmd(); next != nil {
		if _, ok := next.(tea.KeyMsg); !ok {
			m, _ = update(t, m, next)
		}
	}
	return m
}

func TestFilePicker_reopenResetsCursor(t *testing.T) {
	root := t.TempDir()
	small := filepath.Join(root, "small")
	if err := os.Mkdir(small, 0o755); err != nil {
		t.Fatal(err)
	}
	only := filepath.Join(small, "only.txt")
	if err := os.WriteFile(only, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		name := filepath.Join(root, "file"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte("y"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	hints := cache.NewMemoryCache(time.Hour, 8)
	t.Cleanup(hints.Close)
	m := NewModel(&fakeSender{}, models.Config{Token: "tok", ChannelID: "1", StartDir: root}, WithChannelHints(hints))

	m = m.applySelectedFile(only)
	m.dialogs = nil

	m = drive(t, m, keyPress(tea.KeyCtrlO))
	m = drive(t, m, keyPress(tea.KeyBackspace))
	if m.filePicker.CurrentDirectory != root {
		t.Fatalf("picker in %q, want %q", m.filePicker.CurrentDirectory, root)
	}
	for i := 0; i < 9; i++ {
		m = drive(t, m, keyPress(tea.KeyDown))
	}
	m = drive(t, m, keyPress(tea.KeyEsc))

	m = drive(t, m, keyPress(tea.KeyCtrlO))
	if m.filePicker.CurrentDirectory != small {
		t.Fatalf("picker reopened in %q, want %q", m.filePicker.CurrentDirectory, small)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("enter after reopening the picker panicked: %v", r)
		}
	}()
	m = drive(t, m, keyPress(tea.KeyEnter))

	if m.state != StateForm {
		t.Fatalf("state = %d, want form", m.state)
	}
	if m.AttachmentPath() != only {
		t.Fatalf("attachment = %q, want %q", m.AttachmentPath(), only)
	}
}
