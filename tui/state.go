package tui

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"botsend/cache"
	"botsend/dispatch"
	"botsend/models"
)

// AppState represents the current screen of the application
type AppState int

const (
	StateForm AppState = iota
	StateFilePicker
)

// Form focus positions. The three text inputs come first.
const (
	focusToken = iota
	focusChannel
	focusMessage
	focusSelectFile
	focusSend
	focusCount
)

// maxChannelHints bounds the remembered channel names.
const maxChannelHints = 256

const defaultPickerHeight = 12

// Sender runs one dispatch session. *dispatch.Dispatcher satisfies it.
type Sender interface {
	Send(ctx context.Context, req models.SendRequest) dispatch.Result
}

// Model represents the main TUI model
type Model struct {
	state  AppState
	width  int
	height int

	// Pane layout
	leftPaneWidth  int
	rightPaneWidth int
	showRightPane  bool

	// Form
	inputs         []textinput.Model
	focus          int
	attachmentPath string
	attachmentSize int64

	filePicker   filepicker.Model
	pickerHeight int
	startDir     string

	// Sending
	ctx      context.Context
	sender   Sender
	spinner  spinner.Model
	inFlight int
	sent     int
	failed   int

	// Channel ID -> name of channels sent to before
	hints *cache.MemoryCache

	// Modal dialogs, oldest first
	dialogs []Dialog

	// Output summary for right pane
	outputSummary      []string
	outputScrollOffset int

	logger *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithChannelHints supplies the cache used to show channel names next to
// known channel IDs.
func WithChannelHints(c *cache.MemoryCache) Option {
	return func(m *Model) { m.hints = c }
}

// NewModel creates a new TUI model. Token and channel ID from cfg prefill the
// form.
func NewModel(sender Sender, cfg models.Config, opts ...Option) Model {
	token := newInput("bot token", cfg.Token)
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'

	channel := newInput("123456789012345678", cfg.ChannelID)
	channel.CharLimit = 20

	message := newInput("optional message", "")
	message.CharLimit = 2000

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	startDir := cfg.StartDir
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}

	m := Model{
		state:         StateForm,
		inputs:        []textinput.Model{token, channel, message},
		focus:         focusToken,
		filePicker:    newFilePicker(defaultPickerHeight),
		pickerHeight:  defaultPickerHeight,
		startDir:      startDir,
		ctx:           context.Background(),
		sender:        sender,
		spinner:       sp,
		showRightPane: false,
		outputSummary: []string{},
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.hints == nil {
		m.hints = cache.NewMemoryCache(models.DefaultConfig.ChannelHintTTL, maxChannelHints)
	}

	m.inputs[focusToken].Focus()
	return m
}

// newFilePicker returns a picker with a fresh cursor and viewport. The
// bubbles picker keeps its cursor across directory reads, so it is rebuilt
// every time it is opened.
func newFilePicker(height int) filepicker.Model {
	fp := filepicker.New()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.SetHeight(height)
	// Esc cancels the picker instead of moving up a directory.
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))
	return fp
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 40
	ti.TextStyle = inputTextStyle
	ti.PlaceholderStyle = placeholderStyle
	ti.SetValue(value)
	return ti
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// AttachmentPath returns the currently selected attachment, if any.
func (m Model) AttachmentPath() string { return m.attachmentPath }

// InFlight returns the number of sends awaiting a result.
func (m Model) InFlight() int { return m.inFlight }

// Dialogs returns the queued dialogs, the visible one first.
func (m Model) Dialogs() []Dialog { return append([]Dialog(nil), m.dialogs...) }
