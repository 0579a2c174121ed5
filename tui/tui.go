package tui

import (
	"context"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"botsend/cache"
	"botsend/crashlog"
	"botsend/dispatch"
	"botsend/models"
)

// Run starts the TUI application and blocks until the user quits. Sends
// still in flight at exit are awaited, then cancelled after
// cfg.ShutdownTimeout. A panic in the model is written to crash.
func Run(ctx context.Context, d *dispatch.Dispatcher, cfg models.Config, logger *zap.Logger, crash *crashlog.Writer) error {
	hints := cache.NewMemoryCache(cfg.ChannelHintTTL, maxChannelHints)
	defer hints.Close()

	m := NewModel(d, cfg,
		WithContext(ctx),
		WithLogger(logger),
		WithChannelHints(hints),
	)

	// Alt screen and mouse support fully isolate the TUI
	p := tea.NewProgram(guardedModel{Model: m, crash: crash}, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	finalModel, runErr := p.Run()

	if final, ok := unguard(finalModel).(Model); ok && final.InFlight() > 0 {
		logger.Info("waiting for in-flight sends", zap.Int("count", final.InFlight()))
	}
	if err := d.Shutdown(cfg.ShutdownTimeout); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, tea.ErrProgramPanic):
		logger.Error("TUI panicked", zap.String("crash_log", crash.Path()))
		return errors.Wrap(runErr, "TUI panicked")
	case errors.Is(runErr, tea.ErrProgramKilled), errors.Is(runErr, tea.ErrInterrupted):
		return nil
	}

	return errors.Wrap(runErr, "error running TUI")
}

// guardedModel writes the panic value and stack of a panicking Init, Update
// or View to the crash log, then panics again so bubbletea restores the
// terminal and Run returns tea.ErrProgramPanic.
type guardedModel struct {
	tea.Model
	crash *crashlog.Writer
}

func (g guardedModel) Init() tea.Cmd {
	defer g.record()
	return g.Model.Init()
}

func (g guardedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer g.record()
	next, cmd := g.Model.Update(msg)
	return guardedModel{Model: next, crash: g.crash}, cmd
}

func (g guardedModel) View() string {
	defer g.record()
	return g.Model.View()
}

func (g guardedModel) record() {
	if r := recover(); r != nil {
		_ = g.crash.Record(r, debug.Stack())
		panic(r)
	}
}

func unguard(m tea.Model) tea.Model {
	if g, ok := m.(guardedModel); ok {
		return g.Model
	}
	return m
}
