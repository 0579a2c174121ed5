// Package dispatch runs dispatch sessions: connect with a bot token, wait for
// the ready notification, resolve one channel, post one message, disconnect.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"botsend/crashlog"
	"botsend/models"
)

// Dispatcher performs sends. It is safe for concurrent use; every call to
// Send opens and closes its own Gateway.
type Dispatcher struct {
	dialer       Dialer
	registry     *Registry
	logger       *zap.Logger
	crash        *crashlog.Writer
	readyTimeout time.Duration
}

type Option func(*Dispatcher)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func WithCrashLog(w *crashlog.Writer) Option {
	return func(d *Dispatcher) { d.crash = w }
}

func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) { d.registry = r }
}

// WithReadyTimeout bounds the wait for the ready notification. Zero waits
// until the context is done.
func WithReadyTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.readyTimeout = t }
}

func New(dialer Dialer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		dialer:   dialer,
		registry: NewRegistry(),
		logger:   zap.NewNop(),
		crash:    crashlog.New(crashlog.DefaultPath),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Shutdown waits for in-flight sends, cancelling them after timeout.
func (d *Dispatcher) Shutdown(timeout time.Duration) error {
	return d.registry.Shutdown(timeout)
}

// Send runs one dispatch session for req and never panics. Every failure,
// including a recovered panic, is reported through Result.Err.
func (d *Dispatcher) Send(ctx context.Context, req models.SendRequest) (res Result) {
	res = Result{Request: req, Started: time.Now()}

	if err := req.Validate(); err != nil {
		res.Err = err
		res.Finished = time.Now()
		return res
	}

	id, ctx, err := d.registry.Start(ctx, req.ChannelID)
	if err != nil {
		res.Err = err
		res.Finished = time.Now()
		return res
	}
	res.ID = id

	log := d.logger.With(
		zap.String("send_id", id),
		zap.String("channel_id", req.ChannelID),
		zap.String("attachment", req.AttachmentName()),
	)
	log.Info("send started", zap.Int("message_len", len(req.Message)))

	defer func() {
		if r := recover(); r != nil {
			if recErr := d.crash.Record(r, debug.Stack()); recErr != nil {
				log.Error("failed to write crash log", zap.Error(recErr))
			}
			res.Err = &TransmissionError{Op: "dispatch", Err: fmt.Errorf("unexpected failure: %v", r)}
		}

		d.registry.Complete(id)
		res.Finished = time.Now()

		if res.Err != nil {
			log.Warn("send failed",
				zap.Stringer("kind", res.Kind()),
				zap.Error(res.Err),
				zap.Duration("duration", res.Duration()))
			return
		}
		log.Info("send completed",
			zap.String("message_id", res.MessageID),
			zap.String("channel_name", res.ChannelName),
			zap.Duration("duration", res.Duration()))
	}()

	res.ChannelName, res.MessageID, res.Err = d.session(ctx, log, req)
	return res
}

func (d *Dispatcher) session(ctx context.Context, log *zap.Logger, req models.SendRequest) (string, string, error) {
	gw, err := d.dialer.Dial(req.Token)
	if err != nil {
		return "", "", wrapOp("connect", errors.Wrap(err, "failed to create session"))
	}
	defer func() {
		if err := gw.Close(); err != nil {
			log.Debug("session close failed", zap.Error(err))
		}
	}()

	if err := gw.Authenticate(ctx); err != nil {
		return "", "", wrapOp("authenticate", err)
	}

	readyCtx := ctx
	if d.readyTimeout > 0 {
		var cancel context.CancelFunc
		readyCtx, cancel = context.WithTimeout(ctx, d.readyTimeout)
		defer cancel()
	}
	if err := gw.Open(readyCtx); err != nil {
		return "", "", wrapOp("connect", err)
	}
	log.Debug("session ready")

	ch, err := gw.Channel(ctx, req.ChannelID)
	if err != nil {
		return "", "", wrapOp("lookup", err)
	}
	if ch == nil {
		return "", "", ErrChannelNotFound
	}

	payload := &Payload{Content: req.Message}
	if req.HasAttachment() {
		f, err := os.Open(req.AttachmentPath)
		if err != nil {
			return ch.Name, "", wrapOp("attach", err)
		}
		defer f.Close()
		payload.Attachment = &Attachment{Name: filepath.Base(req.AttachmentPath), Reader: f}
	}

	msgID, err := gw.Send(ctx, ch.ID, payload)
	if err != nil {
		return ch.Name, "", wrapOp("send", err)
	}
	return ch.Name, msgID, nil
}
