package dispatch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrShutdownTimeout is returned by Shutdown when sends were still running
// at the deadline and had to be cancelled.
var ErrShutdownTimeout = errors.New("timed out waiting for in-flight sends")

type inflight struct {
	id        string
	channelID string
	started   time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

// Operation describes an in-flight send.
type Operation struct {
	ID        string
	ChannelID string
	Started   time.Time
}

// Registry tracks in-flight sends so they can be awaited or cancelled at
// shutdown.
type Registry struct {
	mu     sync.Mutex
	ops    map[string]*inflight
	closed bool
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*inflight)}
}

// Start registers a send and returns its ID together with a context that is
// cancelled by Shutdown.
func (r *Registry) Start(parent context.Context, channelID string) (string, context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", nil, ErrRegistryClosed
	}

	ctx, cancel := context.WithCancel(parent)
	op := &inflight{
		id:        uuid.NewString(),
		channelID: channelID,
		started:   time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	r.ops[op.id] = op

	return op.id, ctx, nil
}

// Complete marks a send finished. Unknown IDs are ignored.
func (r *Registry) Complete(id string) {
	r.mu.Lock()
	op, ok := r.ops[id]
	if ok {
		delete(r.ops, id)
	}
	r.mu.Unlock()

	if ok {
		op.cancel()
		close(op.done)
	}
}

// Active returns the in-flight sends ordered by start time.
func (r *Registry) Active() []Operation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Operation, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, Operation{ID: op.id, ChannelID: op.channelID, Started: op.started})
	}
	sortOperations(out)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// Shutdown refuses new sends and waits up to timeout for the running ones.
// Sends still running at the deadline are cancelled and ErrShutdownTimeout
// is returned without waiting further.
func (r *Registry) Shutdown(timeout time.Duration) error {
	r.mu.Lock()
	r.closed = true
	pending := make([]*inflight, 0, len(r.ops))
	for _, op := range r.ops {
		pending = append(pending, op)
	}
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for _, op := range pending {
		select {
		case <-op.done:
		case <-timer.C:
			for _, p := range pending {
				p.cancel()
			}
			return errors.Wrapf(ErrShutdownTimeout, "%d send(s) cancelled", r.Len())
		}
	}
	return nil
}

func sortOperations(ops []Operation) {
	sort.Slice(ops, func(i, j int) bool { return ops[i].Started.Before(ops[j].Started) })
}
