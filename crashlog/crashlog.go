// Package crashlog writes last-resort diagnostics for panics that would
// otherwise kill the process or disappear inside a background goroutine.
package crashlog

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultPath is relative to the working directory.
const DefaultPath = "error_log.txt"

// ErrPanicked is returned by Guard when fn panicked.
var ErrPanicked = errors.New("panic recovered")

// Writer serialises crash reports to a single file. Each report replaces the
// previous one.
type Writer struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func New(path string) *Writer {
	if path == "" {
		path = DefaultPath
	}
	return &Writer{path: path, now: time.Now}
}

func (w *Writer) Path() string { return w.path }

// Record writes the panic value and stack to the crash file.
func (w *Writer) Record(value interface{}, stack []byte) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "time: %s\n", w.now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&buf, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "panic: %v\n\n", value)
	if err, ok := value.(error); ok {
		fmt.Fprintf(&buf, "error: %+v\n\n", err)
	}
	buf.Write(stack)
	if len(stack) > 0 && stack[len(stack)-1] != '\n' {
		buf.WriteByte('\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.WriteFile(w.path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write crash log %q", w.path)
	}
	return nil
}

// Guard runs fn and turns a panic into ErrPanicked after writing the report.
func (w *Writer) Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if recErr := w.Record(r, debug.Stack()); recErr != nil {
				err = errors.WithMessagef(ErrPanicked, "%v (crash log not written: %v)", r, recErr)
				return
			}
			err = errors.WithMessagef(ErrPanicked, "%v", r)
		}
	}()

	return fn()
}
