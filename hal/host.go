package hal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	surf   *hostSurface
	clock  Clock
	kbd    *hostKeyboard
}

func newHostHAL(logger *hostLogger, surf *hostSurface, clock Clock) *hostHAL {
	return &hostHAL{logger: logger, surf: surf, clock: clock, kbd: newHostKeyboard()}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Display() Surface   { return h.surf }
func (h *hostHAL) Clock() Clock       { return h.clock }
func (h *hostHAL) Keyboard() Keyboard { return h.kbd }

// runApp constructs the app and arranges for it to be closed when the run
// ends. The close error is joined into *errp.
func runApp(h *hostHAL, newApp NewApp, errp *error) (App, func(), error) {
	a, err := newApp(h)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		a = StepFunc(func() error { return nil })
	}
	return a, func() {
		if cerr := a.Close(); cerr != nil {
			*errp = errors.Join(*errp, cerr)
		}
	}, nil
}

// hostLogger writes to stderr so stdout stays free for the terminal surface.
type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func newStderrLogger() *hostLogger { return &hostLogger{w: os.Stderr} }

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// holdLines redirects the logger into a buffer until the returned release
// func is called, which replays the held lines to the original writer.
func (l *hostLogger) holdLines() (release func()) {
	l.mu.Lock()
	orig := l.w
	var buf bytes.Buffer
	l.w = &buf
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.w = orig
		orig.Write(buf.Bytes())
	}
}
