package hal

import "time"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Surface is the presentation target the renderer uploads finished frames to.
//
// Size reports the current drawable size in framebuffer pixels and may change
// between frames. Upload takes row-major packed RGB bytes (3 per pixel) of the
// given size; the surface copies them before returning.
type Surface interface {
	Size() (width, height int)
	Upload(pix []byte, width, height int) error
}

// Clock reports time elapsed since the host started.
//
// The window and terminal hosts use the wall clock; the headless host steps
// a fixed amount per tick so that runs are reproducible.
type Clock interface {
	Now() time.Duration
}

// KeyCode is a minimal key identifier.
type KeyCode uint8

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each host).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// HAL provides the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Surface
	Clock() Clock
	Keyboard() Keyboard
}

// App is a program driven by a host. The host calls Step once per frame and
// Close once after the last Step, whatever ended the run.
type App interface {
	Step() error
	Close() error
}

// StepFunc adapts a plain per-frame function to App. Close does nothing.
type StepFunc func() error

func (f StepFunc) Step() error { return f() }
func (StepFunc) Close() error  { return nil }

// NewApp constructs the program for a host.
type NewApp func(h HAL) (App, error)
