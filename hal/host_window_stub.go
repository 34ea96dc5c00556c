//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Width    int
	Height   int
	ResScale int
	TPS      int
}

func RunWindow(_ NewApp, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
