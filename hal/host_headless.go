package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/image/bmp"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Width   int
	Height  int

	// Snapshot, when set, receives the last uploaded frame as a BMP file
	// once the run ends.
	Snapshot string
}

// RunHeadless runs the renderer without opening a window. The surface keeps
// a fixed size and the clock advances by exactly one tick per frame.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	clock := newStepClock(d)
	h := newHostHAL(newStderrLogger(), newHostSurface(cfg.Width, cfg.Height), clock)
	app, closeApp, err := runApp(h, newApp, &err)
	if err != nil {
		return err
	}
	defer closeApp()
	if cfg.Snapshot != "" {
		defer func() {
			if serr := writeSnapshot(h.surf, cfg.Snapshot); serr != nil {
				err = errors.Join(err, serr)
			} else {
				h.logger.WriteLineString("headless: wrote " + cfg.Snapshot)
			}
		}()
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			clock.advance()
			if err := app.Step(); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func writeSnapshot(s *hostSurface, path string) error {
	img := s.snapshotRGBA(nil)
	if img == nil {
		return fmt.Errorf("headless: no frame to snapshot")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("headless: snapshot: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("headless: snapshot: %w", err)
	}
	return f.Close()
}
