package hal

import (
	"fmt"
	"image"
	"sync"

	"wirespin/gfx"
)

// hostSurface keeps a copy of the last uploaded frame for the host to draw
// on its own schedule.
type hostSurface struct {
	mu     sync.Mutex
	width  int
	height int

	pix    []byte
	pixW   int
	pixH   int
	frames uint64
}

func newHostSurface(width, height int) *hostSurface {
	s := &hostSurface{}
	s.setSize(width, height)
	return s
}

func (s *hostSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *hostSurface) setSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

func (s *hostSurface) Upload(pix []byte, width, height int) error {
	if width < 0 || height < 0 || len(pix) < width*height*3 {
		return fmt.Errorf("hal: upload of %d bytes for %dx%d", len(pix), width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pix = append(s.pix[:0], pix[:width*height*3]...)
	s.pixW, s.pixH = width, height
	s.frames++
	return nil
}

// snapshotRGBA copies the last frame into img, reallocating it when the frame
// size changed. It returns nil when nothing was uploaded yet.
func (s *hostSurface) snapshotRGBA(img *image.RGBA) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frames == 0 {
		return nil
	}
	if img == nil || img.Rect.Dx() != s.pixW || img.Rect.Dy() != s.pixH {
		img = image.NewRGBA(image.Rect(0, 0, s.pixW, s.pixH))
	}
	gfx.ExpandRGBA(img.Pix, s.pix)
	return img
}

// snapshotRGB copies the last frame's packed RGB bytes into dst.
func (s *hostSurface) snapshotRGB(dst []byte) ([]byte, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(dst[:0], s.pix...), s.pixW, s.pixH
}

func (s *hostSurface) frameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
