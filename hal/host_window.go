//go:build cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wirespin/internal/buildinfo"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Width  int
	Height int
	// ResScale is the number of window pixels per framebuffer pixel.
	ResScale int
	TPS      int
}

// RunWindow starts a resizable desktop window that displays the uploaded frames.
// It blocks until the window closes or Escape is pressed.
func RunWindow(newApp NewApp, cfg WindowConfig) (err error) {
	if cfg.ResScale <= 0 {
		cfg.ResScale = 1
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	h := newHostHAL(newStderrLogger(), newHostSurface(cfg.Width/cfg.ResScale, cfg.Height/cfg.ResScale), newWallClock())
	app, closeApp, err := runApp(h, newApp, &err)
	if err != nil {
		return err
	}
	defer closeApp()

	g := &hostGame{h: h, app: app, res: cfg.ResScale}
	ebiten.SetWindowTitle("wirespin (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	res   int
	img   *image.RGBA
	fbImg *ebiten.Image
	app   App
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	return g.app.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	img := g.h.surf.snapshotRGBA(g.img)
	if img == nil {
		return
	}
	g.img = img

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout makes the logical screen the framebuffer size; ebiten scales it up
// to the window.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.res, outsideHeight/g.res
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.h.surf.setSize(w, h)
	return w, h
}
