//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyA, KeyLeft},
	{ebiten.KeyD, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeySpace, KeyEnter},
}

// poll forwards this tick's press and release edges. Call it from Update.
func (k *hostKeyboard) poll() {
	for _, wk := range windowKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			k.emit(wk.code, true)
		}
		if inpututil.IsKeyJustReleased(wk.key) {
			k.emit(wk.code, false)
		}
	}
}
