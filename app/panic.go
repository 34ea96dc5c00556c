package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"wirespin/gfx"
	"wirespin/hal"
)

// panicScreen logs a recovered frame panic and paints it over the
// framebuffer, dark text on white, wrapped to the framebuffer width.
func panicScreen(l hal.Logger, fb *gfx.Framebuffer, value any, stack []byte) {
	lines := []string{
		"wirespin panic:",
		fmt.Sprintf("panic: %v", value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	if fb == nil || fb.Width() == 0 || fb.Height() == 0 {
		return
	}

	fb.Clear(gfx.White)
	_, outboxWidth := tinyfont.LineWidth(gfx.DefaultFont, "0")
	fontWidth := int(outboxWidth)
	fontHeight := int(gfx.DefaultFont.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}
	cols := fb.Width() / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > fb.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			gfx.DrawText(fb, 0, y, chunk, gfx.Black)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
