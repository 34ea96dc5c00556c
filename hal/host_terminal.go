package hal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TerminalConfig controls the terminal host.
type TerminalConfig struct {
	Hz int
}

// RunTerminal draws frames into the terminal with one half-block glyph per
// two vertically stacked pixels. Log lines are held back until the program
// exits so they do not tear the picture.
func RunTerminal(ctx context.Context, newApp NewApp, cfg TerminalConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}

	logger := newStderrLogger()
	release := logger.holdLines()
	defer release()

	h := newHostHAL(logger, newHostSurface(cols, rows*2), newWallClock())
	app, closeApp, err := runApp(h, newApp, &err)
	if err != nil {
		return err
	}
	defer closeApp()

	m := newTermModel(h, app, cfg.Hz)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	switch {
	case m.err != nil:
		return m.err
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}

type termKeys struct {
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
}

var defaultTermKeys = termKeys{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up:    key.NewBinding(key.WithKeys("up", "k")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	Left:  key.NewBinding(key.WithKeys("left", "h", "a")),
	Right: key.NewBinding(key.WithKeys("right", "l", "d")),
	Enter: key.NewBinding(key.WithKeys("enter", " ")),
}

// code maps a key message onto the HAL key set.
func (k termKeys) code(msg tea.KeyMsg) KeyCode {
	switch {
	case key.Matches(msg, k.Up):
		return KeyUp
	case key.Matches(msg, k.Down):
		return KeyDown
	case key.Matches(msg, k.Left):
		return KeyLeft
	case key.Matches(msg, k.Right):
		return KeyRight
	case key.Matches(msg, k.Enter):
		return KeyEnter
	}
	return KeyUnknown
}

type tickMsg time.Time

type termModel struct {
	h    *hostHAL
	app  App
	hz   int
	keys termKeys

	err error
	buf []byte
}

func newTermModel(h *hostHAL, app App, hz int) *termModel {
	return &termModel{h: h, app: app, hz: hz, keys: defaultTermKeys}
}

func (m *termModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.hz), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *termModel) Init() tea.Cmd { return m.tick() }

func (m *termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.h.surf.setSize(msg.Width, msg.Height*2)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// Terminals report presses only.
		if c := m.keys.code(msg); c != KeyUnknown {
			m.h.kbd.emit(c, true)
		}
	case tickMsg:
		if m.app != nil {
			if err := m.app.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *termModel) View() string {
	pix, w, h := m.h.surf.snapshotRGB(m.buf)
	m.buf = pix
	return renderHalfBlocks(pix, w, h)
}

// renderHalfBlocks maps pixel rows 2k and 2k+1 onto terminal row k: the
// upper pixel is the glyph foreground and the lower one its background.
// Runs of identical cells share one styled span.
func renderHalfBlocks(pix []byte, w, h int) string {
	if w <= 0 || h <= 0 || len(pix) < w*h*3 {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run := 0
		var runTop, runBot string
		flush := func() {
			if run == 0 {
				return
			}
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBot))
			sb.WriteString(st.Render(strings.Repeat("▀", run)))
			run = 0
		}
		for x := 0; x < w; x++ {
			top := hexAt(pix, w, x, y)
			bot := "#000000"
			if y+1 < h {
				bot = hexAt(pix, w, x, y+1)
			}
			if run > 0 && (top != runTop || bot != runBot) {
				flush()
			}
			runTop, runBot = top, bot
			run++
		}
		flush()
	}
	return sb.String()
}

func hexAt(pix []byte, w, x, y int) string {
	r, g, b := rgbAt(pix, w, x, y)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
