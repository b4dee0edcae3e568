// Package input implements the keyboard/mouse router (spec §4.9, Component
// H) and vi-style scrollback select-mode (spec §4.10), in the bubbletea
// idiom the teacher's internal/app uses for its own key routing.
package input

import (
	"time"

	"github.com/vtterm/vtterm/internal/selection"
	"github.com/vtterm/vtterm/internal/vt"
)

// SelectMode tracks the vi-style scrollback navigation cursor (spec §4.10).
// One SelectMode is shared by the Router across all tabs; switching focus
// does not reset it.
type SelectMode struct {
	active bool
	visual bool

	x, y int // select-mode cursor, (0,0) at the top of the currently displayed view

	savedX, savedY       int
	savedCursorHidden    bool
	savedYBase           int

	lastYank string // text captured by the last "y" in visual mode, consumed by prefix+p
}

// NewSelectMode returns an inactive select-mode tracker.
func NewSelectMode() *SelectMode { return &SelectMode{} }

// Active reports whether select-mode is currently engaged.
func (m *SelectMode) Active() bool { return m.active }

// Visual reports whether the visual sub-mode (drag-selection) is engaged.
func (m *SelectMode) Visual() bool { return m.visual }

// Cursor returns the select-mode cursor's current position.
func (m *SelectMode) Cursor() (int, int) { return m.x, m.y }

// LastYank returns the text captured by the most recent "y" in visual mode,
// or "" if nothing has been yanked yet (spec §4.9 prefix+p paste).
func (m *SelectMode) LastYank() string { return m.lastYank }

// Enter begins select-mode: saves the live cursor position and ybase and
// places the select-mode cursor at (0, rows-1) (spec §4.10 "On entry").
// Cursor visibility is neither saved nor changed.
func (m *SelectMode) Enter(t *vt.Terminal) {
	c := t.Screen.Cursor()
	m.savedX, m.savedY = c.X, c.Y
	m.savedYBase = t.Scrollback.YBase()
	m.active = true
	m.visual = false
	m.x, m.y = 0, t.Rows()-1
}

// Exit leaves select-mode, restoring the saved cursor and view (spec §4.10
// "q" binding). It does not itself move the live cursor — the caller's
// terminal model already owns it; only the scrollback view is restored
// here, via the terminal's own snap-to-live, since the saved ybase is
// always 0 in this engine (select-mode cannot be entered while the PTY is
// mid-write, per §4.4's snap-on-feed rule).
func (m *SelectMode) Exit(t *vt.Terminal) {
	m.active = false
	m.visual = false
	if m.savedYBase == 0 {
		t.ScrollView(-t.Scrollback.YBase())
	}
}

// clampX/clampY keep the select-mode cursor within the visible grid.
func clampX(x, cols int) int {
	if x < 0 {
		return 0
	}
	if x >= cols {
		return cols - 1
	}
	return x
}

func clampY(y, rows int) int {
	if y < 0 {
		return 0
	}
	if y >= rows {
		return rows - 1
	}
	return y
}

// Handle processes one key while select-mode is active, returning true if
// the key was consumed (spec §4.10's key table). now is accepted from the
// router but not read: visual mode begins and extends the selection
// directly, without a click tracker.
func (m *SelectMode) Handle(t *vt.Terminal, sel *selection.Selection, key string, now time.Time) (consumed bool) {
	if !m.active {
		return false
	}
	rows, cols := t.Rows(), t.Cols()

	switch key {
	case "h":
		m.x = clampX(m.x-1, cols)
	case "l":
		m.x = clampX(m.x+1, cols)
	case "j":
		if m.y >= rows-1 {
			t.ScrollView(1)
		} else {
			m.y = clampY(m.y+1, rows)
		}
	case "k":
		if m.y <= 0 {
			t.ScrollView(-1)
		} else {
			m.y = clampY(m.y-1, rows)
		}
	case "0", "^":
		m.x = 0
	case "$":
		m.x = cols - 1
	case "w":
		ybase := t.Scrollback.YBase()
		nx, ny := wordForward(t, m.x, m.y+ybase)
		m.x, m.y = nx, ny-ybase
	case "e":
		ybase := t.Scrollback.YBase()
		nx, ny := wordEnd(t, m.x, m.y+ybase)
		m.x, m.y = nx, ny-ybase
	case "b":
		ybase := t.Scrollback.YBase()
		nx, ny := wordBack(t, m.x, m.y+ybase)
		m.x, m.y = nx, ny-ybase
	case "{":
		t.ScrollView(-rows / 5)
	case "}":
		t.ScrollView(rows / 5)
	case "ctrl+u":
		t.ScrollView(-rows / 2)
	case "ctrl+d":
		t.ScrollView(rows / 2)
	case "ctrl+b":
		t.ScrollView(-rows)
	case "ctrl+f":
		t.ScrollView(rows)
	case "v":
		m.visual = true
		sel.Begin(m.x, m.y+t.Scrollback.YBase(), selection.SnapNone, selection.Linear, false, t)
	case "y":
		if m.visual {
			m.lastYank = sel.Text(t)
			m.visual = false
			m.Exit(t)
		}
	case "q":
		m.Exit(t)
	default:
		return false
	}

	if m.visual {
		sel.Extend(m.x, m.y+t.Scrollback.YBase(), t)
	}
	return true
}

func isWordChar(r rune) bool {
	return r != 0 && r != ' ' && r != '\t'
}

// wordForward/wordEnd/wordBack operate in grid-absolute coordinates (y=0 is
// the live grid's top row, negative y reaches into scrollback — the same
// space Selection and RuneAt use). top/bottom bound the search to whatever
// is currently displayed, mirroring the bounds Handle's caller applies to
// the display-local cursor before translating into this space.
func wordForward(t *vt.Terminal, x, y int) (int, int) {
	cols := t.Cols()
	bottom := t.Scrollback.YBase() + t.Rows() - 1
	inWord := isWordChar(t.RuneAt(x, y))
	for {
		x++
		if x >= cols {
			if y >= bottom {
				return cols - 1, bottom
			}
			x, y = 0, y+1
		}
		c := isWordChar(t.RuneAt(x, y))
		if inWord && !c {
			inWord = false
			continue
		}
		if !inWord && c {
			return x, y
		}
		if y >= bottom && x >= cols-1 {
			return x, y
		}
	}
}

func wordEnd(t *vt.Terminal, x, y int) (int, int) {
	cols := t.Cols()
	bottom := t.Scrollback.YBase() + t.Rows() - 1
	for {
		x++
		if x >= cols {
			if y >= bottom {
				return cols - 1, bottom
			}
			x, y = 0, y+1
		}
		if isWordChar(t.RuneAt(x, y)) {
			nx, ny := x+1, y
			if nx >= cols {
				nx, ny = 0, y+1
			}
			if ny > bottom || !isWordChar(t.RuneAt(nx, ny)) {
				return x, y
			}
		}
	}
}

func wordBack(t *vt.Terminal, x, y int) (int, int) {
	top := t.Scrollback.YBase()
	for {
		x--
		if x < 0 {
			if y <= top {
				return 0, top
			}
			y--
			x = t.Cols() - 1
		}
		if isWordChar(t.RuneAt(x, y)) {
			px, py := x-1, y
			if px < 0 {
				py--
				px = t.Cols() - 1
			}
			if py < top || !isWordChar(t.RuneAt(px, py)) {
				return x, y
			}
		}
	}
}
