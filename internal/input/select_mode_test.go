package input

import (
	"testing"
	"time"

	"github.com/vtterm/vtterm/internal/selection"
	"github.com/vtterm/vtterm/internal/vt"
)

func newTestTerminal() *vt.Terminal {
	return vt.New(1, 5, 10, 8, 1000, selection.New(), nil, false)
}

func TestSelectModeEnterPlacesCursorAtBottomRow(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)

	if !m.Active() {
		t.Fatal("Enter should activate select-mode")
	}
	x, y := m.Cursor()
	if x != 0 || y != 4 {
		t.Fatalf("cursor after Enter = (%d,%d), want (0,4) (bottom row of a 5-row terminal)", x, y)
	}
}

func TestSelectModeHJKLMovement(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	m.Handle(term, sel, "l", time.Now())
	m.Handle(term, sel, "l", time.Now())
	m.Handle(term, sel, "k", time.Now())
	x, y := m.Cursor()
	if x != 2 || y != 3 {
		t.Fatalf("after l,l,k cursor = (%d,%d), want (2,3)", x, y)
	}
}

func TestSelectModeHClampsAtLeftEdge(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	m.Handle(term, sel, "h", time.Now())
	x, _ := m.Cursor()
	if x != 0 {
		t.Fatalf("h at the left edge should clamp to 0, got %d", x)
	}
}

func TestSelectModeZeroAndDollar(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	m.Handle(term, sel, "$", time.Now())
	x, _ := m.Cursor()
	if x != 9 {
		t.Fatalf("$ should move to the last column (9), got %d", x)
	}
	m.Handle(term, sel, "0", time.Now())
	x, _ = m.Cursor()
	if x != 0 {
		t.Fatalf("0 should move to the first column, got %d", x)
	}
}

func TestSelectModeKAtTopRowScrollsInsteadOfMoving(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term) // cursor starts at bottom row (4)

	sel := selection.New()
	for i := 0; i < 4; i++ {
		m.Handle(term, sel, "k", time.Now())
	}
	_, y := m.Cursor()
	if y != 0 {
		t.Fatalf("four k's from row 4 should land on row 0, got %d", y)
	}
	// A further "k" at row 0 should scroll the view, not move off-grid.
	m.Handle(term, sel, "k", time.Now())
	_, y = m.Cursor()
	if y != 0 {
		t.Fatalf("k at row 0 should scroll rather than move the cursor, got row %d", y)
	}
}

func TestSelectModeVisualBeginsSelection(t *testing.T) {
	term := newTestTerminal()
	term.Screen.Feed([]byte("hello"))
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	m.Handle(term, sel, "v", time.Now())
	if !m.Visual() {
		t.Fatal("'v' should engage visual mode")
	}
	if !sel.Active() {
		t.Fatal("'v' should begin a selection")
	}
}

func TestSelectModeYCopiesAndExits(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	m.Handle(term, sel, "v", time.Now())
	m.Handle(term, sel, "y", time.Now())
	if m.Active() {
		t.Fatal("'y' in visual mode should exit select-mode")
	}
}

func TestSelectModeQExits(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()

	if !m.Handle(term, sel, "q", time.Now()) {
		t.Fatal("'q' should be consumed")
	}
	if m.Active() {
		t.Fatal("'q' should exit select-mode")
	}
}

func TestSelectModeHandleNoopWhenInactive(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	sel := selection.New()
	if m.Handle(term, sel, "j", time.Now()) {
		t.Fatal("Handle should return false when select-mode is not active")
	}
}

func TestSelectModeUnknownKeyNotConsumed(t *testing.T) {
	term := newTestTerminal()
	m := NewSelectMode()
	m.Enter(term)
	sel := selection.New()
	if m.Handle(term, sel, "z", time.Now()) {
		t.Fatal("an unbound key should not be consumed")
	}
}

func TestWordForwardSkipsToNextWord(t *testing.T) {
	term := newTestTerminal()
	term.Screen.Feed([]byte("hi there"))
	x, y := wordForward(term, 0, 0)
	if x != 3 || y != 0 {
		t.Fatalf("wordForward from (0,0) in 'hi there' = (%d,%d), want (3,0) ('there')", x, y)
	}
}

func TestWordBackReturnsToWordStart(t *testing.T) {
	term := newTestTerminal()
	term.Screen.Feed([]byte("hi there"))
	x, y := wordBack(term, 5, 0) // mid "there"
	if x != 3 || y != 0 {
		t.Fatalf("wordBack from (5,0) = (%d,%d), want (3,0)", x, y)
	}
}
