// Package selection implements the terminal engine's selection and snap
// model (spec §4.5, Component E): coordinates, snap mode, rectangular vs
// linear selection, serialization, and its interaction with scrolling and
// alt-screen swaps.
package selection

// SnapMode is the selection's word/line snap behavior (spec §3 Selection).
type SnapMode int

const (
	SnapNone SnapMode = iota
	SnapWord
	SnapLine
)

// Type distinguishes linear (reading-order) from rectangular (block)
// selection (spec §3 Selection).
type Type int

const (
	Linear Type = iota
	Rectangular
)

// Point is a grid coordinate (origin top-left).
type Point struct{ X, Y int }

// Source is the minimal read-only view selection needs of the grid it
// operates over: dimensions, cell content, and the wrap-indicator (spec
// §4.5 snap modes chain across wrapped lines). vt.Terminal supplies this
// via an adapter over screen.Screen so this package never imports screen
// directly (spec §2 layering: E sits beside C/D, not above them).
type Source interface {
	Cols() int
	Rows() int
	RuneAt(x, y int) rune
	WrapAt(y int) bool // true if row y's last cell carries the wrap-indicator
}

// DefaultWordDelimiters is the delimiter set used by word-snap (spec §4.5
// "configured word-delimiter set"). New copies it into Selection.Delimiters,
// but snap does not read that field: word-snap always uses this constant.
const DefaultWordDelimiters = " \t\n\x00`'\"()[]{}<>|"

// Selection is process-wide (spec §3: "one active selection across all
// tabs"); the tab manager owns a single instance of this type, not one per
// terminal.
type Selection struct {
	active bool

	bx, by int // begin
	ex, ey int // end (drag head)

	normB, normE Point // normalized, b <= e in reading order

	snap    SnapMode
	selType Type
	alt     bool // alt-screen flag at selection creation time

	Delimiters string
}

// New returns an inactive Selection with default word delimiters.
func New() *Selection {
	return &Selection{Delimiters: DefaultWordDelimiters}
}

// Active reports whether a selection currently exists.
func (s *Selection) Active() bool { return s.active }

// Type/Snap report the current selection's classification.
func (s *Selection) Type() Type     { return s.selType }
func (s *Selection) Snap() SnapMode { return s.snap }

// Begin starts a new selection at (x,y) with the given snap mode, type, and
// current alt-screen state (spec §4.5, §3 Selection fields).
func (s *Selection) Begin(x, y int, snap SnapMode, typ Type, alt bool, src Source) {
	s.active = true
	s.bx, s.by = x, y
	s.ex, s.ey = x, y
	s.snap = snap
	s.selType = typ
	s.alt = alt
	s.Extend(x, y, src)
}

// Clear deactivates the selection.
func (s *Selection) Clear() { s.active = false }

// Extend moves the drag head to (x,y), re-applying snap and recomputing the
// normalized (b,e) pair (spec §4.5: "recomputed on every mouse motion").
func (s *Selection) Extend(x, y int, src Source) {
	if !s.active {
		return
	}
	s.ex, s.ey = x, y

	bx, by, ex, ey := s.bx, s.by, s.ex, s.ey
	if by < ey || (by == ey && bx < ex) {
		bx, by = snap(s.snap, bx, by, -1, src)
		ex, ey = snap(s.snap, ex, ey, +1, src)
	} else {
		ex, ey = snap(s.snap, ex, ey, -1, src)
		bx, by = snap(s.snap, bx, by, +1, src)
	}
	s.bx, s.by, s.ex, s.ey = bx, by, ex, ey

	if by < ey || (by == ey && bx <= ex) {
		s.normB, s.normE = Point{bx, by}, Point{ex, ey}
	} else {
		s.normB, s.normE = Point{ex, ey}, Point{bx, by}
	}
}

// Normalized returns the selection's reading-order (begin, end) pair.
func (s *Selection) Normalized() (Point, Point) { return s.normB, s.normE }

// snap expands (x,y) outward in direction dir according to mode, walking
// across wrap boundaries (ported from st.c's selsnap — spec §4.5).
func snap(mode SnapMode, x, y, dir int, src Source) (int, int) {
	cols := src.Cols()
	rows := src.Rows()
	switch mode {
	case SnapWord:
		for {
			if dir < 0 && x <= 0 {
				if y > 0 && src.WrapAt(y-1) {
					y--
					x = cols - 1
					continue
				}
				break
			}
			if dir > 0 && x >= cols-1 {
				if y < rows-1 && src.WrapAt(y) {
					y++
					x = 0
					continue
				}
				break
			}
			nx := x + dir
			if nx < 0 || nx >= cols {
				break
			}
			if isDelim(src.RuneAt(nx, y)) {
				break
			}
			x = nx
		}
	case SnapLine:
		if dir < 0 {
			x = 0
			for y > 0 && src.WrapAt(y-1) {
				y--
			}
		} else {
			x = cols - 1
			for y < rows-1 && src.WrapAt(y) {
				y++
			}
		}
	default:
		// No snap; st.c additionally selects the whole line when the
		// scan hits only spaces to the end — skipped here since
		// SnapNone means "exactly what was dragged" in this engine.
	}
	return x, y
}

func isDelim(r rune) bool {
	return r == ' ' || r == '\t' || r == 0 ||
		containsRune(DefaultWordDelimiters, r)
}

func containsRune(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

// Selected reports whether (x,y) lies within the current selection (ported
// from st.c's `selected`, spec §4.5).
func (s *Selection) Selected(x, y int) bool {
	if !s.active {
		return false
	}
	b, e := s.normB, s.normE
	if s.selType == Rectangular {
		return y >= b.Y && y <= e.Y && x >= b.X && x <= e.X
	}
	if b.Y == e.Y {
		return y == b.Y && x >= b.X && x <= e.X
	}
	if y == b.Y {
		return x >= b.X
	}
	if y == e.Y {
		return x <= e.X
	}
	return y > b.Y && y < e.Y
}

// VisuallySuppressed reports whether the selection should render as absent
// because the buffer it was made on differs from the currently active one
// (spec §4.5 "Alt-screen").
func (s *Selection) VisuallySuppressed(currentAlt bool) bool {
	return s.active && s.alt != currentAlt
}

// OnSwapScreen is the screen.SelectionHook callback for swap_screen (spec
// §4.3 swap_screen: "any intersecting selection is cleared" is NOT what
// happens here — per spec §4.5, alt-screen toggling only visually
// suppresses the selection; it is not cleared, so it reappears correctly
// if the buffers swap back).
func (s *Selection) OnSwapScreen() {}

// OnClear implements screen.SelectionHook for clear_region: any selection
// intersecting the cleared rectangle is dropped (spec §4.3).
func (s *Selection) OnClear(x1, y1, x2, y2 int) {
	if !s.active {
		return
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if s.Selected(x, y) {
				s.Clear()
				return
			}
		}
	}
}

// OnScroll implements screen.SelectionHook for scroll_up/scroll_down: shifts
// selection rows by delta when they intersect [orig, orig+span); if an
// endpoint falls outside afterward, the selection is dropped (spec §4.5
// "selection_scroll").
func (s *Selection) OnScroll(orig, delta int) {
	if !s.active {
		return
	}
	if s.by < orig && s.ey < orig {
		return
	}
	s.by += delta
	s.ey += delta
	s.normB.Y += delta
	s.normE.Y += delta
	if s.by < 0 || s.ey < 0 {
		s.Clear()
	}
}
