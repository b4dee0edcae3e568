// Package screen implements the two-buffer screen model of spec §4.3
// (Component C): primary and alternate grids, cursor, scroll region, tab
// stops, mode set, and dirty-row tracking. It implements escape.Handler so
// an escape.Parser can drive it directly off PTY bytes.
package screen

import (
	"github.com/vtterm/vtterm/internal/cell"
	"github.com/vtterm/vtterm/internal/escape"
)

// Cursor is the screen's cursor position, drawing attributes, and flags
// (spec §3 Cursor).
type Cursor struct {
	X, Y      int
	FG, BG    int
	Attr      cell.Attr
	WrapNext  bool
	Origin    bool // origin-mode clamp applies to this cursor's moves
}

// saved is a snapshot of Cursor used by the DEC save/restore slot.
type saved struct {
	c     Cursor
	valid bool
}

// Grid is one row×col cell buffer with its own dirty-row tracking.
type Grid struct {
	Rows, Cols int
	Lines      []cell.Line
	Dirty      []bool
}

func newGrid(rows, cols, fg, bg int) Grid {
	g := Grid{Rows: rows, Cols: cols, Lines: make([]cell.Line, rows), Dirty: make([]bool, rows)}
	for i := range g.Lines {
		g.Lines[i] = cell.NewLine(cols, fg, bg)
	}
	return g
}

func (g *Grid) markDirty(y int) {
	if y >= 0 && y < len(g.Dirty) {
		g.Dirty[y] = true
	}
}

func (g *Grid) markAllDirty() {
	for i := range g.Dirty {
		g.Dirty[i] = true
	}
}

// EvictSink receives lines scrolled off the top of the primary grid's scroll
// region, so they can be appended to the scrollback ring (spec §4.3
// scroll_up, §4.4). Implemented by scrollback.Ring via an adapter owned by
// vt.Terminal — screen itself stays free of a dependency on the scrollback
// package, per the component layering in spec §2.
type EvictSink interface {
	Evict(l cell.Line)
}

// SelectionHook lets the selection model react to buffer mutations it must
// track (spec §4.5 "selection_scroll", "any intersecting selection is
// cleared").
type SelectionHook interface {
	OnScroll(orig, delta int)
	OnClear(x1, y1, x2, y2 int)
	OnSwapScreen()
}

// ViewGate reports whether the view is currently shifted off the live edge
// (ybase != 0). When true, newly-arrived bytes must first snap the view
// back to the live edge before Screen applies them (spec §4.4). Screen asks
// the gate rather than owning ybase itself, since ybase belongs to the
// scrollback/view-shift component (D), not the grid component (C).
type ViewGate interface {
	SnapToLiveBeforeWrite()
	AtLiveEdge() bool
}

// Screen owns the primary and alternate grids, cursor, scroll region, tab
// stops, and mode set for one terminal instance (spec §4.3).
type Screen struct {
	rows, cols int

	primary Grid
	alt     Grid

	cur     Cursor
	savedPrimary saved
	savedAlt     saved

	scrollTop, scrollBot int // 0-indexed, inclusive

	tabstops []bool
	tabWidth int

	mode Mode

	gfxCharset bool // DEC special graphics (line-drawing) active on G0

	parser *escape.Parser

	Evictor   EvictSink
	SelHook   SelectionHook
	Gate      ViewGate
	Responder Responder

	Title        string
	PaletteDirty bool // an OSC 4/104 color change occurred since last read

	// AltScreenDisabled makes ?47/?1047/?1049 a no-op (spec §6 "-a").
	AltScreenDisabled bool

	// Logger receives "unknown sequence" notices (spec §7: "log and
	// skip the offending sequence; never crash"). Nil is a valid,
	// silent logger.
	Logger Logger
}

// Logger is the minimal structured-logging contract Screen needs. vt.New
// injects its own vt.Logger here (the app passes config.AutoLogger, or a
// no-op logger when none is given); Screen itself stays free of any
// logging import.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// New allocates a Screen of the given geometry with wrap and echo enabled
// by default, tab stops every tabWidth columns.
func New(rows, cols, tabWidth int) *Screen {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	s := &Screen{
		rows: rows, cols: cols,
		primary: newGrid(rows, cols, cell.DefaultColor, cell.DefaultColor),
		alt:     newGrid(rows, cols, cell.DefaultColor, cell.DefaultColor),
		tabWidth: tabWidth,
		mode:     ModeWrap | ModeEcho,
		parser:   escape.New(),
	}
	s.cur.FG, s.cur.BG = cell.DefaultColor, cell.DefaultColor
	s.rebuildTabstops()
	s.scrollTop, s.scrollBot = 0, rows-1
	return s
}

func (s *Screen) rebuildTabstops() {
	s.tabstops = make([]bool, s.cols)
	for i := s.tabWidth; i < s.cols; i += s.tabWidth {
		s.tabstops[i] = true
	}
}

// Rows/Cols report current geometry.
func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

// Cursor returns the current cursor state.
func (s *Screen) Cursor() Cursor { return s.cur }

// Active returns the grid currently selected for display/mutation
// (primary, or alternate when ModeAltScreen is set).
func (s *Screen) Active() *Grid {
	if s.Mode(ModeAltScreen) {
		return &s.alt
	}
	return &s.primary
}

// Primary/Alternate expose both grids directly (needed by resize/view-shift
// and by the renderer adapter, which always paints the focused grid
// regardless of which is "active").
func (s *Screen) Primary() *Grid   { return &s.primary }
func (s *Screen) Alternate() *Grid { return &s.alt }

// Feed decodes buf through the escape parser, applying every resulting
// mutation to the active grid. If the view is shifted off the live edge,
// it snaps back to the live edge first (spec §4.4).
func (s *Screen) Feed(buf []byte) {
	if s.Gate != nil {
		s.Gate.SnapToLiveBeforeWrite()
	}
	s.parser.Feed(buf, s)
}

// CellAt returns the cell at (row, col) in the active grid, or a blank cell
// out of bounds.
func (s *Screen) CellAt(row, col int) cell.Glyph {
	g := s.Active()
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return cell.Blank(cell.DefaultColor, cell.DefaultColor)
	}
	return g.Lines[row].Cells[col]
}

// ScrollRegion returns the current [top, bot] inclusive row bounds.
func (s *Screen) ScrollRegion() (int, int) { return s.scrollTop, s.scrollBot }
