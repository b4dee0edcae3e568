package screen

import "github.com/vtterm/vtterm/internal/cell"

// putChar writes one glyph at the cursor and advances it (spec §4.3
// put_char).
func (s *Screen) putChar(r rune) {
	g := s.Active()
	if s.gfxCharset && r >= 0x41 && r <= 0x7E {
		r = cell.Remap(byte(r))
	}

	if s.cur.X >= s.cols-1 && s.cur.WrapNext {
		if s.Mode(ModeWrap) {
			g.Lines[s.cur.Y].Cells[s.cols-1].Attr |= cell.AttrWrap
			g.markDirty(s.cur.Y)
			s.newline(true)
		}
		s.cur.WrapNext = false
	}

	if s.Mode(ModeInsert) && s.cur.X+1 < s.cols {
		row := g.Lines[s.cur.Y].Cells
		copy(row[s.cur.X+1:], row[s.cur.X:len(row)-1])
	}

	if s.cur.Y >= 0 && s.cur.Y < g.Rows && s.cur.X >= 0 && s.cur.X < g.Cols {
		gl := cell.Glyph{Ch: r, Attr: s.cur.Attr, FG: s.cur.FG, BG: s.cur.BG}
		if s.gfxCharset {
			gl.Attr |= cell.AttrGfx
		}
		g.Lines[s.cur.Y].Cells[s.cur.X] = gl
		g.markDirty(s.cur.Y)
	}

	if s.cur.X+1 < s.cols {
		s.cur.X++
	} else {
		s.cur.WrapNext = true
	}
}

// newline moves the cursor down a line, scrolling the region if at its
// bottom; firstCol resets the column to 0 (spec §4.3 newline).
func (s *Screen) newline(firstCol bool) {
	s.cur.WrapNext = false
	if s.cur.Y == s.scrollBot {
		s.scrollUp(s.scrollTop, 1)
	} else if s.cur.Y < s.rows-1 {
		s.cur.Y++
	}
	if firstCol {
		s.cur.X = 0
	}
}

// reverseNewline moves the cursor up a line, scrolling down if at the top
// of the scroll region (ESC M / RI).
func (s *Screen) reverseNewline() {
	s.cur.WrapNext = false
	if s.cur.Y == s.scrollTop {
		s.scrollDown(s.scrollTop, 1)
	} else if s.cur.Y > 0 {
		s.cur.Y--
	}
}

// scrollUp scrolls [orig, scrollBot] up by n lines (spec §4.3 scroll_up):
// only the primary grid at ybase==0 evicts to scrollback, and only when
// orig == scrollTop (the region includes the true top).
func (s *Screen) scrollUp(orig, n int) {
	bot := s.scrollBot
	if orig > bot {
		return
	}
	if n > bot-orig+1 {
		n = bot - orig + 1
	}
	if n <= 0 {
		return
	}
	g := s.Active()

	atLiveEdge := s.Gate == nil || s.Gate.AtLiveEdge()
	evict := s.Evictor != nil && !s.Mode(ModeAltScreen) && orig == s.scrollTop && atLiveEdge
	if evict {
		for i := 0; i < n; i++ {
			s.Evictor.Evict(g.Lines[orig+i].Clone())
		}
	}

	copy(g.Lines[orig:bot+1-n], g.Lines[orig+n:bot+1])
	for i := bot - n + 1; i <= bot; i++ {
		g.Lines[i] = cell.NewLine(s.cols, cell.DefaultColor, cell.DefaultColor)
	}
	for i := orig; i <= bot; i++ {
		g.markDirty(i)
	}
	if s.SelHook != nil {
		s.SelHook.OnScroll(orig, -n)
	}
}

// scrollDown scrolls [orig, scrollBot] down by n lines (spec §4.3
// scroll_down): never touches scrollback.
func (s *Screen) scrollDown(orig, n int) {
	bot := s.scrollBot
	if orig > bot {
		return
	}
	if n > bot-orig+1 {
		n = bot - orig + 1
	}
	if n <= 0 {
		return
	}
	g := s.Active()
	copy(g.Lines[orig+n:bot+1], g.Lines[orig:bot+1-n])
	for i := orig; i < orig+n; i++ {
		g.Lines[i] = cell.NewLine(s.cols, cell.DefaultColor, cell.DefaultColor)
	}
	for i := orig; i <= bot; i++ {
		g.markDirty(i)
	}
	if s.SelHook != nil {
		s.SelHook.OnScroll(orig, n)
	}
}

// moveTo clamps (x,y) within [0,col-1] x [miny,maxy], where the vertical
// bound is the scroll region under origin mode, else the full grid (spec
// §4.3 move_to). It always clears wrap-next.
func (s *Screen) moveTo(x, y int) {
	s.cur.WrapNext = false
	miny, maxy := 0, s.rows-1
	if s.cur.Origin {
		miny, maxy = s.scrollTop, s.scrollBot
	}
	if x < 0 {
		x = 0
	}
	if x >= s.cols {
		x = s.cols - 1
	}
	if y < miny {
		y = miny
	}
	if y > maxy {
		y = maxy
	}
	s.cur.X, s.cur.Y = x, y
}

// clearRegion writes the current attribute + space across the rectangle,
// clearing any intersecting selection (spec §4.3 clear_region).
func (s *Screen) clearRegion(x1, y1, x2, y2 int) {
	g := s.Active()
	blank := cell.Blank(s.cur.FG, s.cur.BG)
	for y := y1; y <= y2 && y < g.Rows; y++ {
		if y < 0 {
			continue
		}
		for x := x1; x <= x2 && x < g.Cols; x++ {
			if x < 0 {
				continue
			}
			g.Lines[y].Cells[x] = blank
		}
		g.markDirty(y)
	}
	if s.SelHook != nil {
		s.SelHook.OnClear(x1, y1, x2, y2)
	}
}

// swapScreen exchanges primary/alternate, toggles ModeAltScreen, and marks
// everything dirty (spec §4.3 swap_screen).
func (s *Screen) swapScreen() {
	s.setMode(ModeAltScreen, !s.Mode(ModeAltScreen))
	s.Active().markAllDirty()
	if s.SelHook != nil {
		s.SelHook.OnSwapScreen()
	}
}

// Resize changes geometry, sliding content up if the cursor would fall off
// a shrinking bottom, resetting the scroll region, and rebuilding tab
// stops (spec §4.3 resize).
func (s *Screen) Resize(cols, rows int) {
	if rows < s.rows && s.cur.Y >= rows {
		slide := s.cur.Y - rows + 1
		s.slideGrid(&s.primary, slide)
		s.slideGrid(&s.alt, slide)
		s.cur.Y -= slide
	}

	s.primary = resizeGrid(s.primary, rows, cols)
	s.alt = resizeGrid(s.alt, rows, cols)
	s.rows, s.cols = rows, cols

	if s.cur.X >= cols {
		s.cur.X = cols - 1
	}
	if s.cur.Y >= rows {
		s.cur.Y = rows - 1
	}

	s.scrollTop, s.scrollBot = 0, rows-1
	s.rebuildTabstops()
	s.primary.markAllDirty()
	s.alt.markAllDirty()
}

func (s *Screen) slideGrid(g *Grid, n int) {
	if n <= 0 || n >= len(g.Lines) {
		return
	}
	copy(g.Lines, g.Lines[n:])
	for i := len(g.Lines) - n; i < len(g.Lines); i++ {
		g.Lines[i] = cell.NewLine(g.Cols, cell.DefaultColor, cell.DefaultColor)
	}
}

func resizeGrid(old Grid, rows, cols int) Grid {
	ng := newGrid(rows, cols, cell.DefaultColor, cell.DefaultColor)
	for r := 0; r < rows && r < old.Rows; r++ {
		ng.Lines[r] = old.Lines[r].Resized(cols, cell.DefaultColor, cell.DefaultColor)
	}
	return ng
}

// clampCursor clamps (x,y) into bounds after operations that might move it
// out (spec: "0 <= cursor.x < col and 0 <= cursor.y < row").
func (s *Screen) clampCursor() {
	if s.cur.X < 0 {
		s.cur.X = 0
	}
	if s.cur.X >= s.cols {
		s.cur.X = s.cols - 1
	}
	if s.cur.Y < 0 {
		s.cur.Y = 0
	}
	if s.cur.Y >= s.rows {
		s.cur.Y = s.rows - 1
	}
}

// fullReset implements DECSTR (spec §4.6 reset()): default attrs, full
// scroll region, tab stops every tabWidth, wrap on, cursors saved to (0,0).
func (s *Screen) fullReset() {
	s.mode = ModeWrap | ModeEcho
	s.cur = Cursor{FG: cell.DefaultColor, BG: cell.DefaultColor}
	s.scrollTop, s.scrollBot = 0, s.rows-1
	s.rebuildTabstops()
	s.gfxCharset = false
	s.Title = ""
	s.primary = newGrid(s.rows, s.cols, cell.DefaultColor, cell.DefaultColor)
	s.alt = newGrid(s.rows, s.cols, cell.DefaultColor, cell.DefaultColor)
	s.savedPrimary = saved{c: s.cur, valid: true}
	s.savedAlt = saved{c: s.cur, valid: true}
}

// saveCursor/restoreCursor implement DECSC/DECRC (ESC 7 / ESC 8, CSI s/u),
// keeping independent slots per grid since alt-screen toggles (CSI ?1049h)
// also save/restore the cursor.
func (s *Screen) saveCursor() {
	slot := &s.savedPrimary
	if s.Mode(ModeAltScreen) {
		slot = &s.savedAlt
	}
	*slot = saved{c: s.cur, valid: true}
}

func (s *Screen) restoreCursor() {
	slot := &s.savedPrimary
	if s.Mode(ModeAltScreen) {
		slot = &s.savedAlt
	}
	if slot.valid {
		s.cur = slot.c
	}
	s.clampCursor()
}
