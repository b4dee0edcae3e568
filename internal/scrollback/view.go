package scrollback

import "github.com/vtterm/vtterm/internal/cell"

// View composes a Ring with the live-screen snapshot (spec §3 "last_line")
// to implement ybase view-shift (spec §4.4). It is owned by one vt.Terminal
// — the snapshot is correctness-critical (spec §9 DESIGN NOTES): without
// it, returning to the live edge would lose content that arrived while the
// view was shifted, since PTY bytes keep landing on the hidden live grid.
type View struct {
	Ring     *Ring
	ybase    int
	lastLine []cell.Line
}

// NewView allocates a View with the given scrollback capacity.
func NewView(capacity int) *View {
	return &View{Ring: New(capacity)}
}

// YBase returns the current view base (<=0; 0 means the live screen).
func (v *View) YBase() int { return v.ybase }

// AtLiveEdge reports whether the live screen is currently shown.
func (v *View) AtLiveEdge() bool { return v.ybase == 0 }

// SnapToLive resets ybase to 0 if shifted, reporting whether it changed
// anything (spec §4.4: "any byte arrival additionally triggers a snap back
// to the live edge before processing").
func (v *View) SnapToLive() bool {
	if v.ybase == 0 {
		return false
	}
	v.ybase = 0
	return true
}

// ScrollView implements spec §4.4 scroll_view(n): it recomputes ybase,
// snapshotting live rows when leaving the live edge, and returns the rows
// that should now be displayed. liveRows is the current live grid's lines;
// width/fg/bg describe the grid geometry/default colors used to pad
// scrollback lines of a different width (spec: "reallocated/truncated in
// place on read"). The boolean result reports whether the caller should
// restore its live grid from the returned rows verbatim (true, when
// returning to ybase==0) versus treat them as a read-only composed view
// (false, when still off-edge).
func (v *View) ScrollView(n int, liveRows []cell.Line, width, fg, bg int) (display []cell.Line, liveRestored bool) {
	rows := len(liveRows)
	old := v.ybase

	nb := old + n
	if nb > 0 {
		nb = 0
	}
	if min := -v.Ring.Len(); nb < min {
		nb = min
	}
	v.ybase = nb

	if old == 0 && nb < 0 {
		v.lastLine = make([]cell.Line, rows)
		for i, l := range liveRows {
			v.lastLine[i] = l.Clone()
		}
	}

	if nb == 0 && old < 0 {
		display = make([]cell.Line, rows)
		copy(display, v.lastLine)
		return display, true
	}

	display = make([]cell.Line, rows)
	for i := 0; i < rows; i++ {
		si := i + v.ybase
		switch {
		case si < 0:
			if l, ok := v.Ring.Get(-(si + 1), width, fg, bg); ok {
				display[i] = l
			} else {
				display[i] = cell.NewLine(width, fg, bg)
			}
		case si < len(v.lastLine):
			display[i] = v.lastLine[si]
		default:
			display[i] = cell.NewLine(width, fg, bg)
		}
	}
	return display, false
}
