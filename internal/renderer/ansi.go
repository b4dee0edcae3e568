// Package renderer paints a screen.Grid (or a scrollback-composed view) as
// an ANSI string, grounded on the teacher's internal/terminal/screen.go
// Render/RenderRegion methods, generalized to read cell.Line/cell.Glyph
// instead of the teacher's own cell type. Colors are emitted as palette
// indices (30-37/90-97, 40-47/100-107, or 38;5;n / 48;5;n) regardless of the
// host terminal; the termenv Profile below is detected but not consulted.
package renderer

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/vtterm/vtterm/internal/cell"
	"github.com/vtterm/vtterm/internal/screen"
	"github.com/vtterm/vtterm/internal/selection"
	"github.com/vtterm/vtterm/internal/vt"
)

// Profile holds the host terminal's termenv color profile. sgrFor does not
// read it, so palette colors are not downgraded on limited terminals.
var Profile = termenv.ColorProfile()

// sgrFor returns the SGR escape sequence that switches drawing state to g,
// or "" if g has the same attributes and colors as prev (spec: "only emit
// SGR on a style change"). forceReverse always emits.
func sgrFor(g cell.Glyph, prev cell.Glyph, forceReverse bool) string {
	if !forceReverse && g.Attr == prev.Attr && g.FG == prev.FG && g.BG == prev.BG {
		return ""
	}
	parts := []string{"0"}
	if g.Attr&cell.AttrBold != 0 {
		parts = append(parts, "1")
	}
	if g.Attr&cell.AttrItalic != 0 {
		parts = append(parts, "3")
	}
	if g.Attr&cell.AttrUnderline != 0 {
		parts = append(parts, "4")
	}
	if g.Attr&cell.AttrBlink != 0 {
		parts = append(parts, "5")
	}
	reverse := g.Attr&cell.AttrReverse != 0
	if forceReverse {
		reverse = !reverse
	}
	if reverse {
		parts = append(parts, "7")
	}
	if g.FG != cell.DefaultColor {
		parts = append(parts, fgSGR(g.FG))
	}
	if g.BG != cell.DefaultColor {
		parts = append(parts, bgSGR(g.BG))
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func fgSGR(idx int) string {
	if idx < 8 {
		return strconv.Itoa(30 + idx)
	}
	if idx < 16 {
		return strconv.Itoa(90 + idx - 8)
	}
	return "38;5;" + strconv.Itoa(idx)
}

func bgSGR(idx int) string {
	if idx < 8 {
		return strconv.Itoa(40 + idx)
	}
	if idx < 16 {
		return strconv.Itoa(100 + idx - 8)
	}
	return "48;5;" + strconv.Itoa(idx)
}

// RenderRegion renders the sub-rectangle [startRow,endRow]x[startCol,endCol]
// of lines (0-indexed, inclusive), honoring sel for reverse-video
// highlighting. rowOffset is added to y before testing selection.Selected,
// since lines may come from a scrollback-composed view whose row 0 does not
// correspond to grid row 0.
func RenderRegion(lines []cell.Line, startRow, startCol, endRow, endCol, rowOffset int, sel *selection.Selection, suppressSel bool) string {
	var b strings.Builder
	// The first cell always sets its style: no real cell has color -2.
	prev := cell.Glyph{FG: cell.DefaultColor - 1, BG: cell.DefaultColor - 1}
	first := true

	for r := startRow; r <= endRow && r < len(lines); r++ {
		if !first {
			b.WriteByte('\n')
			b.WriteString("\x1b[0m")
			prev = cell.Glyph{FG: cell.DefaultColor, BG: cell.DefaultColor}
		}
		first = false

		line := lines[r]
		for c := startCol; c <= endCol && c < len(line.Cells); c++ {
			g := line.Cells[c]
			highlighted := !suppressSel && sel != nil && sel.Selected(c, r+rowOffset)
			if seq := sgrFor(g, prev, highlighted); seq != "" {
				b.WriteString(seq)
			}
			prev = g
			if highlighted {
				prev.Attr ^= cell.AttrReverse // the style actually drawn
			}
			ch := g.Ch
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
	}
	b.WriteString("\x1b[0m")
	return b.String()
}

// RenderTerminal paints a terminal's focused view at w×h, bottom-aligned
// (spec: teacher's renderScreenContent), reading from the scrollback view
// when shifted off the live edge and from the live grid otherwise.
func RenderTerminal(t *vt.Terminal, sel *selection.Selection, w, h int) string {
	var lines []cell.Line
	var rowOffset int
	suppressSel := sel != nil && sel.VisuallySuppressed(t.Screen.Mode(screen.ModeAltScreen))

	if display := t.ScrollbackDisplay(); display != nil {
		lines = display
		rowOffset = t.Scrollback.YBase()
	} else {
		g := t.Screen.Active()
		lines = g.Lines
	}

	rows := len(lines)
	startRow := 0
	if rows > h {
		startRow = rows - h
	}
	endRow := startRow + h - 1
	if endRow >= rows {
		endRow = rows - 1
	}
	endCol := w - 1

	return RenderRegion(lines, startRow, 0, endRow, endCol, rowOffset, sel, suppressSel)
}
