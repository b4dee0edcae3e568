// Package cell defines the terminal's atomic display unit and the line it
// composes into. A Glyph is one codepoint plus its attribute bitset and
// palette-indexed colors; a Line is a fixed-width row of Glyphs and is the
// unit of allocation for the scrollback ring.
package cell

import "github.com/mattn/go-runewidth"

// Attr is a bitset of per-cell display attributes.
type Attr uint16

const (
	AttrReverse Attr = 1 << iota
	AttrUnderline
	AttrBold
	AttrGfx // line-drawing charset was active when this cell was written
	AttrItalic
	AttrBlink
	AttrWrap // this cell is the last column of a line that wraps onto the next row
)

// DefaultColor is the palette index meaning "use the terminal default".
const DefaultColor = -1

// Glyph is one displayable cell: a codepoint, its attributes, and its
// foreground/background palette indices (0-255, or DefaultColor).
type Glyph struct {
	Ch    rune
	Attr  Attr
	FG    int
	BG    int
}

// Blank returns the cleared-cell value carrying the given attributes/colors
// (used when erasing regions so the current SGR state is preserved).
func Blank(fg, bg int) Glyph {
	return Glyph{Ch: ' ', FG: fg, BG: bg}
}

// Width returns the terminal column width of the glyph's rune: 2 for wide
// CJK/emoji runes, 1 for everything else. Combining/zero-width runes and the
// zero rune are reported as 1, never 0.
func (g Glyph) Width() int {
	if g.Ch == 0 {
		return 1
	}
	w := runewidth.RuneWidth(g.Ch)
	if w <= 0 {
		return 1
	}
	return w
}

// Line is a fixed-width, ordered sequence of cells — one physical row.
// It is the unit of allocation evicted into the scrollback ring.
type Line struct {
	Cells []Glyph
}

// NewLine allocates a blank line of the given width.
func NewLine(width, fg, bg int) Line {
	l := Line{Cells: make([]Glyph, width)}
	blank := Blank(fg, bg)
	for i := range l.Cells {
		l.Cells[i] = blank
	}
	return l
}

// Width reports the line's current column count.
func (l Line) Width() int { return len(l.Cells) }

// HasWrap reports whether the line's last cell carries the wrap-indicator.
func (l Line) HasWrap() bool {
	if len(l.Cells) == 0 {
		return false
	}
	return l.Cells[len(l.Cells)-1].Attr&AttrWrap != 0
}

// Resized returns a copy of the line re-padded or truncated to newWidth.
// Truncation drops trailing cells outright; growth pads with blanks.
// This is the "truncate, do not rewrap" policy documented in SPEC_FULL.md §5.3.
func (l Line) Resized(newWidth, fg, bg int) Line {
	if newWidth == len(l.Cells) {
		return l
	}
	nl := NewLine(newWidth, fg, bg)
	n := newWidth
	if len(l.Cells) < n {
		n = len(l.Cells)
	}
	copy(nl.Cells, l.Cells[:n])
	return nl
}

// Clone returns a deep copy of the line (used before evicting into the
// scrollback ring, since the live grid's backing array may be reused).
func (l Line) Clone() Line {
	nl := Line{Cells: make([]Glyph, len(l.Cells))}
	copy(nl.Cells, l.Cells)
	return nl
}
