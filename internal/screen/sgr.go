package screen

import "github.com/vtterm/vtterm/internal/cell"

// handleSGR updates the current drawing attributes per spec §4.2 "SGR
// semantics".
func (s *Screen) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.cur.Attr = 0
			s.cur.FG, s.cur.BG = cell.DefaultColor, cell.DefaultColor
		case p == 1:
			s.cur.Attr |= cell.AttrBold
		case p == 3:
			s.cur.Attr |= cell.AttrItalic
		case p == 4:
			s.cur.Attr |= cell.AttrUnderline
		case p == 5 || p == 6:
			s.cur.Attr |= cell.AttrBlink
		case p == 7:
			s.cur.Attr |= cell.AttrReverse
		case p == 21 || p == 22:
			s.cur.Attr &^= cell.AttrBold
		case p == 23:
			s.cur.Attr &^= cell.AttrItalic
		case p == 24:
			s.cur.Attr &^= cell.AttrUnderline
		case p == 25 || p == 26:
			s.cur.Attr &^= cell.AttrBlink
		case p == 27:
			s.cur.Attr &^= cell.AttrReverse
		case p >= 30 && p <= 37:
			s.cur.FG = p - 30
		case p == 38:
			n, consumed := parseExtendedColor(params, i)
			if n >= 0 {
				s.cur.FG = n
			}
			i += consumed
		case p == 39:
			s.cur.FG = cell.DefaultColor
		case p >= 40 && p <= 47:
			s.cur.BG = p - 40
		case p == 48:
			n, consumed := parseExtendedColor(params, i)
			if n >= 0 {
				s.cur.BG = n
			}
			i += consumed
		case p == 49:
			s.cur.BG = cell.DefaultColor
		case p >= 90 && p <= 97:
			s.cur.FG = p - 90 + 8
		case p >= 100 && p <= 107:
			s.cur.BG = p - 100 + 8
		default:
			s.Unknown("SGR", "")
		}
		i++
	}
}

// parseExtendedColor parses "38;5;n" (256-color palette) starting at
// params[i]=="38". Truecolor ("38;2;r;g;b") is accepted and folded onto the
// nearest 256-palette index, per spec §1's non-goal of true-color beyond
// the indexed palette. Returns the resolved palette index (or -1 if the
// sequence is malformed) and how many extra params[] slots were consumed.
func parseExtendedColor(params []int, i int) (int, int) {
	if i+1 >= len(params) {
		return -1, 0
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			return params[i+2], 2
		}
	case 2:
		if i+4 < len(params) {
			r, g, b := params[i+2], params[i+3], params[i+4]
			return nearest256(r, g, b), 4
		}
	}
	return -1, 1
}

// nearest256 maps a truecolor RGB triple onto the 6x6x6 color cube used by
// the xterm 256-color palette (indices 16-231).
func nearest256(r, g, b int) int {
	q := func(v int) int {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v * 5 / 255
	}
	return 16 + 36*q(r) + 6*q(g) + q(b)
}
