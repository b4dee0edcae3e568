package screen

import "strings"

// PlainTextRow returns the plain-text content of one row of the active grid
// (no attributes), with trailing spaces trimmed.
func (s *Screen) PlainTextRow(row int) string {
	g := s.Active()
	if row < 0 || row >= g.Rows {
		return ""
	}
	var b strings.Builder
	for _, c := range g.Lines[row].Cells {
		ch := c.Ch
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}
