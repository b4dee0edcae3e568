package selection

import (
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// TextSource is the grid view Text reads from. It adds nothing to Source:
// RuneAt, WrapAt and Cols are all serialization needs.
type TextSource interface {
	Source
}

// Text extracts the selected region as a string, joining wrapped rows
// without an inserted newline and otherwise inserting "\n" between rows
// (spec §4.5 "Serialization": reading-order text, wrap-joined).
func (s *Selection) Text(src TextSource) string {
	if !s.active {
		return ""
	}
	b, e := s.normB, s.normE
	var out strings.Builder

	for y := b.Y; y <= e.Y; y++ {
		x0, x1 := 0, src.Cols()-1
		if s.selType == Rectangular {
			x0, x1 = b.X, e.X
		} else {
			if y == b.Y {
				x0 = b.X
			}
			if y == e.Y {
				x1 = e.X
			}
		}
		line := rowText(src, y, x0, x1)
		out.WriteString(line)
		if y != e.Y && (s.selType == Rectangular || !src.WrapAt(y)) {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func rowText(src Source, y, x0, x1 int) string {
	var b strings.Builder
	for x := x0; x <= x1 && x < src.Cols(); x++ {
		r := src.RuneAt(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// ClipboardSequence wraps text in an OSC 52 set-clipboard escape sequence.
// Text does not call it, and no other code in this module sends it
// anywhere.
func ClipboardSequence(text string) string {
	return osc52.New(text).String()
}
