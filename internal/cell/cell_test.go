package cell

import "testing"

func TestGlyphWidth(t *testing.T) {
	tests := []struct {
		ch   rune
		want int
	}{
		{0, 1},
		{'a', 1},
		{' ', 1},
		{'世', 2},
		{0x0301, 1}, // combining acute accent clamps to 1, not 0, per Width's doc
	}
	for _, tt := range tests {
		g := Glyph{Ch: tt.ch}
		if got := g.Width(); got != tt.want {
			t.Errorf("Glyph{Ch: %q}.Width() = %d, want %d", tt.ch, got, tt.want)
		}
	}
}

func TestNewLineIsBlank(t *testing.T) {
	l := NewLine(10, 3, 4)
	if l.Width() != 10 {
		t.Fatalf("Width() = %d, want 10", l.Width())
	}
	for i, g := range l.Cells {
		if g.Ch != ' ' || g.FG != 3 || g.BG != 4 {
			t.Errorf("cell %d = %+v, want blank with FG=3 BG=4", i, g)
		}
	}
}

func TestLineHasWrap(t *testing.T) {
	l := NewLine(5, DefaultColor, DefaultColor)
	if l.HasWrap() {
		t.Fatal("fresh line should not have wrap set")
	}
	l.Cells[len(l.Cells)-1].Attr |= AttrWrap
	if !l.HasWrap() {
		t.Fatal("expected HasWrap() after setting AttrWrap on last cell")
	}

	var empty Line
	if empty.HasWrap() {
		t.Fatal("empty line should report HasWrap() == false")
	}
}

func TestLineResizedGrow(t *testing.T) {
	l := NewLine(3, DefaultColor, DefaultColor)
	l.Cells[0].Ch = 'a'
	l.Cells[1].Ch = 'b'
	l.Cells[2].Ch = 'c'

	grown := l.Resized(5, DefaultColor, DefaultColor)
	if grown.Width() != 5 {
		t.Fatalf("Width() = %d, want 5", grown.Width())
	}
	if grown.Cells[0].Ch != 'a' || grown.Cells[2].Ch != 'c' {
		t.Fatal("grow should preserve existing cells")
	}
	if grown.Cells[3].Ch != ' ' || grown.Cells[4].Ch != ' ' {
		t.Fatal("grow should pad new cells with blanks")
	}
}

func TestLineResizedTruncate(t *testing.T) {
	l := NewLine(5, DefaultColor, DefaultColor)
	l.Cells[4].Ch = 'z'

	truncated := l.Resized(3, DefaultColor, DefaultColor)
	if truncated.Width() != 3 {
		t.Fatalf("Width() = %d, want 3", truncated.Width())
	}
}

func TestLineResizedSameWidthIsNoop(t *testing.T) {
	l := NewLine(4, DefaultColor, DefaultColor)
	l.Cells[0].Ch = 'x'
	same := l.Resized(4, 9, 9)
	if same.Cells[1].FG == 9 {
		t.Fatal("Resized with equal width should return the line unchanged, not re-blank it")
	}
}

func TestLineCloneIsIndependent(t *testing.T) {
	l := NewLine(3, DefaultColor, DefaultColor)
	l.Cells[0].Ch = 'a'

	c := l.Clone()
	c.Cells[0].Ch = 'b'

	if l.Cells[0].Ch != 'a' {
		t.Fatal("mutating the clone mutated the original — Clone is not a deep copy")
	}
}

func TestBlankPreservesColors(t *testing.T) {
	b := Blank(7, 2)
	if b.Ch != ' ' || b.FG != 7 || b.BG != 2 {
		t.Errorf("Blank(7, 2) = %+v", b)
	}
}
