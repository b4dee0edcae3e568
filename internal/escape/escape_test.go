package escape

import "testing"

// recorder implements Handler, capturing every dispatched event in order.
type recorder struct {
	prints   []rune
	execs    []byte
	escs     []byte
	charsets [][2]byte
	csis     []csiEvent
	osc      [][]byte
	strs     []strEvent
	unknowns []string
}

type csiEvent struct {
	final byte
	p     Params
}

type strEvent struct {
	kind    byte
	payload []byte
}

func (r *recorder) Print(ru rune)   { r.prints = append(r.prints, ru) }
func (r *recorder) Execute(b byte)  { r.execs = append(r.execs, b) }
func (r *recorder) ESCDispatch(final byte) { r.escs = append(r.escs, final) }
func (r *recorder) DesignateCharset(slot, final byte) {
	r.charsets = append(r.charsets, [2]byte{slot, final})
}
func (r *recorder) CSIDispatch(final byte, p Params) {
	r.csis = append(r.csis, csiEvent{final, p})
}
func (r *recorder) OSCDispatch(payload []byte) {
	r.osc = append(r.osc, append([]byte(nil), payload...))
}
func (r *recorder) StringDispatch(kind byte, payload []byte) {
	r.strs = append(r.strs, strEvent{kind, append([]byte(nil), payload...)})
}
func (r *recorder) Unknown(kind, detail string) {
	r.unknowns = append(r.unknowns, kind+":"+detail)
}

func TestFeedPrintableASCII(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("hi"), r)
	if len(r.prints) != 2 || r.prints[0] != 'h' || r.prints[1] != 'i' {
		t.Fatalf("prints = %q, want ['h' 'i']", r.prints)
	}
}

func TestFeedUTF8Multibyte(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("a\xc3\xa9b"), r) // a é b
	want := []rune{'a', 'é', 'b'}
	if len(r.prints) != len(want) {
		t.Fatalf("prints = %q, want %q", r.prints, want)
	}
	for i := range want {
		if r.prints[i] != want[i] {
			t.Errorf("prints[%d] = %q, want %q", i, r.prints[i], want[i])
		}
	}
}

func TestFeedUTF8SplitAcrossCalls(t *testing.T) {
	p := New()
	r := &recorder{}
	full := []byte("\xe4\xb8\x96") // 世
	p.Feed(full[:1], r)
	if len(r.prints) != 0 {
		t.Fatalf("expected no prints yet, got %q", r.prints)
	}
	p.Feed(full[1:], r)
	if len(r.prints) != 1 || r.prints[0] != '世' {
		t.Fatalf("prints = %q, want ['世']", r.prints)
	}
}

func TestFeedC0Control(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte{'a', 0x07, 'b'}, r)
	if len(r.execs) != 1 || r.execs[0] != 0x07 {
		t.Fatalf("execs = %v, want [0x07]", r.execs)
	}
	if len(r.prints) != 2 {
		t.Fatalf("prints = %q, want 2 entries", r.prints)
	}
}

func TestFeedCSISimple(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b[2J"), r)
	if len(r.csis) != 1 {
		t.Fatalf("csis = %v, want 1 event", r.csis)
	}
	ev := r.csis[0]
	if ev.final != 'J' {
		t.Errorf("final = %q, want 'J'", ev.final)
	}
	if len(ev.p.Values) != 1 || ev.p.Values[0] != 2 {
		t.Errorf("Values = %v, want [2]", ev.p.Values)
	}
	if ev.p.Private {
		t.Error("Private should be false for a plain CSI")
	}
}

func TestFeedCSIMultipleParams(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b[1;31m"), r)
	ev := r.csis[0]
	if ev.final != 'm' {
		t.Fatalf("final = %q, want 'm'", ev.final)
	}
	if len(ev.p.Values) != 2 || ev.p.Values[0] != 1 || ev.p.Values[1] != 31 {
		t.Fatalf("Values = %v, want [1 31]", ev.p.Values)
	}
}

func TestFeedCSIPrivateMode(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b[?25l"), r)
	ev := r.csis[0]
	if !ev.p.Private {
		t.Fatal("expected Private=true for a '?' prefixed CSI")
	}
	if ev.p.Values[0] != 25 || ev.final != 'l' {
		t.Fatalf("got final=%q values=%v", ev.final, ev.p.Values)
	}
}

func TestParamsGetDefaultsOnMissingOrZero(t *testing.T) {
	p := Params{Values: []int{0, 5}}
	if got := p.Get(0, 1); got != 1 {
		t.Errorf("Get(0,1) on zero value = %d, want default 1", got)
	}
	if got := p.Get(1, 1); got != 5 {
		t.Errorf("Get(1,1) = %d, want 5", got)
	}
	if got := p.Get(2, 9); got != 9 {
		t.Errorf("Get(2,9) out of range = %d, want default 9", got)
	}
}

func TestParamsGetRawKeepsZero(t *testing.T) {
	p := Params{Values: []int{0}}
	if got := p.GetRaw(0, 5); got != 0 {
		t.Errorf("GetRaw(0,5) = %d, want 0 (raw, not defaulted)", got)
	}
}

func TestFeedESCDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1bc"), r) // RIS
	if len(r.escs) != 1 || r.escs[0] != 'c' {
		t.Fatalf("escs = %v, want ['c']", r.escs)
	}
}

func TestFeedDesignateCharset(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b(0"), r) // designate G0 as line-drawing
	if len(r.charsets) != 1 || r.charsets[0][0] != '(' || r.charsets[0][1] != '0' {
		t.Fatalf("charsets = %v, want [('(','0')]", r.charsets)
	}
}

func TestFeedOSCTerminatedByBEL(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b]0;title\x07"), r)
	if len(r.osc) != 1 || string(r.osc[0]) != "0;title" {
		t.Fatalf("osc = %q, want [\"0;title\"]", r.osc)
	}
}

func TestFeedOSCTerminatedByST(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1b]0;title\x1b\\"), r)
	if len(r.osc) != 1 || string(r.osc[0]) != "0;title" {
		t.Fatalf("osc = %q, want [\"0;title\"]", r.osc)
	}
}

func TestFeedDCSPayloadRoutedToStringDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte("\x1bPsomething\x07"), r)
	if len(r.strs) != 1 || r.strs[0].kind != 'P' || string(r.strs[0].payload) != "something" {
		t.Fatalf("strs = %v, want one DCS event", r.strs)
	}
}

func TestFeedUnknownESCFinal(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Feed([]byte{0x1b, 0x01}, r)
	if len(r.unknowns) != 1 {
		t.Fatalf("unknowns = %v, want 1 entry", r.unknowns)
	}
}

func TestFeedStrayControlMidCSI(t *testing.T) {
	p := New()
	r := &recorder{}
	// A BEL arriving mid-CSI should Execute, not abort the sequence.
	p.Feed([]byte("\x1b[1\x072J"), r)
	if len(r.execs) != 1 || r.execs[0] != 0x07 {
		t.Fatalf("execs = %v, want [0x07]", r.execs)
	}
	if len(r.csis) != 1 || r.csis[0].final != 'J' {
		t.Fatalf("csis = %v, want one 'J' dispatch with param 12", r.csis)
	}
}
