package screen

import (
	"strconv"
	"strings"

	"github.com/vtterm/vtterm/internal/escape"
)

// Print implements escape.Handler: write one decoded codepoint.
func (s *Screen) Print(r rune) {
	s.putChar(r)
}

// Execute implements escape.Handler for C0/C1 control bytes (spec §4.2
// GROUND: "on C0 ... perform control-code action").
func (s *Screen) Execute(b byte) {
	switch b {
	case '\n', '\v', '\f':
		s.newline(s.Mode(ModeCRLF))
	case '\r':
		s.cur.X = 0
		s.cur.WrapNext = false
	case '\b':
		if s.cur.X > 0 {
			s.cur.X--
		}
		s.cur.WrapNext = false
	case '\t':
		s.tabForward(1)
	case 0x07: // BEL
	case 0x0E, 0x0F: // SO/SI — only G0 is modeled; ignore shift-in/out
	default:
		// Other C0 controls have no effect on the screen model.
	}
}

// tabForward/tabBack move the cursor across n tab stops (CHT/CBT, and a
// literal tab).
func (s *Screen) tabForward(n int) {
	for ; n > 0; n-- {
		x := s.cur.X + 1
		for x < s.cols-1 && !s.tabstops[x] {
			x++
		}
		if x >= s.cols {
			x = s.cols - 1
		}
		s.cur.X = x
	}
}

func (s *Screen) tabBack(n int) {
	for ; n > 0; n-- {
		x := s.cur.X - 1
		for x > 0 && !s.tabstops[x] {
			x--
		}
		if x < 0 {
			x = 0
		}
		s.cur.X = x
	}
}

// ESCDispatch implements escape.Handler for bare ESC sequences (spec §4.2
// ESC_START table).
func (s *Screen) ESCDispatch(final byte) {
	switch final {
	case '7':
		s.saveCursor()
	case '8':
		s.restoreCursor()
	case '=':
		s.setMode(ModeAppKeypad, true)
	case '>':
		s.setMode(ModeAppKeypad, false)
	case 'D': // IND
		s.newline(false)
	case 'E': // NEL
		s.newline(true)
	case 'H': // HTS
		if s.cur.X >= 0 && s.cur.X < len(s.tabstops) {
			s.tabstops[s.cur.X] = true
		}
	case 'M': // RI
		s.reverseNewline()
	case 'Z': // DECID — answered the same as DA
		if s.Responder != nil {
			s.Responder.Respond([]byte(DAReply))
		}
	case 'c': // RIS
		s.fullReset()
	case 'N', 'O': // SS2/SS3 — no secondary G-set modeled; no-op
	case '\\': // stray ST
	}
}

// DesignateCharset implements escape.Handler for ESC ( / ) / * / + <final>.
// Only G0 (the '(' introducer) is modeled, matching most real-world usage
// (spec §4.2 GFX charset paragraph).
func (s *Screen) DesignateCharset(slot byte, final byte) {
	if slot != '(' {
		return
	}
	switch final {
	case '0':
		s.gfxCharset = true
	case 'B':
		s.gfxCharset = false
	}
}

// CSIDispatch implements escape.Handler, routing to the CSI dispatch table
// (spec §4.2 table, implemented in screen_csi.go).
func (s *Screen) CSIDispatch(final byte, p escape.Params) {
	s.dispatchCSI(final, p)
}

// OSCDispatch implements escape.Handler for OSC 0/1/2 (title) and OSC
// 4/104 (palette) per spec §4.2.
func (s *Screen) OSCDispatch(payload []byte) {
	str := string(payload)
	semi := strings.IndexByte(str, ';')
	if semi < 0 {
		s.Unknown("OSC", str)
		return
	}
	code, body := str[:semi], str[semi+1:]
	switch code {
	case "0", "1", "2":
		s.Title = body
	case "4":
		// 4;n;spec — set palette color n. The concrete color table lives
		// in the renderer adapter (out of core per spec §1); Screen only
		// flags that a repaint-sensitive change occurred (spec §9 Open
		// Question: resolved as "no automatic border repaint").
		if _, _, ok := splitPaletteSpec(body); ok {
			s.PaletteDirty = true
		}
	case "104":
		s.PaletteDirty = true
	default:
		s.Unknown("OSC", code)
	}
}

// splitPaletteSpec parses "n;spec" into the palette index and spec string.
func splitPaletteSpec(body string) (int, string, bool) {
	semi := strings.IndexByte(body, ';')
	if semi < 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(body[:semi])
	if err != nil {
		return 0, "", false
	}
	return n, body[semi+1:], true
}

// StringDispatch implements escape.Handler for DCS/APC/PM/SOS: this engine
// defines no semantics for them, so they are parsed (to keep GROUND state
// uncorrupted) and discarded per spec §7 ("unknown sequences ... never
// fatal").
func (s *Screen) StringDispatch(kind byte, payload []byte) {
	s.Unknown("string", string(kind))
}

// Unknown implements escape.Handler: log-and-discard (spec §7). Screen
// itself never logs directly (kept free of a logging dependency per
// SPEC_FULL.md §1); it forwards to an injected Logger so the call site
// (vt.Terminal) decides where diagnostics go.
func (s *Screen) Unknown(kind, detail string) {
	if s.Logger != nil {
		s.Logger.Warnf("unknown %s sequence: %s", kind, detail)
	}
}
