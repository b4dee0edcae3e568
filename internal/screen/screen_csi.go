package screen

import (
	"strconv"

	"github.com/vtterm/vtterm/internal/cell"
	"github.com/vtterm/vtterm/internal/escape"
)

// DAReply is the Device Attributes response text emitted on CSI c (spec
// §4.2 table, §6 "Device Attributes reply").
const DAReply = "\x1b[?6c"

// Responder lets Screen emit bytes back to the PTY for sequences that
// demand a reply (DA). vt.Terminal wires this to Terminal.Write.
type Responder interface {
	Respond(b []byte)
}

// dispatchCSI implements the full CSI dispatch table of spec §4.2.
func (s *Screen) dispatchCSI(final byte, p escape.Params) {
	switch final {
	case '@': // ICH — insert N blanks, shift right, truncate at right edge
		s.insertChars(p.Get(0, 1))
	case 'A':
		s.moveTo(s.cur.X, s.cur.Y-p.Get(0, 1))
	case 'B':
		s.moveTo(s.cur.X, s.cur.Y+p.Get(0, 1))
	case 'C':
		s.moveTo(s.cur.X+p.Get(0, 1), s.cur.Y)
	case 'D':
		s.moveTo(s.cur.X-p.Get(0, 1), s.cur.Y)
	case 'E': // CNL
		s.moveTo(0, s.cur.Y+p.Get(0, 1))
	case 'F': // CPL
		s.moveTo(0, s.cur.Y-p.Get(0, 1))
	case 'G', '`': // CHA / HPA
		s.moveTo(p.Get(0, 1)-1, s.cur.Y)
	case 'H', 'f': // CUP / HVP
		row, col := p.Get(0, 1), p.Get(1, 1)
		y := row - 1
		if s.cur.Origin {
			y += s.scrollTop
		}
		s.moveTo(col-1, y)
	case 'I': // CHT
		s.tabForward(p.Get(0, 1))
	case 'Z': // CBT
		s.tabBack(p.Get(0, 1))
	case 'J': // ED
		s.eraseDisplay(p.GetRaw(0, 0))
	case 'K': // EL
		s.eraseLine(p.GetRaw(0, 0))
	case 'L': // IL
		s.insertLines(p.Get(0, 1))
	case 'M': // DL
		s.deleteLines(p.Get(0, 1))
	case 'P': // DCH
		s.deleteChars(p.Get(0, 1))
	case 'S': // SU
		s.scrollUp(s.scrollTop, p.Get(0, 1))
	case 'T': // SD
		s.scrollDown(s.scrollTop, p.Get(0, 1))
	case 'X': // ECH
		s.eraseChars(p.Get(0, 1))
	case 'c': // DA
		if s.Responder != nil {
			s.Responder.Respond([]byte(DAReply))
		}
	case 'd': // VPA
		s.moveTo(s.cur.X, p.Get(0, 1)-1)
	case 'g': // TBC
		s.clearTabs(p.GetRaw(0, 0))
	case 'h':
		s.setModes(p, true)
	case 'l':
		s.setModes(p, false)
	case 'm':
		s.handleSGR(p.Values)
	case 'r': // DECSTBM
		top := p.Get(0, 1) - 1
		bot := p.Get(1, s.rows) - 1
		if top < 0 {
			top = 0
		}
		if bot >= s.rows {
			bot = s.rows - 1
		}
		if top < bot {
			s.scrollTop, s.scrollBot = top, bot
		} else {
			s.scrollTop, s.scrollBot = 0, s.rows-1
		}
		s.moveTo(0, 0)
	case 's':
		if !p.Private {
			s.saveCursor()
		}
	case 'u':
		if !p.Private {
			s.restoreCursor()
		}
	default:
		s.Unknown("CSI", string(final))
	}
}

// eraseDisplay implements ED (spec §4.2): 0 below, 1 above, 2/3 all.
func (s *Screen) eraseDisplay(mode int) {
	switch mode {
	case 0:
		s.clearRegion(s.cur.X, s.cur.Y, s.cols-1, s.cur.Y)
		s.clearRegion(0, s.cur.Y+1, s.cols-1, s.rows-1)
	case 1:
		s.clearRegion(0, 0, s.cols-1, s.cur.Y-1)
		s.clearRegion(0, s.cur.Y, s.cur.X, s.cur.Y)
	case 2, 3:
		s.clearRegion(0, 0, s.cols-1, s.rows-1)
	}
}

// eraseLine implements EL (spec §4.2): 0 to-right, 1 to-left, 2 whole line.
func (s *Screen) eraseLine(mode int) {
	switch mode {
	case 0:
		s.clearRegion(s.cur.X, s.cur.Y, s.cols-1, s.cur.Y)
	case 1:
		s.clearRegion(0, s.cur.Y, s.cur.X, s.cur.Y)
	case 2:
		s.clearRegion(0, s.cur.Y, s.cols-1, s.cur.Y)
	}
}

// insertLines/deleteLines implement IL/DL: scroll within the region at the
// cursor row rather than at scrollTop (spec §4.2 table).
func (s *Screen) insertLines(n int) {
	if s.cur.Y < s.scrollTop || s.cur.Y > s.scrollBot {
		return
	}
	s.scrollDown(s.cur.Y, n)
}

func (s *Screen) deleteLines(n int) {
	if s.cur.Y < s.scrollTop || s.cur.Y > s.scrollBot {
		return
	}
	s.scrollUpNoEvict(s.cur.Y, n)
}

// scrollUpNoEvict scrolls without scrollback eviction — IL/DL operate
// mid-region and st.c never evicts for them (only true-top SU does).
func (s *Screen) scrollUpNoEvict(orig, n int) {
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
	copy(g.Lines[orig:bot+1-n], g.Lines[orig+n:bot+1])
	for i := bot - n + 1; i <= bot; i++ {
		g.Lines[i] = cell.NewLine(g.Cols, cell.DefaultColor, cell.DefaultColor)
	}
	for i := orig; i <= bot; i++ {
		g.markDirty(i)
	}
	if s.SelHook != nil {
		s.SelHook.OnScroll(orig, -n)
	}
}

// deleteChars/insertChars/eraseChars implement DCH/ICH/ECH (spec §4.2).
func (s *Screen) deleteChars(n int) {
	g := s.Active()
	row := g.Lines[s.cur.Y].Cells
	if n > s.cols-s.cur.X {
		n = s.cols - s.cur.X
	}
	copy(row[s.cur.X:s.cols-n], row[s.cur.X+n:])
	blank := cell.Blank(s.cur.FG, s.cur.BG)
	for i := s.cols - n; i < s.cols; i++ {
		row[i] = blank
	}
	g.markDirty(s.cur.Y)
}

func (s *Screen) insertChars(n int) {
	g := s.Active()
	row := g.Lines[s.cur.Y].Cells
	if n > s.cols-s.cur.X {
		n = s.cols - s.cur.X
	}
	copy(row[s.cur.X+n:], row[s.cur.X:s.cols-n])
	blank := cell.Blank(s.cur.FG, s.cur.BG)
	for i := s.cur.X; i < s.cur.X+n; i++ {
		row[i] = blank
	}
	g.markDirty(s.cur.Y)
}

func (s *Screen) eraseChars(n int) {
	s.clearRegion(s.cur.X, s.cur.Y, s.cur.X+n-1, s.cur.Y)
}

// clearTabs implements TBC: 0 clears the stop at the cursor, 3 clears all.
func (s *Screen) clearTabs(mode int) {
	switch mode {
	case 0:
		if s.cur.X >= 0 && s.cur.X < len(s.tabstops) {
			s.tabstops[s.cur.X] = false
		}
	case 3:
		for i := range s.tabstops {
			s.tabstops[i] = false
		}
	}
}

// setModes implements SM/RM for both ANSI and DEC-private (?) modes (spec
// §4.2 "Private (?) modes").
func (s *Screen) setModes(p escape.Params, on bool) {
	for _, v := range p.Values {
		if p.Private {
			s.setPrivateMode(v, on)
		} else {
			s.setANSIMode(v, on)
		}
	}
}

func (s *Screen) setANSIMode(v int, on bool) {
	switch v {
	case 4: // IRM insert mode
		s.setMode(ModeInsert, on)
	case 20: // CRLF
		s.setMode(ModeCRLF, on)
	}
}

func (s *Screen) setPrivateMode(v int, on bool) {
	switch v {
	case 1:
		s.setMode(ModeAppCursor, on)
	case 5:
		s.setMode(ModeReverseVideo, on)
	case 6:
		s.cur.Origin = on
		s.moveTo(0, s.scrollTop)
	case 7:
		s.setMode(ModeWrap, on)
	case 12:
		// cursor blink — renderer concern, accepted and ignored here
	case 25:
		s.setMode(ModeHideCursor, !on)
	case 47, 1047:
		s.altScreenToggle(on, false)
	case 1048:
		if on {
			s.saveCursor()
		} else {
			s.restoreCursor()
		}
	case 1049:
		s.altScreenToggle(on, true)
	case 1000:
		s.setMode(ModeMouseButton, on)
	case 1002:
		s.setMode(ModeMouseButton, on)
		s.setMode(ModeMouseMotion, on)
	case 1006:
		s.setMode(ModeMouseSGR, on)
	case 1034:
		s.setMode(Mode8BitInput, on)
	default:
		s.Unknown("CSI private mode", modeName(v))
	}
}

// altScreenToggle implements ?47/?1047/?1049: 1049 additionally saves the
// cursor and clears the alternate screen on entry, restoring the cursor on
// exit (spec §4.2).
func (s *Screen) altScreenToggle(on, withCursorSave bool) {
	if s.AltScreenDisabled {
		return
	}
	already := s.Mode(ModeAltScreen)
	if on == already {
		return
	}
	if on {
		if withCursorSave {
			s.saveCursor()
		}
		s.swapScreen()
		if withCursorSave {
			s.clearRegion(0, 0, s.cols-1, s.rows-1)
		}
	} else {
		s.swapScreen()
		if withCursorSave {
			s.restoreCursor()
		}
	}
}

func modeName(v int) string {
	return "?" + strconv.Itoa(v)
}
