package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vtterm/vtterm/internal/tabs"
)

// PrefixCommand enumerates the tab commands available after the prefix key
// (spec §4.9 step 2).
type PrefixCommand int

const (
	CmdNone PrefixCommand = iota
	CmdEnterSelectMode
	CmdPaste
	CmdNewTab
	CmdCloseTab
	CmdFocusTab // uses FocusIndex
	CmdFocusPrev
	CmdFocusNext
)

// Action is what the router decided to do with one key event.
type Action struct {
	Cmd        PrefixCommand
	FocusIndex int    // valid when Cmd == CmdFocusTab
	Bytes      []byte // non-nil when the key resolves to bytes for the PTY
	Echo       bool   // spec §4.9 step 5: "if echo mode is set, additionally fed back"
}

// KeymapEntry is one row of the configured keymap table (spec §4.9 step 4).
// Route matches it on Key (which carries any modifier prefix), AppKeypad and
// AppCursor; the CRLF field is stored but Route does not match on it.
type KeymapEntry struct {
	Key        string
	AppKeypad  bool
	AppCursor  bool
	CRLF       bool
	Sequence   []byte
}

// Router implements the five-stage key-matching order of spec §4.9.
type Router struct {
	Prefix      string // e.g. "ctrl+a"
	Global      map[string]PrefixCommand
	Keymap      []KeymapEntry
	AltSendsESC bool // Alt-prefixes the default keysym text with ESC
	EightBitMeta bool
	EchoMode    bool

	Select *SelectMode

	prefixActive bool
}

// NewRouter returns a Router with the given prefix key and empty tables;
// callers populate Global/Keymap from config.
func NewRouter(prefix string, sel *SelectMode) *Router {
	return &Router{Prefix: prefix, Global: map[string]PrefixCommand{}, Select: sel}
}

// Route applies the spec §4.9 matching order to one key event. m is the tab
// manager; select-mode handling is skipped when it has no focused entry.
// now is passed through to SelectMode.Handle, which does not read it.
func (r *Router) Route(m *tabs.Manager, key string, appKeypad, appCursor bool, now time.Time) Action {
	focused := m.Focused()

	// Stage 1: select-mode handler.
	if r.Select.Active() && focused != nil {
		if r.Select.Handle(focused.Term, m.Sel, key, now) {
			return Action{}
		}
	}

	// Stage 2: prefix key.
	if r.prefixActive {
		r.prefixActive = false
		return r.prefixCommand(key)
	}
	if key == r.Prefix {
		r.prefixActive = true
		return Action{}
	}

	// Stage 3: global shortcuts table.
	if cmd, ok := r.Global[key]; ok {
		return Action{Cmd: cmd}
	}

	// Stage 4: keymap table.
	for _, e := range r.Keymap {
		if e.Key != key {
			continue
		}
		if e.AppKeypad && !appKeypad {
			continue
		}
		if e.AppCursor && !appCursor {
			continue
		}
		return Action{Bytes: e.Sequence, Echo: r.EchoMode}
	}

	// Stage 5: default — handled by the caller via DefaultBytes, since it
	// needs the raw tea.KeyMsg to recover literal text and the Alt flag.
	return Action{}
}

func (r *Router) prefixCommand(key string) Action {
	switch key {
	case "[":
		return Action{Cmd: CmdEnterSelectMode}
	case "p":
		return Action{Cmd: CmdPaste}
	case "c":
		return Action{Cmd: CmdNewTab}
	case "k":
		return Action{Cmd: CmdCloseTab}
	case "N":
		return Action{Cmd: CmdFocusPrev}
	case "n":
		return Action{Cmd: CmdFocusNext}
	default:
		for i := 1; i <= 9; i++ {
			if key == string(rune('0'+i)) {
				return Action{Cmd: CmdFocusTab, FocusIndex: i - 1}
			}
		}
	}
	return Action{}
}

// DefaultBytes implements spec §4.9 step 5 for a key that matched nothing
// above: the keysym's literal text, ESC-prefixed if Alt is held (or with
// the high bit set under 8-bit-meta mode).
func (r *Router) DefaultBytes(msg tea.KeyMsg) []byte {
	text := msg.String()
	alt := false
	if len(text) > 4 && text[:4] == "alt+" {
		alt = true
		text = text[4:]
	}
	var lit []byte
	switch msg.Type {
	case tea.KeyRunes:
		lit = []byte(string(msg.Runes))
	case tea.KeyEnter:
		lit = []byte{'\r'}
	case tea.KeyBackspace:
		lit = []byte{0x7f}
	case tea.KeyTab:
		lit = []byte{'\t'}
	case tea.KeyEsc:
		lit = []byte{0x1b}
	default:
		lit = []byte(text)
	}
	if !alt {
		return lit
	}
	if r.EightBitMeta && len(lit) == 1 && lit[0] < 0x80 {
		return []byte{lit[0] | 0x80}
	}
	return append([]byte{0x1b}, lit...)
}
