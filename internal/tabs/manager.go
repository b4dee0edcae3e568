// Package tabs implements the tab multiplexer (spec §4.6, Component G):
// ordered terminal list, focus tracking, and the autohide status-bar row
// rule. Ported from st.c's singly-linked Term list (term_add, term_remove,
// term_focus / _prev / _next / _idx) onto a Go slice, which is the
// idiomatic shape for an ordered, randomly-indexed collection the teacher
// corpus favors over hand-rolled linked lists.
package tabs

import (
	"github.com/vtterm/vtterm/internal/selection"
	"github.com/vtterm/vtterm/internal/vt"
)

// Entry pairs a live terminal with its tab-bar metadata (spec §3 Tab:
// "Name", teacher's ui.Tab "Name/Dir").
type Entry struct {
	Term *vt.Terminal
	Name string
	Dir  string
}

// Factory constructs a new vt.Terminal for a newly-opened tab, given the
// geometry the manager has computed after applying the autohide rule.
type Factory func(id, rows, cols int) *vt.Terminal

// Manager owns the ordered tab list and the single process-wide selection
// (spec §3: "one active selection across all tabs").
type Manager struct {
	entries []*Entry
	focused int // index into entries; -1 when empty

	baseRows, cols int // geometry with the status bar row NOT yet reclaimed
	tabWidth       int

	Sel     *selection.Selection
	nextID  int
	NewTerm Factory
}

// New allocates an empty Manager for the given screen geometry (rows/cols
// excluding any multiplexer chrome).
func New(rows, cols int, newTerm Factory) *Manager {
	return &Manager{
		baseRows: rows,
		cols:     cols,
		focused:  -1,
		Sel:      selection.New(),
		NewTerm:  newTerm,
	}
}

// rows returns the per-terminal row count after the autohide rule: with
// more than one tab open, one row is reclaimed for the status bar (spec
// §4.6 "Geometry"; st.c term_add/cresize: "if (terms->next) { if (--row <
// 0) row = 0; }").
func (m *Manager) rows() int {
	r := m.baseRows
	if len(m.entries) > 1 {
		r--
		if r < 0 {
			r = 0
		}
	}
	return r
}

// Len reports the number of open tabs.
func (m *Manager) Len() int { return len(m.entries) }

// Entries returns the tab list in display order.
func (m *Manager) Entries() []*Entry { return m.entries }

// Focused returns the currently-focused entry, or nil if there are none.
func (m *Manager) Focused() *Entry {
	if m.focused < 0 || m.focused >= len(m.entries) {
		return nil
	}
	return m.entries[m.focused]
}

// FocusedIndex returns the focused tab's index, or -1.
func (m *Manager) FocusedIndex() int { return m.focused }

// Add opens a new tab, running the autohide geometry rule and resizing any
// existing tabs when the second tab causes a row to be reclaimed (spec
// §4.6 "new_tab"; st.c term_add + the "just got two tabs" cresize(0,0)).
func (m *Manager) Add(name, dir string) *Entry {
	wasSingle := len(m.entries) == 1

	id := m.nextID
	m.nextID++
	rows := m.rows()
	if len(m.entries) == 0 {
		rows = m.baseRows
	}

	t := m.NewTerm(id, rows, m.cols)
	e := &Entry{Term: t, Name: name, Dir: dir}
	m.entries = append(m.entries, e)
	m.focused = len(m.entries) - 1

	newRows := m.rows()
	if wasSingle || newRows != rows {
		m.resizeAll()
	}
	return e
}

// Remove closes the tab at idx. If idx is not the focused tab, focus stays
// on whatever tab the user had active (spec §4.6 "close_tab" generalizes
// st.c term_remove, which only ever removes the focused term — this engine
// also reaps background tabs whose shell exited, so it must not move focus
// off the user's active tab in that case). Only when the removed tab was
// itself focused does focus fall back to its predecessor, or the new head
// if it was first, mirroring st.c term_remove's walk.
func (m *Manager) Remove(idx int) {
	if idx < 0 || idx >= len(m.entries) {
		return
	}

	var focusedEntry *Entry
	removingFocused := idx == m.focused
	if !removingFocused && m.focused >= 0 && m.focused < len(m.entries) {
		focusedEntry = m.entries[m.focused]
	}

	m.entries[idx].Term.Close()

	wasMulti := len(m.entries) > 1
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)

	switch {
	case len(m.entries) == 0:
		m.focused = -1
	case focusedEntry != nil:
		m.focused = indexOfEntry(m.entries, focusedEntry)
	case idx == 0:
		m.focused = 0
	default:
		m.focused = idx - 1
	}

	if wasMulti && len(m.entries) == 1 {
		m.resizeAll()
	}
}

func indexOfEntry(entries []*Entry, e *Entry) int {
	for i, en := range entries {
		if en == e {
			return i
		}
	}
	return -1
}

// Focus sets the focused tab to idx (spec §4.6 "focus"). Out-of-range
// values clamp to the nearest valid index, mirroring st.c's term_focus(NULL)
// falling back to the list head.
func (m *Manager) Focus(idx int) {
	if len(m.entries) == 0 {
		m.focused = -1
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.entries) {
		idx = len(m.entries) - 1
	}
	m.focused = idx
}

// FocusPrev/FocusNext cycle focus with wraparound (spec §4.6: st.c's
// term_focus_prev/_next walk the list without wrapping; this engine wraps,
// a deliberate generalization recorded in DESIGN.md for a fixed-size tab
// bar where "no previous tab" is not a useful terminal state).
func (m *Manager) FocusPrev() {
	if len(m.entries) == 0 {
		return
	}
	m.focused = (m.focused - 1 + len(m.entries)) % len(m.entries)
}

func (m *Manager) FocusNext() {
	if len(m.entries) == 0 {
		return
	}
	m.focused = (m.focused + 1) % len(m.entries)
}

// resizeAll reapplies the current per-tab row count to every open terminal
// (spec §4.6; st.c cresize loops "for (term = terms; ...) tresize(...)").
func (m *Manager) resizeAll() {
	r := m.rows()
	for _, e := range m.entries {
		e.Term.Resize(r, m.cols)
	}
}

// Resize updates the multiplexer's overall geometry and reapplies it to
// every tab under the autohide rule.
func (m *Manager) Resize(rows, cols int) {
	m.baseRows, m.cols = rows, cols
	m.resizeAll()
}

// CloseAll terminates every open terminal (spec §4.7 shutdown).
func (m *Manager) CloseAll() {
	for _, e := range m.entries {
		e.Term.Close()
	}
}
