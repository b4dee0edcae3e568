package app

import (
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vtterm/vtterm/internal/input"
)

// Update processes incoming messages (spec §4.8 draw loop, §4.9 router).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.mgr.Resize(msg.Height-1, msg.Width) // -1 reserves the tab bar row
		return m, nil

	case tickMsg:
		m.drainOutput()
		m.reapExited()
		return m, tickCmd(m.drawInterval())

	case blinkMsg:
		m.blinkOn = !m.blinkOn
		return m, blinkCmd(m.cfg.Engine.BlinkTimeout())

	case termExitMsg:
		m.removeTabByID(msg.id)
		if m.mgr.Len() == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// drawInterval shortens the draw tick while the focused terminal is
// actively producing output, relaxing after IdleFramesBeforeRelax idle
// frames (spec §4.8 step 2).
func (m *Model) drawInterval() time.Duration {
	focused := m.mgr.Focused()
	base := m.cfg.Engine.DrawInterval()
	if focused == nil {
		return base
	}
	if time.Since(focused.Term.LastOutputAt) < base*4 {
		m.idleFrames = 0
		return base
	}
	m.idleFrames++
	if m.idleFrames < m.cfg.Engine.IdleFramesBeforeRelax {
		return base
	}
	return base * 4
}

// drainOutput pumps any pending PTY-output signal for every open tab (spec
// §4.8 step 3: "For every PTY fd readable, call its terminal's feed" — the
// feed itself already happened in Terminal.readLoop; this only updates the
// dirty-for-redraw bookkeeping the draw loop polls).
func (m *Model) drainOutput() {
	for _, e := range m.mgr.Entries() {
		select {
		case <-e.Term.OutputCh:
		default:
		}
	}
}

func (m *Model) reapExited() {
	for i, e := range m.mgr.Entries() {
		select {
		case <-e.Term.Done():
			m.removeTabByIndex(i)
			return
		default:
		}
	}
}

func (m *Model) removeTabByIndex(idx int) {
	m.mgr.Remove(idx)
}

func (m *Model) removeTabByID(id int) {
	for i, e := range m.mgr.Entries() {
		if e.Term.ID == id {
			m.mgr.Remove(i)
			return
		}
	}
}

// handleKey implements spec §4.9's five-stage match order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "?" && !m.sel.Active() {
		m.showHelp = true
		return m, nil
	}

	if msg.Type == tea.KeyCtrlC {
		if time.Since(m.lastCtrlC) < 500*time.Millisecond {
			m.quitting = true
			m.mgr.CloseAll()
			return m, tea.Quit
		}
		m.lastCtrlC = time.Now()
	}

	focused := m.mgr.Focused()
	action := m.router.Route(m.mgr, msg.String(), false, false, time.Now())

	switch action.Cmd {
	case input.CmdEnterSelectMode:
		if focused != nil {
			m.sel.Enter(focused.Term)
		}
		return m, nil
	case input.CmdNewTab:
		m.openTab(m.currentDir())
		return m, nil
	case input.CmdCloseTab:
		if idx := m.mgr.FocusedIndex(); idx >= 0 {
			m.mgr.Remove(idx)
		}
		return m, nil
	case input.CmdFocusTab:
		m.mgr.Focus(action.FocusIndex)
		return m, nil
	case input.CmdFocusPrev:
		m.mgr.FocusPrev()
		return m, nil
	case input.CmdFocusNext:
		m.mgr.FocusNext()
		return m, nil
	case input.CmdPaste:
		m.paste()
		return m, nil
	}

	if action.Bytes != nil {
		m.sendToFocused(action.Bytes)
		return m, nil
	}

	if focused != nil && !m.sel.Active() {
		bytes := m.router.DefaultBytes(msg)
		m.sendToFocused(bytes)
		if m.router.EchoMode {
			focused.Term.Screen.Feed(bytes)
		}
	}
	return m, nil
}

func (m *Model) sendToFocused(b []byte) {
	if e := m.mgr.Focused(); e != nil {
		e.Term.Write(b)
	}
}

// paste writes the select-mode yank buffer to the focused terminal (spec
// §4.9 prefix+p), translating line feeds to carriage returns the same way a
// pasted multi-line shell command expects Enter to be pressed between lines.
func (m *Model) paste() {
	text := m.sel.LastYank()
	if text == "" {
		return
	}
	m.sendToFocused([]byte(strings.ReplaceAll(text, "\n", "\r")))
}

func (m *Model) currentDir() string {
	if e := m.mgr.Focused(); e != nil && e.Dir != "" {
		return e.Dir
	}
	dir, _ := os.Getwd()
	return dir
}
