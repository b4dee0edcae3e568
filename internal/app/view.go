package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vtterm/vtterm/internal/renderer"
	"github.com/vtterm/vtterm/internal/ui"
	"github.com/vtterm/vtterm/internal/vt"
)

// View renders the tab bar and the focused terminal (spec §4.8 step 5).
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}

	var uiTabs []ui.Tab
	for _, e := range m.mgr.Entries() {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("Tab %d", e.Term.ID+1)
		}
		uiTabs = append(uiTabs, ui.Tab{Name: name, Dir: e.Dir})
	}

	focused := m.mgr.Focused()

	var statusLabel, dir string
	var statusStyle ui.StatusStyle
	if focused != nil {
		dir = focused.Dir
		switch focused.Term.Status {
		case vt.StatusRunning:
			statusLabel, statusStyle = "running", ui.PaneStatusRunning
		case vt.StatusExited:
			statusLabel, statusStyle = "exited", ui.PaneStatusExited
		case vt.StatusError:
			statusLabel, statusStyle = "error", ui.PaneStatusError
		}
	}

	bar := ui.RenderTabBar(uiTabs, m.mgr.FocusedIndex(), m.width, statusLabel, statusStyle, dir)

	if focused == nil {
		return bar + "\n" + strings.Repeat("\n", m.height-2)
	}

	paneH := m.height - lipgloss.Height(bar)
	content := renderer.RenderTerminal(focused.Term, m.mgr.Sel, m.width, paneH)

	if m.showHelp {
		content = helpOverlay()
	}

	return bar + "\n" + content
}

func helpOverlay() string {
	lines := []string{
		"h/j/k/l   move in select-mode      ctrl+a [   enter select-mode",
		"w/e/b     word fwd/end/back        ctrl+a c    new tab",
		"{/}       scroll by row/5          ctrl+a k    close tab",
		"ctrl+u/d  half-screen scroll       ctrl+a 1-9  focus tab N",
		"ctrl+b/f  full-screen scroll       ctrl+a n/N  focus next/prev",
		"v         visual select            ctrl+t      new tab",
		"y         yank selection, exit     ctrl+w      close tab",
		"q         exit select-mode         ctrl+a p    paste yank buffer",
		"          ctrl+c x2   quit",
	}
	var body strings.Builder
	body.WriteString(ui.DialogTitle.Render("Keybindings"))
	body.WriteString("\n")
	for _, l := range lines {
		body.WriteString(ui.DialogOption.Render(l))
		body.WriteString("\n")
	}
	body.WriteString(ui.DialogHint.Render("? to close"))
	return ui.DialogOverlay.Render(body.String())
}
