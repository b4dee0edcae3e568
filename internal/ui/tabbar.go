package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab holds the metadata for a single workspace tab.
type Tab struct {
	Name string // display name (user-editable)
	Dir  string // working directory of the tab's terminal
}

// StatusStyle for the focused tab's process-status badge; callers pick one
// of PaneStatusRunning/PaneStatusExited/PaneStatusError.
type StatusStyle = lipgloss.Style

// RenderTabBar produces the tab bar string for the top of the screen.
// activeIdx is the currently selected tab index. statusLabel/statusStyle
// render the focused terminal's process status as a badge at the end of the
// bar, and dir its working directory — folded into the single tab-bar row
// rather than a separate pane-title row, since the autohide rule (spec
// §4.6 "Geometry") reclaims exactly one row for multi-tab layouts.
func RenderTabBar(tabs []Tab, activeIdx, width int, statusLabel string, statusStyle StatusStyle, dir string) string {
	var parts []string

	for i, t := range tabs {
		label := t.Name
		if label == "" {
			label = fmt.Sprintf("Tab %d", i+1)
		}
		// Prefix with 1-indexed number for keyboard shortcut hint
		display := fmt.Sprintf(" %d: %s ", i+1, label)

		if i == activeIdx {
			parts = append(parts, TabActive.Render(display))
		} else {
			parts = append(parts, TabInactive.Render(display))
		}
	}

	// "+" button to add a new tab
	parts = append(parts, TabAdd.Render(" + "))

	bar := strings.Join(parts, " ")

	if statusLabel != "" {
		bar += "  " + statusStyle.Render(statusLabel)
	}
	if dir != "" {
		bar += " " + PaneTitleStyle.Render(dir)
	}

	// Pad to full width
	return TabBarStyle.Width(width).Render(bar)
}
