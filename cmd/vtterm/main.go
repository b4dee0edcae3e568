// Command vtterm is a VT-compatible terminal multiplexer: multiple
// PTY-backed terminal engines under one tab bar, with bounded scrollback
// and vi-style scrollback navigation (spec §1).
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vtterm/vtterm/internal/app"
	"github.com/vtterm/vtterm/internal/config"
)

func main() {
	// "-e cmd…" consumes the remainder of the command line verbatim (spec
	// §6), so it must be split off before flag.Parse sees it — the flag
	// package has no notion of "everything after this flag is not a flag".
	args := os.Args[1:]
	var execArgv []string
	if i := indexOf(args, "-e"); i >= 0 {
		execArgv = args[i+1:]
		args = args[:i]
	}

	var (
		noAltScreen = flag.Bool("a", false, "disable alternate screen usage")
		class       = flag.String("c", "", "window class (ignored outside an X11 host)")
		font        = flag.String("f", "", "font name (ignored; rendering is host-terminal-driven)")
		geometry    = flag.String("g", "", "geometry colsxrows (e.g. 80x24)")
		teeFile     = flag.String("o", "", "tee raw PTY output to file")
		title       = flag.String("t", "", "initial window title")
		windowID    = flag.String("w", "", "embed into window id (ignored outside an X11 host)")
	)
	flag.CommandLine.Parse(args)
	_ = class
	_ = font
	_ = windowID

	cfg := config.Load()
	cfg.Engine.AltScreenDisabled = *noAltScreen

	health := config.LoadHealth()
	config.MarkStarting(&health)
	_ = config.SaveHealth(health)
	if config.HasRepeatedCrashes(&health) && !health.LoggingAuto {
		config.EnableAutoLogging(&health)
		_ = config.SaveHealth(health)
	}
	logger := config.NewAutoLogger(health.LoggingAuto)
	defer func() {
		config.MarkCleanShutdown(&health)
		if config.ShouldAutoDisableLogging(&health) {
			config.DisableAutoLogging(&health)
		}
		_ = config.SaveHealth(health)
	}()

	var tee *os.File
	if *teeFile != "" {
		f, err := os.OpenFile(*teeFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vtterm: cannot open -o file:", err)
			os.Exit(1)
		}
		tee = f
		defer tee.Close()
	}

	cols, rows := parseGeometry(*geometry)

	opts := app.Options{ExecArgv: execArgv, Cols: cols, Rows: rows, Log: logger}
	if tee != nil {
		opts.Tee = tee
	}
	if *title != "" {
		opts.Title = *title
	}

	m := app.New(cfg, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtterm:", err)
		os.Exit(1)
	}
}

func indexOf(args []string, target string) int {
	for i, a := range args {
		if a == target {
			return i
		}
	}
	return -1
}

// parseGeometry parses a "COLSxROWS" geometry string (spec §6 "-g
// geometry").
func parseGeometry(g string) (cols, rows int) {
	if g == "" {
		return 0, 0
	}
	var c, r int
	if n, err := fmt.Sscanf(g, "%dx%d", &c, &r); err != nil || n != 2 {
		return 0, 0
	}
	return c, r
}
