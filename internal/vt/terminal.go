// Package vt composes the parser, screen, scrollback, and selection
// components into a single PTY-backed terminal (spec §4, Component F):
// it wires screen.Screen's injected hooks to a scrollback.View and a
// selection.Selection, and drives a go-pty child process the way the
// teacher's terminal.Session does.
package vt

import (
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vtterm/vtterm/internal/cell"
	"github.com/vtterm/vtterm/internal/screen"
	"github.com/vtterm/vtterm/internal/scrollback"
	"github.com/vtterm/vtterm/internal/selection"
)

// Status mirrors the teacher's SessionStatus (spec §4.7 "lifecycle").
type Status int

const (
	StatusRunning Status = iota
	StatusExited
	StatusError
)

// Logger is the ambient logging seam (SPEC_FULL.md §1); vt.Terminal and
// screen.Screen both take one so unknown-sequence warnings and PTY errors
// flow through the same sink.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

// Terminal wraps one PTY-backed shell process and its virtual screen,
// scrollback, and shared selection (spec §4: Components C+D+E+F wired
// together per terminal, with Selection process-wide — see Tabs).
type Terminal struct {
	mu sync.Mutex

	ID     int
	UUID   string // stable identity for log correlation, independent of the tab slot index
	Title  string
	Status Status

	Screen     *screen.Screen
	Scrollback *scrollback.View
	Sel        *selection.Selection

	rows, cols int
	fg, bg     int

	p   gopty.Pty
	cmd *gopty.Cmd

	done     chan struct{}
	OutputCh chan struct{}

	ExitCode     int
	LastOutputAt time.Time

	// Tee, if set, receives a copy of every raw byte read from the PTY
	// (spec §6 "-o file (tee pty output)").
	Tee io.Writer

	Log Logger
}

// New allocates a Terminal sharing the given selection (spec §3 "one active
// selection across all tabs") and scrollback capacity. altScreenDisabled
// corresponds to CLI flag -a (spec §6).
func New(id, rows, cols, tabWidth, scrollbackCap int, sel *selection.Selection, log Logger, altScreenDisabled bool) *Terminal {
	if log == nil {
		log = nopLogger{}
	}
	t := &Terminal{
		ID:         id,
		UUID:       uuid.NewString(),
		Status:     StatusRunning,
		Screen:     screen.New(rows, cols, tabWidth),
		Scrollback: scrollback.NewView(scrollbackCap),
		Sel:        sel,
		rows:       rows,
		cols:       cols,
		fg:         cell.DefaultColor,
		bg:         cell.DefaultColor,
		done:       make(chan struct{}),
		OutputCh:   make(chan struct{}, 1),
		Log:        log,
	}
	t.Screen.Evictor = t
	t.Screen.SelHook = selHookAdapter{t}
	t.Screen.Gate = t
	t.Screen.Responder = t
	t.Screen.Logger = log
	t.Screen.AltScreenDisabled = altScreenDisabled
	return t
}

// Evict implements screen.EvictSink.
func (t *Terminal) Evict(l cell.Line) { t.Scrollback.Ring.Evict(l) }

// SnapToLiveBeforeWrite implements screen.ViewGate: any PTY-driven write
// snaps the view back to the live edge (spec §4.4).
func (t *Terminal) SnapToLiveBeforeWrite() { t.Scrollback.SnapToLive() }

// AtLiveEdge implements screen.ViewGate.
func (t *Terminal) AtLiveEdge() bool { return t.Scrollback.AtLiveEdge() }

// Respond implements screen.Responder, writing DA/other replies back to the
// PTY (spec §4.2 "device attribute reply").
func (t *Terminal) Respond(b []byte) {
	t.mu.Lock()
	pty := t.p
	t.mu.Unlock()
	if pty != nil {
		pty.Write(b)
	}
}

// selHookAdapter bridges screen.SelectionHook to selection.Selection, which
// additionally needs the terminal's current alt-screen state for
// OnSwapScreen-style suppression.
type selHookAdapter struct{ t *Terminal }

func (h selHookAdapter) OnScroll(orig, delta int) { h.t.Sel.OnScroll(orig, delta) }
func (h selHookAdapter) OnClear(x1, y1, x2, y2 int) { h.t.Sel.OnClear(x1, y1, x2, y2) }
func (h selHookAdapter) OnSwapScreen()            { h.t.Sel.OnSwapScreen() }

// Start launches argv inside a fresh PTY (spec §4.7; cross-platform via
// go-pty, same as the teacher).
func (t *Terminal) Start(argv []string, dir string, env []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(argv) == 0 {
		argv = defaultShell()
	}

	fullEnv := append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	fullEnv = append(fullEnv, env...)

	p, err := gopty.New()
	if err != nil {
		t.Status = StatusError
		return errors.Wrap(err, "allocate pty")
	}
	if err := p.Resize(t.cols, t.rows); err != nil {
		p.Close()
		t.Status = StatusError
		return errors.Wrapf(err, "resize pty to %dx%d", t.cols, t.rows)
	}

	cmd := p.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = fullEnv
	if err := cmd.Start(); err != nil {
		p.Close()
		t.Status = StatusError
		return errors.Wrapf(err, "start %q", argv[0])
	}

	t.p = p
	t.cmd = cmd

	go t.readLoop()
	go t.waitLoop()
	return nil
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := t.p.Read(buf)
		if n > 0 {
			t.mu.Lock()
			if t.Tee != nil {
				t.Tee.Write(buf[:n])
			}
			t.Screen.Feed(buf[:n])
			if t.Screen.Title != "" {
				t.Title = t.Screen.Title
			}
			t.LastOutputAt = time.Now()
			t.mu.Unlock()
			select {
			case t.OutputCh <- struct{}{}:
			default:
			}
		}
		if err != nil {
			break
		}
	}
}

func (t *Terminal) waitLoop() {
	err := t.cmd.Wait()
	t.mu.Lock()
	if err != nil {
		if t.cmd.ProcessState != nil {
			t.ExitCode = t.cmd.ProcessState.ExitCode()
		} else {
			t.ExitCode = 1
		}
	}
	t.Status = StatusExited
	t.mu.Unlock()
	close(t.done)
}

// Write sends keyboard input to the PTY.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	pty := t.p
	t.mu.Unlock()
	if pty == nil {
		return 0, io.ErrClosedPipe
	}
	return pty.Write(p)
}

// Resize updates the PTY and screen dimensions.
func (t *Terminal) Resize(rows, cols int) {
	t.mu.Lock()
	t.rows, t.cols = rows, cols
	t.Screen.Resize(cols, rows)
	pty := t.p
	t.mu.Unlock()
	if pty != nil {
		_ = pty.Resize(cols, rows)
	}
}

// ScrollView shifts the scrollback view by n lines (spec §4.4 scroll_view).
// The View snapshots the live rows when leaving the live edge; on return to
// the live edge the live grid is left as it is, not restored from the
// snapshot.
func (t *Terminal) ScrollView(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.Screen.Active()
	display, liveRestored := t.Scrollback.ScrollView(n, g.Lines, g.Cols, t.fg, t.bg)
	if liveRestored {
		return
	}
	_ = display // the renderer reads ScrollbackDisplay() instead of a copy here
}

// ScrollbackDisplay returns the currently composed off-edge view, or nil
// when at the live edge (in which case the renderer should read Screen
// directly).
func (t *Terminal) ScrollbackDisplay() []cell.Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollbackDisplayLocked()
}

// scrollbackDisplayLocked is ScrollbackDisplay's body, callable by other
// methods that already hold t.mu (sync.Mutex isn't reentrant).
func (t *Terminal) scrollbackDisplayLocked() []cell.Line {
	if t.Scrollback.AtLiveEdge() {
		return nil
	}
	g := t.Screen.Active()
	display, _ := t.Scrollback.ScrollView(0, g.Lines, g.Cols, t.fg, t.bg)
	return display
}

// lineAt resolves a grid-absolute row (0 = live grid row 0, negative reaches
// into scrollback) to its currently rendered content, branching live-vs-
// scrollback exactly like renderer.RenderTerminal does via rowOffset.
func (t *Terminal) lineAt(y int) (cell.Line, bool) {
	if display := t.scrollbackDisplayLocked(); display != nil {
		idx := y - t.Scrollback.YBase()
		if idx < 0 || idx >= len(display) {
			return cell.Line{}, false
		}
		return display[idx], true
	}
	g := t.Screen.Active()
	if y < 0 || y >= g.Rows {
		return cell.Line{}, false
	}
	return g.Lines[y], true
}

// Close terminates the process and PTY (spec §4.7). A Terminal that was
// never successfully Start()ed has no process to wait on and returns
// immediately rather than blocking on a done channel nothing will close.
func (t *Terminal) Close() {
	t.mu.Lock()
	cmd := t.cmd
	pty := t.p
	t.mu.Unlock()

	if cmd == nil {
		return
	}
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if pty != nil {
		pty.Close()
	}
	<-t.done
}

// Done returns a channel closed when the process exits.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// IsRunning reports whether the process is still alive.
func (t *Terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Status == StatusRunning
}

// EnableKittyKeyboard/DisableKittyKeyboard toggle the kitty keyboard
// protocol flags on the child process (spec §4.6 generalizes the teacher's
// Claude-Code-specific usage into a general per-terminal mode toggle).
func (t *Terminal) EnableKittyKeyboard() {
	t.mu.Lock()
	pty := t.p
	t.mu.Unlock()
	if pty != nil {
		pty.Write([]byte("\x1b[>1u"))
	}
}

func (t *Terminal) DisableKittyKeyboard() {
	t.mu.Lock()
	pty := t.p
	t.mu.Unlock()
	if pty != nil {
		pty.Write([]byte("\x1b[<1u"))
	}
}

// RuneAt/WrapAt/Cols/Rows implement selection.Source over this terminal's
// grid-absolute content (spec §4.5 "Source"): y=0 is the live grid's top
// row, negative y reaches into scrollback, matching the space
// renderer.RenderTerminal and Selection already operate in.
func (t *Terminal) RuneAt(x, y int) rune {
	t.mu.Lock()
	defer t.mu.Unlock()
	line, ok := t.lineAt(y)
	if !ok || x < 0 || x >= len(line.Cells) {
		return 0
	}
	return line.Cells[x].Ch
}

func (t *Terminal) WrapAt(y int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	line, ok := t.lineAt(y)
	if !ok {
		return false
	}
	return line.HasWrap()
}

func (t *Terminal) Cols() int { return t.Screen.Cols() }
func (t *Terminal) Rows() int { return t.Screen.Rows() }

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return []string{comspec}
		}
		return []string{"cmd.exe"}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/bash"}
}
