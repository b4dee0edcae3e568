// Package scrollback implements the bounded, most-recent-first history of
// evicted top lines (spec §4.4, Component D) and the ybase view-shift
// mapping.
package scrollback

import "github.com/vtterm/vtterm/internal/cell"

// DefaultCapacity matches st.c's SCROLLBACK constant (spec §3: "e.g.
// 10 000").
const DefaultCapacity = 10000

// Ring is a bounded, most-recent-first ring buffer of evicted lines.
// Chosen over the original's doubly-linked list per SPEC_FULL.md §3.5 and
// spec §9 DESIGN NOTES ("a ring buffer of Line slots is simpler, bounded,
// and cache-friendlier — the spec does not prescribe either").
type Ring struct {
	lines []cell.Line // ring storage
	head  int         // index of the most-recently-evicted line
	count int         // number of valid entries
	cap   int
}

// New allocates a Ring with the given capacity (DefaultCapacity if <= 0).
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{lines: make([]cell.Line, capacity), cap: capacity}
}

// Len reports how many lines are currently stored.
func (r *Ring) Len() int { return r.count }

// Cap reports the ring's fixed capacity.
func (r *Ring) Cap() int { return r.cap }

// Evict inserts l at the head (most recent), evicting the oldest entry on
// overflow (spec §4.4: "Insertion at head; overflow evicts the tail").
// Evicted lines are never mutated thereafter (spec §8 invariant) — callers
// must pass an owned copy (screen.Screen.scrollUp does via cell.Line.Clone).
func (r *Ring) Evict(l cell.Line) {
	r.head = (r.head - 1 + r.cap) % r.cap
	r.lines[r.head] = l
	if r.count < r.cap {
		r.count++
	}
}

// Get returns the i-th most-recent evicted line (0 = most recent),
// re-padded or truncated in place to width if its stored width differs
// (spec §4.4: "Scrollback lines store their original column count; on
// mapping under a different col, the line is reallocated/truncated in
// place on read." — resolved per SPEC_FULL.md §5.3 as truncate-not-rewrap).
func (r *Ring) Get(i, width, fg, bg int) (cell.Line, bool) {
	if i < 0 || i >= r.count {
		return cell.Line{}, false
	}
	idx := (r.head + i) % r.cap
	l := r.lines[idx]
	if l.Width() != width {
		l = l.Resized(width, fg, bg)
		r.lines[idx] = l
	}
	return l, true
}
