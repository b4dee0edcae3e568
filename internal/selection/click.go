package selection

import "time"

// ClickTracker classifies a sequence of button-1 presses into
// single/double/triple clicks based on elapsed time and position, mirroring
// st.c's getbuttoninfo double/triple-click window (spec §4.5 "Click-timing
// state (single/double/triple)").
type ClickTracker struct {
	Timeout time.Duration // e.g. 300ms, matches st.c's doubleclicktimeout

	lastTime  time.Time
	lastX     int
	lastY     int
	lastCount int
}

// NewClickTracker returns a tracker using the given double/triple-click
// timeout.
func NewClickTracker(timeout time.Duration) *ClickTracker {
	return &ClickTracker{Timeout: timeout}
}

// Register records a press at (x,y) at time now and returns the resulting
// snap mode: SnapNone for a single click, SnapWord for a double click
// (within Timeout and same cell as the prior click), SnapLine for a triple
// click, and back to SnapNone on the fourth click of a run.
func (c *ClickTracker) Register(x, y int, now time.Time) SnapMode {
	if !c.lastTime.IsZero() && now.Sub(c.lastTime) <= c.Timeout && x == c.lastX && y == c.lastY {
		c.lastCount++
	} else {
		c.lastCount = 1
	}
	c.lastTime = now
	c.lastX, c.lastY = x, y

	switch c.lastCount % 3 {
	case 1:
		return SnapNone
	case 2:
		return SnapWord
	default:
		return SnapLine
	}
}
