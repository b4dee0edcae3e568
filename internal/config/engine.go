package config

import "time"

// EngineConfig holds the terminal engine's tunables (SPEC_FULL.md §1
// "Config"), layered onto the teacher's Config the same way: a struct with
// yaml tags, sensible defaults, and bounds-clamping on Load.
type EngineConfig struct {
	// ScrollbackLines bounds the evicted-line ring per terminal (spec §3
	// "bounded, e.g. 10 000").
	ScrollbackLines int `yaml:"scrollback_lines"`

	// TabStopWidth is the default column spacing of tab stops.
	TabStopWidth int `yaml:"tab_stop_width"`

	// ClickTimeoutMS is the double/triple-click window in milliseconds
	// (spec §4.5 click-timing state).
	ClickTimeoutMS int `yaml:"click_timeout_ms"`

	// BlinkTimeoutMS is the cursor/attribute blink cadence (spec §4.8
	// step 6).
	BlinkTimeoutMS int `yaml:"blink_timeout_ms"`

	// DrawIntervalMS is the base draw-loop pacing; shortened in "active"
	// frames per spec §4.8 step 2.
	DrawIntervalMS int `yaml:"draw_interval_ms"`

	// IdleFramesBeforeRelax is how many idle frames pass before the draw
	// interval relaxes back up (spec §4.8 step 2).
	IdleFramesBeforeRelax int `yaml:"idle_frames_before_relax"`

	// WordDelimiters is loaded and defaulted here, but nothing passes it to
	// the selection: word-snap always uses selection.DefaultWordDelimiters.
	WordDelimiters string `yaml:"word_delimiters"`

	// PrefixKey is the tab-command prefix (spec §4.9 step 2, e.g.
	// "ctrl+a").
	PrefixKey string `yaml:"prefix_key"`

	// AltScreenDisabled corresponds to CLI flag -a (spec §6).
	AltScreenDisabled bool `yaml:"-"`
}

// DefaultEngineConfig returns the built-in defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ScrollbackLines:       10000,
		TabStopWidth:          8,
		ClickTimeoutMS:        300,
		BlinkTimeoutMS:        500,
		DrawIntervalMS:        16,
		IdleFramesBeforeRelax: 60,
		WordDelimiters:        " \t\n\x00`'\"()[]{}<>|",
		PrefixKey:             "ctrl+a",
	}
}

// ClickTimeout/BlinkTimeout/DrawInterval convert the millisecond fields to
// time.Duration for use by selection.ClickTracker and the app event loop.
func (c EngineConfig) ClickTimeout() time.Duration {
	return time.Duration(c.ClickTimeoutMS) * time.Millisecond
}

func (c EngineConfig) BlinkTimeout() time.Duration {
	return time.Duration(c.BlinkTimeoutMS) * time.Millisecond
}

func (c EngineConfig) DrawInterval() time.Duration {
	return time.Duration(c.DrawIntervalMS) * time.Millisecond
}

// clampEngine applies sensible bounds, mirroring Load's clamping of Config.
func clampEngine(c EngineConfig) EngineConfig {
	if c.ScrollbackLines < 0 {
		c.ScrollbackLines = 0
	}
	if c.TabStopWidth < 1 {
		c.TabStopWidth = 8
	}
	if c.ClickTimeoutMS <= 0 {
		c.ClickTimeoutMS = 300
	}
	if c.BlinkTimeoutMS <= 0 {
		c.BlinkTimeoutMS = 500
	}
	if c.DrawIntervalMS <= 0 {
		c.DrawIntervalMS = 16
	}
	if c.IdleFramesBeforeRelax <= 0 {
		c.IdleFramesBeforeRelax = 60
	}
	if c.WordDelimiters == "" {
		c.WordDelimiters = DefaultEngineConfig().WordDelimiters
	}
	if c.PrefixKey == "" {
		c.PrefixKey = "ctrl+a"
	}
	return c
}
