package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want 'dark'", cfg.Theme)
	}
	if cfg.Engine.ScrollbackLines != 10000 {
		t.Errorf("Engine.ScrollbackLines = %d, want 10000", cfg.Engine.ScrollbackLines)
	}
	if cfg.Engine.PrefixKey != "ctrl+a" {
		t.Errorf("Engine.PrefixKey = %q, want 'ctrl+a'", cfg.Engine.PrefixKey)
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")

	original := DefaultConfig()
	original.Theme = "dracula"
	original.Engine.ScrollbackLines = 500

	writeDefaults(path, original)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if loaded.Theme != "dracula" {
		t.Errorf("Loaded Theme = %q, want 'dracula'", loaded.Theme)
	}
	if loaded.Engine.ScrollbackLines != 500 {
		t.Errorf("Loaded Engine.ScrollbackLines = %d, want 500", loaded.Engine.ScrollbackLines)
	}
}

func TestConfig_Validation_Theme(t *testing.T) {
	validThemes := map[string]bool{"dark": true, "light": true, "dracula": true, "nord": true, "solarized": true}

	for _, theme := range []string{"dark", "light", "dracula", "nord", "solarized"} {
		if !validThemes[theme] {
			t.Errorf("Theme %q should be valid", theme)
		}
	}
	for _, theme := range []string{"", "monokai", "DARK"} {
		if validThemes[theme] {
			t.Errorf("Theme %q should be invalid", theme)
		}
	}
}

func TestClampEngine_Bounds(t *testing.T) {
	c := clampEngine(EngineConfig{
		ScrollbackLines: -1,
		TabStopWidth:    0,
		ClickTimeoutMS:  -5,
		BlinkTimeoutMS:  0,
		DrawIntervalMS:  -1,
	})
	if c.ScrollbackLines != 0 {
		t.Errorf("ScrollbackLines = %d, want 0", c.ScrollbackLines)
	}
	if c.TabStopWidth != 8 {
		t.Errorf("TabStopWidth = %d, want 8", c.TabStopWidth)
	}
	if c.ClickTimeoutMS != 300 {
		t.Errorf("ClickTimeoutMS = %d, want 300", c.ClickTimeoutMS)
	}
	if c.BlinkTimeoutMS != 500 {
		t.Errorf("BlinkTimeoutMS = %d, want 500", c.BlinkTimeoutMS)
	}
	if c.DrawIntervalMS != 16 {
		t.Errorf("DrawIntervalMS = %d, want 16", c.DrawIntervalMS)
	}
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Load()
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want 'dark'", cfg.Theme)
	}
	if _, err := os.Stat(filepath.Join(home, ".multiterminal.yaml")); err != nil {
		t.Errorf("expected default config file to be written: %v", err)
	}
}
