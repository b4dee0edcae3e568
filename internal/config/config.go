// Package config loads and provides application configuration.
//
// On first run, a default YAML config is written to ~/.multiterminal.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all user-configurable settings.
type Config struct {
	// DefaultShell is the shell spawned for new terminal tabs.
	DefaultShell string `yaml:"default_shell"`

	// DefaultDir is the working directory for new tabs.
	// Empty means the current working directory at launch time.
	DefaultDir string `yaml:"default_dir"`

	// Theme can be "dark", "light", "dracula", "nord", or "solarized".
	Theme string `yaml:"theme"`

	// Engine holds the terminal engine's tunables (scrollback size, click
	// timing, draw pacing — see engine.go).
	Engine EngineConfig `yaml:"engine"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultShell: "",
		DefaultDir:   "",
		Theme:        "dark",
		Engine:       DefaultEngineConfig(),
	}
}

// configPath returns the path to ~/.multiterminal.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".multiterminal.yaml")
}

// Load reads the config file, falling back to defaults for missing fields.
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet – write defaults for future editing
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// Validate theme name
	validThemes := map[string]bool{"dark": true, "light": true, "dracula": true, "nord": true, "solarized": true}
	if !validThemes[cfg.Theme] {
		cfg.Theme = "dark"
	}

	cfg.Engine = clampEngine(cfg.Engine)

	return cfg
}

// writeDefaults persists the default configuration to disk.
func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# Multiterminal configuration\n# Edit this file to customise defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}
