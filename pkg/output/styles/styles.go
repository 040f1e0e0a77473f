// Package styles defines the visual styling for pipegen's terminal output.
//
// Styles use semantic names (Success, Skipped, Preview, Path, Muted, Error,
// Heading) and adaptive colors that adjust to light and dark terminals. The
// definitions live in the embedded styles.yaml.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

// Default builds the embedded styles for renderer r
func Default(r *lipgloss.Renderer) Registry {
	reg, err := Load(embeddedStyles, r)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect
		panic(err)
	}
	return reg
}

// Load parses YAML style definitions and binds them to renderer r
func Load(data []byte, r *lipgloss.Renderer) (Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	reg := make(Registry, len(config.Styles))
	for name, def := range config.Styles {
		style := r.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if def.Foreground != "" {
			color, ok := colors[def.Foreground]
			if !ok {
				return nil, fmt.Errorf("style %s references unknown color %q", name, def.Foreground)
			}
			style = style.Foreground(color)
		}
		reg[name] = style
	}
	return reg, nil
}

// Get returns the named style, or an unstyled one when the name is unknown
func (reg Registry) Get(name string) lipgloss.Style {
	if s, ok := reg[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
