package rules

import (
	"maps"
	"slices"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// Pack is a named configuration preset. Packs are starting points for
// .swiftlint.yml files written by "swiftlint init --pack".
type Pack struct {
	// Name is the short identifier for the pack (e.g., "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// OptIn lists opt-in rules the pack turns on.
	OptIn []string

	// Disabled lists default rules the pack turns off.
	Disabled []string

	// Rules holds per-rule options in on-disk shape, keyed by rule ID.
	Rules map[string]any

	// Strict upgrades warnings to errors.
	Strict bool
}

// Apply merges the pack into cfg. Lists are unioned; rule options from the
// pack replace those already in cfg.
func (p Pack) Apply(cfg *config.Config) {
	cfg.OptInRules = union(cfg.OptInRules, p.OptIn)
	cfg.DisabledRules = union(cfg.DisabledRules, p.Disabled)
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]any, len(p.Rules))
	}
	maps.Copy(cfg.Rules, p.Rules)
	cfg.Strict = cfg.Strict || p.Strict
}

// DefaultPack returns the empty pack: every default rule with default options.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "Default rules with default options",
	}
}

// StrictPack returns a pack for codebases that treat style findings as errors.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: opt-in rules on, tighter limits, warnings fail the build",
		OptIn:       []string{"empty_count"},
		Rules: map[string]any{
			"line_length":          map[string]any{"warning": 100, "error": 140},
			"function_body_length": map[string]any{"warning": 40, "error": 80},
			"force_cast":           "error",
			"trailing_whitespace":  map[string]any{"ignores_comments": false},
		},
		Strict: true,
	}
}

// RelaxedPack returns a pack with minimal noise, suitable for legacy code.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: longer limits, no whitespace or TODO findings",
		Disabled:    []string{"trailing_whitespace", "todo"},
		Rules: map[string]any{
			"line_length":          map[string]any{"warning": 160, "error": 250, "ignores_comments": true},
			"function_body_length": map[string]any{"warning": 80, "error": 150},
			"force_cast":           "warning",
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

func union(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
