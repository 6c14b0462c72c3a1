// Package configloader finds, decodes, layers and validates swiftlint
// configuration.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir is where project discovery starts. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath comes from --config and replaces project discovery.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and is merged last.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string

	// RootDir anchors included and excluded paths: the directory of the
	// project or explicit config file, else the working directory.
	RootDir string

	Warnings []string
}

// Load merges defaults, the user file, the project (or explicit) file,
// SWIFTLINT_* variables and CLI flags, in that order, then validates the
// result.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}

	result := &LoadResult{Paths: paths, RootDir: workDir}
	cfg := config.NewConfig()

	var userPath, projectPath string
	if !opts.IgnoreUserConfig {
		userPath = paths.User
	}
	switch {
	case opts.ExplicitPath != "":
		paths.Explicit = opts.ExplicitPath
		projectPath = opts.ExplicitPath
	case !opts.IgnoreProjectConfig:
		projectPath = paths.Project
	}

	for _, layer := range []struct{ label, path string }{
		{"user config", userPath},
		{"config " + projectPath, projectPath},
	} {
		if layer.path == "" {
			continue
		}
		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", layer.label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if projectPath != "" {
		if abs, err := filepath.Abs(projectPath); err == nil {
			result.RootDir = filepath.Dir(abs)
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

// LoadFile decodes a .toml file as TOML and anything else as YAML.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !IsTOMLConfig(path) {
		return config.FromYAML(content)
	}
	var raw map[string]any
	if _, err := toml.Decode(string(content), &raw); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return config.FromMap(raw)
}

// WriteFile atomically writes a generated config to path. An existing file
// is only replaced when force is set.
func WriteFile(ctx context.Context, path string, data []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
