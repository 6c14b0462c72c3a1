package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigPaths are the configuration files that apply to a run. Empty fields
// mean no such file exists.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/swiftlint-go/config.{yml,yaml,toml}.
	User string

	// Project is the nearest .swiftlint.{yml,yaml,toml} at or above the working directory.
	Project string

	// Explicit is the --config path; it replaces Project.
	Explicit string
}

// projectConfigFiles are tried in order in each directory.
var projectConfigFiles = []string{".swiftlint.yml", ".swiftlint.yaml", ".swiftlint.toml"}

// DiscoverPaths finds the user and project configuration for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{User: findUserConfig(), Project: project}, nil
}

// UserConfigDir is where the user-level config lives, or "" when neither
// XDG_CONFIG_HOME nor a home directory is known.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "swiftlint-go")
}

func findUserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return firstFile(dir, "config.yml", "config.yaml", "config.toml")
}

// FindProjectConfig searches startDir and its parents for a config file.
// The search does not leave the enclosing project: it ends after the first
// directory holding Package.swift, an Xcode project or workspace, or a VCS
// checkout, and at the home directory and filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles...); path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isProjectRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// isProjectRoot reports whether dir is the top of a Swift package, an Xcode
// project, or a repository.
func isProjectRoot(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		switch name := e.Name(); {
		case name == "Package.swift", name == ".git", name == ".hg", name == ".svn":
			return true
		case e.IsDir() && (strings.HasSuffix(name, ".xcodeproj") || strings.HasSuffix(name, ".xcworkspace")):
			return true
		}
	}
	return false
}

func firstFile(dir string, names ...string) string {
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsTOMLConfig reports whether path names a TOML config.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// IsYAMLConfig reports whether path names a YAML config.
func IsYAMLConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
