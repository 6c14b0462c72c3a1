//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/swiftlint"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"tr":  Test.Rules,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"bc":  Bench.Corpus,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/swiftlint with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/swiftlint")
}

// Install runs go install for cmd/swiftlint.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/swiftlint")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build, coverage and generated docs output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "docs/rules"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Docs regenerates the rule reference under docs/rules, Markdown and HTML.
func Docs() error {
	st.Deps(Build)
	return sh.RunV(binary, "docs", "--html", "docs/rules")
}

// Default runs every test with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "./...", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Rules runs the rule catalog tests, which replay each rule's documented
// examples and corrections.
func (Test) Rules() error {
	return gotestsum("testname", "./pkg/lint/rules/...")
}

// Fuzz fuzzes the Swift parser and the edit applier for FUZZTIME (default 30s) each.
func (Test) Fuzz() error {
	fuzztime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	for _, t := range []struct{ pkg, fn string }{
		{"./pkg/parser/swift", "FuzzParse"},
		{"./pkg/fix", "FuzzApply"},
		{"./pkg/fix", "FuzzUnified"},
	} {
		if err := sh.RunV("go", "test", t.pkg, "-run", "^$", "-fuzz", "^"+t.fn+"$", "-fuzztime", fuzztime); err != nil {
			return fmt.Errorf("%s: %w", t.fn, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any Go file is not gofmt-clean.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs the checks CI requires before merge.
func (CI) Gate() error {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		before[i] = data
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	return nil
}

// Cross builds for the platforms Swift toolchains ship on.
func (CI) Cross() error {
	for _, p := range []string{"darwin/arm64", "darwin/amd64", "linux/amd64", "linux/arm64", "windows/amd64"} {
		goos, goarch, _ := strings.Cut(p, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/swiftlint"); err != nil {
			return fmt.Errorf("build %s: %w", p, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run", "^$", "-bench=.", "-benchmem", "./...")
}

// Corpus lints the Swift tree named by BENCH_CORPUS with the cache off and
// writes per-rule timings to bench/metrics.prom.
func (Bench) Corpus() error {
	corpus := os.Getenv("BENCH_CORPUS")
	if corpus == "" {
		return errors.New("set BENCH_CORPUS to a directory of Swift sources")
	}
	st.Deps(Build)
	if err := os.MkdirAll("bench", 0o755); err != nil {
		return fmt.Errorf("create bench directory: %w", err)
	}
	started := time.Now()
	err := sh.RunV(binary, "lint", "--no-cache", "--reporter", "summary", "--metrics-file", "bench/metrics.prom", corpus)
	fmt.Printf("Linted %s in %s\n", corpus, time.Since(started).Round(time.Millisecond))
	// Exit status 1 only means violations were found.
	var coded interface{ ExitStatus() int }
	if err != nil && (!errors.As(err, &coded) || coded.ExitStatus() != 1) {
		return err
	}
	return nil
}

func gotestsum(format string, args ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	full := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}, args...)
	return sh.RunV("go", full...)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into cmd/swiftlint.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
