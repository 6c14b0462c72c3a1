package lint

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/region"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Text is the linted source.
	Text *source.Text

	// Tree is the parsed file; nil for files skipped as empty.
	Tree *syntax.Tree

	// Regions are the file's suppression regions.
	Regions *region.Table

	// Violations are filtered, sorted and deduplicated.
	Violations []Violation

	// RuleErrors contains any errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// CountBySeverity returns the number of violations with severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	n := 0
	for _, v := range fr.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// Observer receives timing and count events from the engine.
// Implementations must be safe for concurrent use.
type Observer interface {
	RuleFinished(ruleID string, violations int, elapsed time.Duration)
	FileFinished(path string, violations int, elapsed time.Duration)
	CorrectionsApplied(ruleID string, count int)
}

// Options tunes how the engine runs rules.
type Options struct {
	// Independent walks the tree once per visitor rule instead of once for all.
	Independent bool

	// RuleJobs bounds concurrent rule passes per file (0 means one per CPU).
	RuleJobs int

	// MaxFixPasses bounds correction passes per file (0 means DefaultMaxFixPasses).
	MaxFixPasses int

	// Observer, if set, receives events.
	Observer Observer
}

// Engine coordinates parsing and rule execution for linting.
// An Engine is safe for concurrent use across files.
type Engine struct {
	// Parser parses Swift files into syntax trees.
	Parser Parser

	// Rules are the enabled, configured rules.
	Rules *RuleSet

	// Options tunes execution.
	Options Options
}

// NewEngine creates a new Engine with the given parser and rule set.
func NewEngine(parser Parser, rules *RuleSet) *Engine {
	return &Engine{Parser: parser, Rules: rules}
}

// IsEmptySource reports whether a file has nothing to lint.
func IsEmptySource(content []byte) bool {
	return len(content) == 0 || (len(content) == 1 && content[0] == '\n')
}

// LintFile parses and lints a single file.
func (e *Engine) LintFile(ctx context.Context, text *source.Text) (*FileResult, error) {
	started := time.Now()
	result := &FileResult{Text: text, RuleErrors: make(map[string]error)}

	if IsEmptySource(text.Bytes()) {
		result.Regions = region.Empty()
		return result, nil
	}

	tree, err := e.Parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", text.Path(), err)
	}
	result.Tree = tree
	result.Regions = region.FromTree(tree)

	rc := NewRuleContext(ctx, tree, result.Regions)
	rc.SwiftVersion = e.Rules.SwiftVersion

	collector := NewCollector()
	if err := e.runRules(rc, collector, result.RuleErrors); err != nil {
		return result, err
	}

	if self, ok := e.Rules.Find(SuperfluousDisableCommandID); ok {
		collector.Record(superfluousDisables(rc, e.Rules, self, collector.Raw())...)
	}

	result.Violations = collector.Finalize(text, result.Regions, e.Rules)
	if obs := e.Options.Observer; obs != nil {
		obs.FileFinished(text.Path(), len(result.Violations), time.Since(started))
	}
	return result, nil
}

// rulePass is one unit of concurrent work: a tree walk or a text check.
type rulePass struct {
	rules []Rule
	run   func() []Violation
}

func (e *Engine) runRules(rc *RuleContext, collector *Collector, ruleErrors map[string]error) error {
	var (
		mu     sync.Mutex
		passes []rulePass
	)
	fail := func(ruleID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		ruleErrors[ruleID] = err
	}

	var shared *Multiplexer
	var sharedReports []*Report
	var sharedRules []Rule

	for _, rr := range e.Rules.Rules {
		rule := rr.Rule
		switch r := rule.(type) {
		case VisitorRule:
			report := NewReport(r, rc.Text)
			visitor := &guardedVisitor{ruleID: r.ID(), inner: r.NewVisitor(rc, report), fail: fail}
			if e.Options.Independent {
				mux := NewMultiplexer()
				mux.Add(visitor, r.Kinds(), r.SkippableDeclarations())
				passes = append(passes, rulePass{rules: []Rule{r}, run: func() []Violation {
					mux.Walk(rc.Root)
					return report.Violations()
				}})
				continue
			}
			if shared == nil {
				shared = NewMultiplexer()
			}
			shared.Add(visitor, r.Kinds(), r.SkippableDeclarations())
			sharedReports = append(sharedReports, report)
			sharedRules = append(sharedRules, r)
		case TextRule:
			report := NewReport(r, rc.Text)
			passes = append(passes, rulePass{rules: []Rule{r}, run: func() []Violation {
				if err := runGuarded(func() error { return r.Check(rc, report) }); err != nil {
					fail(r.ID(), err)
				}
				return report.Violations()
			}})
		}
	}
	if shared != nil {
		passes = append([]rulePass{{rules: sharedRules, run: func() []Violation {
			shared.Walk(rc.Root)
			var out []Violation
			for _, r := range sharedReports {
				out = append(out, r.Violations()...)
			}
			return out
		}}}, passes...)
	}

	g, gctx := errgroup.WithContext(rc.Ctx)
	g.SetLimit(e.ruleJobs())
	for _, pass := range passes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("linting cancelled: %w", err)
			}
			started := time.Now()
			found := pass.run()
			collector.Record(found...)
			e.observePass(pass, found, time.Since(started))
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) observePass(pass rulePass, found []Violation, elapsed time.Duration) {
	obs := e.Options.Observer
	if obs == nil {
		return
	}
	counts := make(map[string]int, len(pass.rules))
	for _, v := range found {
		counts[v.RuleID]++
	}
	// A shared walk cannot be timed per rule; its time is split evenly.
	share := elapsed / time.Duration(len(pass.rules))
	for _, r := range pass.rules {
		obs.RuleFinished(r.ID(), counts[r.ID()], share)
	}
}

func (e *Engine) ruleJobs() int {
	if e.Options.RuleJobs > 0 {
		return e.Options.RuleJobs
	}
	return runtime.GOMAXPROCS(0)
}

// guardedVisitor stops calling a visitor that panicked and records the panic
// as the rule's error. Other rules sharing the walk are unaffected.
type guardedVisitor struct {
	ruleID string
	inner  Visitor
	failed bool
	fail   func(ruleID string, err error)
}

func (g *guardedVisitor) Visit(n syntax.Node) (action syntax.Action) {
	if g.failed {
		return syntax.SkipChildren
	}
	defer g.catch(&action)
	return g.inner.Visit(n)
}

func (g *guardedVisitor) VisitPost(n syntax.Node) {
	if g.failed {
		return
	}
	defer g.catch(nil)
	g.inner.VisitPost(n)
}

func (g *guardedVisitor) catch(action *syntax.Action) {
	if p := recover(); p != nil {
		g.failed = true
		g.fail(g.ruleID, fmt.Errorf("rule panicked: %v", p))
		if action != nil {
			*action = syntax.SkipChildren
		}
	}
}

// runGuarded converts a panic in fn into an error.
func runGuarded(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule panicked: %v", p)
		}
	}()
	return fn()
}
