package lint

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/region"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// DefaultMaxFixPasses bounds how often the correctable rules are rerun on a
// file before giving up on reaching a fixed point.
const DefaultMaxFixPasses = 4

// CorrectionResult describes the corrections made to one file.
type CorrectionResult struct {
	// Original is the text before correction.
	Original *source.Text

	// Text is the corrected text. It equals Original when nothing changed.
	Text *source.Text

	// Applied lists corrections in the order they were applied, one rule
	// at a time.
	Applied []fix.Correction

	// Dropped lists corrections discarded because they conflicted.
	Dropped []fix.Correction

	// Passes is the number of passes run over the correctable rules.
	Passes int

	// CapReached is true if the last pass still changed the text.
	CapReached bool

	// RuleErrors contains errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// Changed reports whether any correction was applied.
func (r *CorrectionResult) Changed() bool {
	return len(r.Applied) > 0
}

// Correct applies the corrections of every auto-fix rule to text until a
// pass changes nothing or the pass limit is reached. Each rule sees the
// text as rewritten by the rules before it, reparsed.
func (e *Engine) Correct(ctx context.Context, text *source.Text) (*CorrectionResult, error) {
	result := &CorrectionResult{Original: text, Text: text, RuleErrors: make(map[string]error)}

	var fixers []ResolvedRule
	for _, rr := range e.Rules.Rules {
		if _, ok := rr.Rule.(CorrectableRule); ok && rr.AutoFix {
			fixers = append(fixers, rr)
		}
	}
	if len(fixers) == 0 {
		return result, nil
	}

	maxPasses := e.Options.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	for result.Passes < maxPasses {
		result.Passes++
		changed := false
		for _, rr := range fixers {
			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("correction cancelled: %w", err)
			}
			applied, err := e.correctOnce(ctx, result, rr)
			if err != nil {
				return result, err
			}
			changed = changed || applied
		}
		if !changed {
			return result, nil
		}
	}
	result.CapReached = true
	return result, nil
}

// correctOnce runs one rule against the current text and applies its
// corrections outside suppressed regions.
func (e *Engine) correctOnce(ctx context.Context, result *CorrectionResult, rr ResolvedRule) (bool, error) {
	current := result.Text
	if IsEmptySource(current.Bytes()) {
		return false, nil
	}

	tree, err := e.Parser.Parse(ctx, current)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", current.Path(), err)
	}
	rc := NewRuleContext(ctx, tree, nil)
	rc.SwiftVersion = e.Rules.SwiftVersion

	rule := rr.Rule.(CorrectableRule)
	b := fix.NewBuilder(rule.ID(), current)
	if err := runGuarded(func() error { return rule.Correct(rc, b) }); err != nil {
		result.RuleErrors[rule.ID()] = err
		return false, nil
	}

	var allowed []fix.Correction
	for _, c := range b.Corrections() {
		start := region.LocationOf(current.LocationAt(c.Edit.Range.Start))
		end := region.LocationOf(current.LocationAt(c.Edit.Range.End))
		if rc.Regions.IsRangeDisabled(rule.ID(), start, end, rr.Aliases...) {
			continue
		}
		allowed = append(allowed, c)
	}
	if len(allowed) == 0 {
		return false, nil
	}

	applied, err := fix.Apply(current.Bytes(), allowed)
	if err != nil {
		result.RuleErrors[rule.ID()] = err
		return false, nil
	}
	result.Dropped = append(result.Dropped, applied.Dropped...)
	if !applied.Changed() || bytes.Equal(applied.Content, current.Bytes()) {
		return false, nil
	}

	result.Applied = append(result.Applied, applied.Applied...)
	result.Text = current.WithContent(applied.Content)
	if obs := e.Options.Observer; obs != nil {
		obs.CorrectionsApplied(rule.ID(), len(applied.Applied))
	}
	return true, nil
}
