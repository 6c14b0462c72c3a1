package lint

import (
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/region"
)

// SuperfluousDisableCommandID is the rule that reports suppression
// directives with nothing to suppress. The engine implements it because it
// needs every other rule's unfiltered output.
const SuperfluousDisableCommandID = "superfluous_disable_command"

// superfluousDisables reports disable directives that suppressed nothing
// and disable directives naming unknown rules.
func superfluousDisables(rc *RuleContext, rules *RuleSet, self ResolvedRule, raw []Violation) []Violation {
	table := rc.Regions
	if !table.HasDirectives() {
		return nil
	}
	report := NewReport(self.Rule, rc.Text)
	suppressed := func(loc region.Location) bool {
		return table.IsDisabled(SuperfluousDisableCommandID, loc, self.Aliases...)
	}

	for _, rr := range rules.Rules {
		if rr.Rule.ID() == SuperfluousDisableCommandID {
			continue
		}
		owned := ownedIDs(rr)
		for _, id := range rr.IDs() {
			checkRegions(rc, report, id, suppressed, func(v Violation) bool { return owned[v.RuleID] }, raw)
		}
		if p, ok := rr.Rule.(SubRuleProvider); ok {
			for _, sub := range p.SubRuleIDs() {
				checkRegions(rc, report, sub, suppressed, func(v Violation) bool { return v.RuleID == sub }, raw)
			}
		}
	}

	for _, cmd := range table.Commands() {
		if cmd.Action != region.ActionDisable || !cmd.IsValid() {
			continue
		}
		for _, id := range cmd.IDs {
			if id == region.All || rules.IsKnownID(id) || suppressed(cmd.Location) {
				continue
			}
			report.At(cmd.Range.Start,
				fmt.Sprintf("'%s' is not a valid SwiftLint rule; remove it from the disable command", id))
		}
	}
	return report.Violations()
}

// ownedIDs are the violation rule IDs produced by rr.
func ownedIDs(rr ResolvedRule) map[string]bool {
	owned := map[string]bool{rr.Rule.ID(): true}
	if p, ok := rr.Rule.(SubRuleProvider); ok {
		for _, sub := range p.SubRuleIDs() {
			owned[sub] = true
		}
	}
	return owned
}

func checkRegions(
	rc *RuleContext,
	report *Report,
	id string,
	suppressed func(region.Location) bool,
	owns func(Violation) bool,
	raw []Violation,
) {
	for _, reg := range rc.Regions.RegionsDisablingExplicitly(id) {
		if suppressed(reg.Start) || hasViolationIn(reg, owns, raw) {
			continue
		}
		cmd, ok := originatingCommand(rc.Regions, id, reg.Start)
		if !ok {
			continue
		}
		report.At(cmd.Range.Start, fmt.Sprintf(
			"SwiftLint rule '%s' did not trigger a violation in the disabled region; remove the disable command", id))
	}
}

func hasViolationIn(reg region.Region, owns func(Violation) bool, raw []Violation) bool {
	for _, v := range raw {
		if owns(v) && reg.Contains(region.LocationOf(v.Location)) {
			return true
		}
	}
	return false
}

// originatingCommand finds the directive whose disable opens a region at start.
func originatingCommand(table *region.Table, id string, start region.Location) (region.Command, bool) {
	for _, cmd := range table.Commands() {
		if cmd.Action != region.ActionDisable || !cmd.Names(id) {
			continue
		}
		for _, ex := range cmd.Expand() {
			if ex.Action == region.ActionDisable && ex.Location == start {
				return cmd, true
			}
		}
	}
	return region.Command{}, false
}
