// Package fix computes, resolves and applies source corrections.
package fix

import (
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Edit replaces the bytes in Range with NewText.
type Edit struct {
	Range   source.Range
	NewText string
}

// IsInsert reports whether the edit only adds text.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty()
}

// Correction is an edit proposed by a rule. Location is where the rule
// reports the correction, normally the start of the edited range.
type Correction struct {
	RuleID   string
	Location source.Location
	Edit     Edit
}

// Builder accumulates the corrections one rule makes to one file.
// All edits are expressed against the same, unmodified text.
type Builder struct {
	ruleID      string
	text        *source.Text
	corrections []Correction
}

// NewBuilder creates a builder for ruleID over text.
func NewBuilder(ruleID string, text *source.Text) *Builder {
	return &Builder{ruleID: ruleID, text: text}
}

// Replace replaces the bytes in r with newText.
func (b *Builder) Replace(r source.Range, newText string) {
	b.ReplaceAt(r.Start, r, newText)
}

// ReplaceAt is Replace with an explicit reporting offset.
func (b *Builder) ReplaceAt(at int, r source.Range, newText string) {
	b.corrections = append(b.corrections, Correction{
		RuleID:   b.ruleID,
		Location: b.text.LocationAt(at),
		Edit:     Edit{Range: r, NewText: newText},
	})
}

// ReplaceNode replaces the node's text, excluding its surrounding trivia.
func (b *Builder) ReplaceNode(n syntax.Node, newText string) {
	b.Replace(n.Range(), newText)
}

// Insert adds text at offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(source.Range{Start: offset, End: offset}, text)
}

// Delete removes the bytes in r.
func (b *Builder) Delete(r source.Range) {
	b.Replace(r, "")
}

// Len returns the number of corrections recorded.
func (b *Builder) Len() int {
	return len(b.corrections)
}

// Corrections returns the recorded corrections in the order they were made.
func (b *Builder) Corrections() []Correction {
	return b.corrections
}
