package lint

import (
	"context"
	"regexp"
	"sync"

	"github.com/yaklabco/swiftlint-go/pkg/region"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// RuleContext is the read-only view of one file that rules inspect.
// It is shared by every rule run on the file and is safe for concurrent use.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing it
// as a method parameter; it is a short-lived parameter object created per
// file, not a long-lived struct.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Text is the source being linted.
	Text *source.Text

	// Tree is the parsed syntax tree of Text.
	Tree *syntax.Tree

	// Root is the tree root (convenience alias for Tree.Root()).
	Root syntax.Node

	// Regions holds the suppression regions of the file.
	Regions *region.Table

	// SwiftVersion is the configured language version.
	SwiftVersion Version

	// Regexes compiles and caches patterns; defaults to the shared cache.
	Regexes *RegexCache

	nodesOnce sync.Once
	nodes     *NodeCache

	classesOnce sync.Once
	classes     []ClassSpan
}

// NewRuleContext creates a RuleContext for a parsed file.
func NewRuleContext(ctx context.Context, tree *syntax.Tree, regions *region.Table) *RuleContext {
	if regions == nil {
		regions = region.FromTree(tree)
	}
	return &RuleContext{
		Ctx:          ctx,
		Text:         tree.Text(),
		Tree:         tree,
		Root:         tree.Root(),
		Regions:      regions,
		SwiftVersion: DefaultSwiftVersion,
		Regexes:      DefaultRegexCache(),
	}
}

// Path returns the file path.
func (rc *RuleContext) Path() string {
	return rc.Text.Path()
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// NodesOfKind returns every node of kind in source order.
// The returned slice is shared and must not be modified.
func (rc *RuleContext) NodesOfKind(kind syntax.Kind) []syntax.Node {
	rc.nodesOnce.Do(func() {
		rc.nodes = buildNodeCache(rc.Root)
	})
	return rc.nodes.Of(kind)
}

// Regex compiles pattern through the context's cache.
func (rc *RuleContext) Regex(pattern string) (*regexp.Regexp, error) {
	return rc.Regexes.Compile(pattern)
}

// Classes returns the classified spans of the file in source order.
func (rc *RuleContext) Classes() []ClassSpan {
	rc.classesOnce.Do(func() {
		rc.classes = classify(rc.Tree)
	})
	return rc.classes
}
