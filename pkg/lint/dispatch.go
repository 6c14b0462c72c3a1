package lint

import (
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// dispatchEntry is one rule's visitor inside a Multiplexer.
type dispatchEntry struct {
	visitor   Visitor
	interest  map[syntax.Kind]bool // nil means every kind
	skippable map[syntax.Kind]bool

	// skipFrom is the root of the subtree the entry is currently skipping.
	skipFrom syntax.NodeID
	// callPost records whether the skip root itself was visited.
	callPost bool
}

func (e *dispatchEntry) wants(kind syntax.Kind) bool {
	return e.interest == nil || e.interest[kind]
}

// Multiplexer fans a single tree walk out to many rule visitors.
// Each visitor sees exactly the callbacks it would see if it walked the
// tree alone, in the order entries were added.
type Multiplexer struct {
	entries []*dispatchEntry
}

// NewMultiplexer returns an empty Multiplexer.
func NewMultiplexer() *Multiplexer {
	return &Multiplexer{}
}

// Add registers a visitor. kinds limits the node kinds it is called for;
// skippable lists declaration kinds whose subtrees it never enters.
func (m *Multiplexer) Add(v Visitor, kinds, skippable []syntax.Kind) {
	e := &dispatchEntry{visitor: v, skipFrom: syntax.NoNode}
	if kinds != nil {
		e.interest = make(map[syntax.Kind]bool, len(kinds))
		for _, k := range kinds {
			e.interest[k] = true
		}
	}
	if len(skippable) > 0 {
		e.skippable = make(map[syntax.Kind]bool, len(skippable))
		for _, k := range skippable {
			e.skippable[k] = true
		}
	}
	m.entries = append(m.entries, e)
}

// Len returns the number of registered visitors.
func (m *Multiplexer) Len() int {
	return len(m.entries)
}

// Visit implements syntax.Visitor.
func (m *Multiplexer) Visit(n syntax.Node) syntax.Action {
	kind := n.Kind()
	active := 0
	for _, e := range m.entries {
		if e.skipFrom != syntax.NoNode {
			continue
		}
		if e.skippable[kind] {
			e.skipFrom, e.callPost = n.ID(), false
			continue
		}
		if e.wants(kind) && e.visitor.Visit(n) == syntax.SkipChildren {
			e.skipFrom, e.callPost = n.ID(), true
			continue
		}
		active++
	}
	if active == 0 {
		return syntax.SkipChildren
	}
	return syntax.VisitChildren
}

// VisitPost implements syntax.Visitor.
func (m *Multiplexer) VisitPost(n syntax.Node) {
	id := n.ID()
	for _, e := range m.entries {
		switch {
		case e.skipFrom == id:
			e.skipFrom = syntax.NoNode
			if e.callPost {
				e.visitor.VisitPost(n)
			}
		case e.skipFrom != syntax.NoNode:
		case e.wants(n.Kind()):
			e.visitor.VisitPost(n)
		}
	}
}

// Walk runs every registered visitor over the tree rooted at root.
func (m *Multiplexer) Walk(root syntax.Node) {
	if len(m.entries) == 0 {
		return
	}
	syntax.Walk(root, m)
}
