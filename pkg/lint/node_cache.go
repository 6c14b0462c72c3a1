package lint

import "github.com/yaklabco/swiftlint-go/pkg/syntax"

// NodeCache indexes the nodes of a tree by kind so that rules looking for
// the same kind share a single walk.
//
// The slices returned by Of are shared across all rules. Copy before sorting
// or filtering in place.
type NodeCache struct {
	byKind map[syntax.Kind][]syntax.Node
	count  int
}

// buildNodeCache walks root once and groups nodes by kind.
func buildNodeCache(root syntax.Node) *NodeCache {
	c := &NodeCache{byKind: make(map[syntax.Kind][]syntax.Node)}
	syntax.Inspect(root, func(n syntax.Node) bool {
		if !n.IsToken() {
			c.byKind[n.Kind()] = append(c.byKind[n.Kind()], n)
		}
		c.count++
		return true
	})
	return c
}

// Of returns the nodes of kind in source order. Token leaves are not indexed.
func (c *NodeCache) Of(kind syntax.Kind) []syntax.Node {
	return c.byKind[kind]
}

// Count returns the number of nodes walked, tokens included.
func (c *NodeCache) Count() int {
	return c.count
}
