package syntax

// Action tells the walker whether to descend into a node's children.
type Action uint8

const (
	// VisitChildren continues into the subtree.
	VisitChildren Action = iota
	// SkipChildren prunes the subtree; VisitPost is still called for the node.
	SkipChildren
)

// Visitor receives pre-order and post-order callbacks.
type Visitor interface {
	Visit(n Node) Action
	VisitPost(n Node)
}

// Walk traverses the subtree rooted at root depth-first, left to right.
func Walk(root Node, v Visitor) {
	if !root.IsValid() {
		return
	}
	if v.Visit(root) == VisitChildren {
		for _, id := range root.data().children {
			Walk(Node{tree: root.tree, id: id}, v)
		}
	}
	v.VisitPost(root)
}

// VisitorFuncs adapts a pair of functions to the Visitor interface.
// Either function may be nil.
type VisitorFuncs struct {
	Pre  func(n Node) Action
	Post func(n Node)
}

// Visit implements Visitor.
func (f VisitorFuncs) Visit(n Node) Action {
	if f.Pre == nil {
		return VisitChildren
	}
	return f.Pre(n)
}

// VisitPost implements Visitor.
func (f VisitorFuncs) VisitPost(n Node) {
	if f.Post != nil {
		f.Post(n)
	}
}

// Inspect calls fn for each node in pre-order; returning false skips the children.
func Inspect(root Node, fn func(n Node) bool) {
	Walk(root, VisitorFuncs{Pre: func(n Node) Action {
		if fn(n) {
			return VisitChildren
		}
		return SkipChildren
	}})
}

// FindAll returns all nodes matching the predicate in source order.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var out []Node
	Inspect(root, func(n Node) bool {
		if predicate(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root Node, kind Kind) []Node {
	return FindAll(root, func(n Node) bool { return n.Kind() == kind })
}

// FindFirst returns the first node matching the predicate in pre-order.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node
	Inspect(root, func(n Node) bool {
		if found.IsValid() {
			return false
		}
		if predicate(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
