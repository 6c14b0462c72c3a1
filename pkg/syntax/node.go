package syntax

import "github.com/yaklabco/swiftlint-go/pkg/source"

// Node is a borrowed handle to a node in a Tree. The zero Node is invalid.
// Handles are valid for the lifetime of their Tree.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) data() *nodeData {
	return &n.tree.nodes[n.id]
}

// IsValid reports whether the handle refers to a node.
func (n Node) IsValid() bool {
	return n.tree != nil && n.id >= 0 && int(n.id) < len(n.tree.nodes)
}

// ID returns the arena index of the node.
func (n Node) ID() NodeID {
	if !n.IsValid() {
		return NoNode
	}
	return n.id
}

// Tree returns the owning tree.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns the node kind, or KindUnknown for an invalid handle.
func (n Node) Kind() Kind {
	if !n.IsValid() {
		return KindUnknown
	}
	return n.data().kind
}

// Is reports whether the node has one of the given kinds.
func (n Node) Is(kinds ...Kind) bool {
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return n.IsValid()
		}
	}
	return false
}

// Range returns the byte range, excluding leading and trailing trivia.
func (n Node) Range() source.Range {
	if !n.IsValid() {
		return source.Range{}
	}
	return n.data().rng
}

// FullRange returns the byte range including the trivia of the first and last tokens.
func (n Node) FullRange() source.Range {
	r := n.Range()
	if first, ok := n.FirstToken(); ok {
		r.Start = first.FullRange().Start
	}
	if last, ok := n.LastToken(); ok {
		r.End = last.FullRange().End
	}
	return r
}

// Start returns the start offset.
func (n Node) Start() int {
	return n.Range().Start
}

// End returns the end offset.
func (n Node) End() int {
	return n.Range().End
}

// Text returns the source text of the node, without trivia.
func (n Node) Text() string {
	if !n.IsValid() {
		return ""
	}
	return string(n.tree.text.Slice(n.Range()))
}

// Parent returns the parent node; the root's parent is invalid.
func (n Node) Parent() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().parent)
}

// NumChildren returns the number of direct children, tokens included.
func (n Node) NumChildren() int {
	if !n.IsValid() {
		return 0
	}
	return len(n.data().children)
}

// Child returns the i-th child, or an invalid node.
func (n Node) Child(i int) Node {
	if !n.IsValid() || i < 0 || i >= len(n.data().children) {
		return Node{}
	}
	return Node{tree: n.tree, id: n.data().children[i]}
}

// Children returns the direct children in source order.
func (n Node) Children() []Node {
	if !n.IsValid() {
		return nil
	}
	ids := n.data().children
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// ChildrenOfKind returns the direct children of the given kind.
func (n Node) ChildrenOfKind(kind Kind) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of one of the kinds.
func (n Node) FirstChildOfKind(kinds ...Kind) Node {
	if !n.IsValid() {
		return Node{}
	}
	for _, id := range n.data().children {
		c := Node{tree: n.tree, id: id}
		if c.Is(kinds...) {
			return c
		}
	}
	return Node{}
}

// NonTokenChildren returns the direct children that are not tokens.
func (n Node) NonTokenChildren() []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() != KindToken {
			out = append(out, c)
		}
	}
	return out
}

// IsToken reports whether the node is a token leaf.
func (n Node) IsToken() bool {
	return n.Kind() == KindToken
}

// Token returns the token of a leaf node.
func (n Node) Token() (Token, bool) {
	if !n.IsToken() {
		return Token{}, false
	}
	return n.tree.tokens[n.data().token], true
}

// TokenKind returns the token kind of a leaf, or TokenUnknown.
func (n Node) TokenKind() TokenKind {
	tok, ok := n.Token()
	if !ok {
		return TokenUnknown
	}
	return tok.Kind
}

// IsTokenText reports whether n is a token leaf with the given text.
func (n Node) IsTokenText(text string) bool {
	return n.IsToken() && n.Text() == text
}

// ChildToken returns the first direct token child with the given text.
func (n Node) ChildToken(text string) Node {
	for _, c := range n.Children() {
		if c.IsTokenText(text) {
			return c
		}
	}
	return Node{}
}

// FirstToken returns the first token under the node.
func (n Node) FirstToken() (Token, bool) {
	for cur := n; cur.IsValid(); cur = cur.Child(0) {
		if cur.IsToken() {
			return cur.Token()
		}
		if cur.NumChildren() == 0 {
			break
		}
	}
	return Token{}, false
}

// LastToken returns the last token under the node.
func (n Node) LastToken() (Token, bool) {
	for cur := n; cur.IsValid(); cur = cur.Child(cur.NumChildren() - 1) {
		if cur.IsToken() {
			return cur.Token()
		}
		if cur.NumChildren() == 0 {
			break
		}
	}
	return Token{}, false
}

// Tokens returns every token under the node in source order.
func (n Node) Tokens() []Token {
	var out []Token
	Inspect(n, func(c Node) bool {
		if tok, ok := c.Token(); ok {
			out = append(out, tok)
		}
		return true
	})
	return out
}

// Ancestor returns the nearest strict ancestor of one of the kinds.
func (n Node) Ancestor(kinds ...Kind) Node {
	for cur := n.Parent(); cur.IsValid(); cur = cur.Parent() {
		if cur.Is(kinds...) {
			return cur
		}
	}
	return Node{}
}

// IndexInParent returns the position of n among its parent's children.
func (n Node) IndexInParent() int {
	parent := n.Parent()
	if !parent.IsValid() {
		return -1
	}
	for i, id := range parent.data().children {
		if id == n.id {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling, or an invalid node.
func (n Node) NextSibling() Node {
	idx := n.IndexInParent()
	if idx < 0 {
		return Node{}
	}
	return n.Parent().Child(idx + 1)
}

// PrevSibling returns the preceding sibling, or an invalid node.
func (n Node) PrevSibling() Node {
	idx := n.IndexInParent()
	if idx <= 0 {
		return Node{}
	}
	return n.Parent().Child(idx - 1)
}
