package syntax

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// NodeID indexes a node in its Tree arena.
type NodeID int32

// NoNode is the parent of the root and the ID of the zero Node.
const NoNode NodeID = -1

type nodeData struct {
	kind     Kind
	rng      source.Range
	parent   NodeID
	children []NodeID
	token    int32 // index into Tree.tokens, or -1
}

// Tree is an immutable syntax tree over one source.Text.
// All nodes live in a single arena; parent links are arena indices.
type Tree struct {
	text   *source.Text
	tokens []Token
	nodes  []nodeData
	root   NodeID
}

// Text returns the source text the tree was parsed from.
func (t *Tree) Text() *source.Text {
	return t.text
}

// Root returns the SourceFile node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: t.root}
}

// Tokens returns all tokens in source order, ending with EOF.
func (t *Tree) Tokens() []Token {
	return t.tokens
}

// NodeCount returns the number of nodes in the arena.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// Node returns the node with the given ID.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// Comments returns every comment trivia in source order.
func (t *Tree) Comments() []Trivia {
	var out []Trivia
	for _, tok := range t.tokens {
		for _, tr := range tok.Leading {
			if tr.Kind.IsComment() {
				out = append(out, tr)
			}
		}
		for _, tr := range tok.Trailing {
			if tr.Kind.IsComment() {
				out = append(out, tr)
			}
		}
	}
	return out
}

// TokenAt returns the token whose range contains offset.
func (t *Tree) TokenAt(offset int) (Token, bool) {
	lo, hi := 0, len(t.tokens)
	for lo < hi {
		mid := (lo + hi) / 2
		tok := t.tokens[mid]
		switch {
		case offset < tok.Range.Start:
			hi = mid
		case offset >= tok.Range.End:
			lo = mid + 1
		default:
			return tok, true
		}
	}
	return Token{}, false
}

// Builder assembles a Tree. Parsers open and close nodes around the
// tokens they consume; children are kept in source order.
type Builder struct {
	tree    *Tree
	stack   []NodeID
	lastEnd int
}

// NewBuilder creates a builder over a lexed token stream.
func NewBuilder(text *source.Text, tokens []Token) *Builder {
	return &Builder{
		tree: &Tree{
			text:   text,
			tokens: tokens,
			nodes:  make([]nodeData, 0, len(tokens)*2),
			root:   NoNode,
		},
	}
}

func (b *Builder) alloc(kind Kind, token int32) NodeID {
	n, err := safecast.Conv[int32](len(b.tree.nodes))
	if err != nil {
		panic(fmt.Errorf("syntax arena overflow: %w", err))
	}
	id := NodeID(n)
	parent := NoNode
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1]
	}
	b.tree.nodes = append(b.tree.nodes, nodeData{
		kind:   kind,
		parent: parent,
		token:  token,
		rng:    source.Range{Start: b.lastEnd, End: b.lastEnd},
	})
	if parent != NoNode {
		b.tree.nodes[parent].children = append(b.tree.nodes[parent].children, id)
	} else if b.tree.root == NoNode {
		b.tree.root = id
	}
	return id
}

// Open starts a node of the given kind as the last child of the current node.
func (b *Builder) Open(kind Kind) {
	b.stack = append(b.stack, b.alloc(kind, -1))
}

// Checkpoint marks the current child position of the open node.
func (b *Builder) Checkpoint() int {
	if len(b.stack) == 0 {
		return 0
	}
	return len(b.tree.nodes[b.stack[len(b.stack)-1]].children)
}

// OpenAt starts a node that adopts every child added to the open node
// since the checkpoint. It is used to wrap an already parsed operand,
// for example turning `foo` into the callee of `foo(x)`.
func (b *Builder) OpenAt(checkpoint int, kind Kind) {
	parent := b.stack[len(b.stack)-1]
	siblings := b.tree.nodes[parent].children
	if checkpoint > len(siblings) {
		checkpoint = len(siblings)
	}
	adopted := append([]NodeID(nil), siblings[checkpoint:]...)
	b.tree.nodes[parent].children = siblings[:checkpoint]

	id := b.alloc(kind, -1)
	for _, child := range adopted {
		b.tree.nodes[child].parent = id
	}
	b.tree.nodes[id].children = adopted
	if len(adopted) > 0 {
		b.tree.nodes[id].rng.Start = b.tree.nodes[adopted[0]].rng.Start
	}
	b.stack = append(b.stack, id)
}

// Token appends the token at index as a leaf of the open node.
func (b *Builder) Token(index int) {
	idx, err := safecast.Conv[int32](index)
	if err != nil {
		panic(fmt.Errorf("token index overflow: %w", err))
	}
	rng := b.tree.tokens[index].Range
	b.lastEnd = rng.End
	id := b.alloc(KindToken, idx)
	b.tree.nodes[id].rng = rng
}

// Close finishes the open node and computes its range from its children.
func (b *Builder) Close() NodeID {
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	data := &b.tree.nodes[id]
	if len(data.children) > 0 {
		first := b.tree.nodes[data.children[0]].rng
		last := b.tree.nodes[data.children[len(data.children)-1]].rng
		data.rng = source.Range{Start: first.Start, End: last.End}
	}
	return id
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Finish closes any open nodes and returns the tree.
func (b *Builder) Finish() *Tree {
	for len(b.stack) > 0 {
		b.Close()
	}
	return b.tree
}

// ReplaceTokens swaps the token stream. Only tokens that have not been
// added to the tree yet may differ; parsers use it to split `>>` in
// generic argument lists.
func (b *Builder) ReplaceTokens(tokens []Token) {
	b.tree.tokens = tokens
}
