// Package syntax holds the parser-independent view of a source file's syntax
// tree. Trees are stored as a flat pre-order arena: walking Nodes by index
// visits every node before its children, children left to right.
package syntax

// NodeID indexes a node inside its Tree's arena. The grammar root is always 0.
type NodeID int32

// Node is an immutable view of one syntax node. Byte offsets point into the
// source buffer the tree was built from; the node does not own that buffer.
type Node struct {
	Kind      string
	StartByte uint32
	EndByte   uint32
	StartRow  uint32 // 0-based
	Depth     uint32 // grammar root = 0
	End       NodeID // arena index one past the last node of this subtree
}

// Tree is an arena of nodes in pre-order.
type Tree struct {
	Nodes []Node
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Children returns the ids of a node's direct children in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	end := t.Nodes[id].End
	for c := id + 1; c < end; c = t.Nodes[c].End {
		out = append(out, c)
	}
	return out
}

// Parent returns the parent id of a node, or -1 for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	depth := t.Nodes[id].Depth
	if depth == 0 {
		return -1
	}
	for p := id - 1; p >= 0; p-- {
		if t.Nodes[p].Depth == depth-1 {
			return p
		}
	}
	return -1
}

// Text returns the node's source text.
func (t *Tree) Text(id NodeID, source []byte) string {
	n := &t.Nodes[id]
	start, end := int(n.StartByte), int(n.EndByte)
	if start > len(source) || end > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// Builder assembles a Tree in pre-order. Every Open must be paired with a
// Close once the node's children have been added.
type Builder struct {
	nodes []Node
	open  []NodeID
}

// NewBuilder returns a builder with room for sizeHint nodes.
func NewBuilder(sizeHint int) *Builder {
	return &Builder{nodes: make([]Node, 0, sizeHint)}
}

// Open starts a node as a child of the currently open node.
func (b *Builder) Open(kind string, startByte, endByte, startRow uint32) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Kind:      kind,
		StartByte: startByte,
		EndByte:   endByte,
		StartRow:  startRow,
		Depth:     uint32(len(b.open)),
	})
	b.open = append(b.open, id)
	return id
}

// Close finishes the most recently opened node.
func (b *Builder) Close() {
	last := len(b.open) - 1
	id := b.open[last]
	b.open = b.open[:last]
	b.nodes[id].End = NodeID(len(b.nodes))
}

// Tree closes any nodes still open and returns the finished tree.
func (b *Builder) Tree() *Tree {
	for len(b.open) > 0 {
		b.Close()
	}
	return &Tree{Nodes: b.nodes}
}
