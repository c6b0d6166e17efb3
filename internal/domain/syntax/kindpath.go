package syntax

import "strings"

// Separator joins kind labels in a kind path string.
const Separator = "/"

// KindPath is the stack of kind labels from a top-level node down to the
// current node. The traversal pushes a label before evaluating a node and
// truncates back to the node's depth when it moves to a sibling or ancestor,
// so no per-node copy of the history is ever made.
type KindPath struct {
	kinds []string
	buf   []byte
	ends  []int // ends[i] = len(buf) after kinds[i] was pushed
}

// Push appends a kind label.
func (p *KindPath) Push(kind string) {
	if len(p.kinds) > 0 {
		p.buf = append(p.buf, Separator...)
	}
	p.buf = append(p.buf, kind...)
	p.kinds = append(p.kinds, kind)
	p.ends = append(p.ends, len(p.buf))
}

// Pop removes the last kind label.
func (p *KindPath) Pop() {
	if len(p.kinds) == 0 {
		return
	}
	p.Truncate(len(p.kinds) - 1)
}

// Truncate keeps the first n labels.
func (p *KindPath) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(p.kinds) {
		return
	}
	p.kinds = p.kinds[:n]
	p.ends = p.ends[:n]
	if n == 0 {
		p.buf = p.buf[:0]
		return
	}
	p.buf = p.buf[:p.ends[n-1]]
}

// Len returns the number of labels on the path.
func (p *KindPath) Len() int {
	return len(p.kinds)
}

// Kinds returns a copy of the labels.
func (p *KindPath) Kinds() []string {
	out := make([]string, len(p.kinds))
	copy(out, p.kinds)
	return out
}

// String renders the path with Separator between labels.
func (p *KindPath) String() string {
	return string(p.buf)
}

// JoinKinds renders an arbitrary label slice as a kind path string.
func JoinKinds(kinds []string) string {
	return strings.Join(kinds, Separator)
}

// PathOf computes the kind path of a node from scratch: the kinds of every
// ancestor below the grammar root, then the node's own kind. The grammar root
// itself has an empty path.
func (t *Tree) PathOf(id NodeID) string {
	var kinds []string
	for n := id; n > 0; n = t.Parent(n) {
		kinds = append(kinds, t.Nodes[n].Kind)
	}
	for i, j := 0, len(kinds)-1; i < j; i, j = i+1, j-1 {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}
	return JoinKinds(kinds)
}
