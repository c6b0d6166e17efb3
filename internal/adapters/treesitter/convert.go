package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/kgrep/internal/domain/syntax"
)

// convertTree copies a tree-sitter tree into a syntax.Tree arena. The walk is
// iterative over a TreeCursor, so deeply nested sources cannot exhaust the
// goroutine stack. Anonymous nodes are kept.
func convertTree(t *tree_sitter.Tree, sizeHint int) *syntax.Tree {
	b := syntax.NewBuilder(sizeHint)

	c := t.Walk()
	defer c.Close()

	for {
		n := c.Node()
		b.Open(n.Kind(), uint32(n.StartByte()), uint32(n.EndByte()), uint32(n.StartPosition().Row))
		if c.GotoFirstChild() {
			continue
		}
		b.Close()
		for !c.GotoNextSibling() {
			if !c.GotoParent() {
				return b.Tree()
			}
			b.Close()
		}
	}
}
