package search

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/kgrep/internal/domain/syntax"
)

var anyKind = regexp.MustCompile(``)

// flatFile builds a source of one node per line under a single root. kinds
// and lines must have the same length.
func flatFile(kinds, lines []string) (*syntax.Tree, []byte) {
	var src strings.Builder
	b := syntax.NewBuilder(len(lines) + 1)
	total := 0
	for _, l := range lines {
		total += len(l) + 1
	}
	b.Open("source_file", 0, uint32(total), 0)
	for i, l := range lines {
		start := uint32(src.Len())
		src.WriteString(l)
		b.Open(kinds[i], start, uint32(src.Len()), uint32(i))
		b.Close()
		src.WriteString("\n")
	}
	return b.Tree(), []byte(src.String())
}

func TestTraverse_FirstMatchIsTodoComment(t *testing.T) {
	// One comment node "// TODO: fix" at row 10, kind pattern omitted.
	var kinds, lines []string
	for i := 0; i < 30; i++ {
		if i == 10 {
			kinds = append(kinds, "line_comment")
			lines = append(lines, "// TODO: fix")
			continue
		}
		kinds = append(kinds, "let_declaration")
		lines = append(lines, fmt.Sprintf("let x%d = %d;", i, i))
	}
	tree, src := flatFile(kinds, lines)

	m := Matcher{Kind: anyKind, Content: regexp.MustCompile(`TODO`)}
	matches := Traverse("src/lib.rs", "rust", tree, src, m, false)
	require.Len(t, matches, 1)
	assert.Equal(t, "line_comment", matches[0].KindPath)
	assert.Equal(t, 10, matches[0].StartRow)
	assert.Equal(t, 10, matches[0].MatchRow)

	var out strings.Builder
	require.NoError(t, Render(&out, src, matches[0], m.Content, Context{Before: 5, After: 5}, PlainStyle{}))

	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, got, 12, "header + rows 5..15")
	assert.Equal(t, "src/lib.rs => line_comment", got[0])
	assert.Equal(t, "6    let x5 = 5;", got[1])
	assert.Equal(t, "11   // TODO: fix", got[6])
	assert.Equal(t, "16   let x15 = 15;", got[11])
}

// nestedTree builds:
//
//	fn main() {          row 0  function_item
//	    if x {           row 1  block > if_expression
//	        panic!();    row 2  block > expression_statement
//	    }
//	}
//	fn other() { panic!(); }
func nestedTree() (*syntax.Tree, []byte) {
	src := "fn main() {\n    if x {\n        panic!();\n    }\n}\nfn other() { panic!(); }\n"
	idx := func(s string, from int) uint32 { return uint32(from + strings.Index(src[from:], s)) }

	b := syntax.NewBuilder(8)
	b.Open("source_file", 0, uint32(len(src)), 0)

	b.Open("function_item", 0, idx("}\nfn", 0)+1, 0)
	b.Open("identifier", 3, 7, 0)
	b.Close()
	b.Open("block", 10, idx("}\nfn", 0)+1, 0)
	ifStart := idx("if x", 0)
	b.Open("if_expression", ifStart, idx("}\n}", 0)+1, 1)
	ps := idx("panic", 0)
	b.Open("expression_statement", ps, ps+9, 2)
	b.Close()
	b.Close()
	b.Close()
	b.Close()

	os := idx("fn other", 0)
	b.Open("function_item", os, uint32(len(src))-1, 5)
	ps2 := idx("panic", int(os))
	b.Open("expression_statement", ps2, ps2+9, 5)
	b.Close()
	b.Close()

	return b.Tree(), []byte(src)
}

func TestTraverse_ShowAllReportsNested(t *testing.T) {
	tree, src := nestedTree()
	m := Matcher{
		Kind:    regexp.MustCompile(`(block|expression_statement)$`),
		Content: regexp.MustCompile(`panic`),
	}

	matches := Traverse("main.rs", "rust", tree, src, m, true)
	require.Len(t, matches, 3)
	assert.Equal(t, "function_item/block", matches[0].KindPath)
	assert.Equal(t, "function_item/block/if_expression/expression_statement", matches[1].KindPath)
	assert.Equal(t, "function_item/expression_statement", matches[2].KindPath)

	// Outer block is reported first; its match row is the line holding panic.
	assert.Equal(t, 0, matches[0].StartRow)
	assert.Equal(t, 2, matches[0].MatchRow)
}

func TestTraverse_FirstMatchStopsWholeFile(t *testing.T) {
	// At most one match, the pre-order first.
	tree, src := nestedTree()
	m := Matcher{Kind: anyKind, Content: regexp.MustCompile(`panic`)}

	matches := Traverse("main.rs", "rust", tree, src, m, false)
	require.Len(t, matches, 1)
	assert.Equal(t, "function_item", matches[0].KindPath)
	assert.Equal(t, 0, matches[0].StartByte)
}

func TestTraverse_RootIsNotACandidate(t *testing.T) {
	tree, src := nestedTree()
	m := Matcher{Kind: regexp.MustCompile(`source_file`), Content: regexp.MustCompile(`.`)}

	assert.Empty(t, Traverse("main.rs", "rust", tree, src, m, true))
}

func TestTraverse_AnchoredKindMatchesTopLevelOnly(t *testing.T) {
	// ^function_item$ hits the top-level function_item and nothing whose
	// kind merely starts with it.
	b := syntax.NewBuilder(4)
	src := "fn a() {}\ntrait T { fn b(); }\n"
	b.Open("source_file", 0, uint32(len(src)), 0)
	b.Open("function_item", 0, 9, 0)
	b.Close()
	b.Open("function_item_nested_in_trait", 10, uint32(len(src))-1, 1)
	b.Close()
	tree := b.Tree()

	m := Matcher{Kind: regexp.MustCompile(`^function_item$`), Content: regexp.MustCompile(`fn`)}
	matches := Traverse("a.rs", "rust", tree, []byte(src), m, true)
	require.Len(t, matches, 1)
	assert.Equal(t, "function_item", matches[0].KindPath)
}

func TestTraverse_KindPathEqualsAncestorChain(t *testing.T) {
	// Every reported kind path equals the ancestor kinds joined by '/'.
	tree, src := nestedTree()
	m := Matcher{Kind: anyKind, Content: anyKind}

	matches := Traverse("main.rs", "rust", tree, src, m, true)
	require.Len(t, matches, tree.Len()-1)
	for i, match := range matches {
		assert.Equal(t, tree.PathOf(syntax.NodeID(i+1)), match.KindPath)
	}
}

func TestMatchLine(t *testing.T) {
	content := regexp.MustCompile(`b+`)
	assert.Equal(t, 7, MatchLine("aaa\nabbb\nc", 6, content))
	assert.Equal(t, 6, MatchLine("bb", 6, content))

	// Match only across a line break falls back to the node's start row.
	cross := regexp.MustCompile(`a\nc`)
	assert.Equal(t, 4, MatchLine("a\nc", 4, cross))
}

func TestMatcher_Matches(t *testing.T) {
	m := Matcher{Kind: regexp.MustCompile(`comment$`), Content: regexp.MustCompile(`TODO`)}
	assert.True(t, m.Matches("block/line_comment", "// TODO"))
	assert.False(t, m.Matches("block/line_comment", "// done"))
	assert.False(t, m.Matches("comment/block", "// TODO"))
}
