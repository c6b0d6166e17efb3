//go:build !lean

package treesitter

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/kgrep/internal/domain/syntax"
)

// findKind returns the first node of the given kind in pre-order.
func findKind(t *testing.T, tree *syntax.Tree, kind string) syntax.NodeID {
	t.Helper()
	for i := range tree.Nodes {
		if tree.Nodes[i].Kind == kind {
			return syntax.NodeID(i)
		}
	}
	t.Fatalf("no %s node in tree", kind)
	return -1
}

func TestParser_Language(t *testing.T) {
	p := NewParser()
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/lib.rs", "rust"},
		{"app.tsx", "tsx"},
		{"Program.cs", "c_sharp"},
		{"build/Dockerfile", "dockerfile"},
		{"analysis.R", "r"},
		{"SHOUT.PY", "python"},
		{"README", ""},
		{"notes.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Language(tt.path))
		})
	}
}

func TestParser_ParseGo(t *testing.T) {
	p := NewParser()
	source := []byte(`package main

func hello(name string) string {
	return "hello " + name
}
`)

	tree, err := p.Parse("go", source)
	require.NoError(t, err)
	require.Greater(t, tree.Len(), 1)

	assert.Equal(t, "source_file", tree.Node(0).Kind)
	assert.Equal(t, uint32(0), tree.Node(0).Depth)

	fn := findKind(t, tree, "function_declaration")
	assert.Equal(t, uint32(2), tree.Node(fn).StartRow)
	assert.Equal(t, "function_declaration", tree.PathOf(fn))
	assert.Contains(t, tree.Text(fn, source), "func hello(name string) string")

	ret := findKind(t, tree, "return_statement")
	path := tree.PathOf(ret)
	assert.True(t, strings.HasPrefix(path, "function_declaration/block/"), path)
	assert.True(t, strings.HasSuffix(path, "/return_statement"), path)
}

func TestParser_ParseRustComment(t *testing.T) {
	p := NewParser()
	source := []byte("fn main() {\n    // TODO: fix\n}\n")

	tree, err := p.Parse("rust", source)
	require.NoError(t, err)

	c := findKind(t, tree, "line_comment")
	assert.Equal(t, uint32(1), tree.Node(c).StartRow)
	assert.Equal(t, "// TODO: fix", tree.Text(c, source))
	assert.Equal(t, "function_item/block/line_comment", tree.PathOf(c))
}

func TestParser_KeepsAnonymousNodes(t *testing.T) {
	p := NewParser()
	tree, err := p.Parse("go", []byte("package main\n\nfunc f() {}\n"))
	require.NoError(t, err)

	fn := findKind(t, tree, "function_declaration")
	var kinds []string
	for _, c := range tree.Children(fn) {
		kinds = append(kinds, tree.Node(c).Kind)
	}
	assert.Equal(t, "func", kinds[0], "keyword tokens are nodes too")
}

func TestParser_ArenaIsWellFormed(t *testing.T) {
	p := NewParser()
	source := []byte(`class A:
    def f(self):
        if True:
            return [1, 2, {"k": (3,)}]
`)
	tree, err := p.Parse("python", source)
	require.NoError(t, err)

	for i := range tree.Nodes {
		id := syntax.NodeID(i)
		n := tree.Node(id)
		assert.LessOrEqual(t, n.StartByte, n.EndByte)
		assert.Greater(t, n.End, id)
		for _, c := range tree.Children(id) {
			child := tree.Node(c)
			assert.Equal(t, n.Depth+1, child.Depth)
			assert.GreaterOrEqual(t, child.StartByte, n.StartByte)
			assert.LessOrEqual(t, child.EndByte, n.EndByte)
			assert.Equal(t, id, tree.Parent(c))
		}
	}
	assert.Equal(t, syntax.NodeID(tree.Len()), tree.Node(0).End)
}

func TestParser_ParseEmptySource(t *testing.T) {
	p := NewParser()
	tree, err := p.Parse("rust", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
}

func TestParser_ParseErrorsStillYieldTree(t *testing.T) {
	// tree-sitter recovers from syntax errors with ERROR nodes.
	p := NewParser()
	tree, err := p.Parse("go", []byte("package main\nfunc {{{\n"))
	require.NoError(t, err)
	assert.Greater(t, tree.Len(), 1)
}

func TestParser_ConcurrentParse(t *testing.T) {
	p := NewParser()
	sources := map[string][]byte{
		"go":         []byte("package x\nfunc A() {}\n"),
		"rust":       []byte("fn a() {}\n"),
		"python":     []byte("def a():\n    pass\n"),
		"javascript": []byte("function a() {}\n"),
		"zig":        []byte("fn a() void {}\n"),
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		for lang, src := range sources {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tree, err := p.Parse(lang, src)
				assert.NoError(t, err, lang)
				assert.Greater(t, tree.Len(), 1, lang)
			}()
		}
	}
	wg.Wait()
}

func TestParser_Languages(t *testing.T) {
	p := NewParser()
	assert.Equal(t, 11, p.LanguageCount())

	infos := p.Languages()
	byName := make(map[string]LanguageInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	assert.Equal(t, LanguageInfo{Name: "go", Extensions: []string{".go"}, Source: SourceBuiltin}, byName["go"])
	assert.Equal(t, SourceBuiltin, byName["tsx"].Source)
	assert.Equal(t, SourceMissing, byName["ruby"].Source)
	assert.Equal(t, []string{".R", ".r"}, byName["r"].Extensions)

	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].Name, infos[i].Name)
	}
}
