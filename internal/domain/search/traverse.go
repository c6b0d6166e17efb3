package search

import (
	"github.com/corey/kgrep/internal/domain/syntax"
	"github.com/corey/kgrep/internal/ports"
)

// Match is one reported node.
type Match struct {
	File      string
	Language  string
	KindPath  string
	StartByte int
	EndByte   int
	StartRow  int // 0-based row of the node's first byte
	MatchRow  int // 0-based row of the first node line satisfying the content pattern
}

// Matcher pairs the structural and textual patterns a node must satisfy.
type Matcher struct {
	Kind    ports.Pattern
	Content ports.Pattern
}

// Matches reports whether a node with the given kind path and source text is
// a hit.
func (m Matcher) Matches(kindPath, text string) bool {
	return m.Kind.MatchString(kindPath) && m.Content.MatchString(text)
}

// Traverse visits the tree in pre-order and returns the matching nodes.
// The grammar root is the container of the walk: it contributes neither a
// kind label nor a candidate. Unless showAll is set, the walk stops at the
// first match, so at most one Match is returned.
func Traverse(file, language string, tree *syntax.Tree, source []byte, m Matcher, showAll bool) []Match {
	var (
		path    syntax.KindPath
		matches []Match
	)
	for i := 1; i < tree.Len(); i++ {
		id := syntax.NodeID(i)
		n := tree.Node(id)
		path.Truncate(int(n.Depth) - 1)
		path.Push(n.Kind)

		kindPath := path.String()
		if !m.Kind.MatchString(kindPath) {
			continue
		}
		text := tree.Text(id, source)
		if !m.Content.MatchString(text) {
			continue
		}

		matches = append(matches, Match{
			File:      file,
			Language:  language,
			KindPath:  kindPath,
			StartByte: int(n.StartByte),
			EndByte:   int(n.EndByte),
			StartRow:  int(n.StartRow),
			MatchRow:  MatchLine(text, int(n.StartRow), m.Content),
		})
		if !showAll {
			break
		}
	}
	return matches
}

// MatchLine returns the absolute row of the first line of text that satisfies
// content on its own. When the pattern only matches across a line break, the
// node's own start row is returned.
func MatchLine(text string, startRow int, content ports.Pattern) int {
	for i, line := range SplitLines(text) {
		if content.MatchString(line) {
			return startRow + i
		}
	}
	return startRow
}
