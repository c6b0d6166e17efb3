// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"errors"

	"github.com/corey/kgrep/internal/domain/syntax"
)

// ErrNoGrammar marks a recognized language whose grammar cannot be loaded.
var ErrNoGrammar = errors.New("no grammar available")

// SyntaxParser turns source files into syntax trees.
// The concrete implementation (tree-sitter) lives in internal/adapters/treesitter.
type SyntaxParser interface {
	// Language returns the language name for a file path, resolved from special
	// file names and the extension. Returns "" for unrecognized files; the
	// caller skips those without reporting an error.
	Language(path string) string

	// Parse builds the syntax tree of source for the given language. The tree's
	// byte offsets index into source, which must outlive the tree.
	// Implementations return an error wrapping ErrNoGrammar when the language
	// is recognized but no grammar can be loaded for it.
	Parse(language string, source []byte) (*syntax.Tree, error)
}
