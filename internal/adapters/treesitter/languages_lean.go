//go:build lean

package treesitter

// This file is included only when building with -tags lean.
// All grammars are loaded dynamically from .so/.dylib files via the
// DynamicLoader (purego).
//
// Build with: go build -tags lean ./cmd/kgrep/

// registerBuiltinLanguages is a no-op in lean builds.
func (p *Parser) registerBuiltinLanguages() {}
