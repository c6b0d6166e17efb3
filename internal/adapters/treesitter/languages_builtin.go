//go:build !lean

package treesitter

// This file registers all compiled-in grammars. It is included in the default
// build (go build / go install) but excluded when building with -tags lean,
// which produces a binary that loads grammars dynamically from .so/.dylib files.

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	ts_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltinLanguages adds all compiled-in grammars to the parser.
func (p *Parser) registerBuiltinLanguages() {
	p.addLang("go", langPtr(ts_go.Language()))
	p.addLang("rust", langPtr(ts_rust.Language()))
	p.addLang("python", langPtr(ts_python.Language()))
	p.addLang("javascript", langPtr(ts_javascript.Language()))
	p.addLang("typescript", langPtr(ts_typescript.LanguageTypescript()))
	p.addLang("tsx", langPtr(ts_typescript.LanguageTSX()))
	p.addLang("java", langPtr(ts_java.Language()))
	p.addLang("c_sharp", langPtr(ts_csharp.Language()))
	p.addLang("cpp", langPtr(ts_cpp.Language()))
	p.addLang("php", langPtr(ts_php.LanguagePHP()))
	p.addLang("zig", langPtr(ts_zig.Language()))
}
