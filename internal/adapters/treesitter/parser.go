// Package treesitter implements ports.SyntaxParser using tree-sitter grammars.
//
// A core set of grammars is compiled in via CGo. Any other language with a
// known extension can be served from a shared library loaded at runtime via
// purego (see DynamicLoader).
package treesitter

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/kgrep/internal/domain/syntax"
	"github.com/corey/kgrep/internal/ports"
)

// ErrNoGrammar is returned by Parse when a language has an extension mapping
// but neither a compiled-in grammar nor a library in a grammar directory.
// Any other Parse error means the grammar exists but cannot be used.
var ErrNoGrammar = ports.ErrNoGrammar

var _ ports.SyntaxParser = (*Parser)(nil)

// Grammar sources reported by Languages.
const (
	SourceBuiltin = "builtin"
	SourceDynamic = "dynamic"
	SourceBroken  = "broken"
	SourceMissing = "missing"
)

// Parser turns source files into syntax trees. It is safe for concurrent use;
// each Parse call uses its own tree-sitter parser.
type Parser struct {
	mu        sync.RWMutex
	languages map[string]*tree_sitter.Language // lang name -> language
	builtin   map[string]bool
	extToLang map[string]string // extension or special filename -> lang name
	loader    *DynamicLoader    // optional: loads grammars from .so/.dylib
}

// NewParser creates a parser with all built-in grammars registered.
func NewParser() *Parser {
	p := &Parser{
		languages: make(map[string]*tree_sitter.Language),
		builtin:   make(map[string]bool),
		extToLang: make(map[string]string),
	}
	p.registerBuiltinLanguages()
	p.registerExtensions()
	return p
}

// addLang registers a compiled-in language by name.
func (p *Parser) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		p.languages[name] = lang
		p.builtin[name] = true
	}
}

// addExt maps file extensions to a language name.
func (p *Parser) addExt(lang string, exts ...string) {
	for _, ext := range exts {
		p.extToLang[ext] = lang
	}
}

// SetGrammarPaths configures the parser to load grammars dynamically from
// shared libraries found in the given directories, searched in order.
func (p *Parser) SetGrammarPaths(paths []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic grammar loader, or nil if not configured.
func (p *Parser) Loader() *DynamicLoader {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loader
}

// Language returns the language name for a file path, or "" if the
// extension is not recognized.
func (p *Parser) Language(filePath string) string {
	base := filepath.Base(filePath)

	// Special filenames (no extension)
	if lang, ok := p.extToLang[base]; ok {
		return lang
	}

	if lang, ok := p.extToLang[filepath.Ext(filePath)]; ok {
		return lang
	}
	if lang, ok := p.extToLang[strings.ToLower(filepath.Ext(filePath))]; ok {
		return lang
	}
	return ""
}

// Parse parses source with the grammar for language and returns its syntax
// tree. Returns ErrNoGrammar if the grammar is neither compiled in nor
// loadable. Empty source yields an empty tree.
func (p *Parser) Parse(language string, source []byte) (*syntax.Tree, error) {
	lang, err := p.grammar(language)
	if err != nil {
		return nil, err
	}
	if len(source) == 0 {
		return &syntax.Tree{}, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", language, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", language)
	}
	defer tree.Close()

	return convertTree(tree, len(source)/8), nil
}

// grammar returns the tree-sitter language for name, loading it on first use.
func (p *Parser) grammar(name string) (*tree_sitter.Language, error) {
	p.mu.RLock()
	lang, ok := p.languages[name]
	loader := p.loader
	p.mu.RUnlock()
	if ok {
		return lang, nil
	}
	if loader == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGrammar)
	}

	loaded, err := loader.Load(name)
	if errors.Is(err, ErrGrammarNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGrammar)
	}
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.languages[name] = loaded
	p.mu.Unlock()
	return loaded, nil
}

// HasLanguage reports whether a grammar is compiled in or a library for it
// exists in a grammar directory. The library is not opened.
func (p *Parser) HasLanguage(lang string) bool {
	return p.source(lang) != SourceMissing
}

func (p *Parser) source(lang string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.builtin[lang] {
		return SourceBuiltin
	}
	if _, ok := p.languages[lang]; ok {
		return SourceDynamic
	}
	if p.loader != nil && p.loader.Find(lang) != "" {
		return SourceDynamic
	}
	return SourceMissing
}

// LanguageInfo describes one recognized language.
type LanguageInfo struct {
	Name       string
	Extensions []string
	Source     string // SourceBuiltin, SourceDynamic, SourceBroken or SourceMissing
	Err        error  // why a SourceBroken library cannot be used
}

// Languages lists every language with an extension mapping, sorted by name.
// Libraries found in grammar directories are opened, so a library that exists
// but cannot be loaded is reported as SourceBroken.
func (p *Parser) Languages() []LanguageInfo {
	byLang := make(map[string][]string)
	for ext, lang := range p.extToLang {
		byLang[lang] = append(byLang[lang], ext)
	}

	out := make([]LanguageInfo, 0, len(byLang))
	for lang, exts := range byLang {
		sort.Strings(exts)
		info := LanguageInfo{Name: lang, Extensions: exts, Source: p.source(lang)}
		if info.Source == SourceDynamic {
			if _, err := p.grammar(lang); err != nil {
				info.Source, info.Err = SourceBroken, err
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LanguageCount returns the number of languages with compiled-in grammars.
func (p *Parser) LanguageCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.builtin)
}
