package treesitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// A grammar library for language L is <dir>/L.so (L.dylib on macOS) and
// exports tree_sitter_L. Dashes in L become underscores in the symbol.

var (
	// ErrGrammarNotFound means no grammar directory holds a library for the
	// language. Files of that language are not searchable.
	ErrGrammarNotFound = errors.New("grammar library not found")

	// ErrGrammarBroken means a library was found but cannot serve as a
	// grammar: it does not load, lacks the language symbol, or was built for
	// a tree-sitter ABI this binary does not support.
	ErrGrammarBroken = errors.New("grammar library unusable")
)

// GrammarError reports a failed dynamic grammar load. It matches
// ErrGrammarNotFound or ErrGrammarBroken with errors.Is.
type GrammarError struct {
	Language string
	Path     string // library that failed; "" when none was found
	Reason   error  // ErrGrammarNotFound or ErrGrammarBroken
	Err      error  // underlying cause, if any
}

func (e *GrammarError) Error() string {
	switch {
	case e.Path == "":
		return fmt.Sprintf("grammar %s: %v", e.Language, e.Reason)
	case e.Err == nil:
		return fmt.Sprintf("grammar %s (%s): %v", e.Language, e.Path, e.Reason)
	default:
		return fmt.Sprintf("grammar %s (%s): %v: %v", e.Language, e.Path, e.Reason, e.Err)
	}
}

func (e *GrammarError) Is(target error) bool { return target == e.Reason }

func (e *GrammarError) Unwrap() error { return e.Err }

// DynamicLoader serves grammars from shared libraries found in an ordered
// list of directories, via purego. Every load outcome, success or failure, is
// remembered, so a broken library is opened at most once per run.
type DynamicLoader struct {
	dirs []string

	mu      sync.Mutex
	results map[string]loadResult
	handles []uintptr
}

type loadResult struct {
	lang *tree_sitter.Language
	err  error
}

// NewDynamicLoader returns a loader that looks in dirs, first match wins.
func NewDynamicLoader(dirs []string) *DynamicLoader {
	return &DynamicLoader{
		dirs:    dirs,
		results: make(map[string]loadResult),
	}
}

// DefaultGrammarPaths returns the grammar search path: the --grammar-dir
// values in the order given, then <UserConfigDir>/kgrep/grammars.
func DefaultGrammarPaths(extra []string) []string {
	paths := append([]string(nil), extra...)
	if dir := UserGrammarDir(); dir != "" {
		paths = append(paths, dir)
	}
	return paths
}

// UserGrammarDir returns the per-user grammar directory, or "" when the user
// config directory cannot be determined.
func UserGrammarDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kgrep", "grammars")
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

func symbolName(lang string) string {
	return "tree_sitter_" + strings.ReplaceAll(lang, "-", "_")
}

// Dirs returns the directories searched, in order.
func (dl *DynamicLoader) Dirs() []string {
	return dl.dirs
}

// Find returns the library that would serve lang, or "" if there is none.
func (dl *DynamicLoader) Find(lang string) string {
	name := lang + LibExtension()
	for _, dir := range dl.dirs {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// Load returns the grammar for lang. The error is a *GrammarError.
func (dl *DynamicLoader) Load(lang string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if r, ok := dl.results[lang]; ok {
		return r.lang, r.err
	}

	var r loadResult
	if path := dl.Find(lang); path == "" {
		r.err = &GrammarError{Language: lang, Reason: ErrGrammarNotFound}
	} else if l, err := dl.open(path, lang); err != nil {
		r.err = &GrammarError{Language: lang, Path: path, Reason: ErrGrammarBroken, Err: err}
	} else {
		r.lang = l
	}
	dl.results[lang] = r
	return r.lang, r.err
}

// open loads the library at path and checks that a parser accepts the
// language it exports. Caller holds dl.mu.
func (dl *DynamicLoader) open(path, lang string) (*tree_sitter.Language, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen: %w", err)
	}
	dl.handles = append(dl.handles, handle)

	sym := symbolName(lang)
	addr, err := purego.Dlsym(handle, sym)
	if err != nil {
		return nil, fmt.Errorf("missing symbol %s: %w", sym, err)
	}
	var languageFn func() uintptr
	purego.RegisterFunc(&languageFn, addr)

	ptr := languageFn()
	if ptr == 0 {
		return nil, fmt.Errorf("%s() returned null", sym)
	}
	// ptr is a static TSLanguage* inside the library, never Go memory.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))

	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(language); err != nil {
		return nil, err
	}
	return language, nil
}

// Close forgets every loaded grammar. Libraries stay mapped: trees built
// from them may still be referenced.
func (dl *DynamicLoader) Close() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.handles = nil
	dl.results = make(map[string]loadResult)
}
