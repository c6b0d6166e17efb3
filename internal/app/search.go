// Package app wires together all adapters and domain logic.
// It provides the search pipeline behind the kgrep command: walk, parse,
// resolve the kind pattern, traverse, render.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/corey/kgrep/internal/adapters/ahocorasick"
	"github.com/corey/kgrep/internal/adapters/regex"
	"github.com/corey/kgrep/internal/domain/alias"
	"github.com/corey/kgrep/internal/domain/search"
	"github.com/corey/kgrep/internal/ports"
)

// SearchConfig is the immutable description of one search run.
type SearchConfig struct {
	Pattern string   // content pattern
	Paths   []string // roots; files or directories
	Kind    string   // kind token; "" matches every kind path

	MaxDepth int // search.Unbounded for no limit
	Context  search.Context
	ShowAll  bool

	FixedStrings bool
	IgnoreCase   bool
	WordRegexp   bool

	Include []string
	Exclude []string

	Jobs int // 0 means runtime.NumCPU()
}

// Validate rejects configurations that cannot run.
func (c *SearchConfig) Validate() error {
	if c.Context.Before < 0 || c.Context.After < 0 {
		return fmt.Errorf("context sizes must not be negative (before=%d, after=%d)", c.Context.Before, c.Context.After)
	}
	if c.MaxDepth < search.Unbounded {
		return fmt.Errorf("invalid max depth %d", c.MaxDepth)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d", c.Jobs)
	}
	if len(c.Paths) == 0 {
		return errors.New("no paths to search")
	}
	for _, g := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid glob %q", g)
		}
	}
	return nil
}

// Deps are the collaborators a Searcher needs.
type Deps struct {
	Parser  ports.SyntaxParser
	Aliases *alias.Table // nil means no aliases
	Out     io.Writer
	Style   search.Styler // nil means plain
	Logger  *slog.Logger  // nil discards
}

// Summary counts what a run did.
type Summary struct {
	Files    int // files enumerated by the walk
	Searched int // files parsed and traversed
	Matches  int // matches reported
}

// Searcher runs one search. Build it with NewSearcher.
type Searcher struct {
	cfg     SearchConfig
	deps    Deps
	log     *slog.Logger
	content ports.Pattern

	mu    sync.Mutex
	kinds map[string]kindEntry // language -> compiled kind pattern
}

type kindEntry struct {
	pattern ports.Pattern
	err     error
}

// fileResult is the rendered output of one file, kept until its turn comes.
type fileResult struct {
	searched bool
	matches  int
	out      []byte
}

// NewSearcher validates cfg and compiles the content pattern. A malformed
// content pattern is an error.
func NewSearcher(cfg SearchConfig, deps Deps) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Parser == nil {
		return nil, errors.New("searcher needs a parser")
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Style == nil {
		deps.Style = search.PlainStyle{}
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.NumCPU()
	}

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	content, err := compileContent(cfg)
	if err != nil {
		return nil, fmt.Errorf("content pattern: %w", err)
	}

	return &Searcher{
		cfg:     cfg,
		deps:    deps,
		log:     log,
		content: content,
		kinds:   make(map[string]kindEntry),
	}, nil
}

func compileContent(cfg SearchConfig) (ports.Pattern, error) {
	if cfg.FixedStrings && !cfg.WordRegexp {
		return ahocorasick.NewLiteral(ahocorasick.Split(cfg.Pattern), cfg.IgnoreCase), nil
	}
	return regex.Compile(cfg.Pattern, regex.Options{
		IgnoreCase: cfg.IgnoreCase,
		WordBound:  cfg.WordRegexp,
		Literal:    cfg.FixedStrings,
	})
}

// kindPattern resolves and compiles the kind pattern for a language once.
func (s *Searcher) kindPattern(language string) (ports.Pattern, error) {
	if s.cfg.Kind == "" {
		return regex.Any(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.kinds[language]; ok {
		return e.pattern, e.err
	}

	resolved := s.deps.Aliases.Resolve(language, s.cfg.Kind)
	var e kindEntry
	re, err := regex.Compile(resolved, regex.Options{})
	if err != nil {
		e.err = fmt.Errorf("kind pattern for %s: %w", language, err)
	} else {
		e.pattern = re
		s.log.Debug("kind pattern", "language", language, "token", s.cfg.Kind, "pattern", resolved)
	}
	s.kinds[language] = e
	return e.pattern, e.err
}

// Run walks the configured paths and searches every file. Files are searched
// in parallel, but output is written in walk order, so it is identical for
// any number of jobs. The first fatal error cancels the remaining work and is
// returned once every goroutine has finished.
func (s *Searcher) Run(ctx context.Context) (Summary, error) {
	walker := &search.Walker{
		MaxDepth: s.cfg.MaxDepth,
		Include:  s.cfg.Include,
		Exclude:  s.cfg.Exclude,
		OnError: func(path string, err error) {
			s.log.Warn("cannot read directory", "path", path, "err", err)
		},
	}
	files := walker.Walk(s.cfg.Paths)
	sum := Summary{Files: len(files)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Jobs)

	slots := make([]chan fileResult, len(files))
	for i := range slots {
		slots[i] = make(chan fileResult, 1)
	}

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range files {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				res, err := s.searchFile(gctx, path)
				if err != nil {
					return err
				}
				slots[i] <- res
				return nil
			})
		}
	}()

	var writeErr error
write:
	for i := range files {
		select {
		case res := <-slots[i]:
			if res.searched {
				sum.Searched++
			}
			sum.Matches += res.matches
			if len(res.out) == 0 {
				continue
			}
			if _, err := s.deps.Out.Write(res.out); err != nil {
				writeErr = fmt.Errorf("write output: %w", err)
				cancel()
				break write
			}
		case <-gctx.Done():
			break write
		}
	}

	<-launched
	err := g.Wait()
	switch {
	case writeErr != nil:
		return sum, writeErr
	case err != nil:
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	s.log.Debug("search done", "files", sum.Files, "searched", sum.Searched, "matches", sum.Matches)
	return sum, nil
}

// searchFile parses one file and renders its matches. Files that cannot be
// searched are skipped with a debug log. A grammar that exists but cannot be
// used and a malformed kind pattern are errors.
func (s *Searcher) searchFile(ctx context.Context, path string) (fileResult, error) {
	if err := ctx.Err(); err != nil {
		return fileResult{}, err
	}

	language := s.deps.Parser.Language(path)
	if language == "" {
		s.log.Debug("skip file", "path", path, "reason", "unrecognized extension")
		return fileResult{}, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		s.log.Debug("skip file", "path", path, "reason", "unreadable", "err", err)
		return fileResult{}, nil
	}
	if !utf8.Valid(source) {
		s.log.Debug("skip file", "path", path, "reason", "not valid UTF-8")
		return fileResult{}, nil
	}

	tree, err := s.deps.Parser.Parse(language, source)
	if errors.Is(err, ports.ErrNoGrammar) {
		s.log.Debug("skip file", "path", path, "language", language, "reason", "no grammar")
		return fileResult{}, nil
	}
	if err != nil {
		return fileResult{}, fmt.Errorf("parse %s: %w", path, err)
	}

	kind, err := s.kindPattern(language)
	if err != nil {
		return fileResult{}, err
	}

	m := search.Matcher{Kind: kind, Content: s.content}
	matches := search.Traverse(path, language, tree, source, m, s.cfg.ShowAll)

	var buf bytes.Buffer
	for _, match := range matches {
		if err := search.Render(&buf, source, match, s.content, s.cfg.Context, s.deps.Style); err != nil {
			return fileResult{}, fmt.Errorf("render %s: %w", path, err)
		}
	}
	return fileResult{searched: true, matches: len(matches), out: buf.Bytes()}, nil
}
