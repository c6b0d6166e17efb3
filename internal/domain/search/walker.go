// Package search implements the structural search core: directory walking,
// kind-path matching over a syntax tree, and context rendering of matches.
// It knows nothing about tree-sitter or terminals; those arrive through
// ports.Pattern, syntax.Tree and the Styler interface.
package search

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Unbounded disables the recursion limit of a Walker.
const Unbounded = -1

// Walker enumerates candidate files from a list of root paths.
type Walker struct {
	// MaxDepth bounds directory expansion. The root list is depth 0 and each
	// expanded directory adds one; entry lists deeper than MaxDepth are skipped.
	MaxDepth int

	// Include, when non-empty, keeps only discovered files whose base name or
	// slash path matches one of the doublestar globs. Files named directly in
	// the root list are always kept.
	Include []string

	// Exclude drops discovered files and directories whose base name or slash
	// path matches one of the doublestar globs.
	Exclude []string

	// OnError receives directories that could not be read. The walk always
	// continues with the next entry.
	OnError func(path string, err error)
}

// Walk returns every regular file reachable from roots, depth-first, in
// directory listing order.
func (w *Walker) Walk(roots []string) []string {
	var files []string
	w.walk(roots, 0, nil, &files)
	return files
}

func (w *Walker) walk(paths []string, depth int, chain []string, files *[]string) {
	if w.MaxDepth != Unbounded && depth > w.MaxDepth {
		return
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// Broken symlink or vanished entry.
			continue
		}

		switch {
		case info.IsDir():
			if depth > 0 && matchAny(w.Exclude, p) {
				continue
			}
			real, err := filepath.EvalSymlinks(p)
			if err != nil {
				real = p
			}
			if slices.Contains(chain, real) {
				continue // symlink cycle
			}
			entries, err := os.ReadDir(p)
			if err != nil {
				if w.OnError != nil {
					w.OnError(p, err)
				}
				continue
			}
			children := make([]string, len(entries))
			for i, e := range entries {
				children[i] = filepath.Join(p, e.Name())
			}
			w.walk(children, depth+1, append(chain, real), files)

		case info.Mode().IsRegular():
			if depth > 0 {
				if matchAny(w.Exclude, p) {
					continue
				}
				if len(w.Include) > 0 && !matchAny(w.Include, p) {
					continue
				}
			}
			*files = append(*files, p)
		}
	}
}

// matchAny reports whether path's base name or slash form matches a glob.
func matchAny(globs []string, path string) bool {
	if len(globs) == 0 {
		return false
	}
	base := filepath.Base(path)
	slash := filepath.ToSlash(path)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, slash); ok {
			return true
		}
	}
	return false
}
