// Package ahocorasick provides fixed-string content patterns backed by an
// Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick library
// for O(n + m + z) matching and satisfies ports.Pattern.
package ahocorasick

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Literal matches any of a set of fixed strings. Several strings act as
// alternatives, the way grep -F treats newline-separated patterns.
//
// A Literal is immutable after construction and safe for concurrent use.
type Literal struct {
	automaton  aho.AhoCorasick
	keywords   []string
	matchEmpty bool
}

// NewLiteral compiles keywords into a Literal. With ignoreCase, ASCII letters
// match regardless of case.
func NewLiteral(keywords []string, ignoreCase bool) *Literal {
	l := &Literal{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		if kw == "" {
			l.matchEmpty = true
			continue
		}
		l.keywords = append(l.keywords, kw)
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		AsciiCaseInsensitive: ignoreCase,
		MatchKind:            aho.LeftMostLongestMatch,
		DFA:                  true,
	})
	l.automaton = builder.Build(l.keywords)
	return l
}

// Split turns a -F argument into its keywords: one per line.
func Split(pattern string) []string {
	return strings.Split(pattern, "\n")
}

// MatchString reports whether s contains any keyword.
func (l *Literal) MatchString(s string) bool {
	return l.FindStringIndex(s) != nil
}

// FindStringIndex returns the span of the leftmost keyword in s, preferring
// the longest keyword when several start at the same offset.
func (l *Literal) FindStringIndex(s string) []int {
	if l.matchEmpty {
		return []int{0, 0}
	}
	if len(l.keywords) == 0 {
		return nil
	}
	iter := l.automaton.Iter(s)
	m := iter.Next()
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// String returns the keywords joined by newlines.
func (l *Literal) String() string {
	if l.matchEmpty {
		return strings.Join(append([]string{""}, l.keywords...), "\n")
	}
	return strings.Join(l.keywords, "\n")
}

// Keywords returns a copy of the non-empty keywords.
func (l *Literal) Keywords() []string {
	return append([]string(nil), l.keywords...)
}
