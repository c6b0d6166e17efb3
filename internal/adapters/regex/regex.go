// Package regex compiles user-supplied patterns into ports.Pattern values
// backed by Go's RE2 engine.
package regex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corey/kgrep/internal/ports"
)

// Options adjusts how a pattern is compiled.
type Options struct {
	IgnoreCase bool // prefix (?i)
	WordBound  bool // wrap in \b(?:...)\b
	Literal    bool // quote metacharacters; newline-separated alternatives
}

// Compile compiles pattern under opts. Errors name the offending pattern.
func Compile(pattern string, opts Options) (*regexp.Regexp, error) {
	rePattern := pattern
	if opts.Literal {
		alts := strings.Split(pattern, "\n")
		for i, a := range alts {
			alts[i] = regexp.QuoteMeta(a)
		}
		rePattern = strings.Join(alts, "|")
	}
	if opts.WordBound {
		rePattern = `\b(?:` + rePattern + `)\b`
	}
	if opts.IgnoreCase {
		rePattern = "(?i)" + rePattern
	}
	re, err := regexp.Compile(rePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return re, nil
}

// Any is the pattern used when no kind is given: it matches every string.
func Any() ports.Pattern {
	return anyPattern{}
}

type anyPattern struct{}

func (anyPattern) MatchString(string) bool      { return true }
func (anyPattern) FindStringIndex(string) []int { return []int{0, 0} }
func (anyPattern) String() string               { return "" }
