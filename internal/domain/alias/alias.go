// Package alias resolves the kind token given on the command line into the
// kind pattern that is matched against kind paths.
//
// Lookup order for a token in a language:
//  1. alias.<language>.<token>
//  2. alias.global.<token>
//  3. the builtin concept tier, when enabled
//  4. the token itself
package alias

import (
	"sort"
)

// Global is the bucket consulted for every language.
const Global = "global"

// Key is the top-level config key holding the alias table.
const Key = "alias"

// Tiers reported by Entries.
const (
	TierLanguage = "language"
	TierGlobal   = "global"
	TierBuiltin  = "builtin"
)

// Table is a two-tier alias lookup: per-language buckets plus the global bucket.
// The zero value and a nil *Table are empty tables.
type Table struct {
	buckets  map[string]map[string]string
	builtins bool
}

// New builds a table from already-validated buckets.
func New(buckets map[string]map[string]string) *Table {
	return &Table{buckets: buckets}
}

// FromConfig extracts the alias table from a decoded config document.
// Anything that is not shaped like map[language]map[token]string is ignored
// entry by entry, so a partly malformed table still yields its valid aliases.
func FromConfig(doc map[string]any) *Table {
	t := &Table{buckets: map[string]map[string]string{}}
	raw, ok := doc[Key].(map[string]any)
	if !ok {
		return t
	}
	for lang, v := range raw {
		bucket, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out := make(map[string]string, len(bucket))
		for token, p := range bucket {
			if s, ok := p.(string); ok {
				out[token] = s
			}
		}
		if len(out) > 0 {
			t.buckets[lang] = out
		}
	}
	return t
}

// WithBuiltins enables or disables the builtin concept tier.
func (t *Table) WithBuiltins(enabled bool) *Table {
	if t == nil {
		t = &Table{}
	}
	t.builtins = enabled
	return t
}

// Resolve returns the kind pattern for token in language.
func (t *Table) Resolve(language, token string) string {
	p, _ := t.lookup(language, token)
	return p
}

func (t *Table) lookup(language, token string) (string, string) {
	if t == nil {
		return token, ""
	}
	if p, ok := t.buckets[language][token]; ok && language != Global {
		return p, TierLanguage
	}
	if p, ok := t.buckets[Global][token]; ok {
		return p, TierGlobal
	}
	if t.builtins {
		if p, ok := BuiltinPattern(language, token); ok {
			return p, TierBuiltin
		}
	}
	return token, ""
}

// Entry is one effective alias for a language.
type Entry struct {
	Token   string
	Pattern string
	Tier    string
}

// Entries lists every token that resolves to something other than itself in
// language, sorted by token. Shadowed definitions are not listed.
func (t *Table) Entries(language string) []Entry {
	if t == nil {
		return nil
	}
	tokens := map[string]struct{}{}
	for tok := range t.buckets[language] {
		tokens[tok] = struct{}{}
	}
	for tok := range t.buckets[Global] {
		tokens[tok] = struct{}{}
	}
	if t.builtins {
		for tok := range BuiltinEntries(language) {
			tokens[tok] = struct{}{}
		}
	}

	out := make([]Entry, 0, len(tokens))
	for tok := range tokens {
		p, tier := t.lookup(language, tok)
		out = append(out, Entry{Token: tok, Pattern: p, Tier: tier})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Languages returns the configured language buckets, sorted. The global
// bucket is included when present.
func (t *Table) Languages() []string {
	if t == nil {
		return nil
	}
	langs := make([]string, 0, len(t.buckets))
	for lang := range t.buckets {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
