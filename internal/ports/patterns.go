package ports

// Pattern is a compiled textual pattern. *regexp.Regexp satisfies it directly;
// the Aho-Corasick adapter provides a literal-string implementation.
//
// Implementations are immutable after construction and safe for concurrent use.
type Pattern interface {
	// MatchString reports whether s contains any match of the pattern.
	MatchString(s string) bool

	// FindStringIndex returns the [start, end) byte span of the leftmost match
	// in s, or nil if there is none.
	FindStringIndex(s string) []int

	// String returns the source text of the pattern.
	String() string
}
