package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/corey/kgrep/internal/ports"
)

// Context sizes the window printed around a match line.
type Context struct {
	Before int
	After  int
}

// Styler decorates rendered text. Implementations must not introduce
// newlines; Node and Match are only ever given single-line fragments.
type Styler interface {
	Header(s string) string // file path and kind path in the header line
	Node(s string) string   // text of the matched node
	Match(s string) string  // the first content match inside the node
}

// PlainStyle renders without decoration.
type PlainStyle struct{}

func (PlainStyle) Header(s string) string { return s }
func (PlainStyle) Node(s string) string   { return s }
func (PlainStyle) Match(s string) string  { return s }

// Render writes the header line and the numbered context window of a match.
func Render(w io.Writer, source []byte, m Match, content ports.Pattern, ctx Context, style Styler) error {
	if style == nil {
		style = PlainStyle{}
	}

	lines := NumberedLines(Highlight(source, m, content, style))
	first, last := Window(m.MatchRow, len(lines), ctx)

	if _, err := fmt.Fprintf(w, "%s => %s\n", style.Header(m.File), style.Header(m.KindPath)); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.Join(lines[first:last], "\n")+"\n")
	return err
}

// Highlight returns the whole file text with the matched node styled and the
// first content match inside it styled distinctly. Text outside the node's
// byte range is returned unchanged.
func Highlight(source []byte, m Match, content ports.Pattern, style Styler) string {
	start, end := m.StartByte, m.EndByte
	if start < 0 || end > len(source) || start > end {
		return string(source)
	}
	node := string(source[start:end])

	var sb strings.Builder
	sb.Grow(len(source) + 64)
	sb.Write(source[:start])
	if loc := content.FindStringIndex(node); loc != nil {
		sb.WriteString(styleLines(node[:loc[0]], style.Node))
		sb.WriteString(styleLines(node[loc[0]:loc[1]], style.Match))
		sb.WriteString(styleLines(node[loc[1]:], style.Node))
	} else {
		sb.WriteString(styleLines(node, style.Node))
	}
	sb.Write(source[end:])
	return sb.String()
}

// styleLines applies f to each non-empty line fragment of s so escape
// sequences never span a line break. A trailing carriage return stays outside
// the styled fragment.
func styleLines(s string, f func(string) string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		cr := strings.HasSuffix(p, "\r")
		if cr {
			p = p[:len(p)-1]
		}
		if p != "" {
			p = f(p)
		}
		if cr {
			p += "\r"
		}
		parts[i] = p
	}
	return strings.Join(parts, "\n")
}

// NumberedLines splits text into lines, each prefixed with its 1-based line
// number left-aligned in a four-column field.
func NumberedLines(text string) []string {
	lines := SplitLines(text)
	for i, l := range lines {
		lines[i] = fmt.Sprintf("%-4d %s", i+1, l)
	}
	return lines
}

// Window returns the [first, last) line range to print around row.
func Window(row, total int, ctx Context) (first, last int) {
	first = max(0, row-ctx.Before)
	last = min(total, row+ctx.After+1)
	if first > last {
		first = last
	}
	return first, last
}

// SplitLines splits on '\n', dropping one trailing '\r' per line and the
// empty fragment after a final newline.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
