// Package terminal renders match output for a terminal: color mode
// resolution and a lipgloss-backed search.Styler.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidateColorMode rejects anything but auto, always and never.
func ValidateColorMode(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}

// ResolveColor determines whether to use color output based on flags and TTY status.
// In auto mode, color is used only when f is a terminal and NO_COLOR is unset.
func ResolveColor(mode string, noColor bool, f *os.File) bool {
	if noColor {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// Styler decorates match output. File and kind path headers are magenta, the
// matched node sits on a bright black background, and the content match
// inside it is bold red.
type Styler struct {
	header lipgloss.Style
	node   lipgloss.Style
	match  lipgloss.Style
}

// NewStyler builds a Styler writing to w. Without color every method returns
// its input unchanged.
func NewStyler(w io.Writer, color bool) *Styler {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Styler{
		header: base.Foreground(lipgloss.Color("5")),
		node:   base.Background(lipgloss.Color("8")),
		match:  base.Background(lipgloss.Color("8")).Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (s *Styler) Header(text string) string { return s.header.Render(text) }
func (s *Styler) Node(text string) string   { return s.node.Render(text) }
func (s *Styler) Match(text string) string  { return s.match.Render(text) }
