package cmd

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/kgrep/internal/adapters/terminal"
	"github.com/corey/kgrep/internal/app"
	"github.com/corey/kgrep/internal/domain/search"
)

func runSearch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	pattern, paths, err := parseSearchArgs(args, searchPatterns, searchFixed)
	if err != nil {
		return err
	}
	if err := terminal.ValidateColorMode(searchColor); err != nil {
		return err
	}

	aliases, err := loadAliases(log)
	if err != nil {
		return err
	}
	parser := newParser()
	defer closeParser(parser)

	out := cmd.OutOrStdout()
	f, _ := out.(*os.File)
	color := terminal.ResolveColor(searchColor, searchNoColor, f)
	bw := bufio.NewWriter(out)

	cfg := app.SearchConfig{
		Pattern:      pattern,
		Paths:        paths,
		Kind:         searchKind,
		MaxDepth:     searchMaxDepth,
		Context:      search.Context{Before: searchBefore, After: searchAfter},
		ShowAll:      searchShowAll,
		FixedStrings: searchFixed,
		IgnoreCase:   searchIgnoreCase,
		WordRegexp:   searchWord,
		Include:      searchInclude,
		Exclude:      searchExclude,
		Jobs:         searchJobs,
	}
	s, err := app.NewSearcher(cfg, app.Deps{
		Parser:  parser,
		Aliases: aliases,
		Out:     bw,
		Style:   terminal.NewStyler(out, color),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	_, runErr := s.Run(cmd.Context())
	if err := bw.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// parseSearchArgs splits positionals into the content pattern and the paths.
// With -e, every positional is a path. Paths default to the current directory.
func parseSearchArgs(args, patterns []string, fixed bool) (string, []string, error) {
	if len(patterns) == 0 {
		if len(args) == 0 {
			return "", nil, errors.New("missing pattern (usage: kgrep [flags] <pattern> [path ...])")
		}
		patterns, args = args[:1], args[1:]
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return joinPatterns(patterns, fixed), paths, nil
}

// joinPatterns combines several -e patterns into one alternation. Fixed
// strings are newline-separated, the form the literal matchers split on.
func joinPatterns(patterns []string, fixed bool) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	if fixed {
		return strings.Join(patterns, "\n")
	}
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = "(?:" + p + ")"
	}
	return strings.Join(parts, "|")
}
