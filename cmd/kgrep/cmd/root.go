package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/corey/kgrep/internal/adapters/terminal"
	"github.com/corey/kgrep/internal/domain/search"
)

var (
	searchKind       string
	searchMaxDepth   int
	searchBefore     int
	searchAfter      int
	searchShowAll    bool
	searchPatterns   []string
	searchFixed      bool
	searchIgnoreCase bool
	searchWord       bool
	searchInclude    []string
	searchExclude    []string
	searchJobs       int
	searchColor      string
	searchNoColor    bool

	configPath     string
	builtinAliases bool
	grammarDirs    []string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "kgrep [flags] <pattern> [path ...]",
	Short: "Search code by syntax node kind and content",
	Long: "Parses every recognized source file under the given paths (default .) and prints\n" +
		"the nodes whose kind path matches --kind and whose text matches <pattern>.\n\n" +
		"A first argument naming a subcommand (kinds, languages, aliases) runs that command.\n" +
		"To search for one of those words, pass it with -e:  kgrep -e aliases src/",
	Args:          cobra.ArbitraryArgs,
	RunE:          runSearch,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&searchKind, "kind", "k", "", "Kind pattern or alias token matched against kind paths (default: any)")
	f.IntVarP(&searchMaxDepth, "max-recursive-depth", "m", search.Unbounded, "Maximum directory depth (-1 = unlimited)")
	f.IntVarP(&searchBefore, "before-context", "b", 5, "Lines of context before the match line")
	f.IntVarP(&searchAfter, "after-context", "a", 5, "Lines of context after the match line")
	f.BoolVarP(&searchShowAll, "show-all-matches", "s", false, "Report every matching node, not just the first per file")
	f.StringArrayVarP(&searchPatterns, "regexp", "e", nil, "Content pattern (repeatable, OR); all positionals become paths")
	f.BoolVarP(&searchFixed, "fixed-strings", "F", false, "Treat the content pattern as fixed strings")
	f.BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "Case insensitive content match")
	f.BoolVarP(&searchWord, "word-regexp", "w", false, "Content match must form whole words")
	f.StringArrayVar(&searchInclude, "include", nil, "Only search files matching this glob (repeatable)")
	f.StringArrayVar(&searchExclude, "exclude", nil, "Skip files and directories matching this glob (repeatable)")
	f.IntVarP(&searchJobs, "jobs", "j", 0, "Files searched in parallel (0 = number of CPUs)")
	f.StringVar(&searchColor, "color", terminal.ColorAuto, "Color output: auto, always, never")
	f.BoolVar(&searchNoColor, "no-color", false, "Suppress color output")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config-file-path", "c", "", "Config file (default <user config dir>/kgrep/config.toml)")
	pf.BoolVar(&builtinAliases, "builtin-aliases", false, "Resolve concept tokens (fn, class, call, ...) for every language")
	pf.StringArrayVar(&grammarDirs, "grammar-dir", nil, "Extra directory to load grammar libraries from (repeatable)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log skipped files and resolved patterns to stderr")

	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(aliasesCmd)
}
