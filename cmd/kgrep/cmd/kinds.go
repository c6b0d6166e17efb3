package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kgrep/internal/adapters/regex"
	"github.com/corey/kgrep/internal/domain/search"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds <file>",
	Short: "Print the kind path of every node in a file",
	Long: "Parses one file and prints a line per syntax node: its line number and kind path.\n" +
		"Use it to find the kinds to put in --kind patterns and aliases.",
	Args: cobra.ExactArgs(1),
	RunE: runKinds,
}

func runKinds(cmd *cobra.Command, args []string) error {
	path := args[0]
	parser := newParser()
	defer closeParser(parser)

	language := parser.Language(path)
	if language == "" {
		return fmt.Errorf("%s: unrecognized file type", path)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tree, err := parser.Parse(language, source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	all := search.Matcher{Kind: regex.Any(), Content: regex.Any()}
	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, m := range search.Traverse(path, language, tree, source, all, true) {
		fmt.Fprintf(w, "%-4d %s\n", m.StartRow+1, m.KindPath)
	}
	return w.Flush()
}
