package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/kgrep/internal/adapters/treesitter"
)

var languagesAvailable bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List recognized languages and where their grammars come from",
	Long: "Lists every language kgrep maps file names to, with its extensions and grammar source:\n" +
		"builtin (compiled in), dynamic (shared library found in a grammar directory), broken\n" +
		"(library found but unusable, with the reason) or missing.",
	Args: cobra.NoArgs,
	RunE: runLanguages,
}

func init() {
	languagesCmd.Flags().BoolVar(&languagesAvailable, "available", false, "Only list languages with a grammar")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	parser := newParser()
	defer closeParser(parser)

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, l := range parser.Languages() {
		if languagesAvailable && (l.Source == treesitter.SourceMissing || l.Source == treesitter.SourceBroken) {
			continue
		}
		fmt.Fprintf(w, "%-12s %-8s %s", l.Name, l.Source, strings.Join(l.Extensions, " "))
		if l.Err != nil {
			fmt.Fprintf(w, "  (%v)", l.Err)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
