package cmd

import (
	"bufio"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/corey/kgrep/internal/domain/alias"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases [language ...]",
	Short: "Show the alias tokens --kind resolves",
	Long: "Prints the effective aliases per language from the config file, with the tier each\n" +
		"one comes from. Without arguments every configured language is listed.",
	RunE: runAliases,
}

func runAliases(cmd *cobra.Command, args []string) error {
	t, err := loadAliases(newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	langs := args
	if len(langs) == 0 {
		langs = aliasLanguages(t)
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, lang := range langs {
		entries := t.Entries(lang)
		fmt.Fprintf(w, "%s:\n", lang)
		if len(entries) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, e := range entries {
			fmt.Fprintf(w, "  %-10s %-8s %s\n", e.Token, e.Tier, e.Pattern)
		}
	}
	return w.Flush()
}

// aliasLanguages lists the global bucket first, then every configured or
// builtin language.
func aliasLanguages(t *alias.Table) []string {
	set := map[string]struct{}{}
	global := false
	for _, l := range t.Languages() {
		if l == alias.Global {
			global = true
			continue
		}
		set[l] = struct{}{}
	}
	if builtinAliases {
		for _, l := range alias.BuiltinLanguages() {
			set[l] = struct{}{}
		}
	}

	langs := make([]string, 0, len(set)+1)
	for l := range set {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	if global {
		langs = append([]string{alias.Global}, langs...)
	}
	return langs
}
