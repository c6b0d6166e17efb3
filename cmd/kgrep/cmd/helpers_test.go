package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corey/kgrep/internal/adapters/terminal"
	"github.com/corey/kgrep/internal/domain/search"
)

// resetFlags restores every package-level flag var; pflag keeps values
// between Execute calls on the same command tree.
func resetFlags() {
	searchKind = ""
	searchMaxDepth = search.Unbounded
	searchBefore, searchAfter = 5, 5
	searchShowAll = false
	searchPatterns = nil
	searchFixed, searchIgnoreCase, searchWord = false, false, false
	searchInclude, searchExclude = nil, nil
	searchJobs = 0
	searchColor = terminal.ColorAuto
	searchNoColor = false

	configPath = ""
	builtinAliases = false
	grammarDirs = nil
	verbose = false
	languagesAvailable = false

	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
	}
}

// execute runs kgrep with args against an isolated user config dir.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
