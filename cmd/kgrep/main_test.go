//go:build !lean

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kgrepBin is the path to the compiled binary, set by TestMain.
var kgrepBin string

func TestMain(m *testing.M) {
	// Build binary once for all tests.
	tmp, err := os.MkdirTemp("", "kgrep-cli-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}

	kgrepBin = filepath.Join(tmp, "kgrep")
	build := exec.Command("go", "build", "-o", kgrepBin, ".")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.RemoveAll(tmp)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// setupProject creates a temp dir with a few source files in two languages.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "main.go"), `package main

func main() {
	// TODO: parse flags
	hello()
}
`)
	writeFile(t, filepath.Join(dir, "lib", "util.py"), `def add(a, b):
    # TODO: overflow
    return a + b
`)
	writeFile(t, filepath.Join(dir, "README.txt"), "TODO: docs\n")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// runKgrep executes the kgrep binary in dir with args and returns stdout,
// stderr and the exit code.
func runKgrep(t *testing.T, dir string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(kgrepBin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "XDG_CONFIG_HOME="+t.TempDir())

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		require.True(t, ok, "exec error (not ExitError): %v", err)
		exitCode = exitErr.ExitCode()
	}
	return
}

func TestCLI_SearchDefaultsToCurrentDir(t *testing.T) {
	dir := setupProject(t)

	stdout, stderr, code := runKgrep(t, dir, "-k", "comment$", "-b", "0", "-a", "0", "TODO")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 4, stdout)
	assert.True(t, strings.HasPrefix(lines[0], "lib/util.py => function_definition/"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "/comment"), lines[0])
	assert.Equal(t, "2        # TODO: overflow", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "main.go => function_declaration/block/"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "/comment"), lines[2])
	assert.Equal(t, "4    \t// TODO: parse flags", lines[3])
}

func TestCLI_NoMatchExitsZero(t *testing.T) {
	dir := setupProject(t)

	stdout, _, code := runKgrep(t, dir, "no such text")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func TestCLI_MalformedPatternExitsOne(t *testing.T) {
	dir := setupProject(t)

	stdout, stderr, code := runKgrep(t, dir, "(")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "error: content pattern: "), stderr)
}

func TestCLI_MissingConfigIsEmpty(t *testing.T) {
	dir := setupProject(t)

	_, stderr, code := runKgrep(t, dir, "-c", filepath.Join(dir, "nope.toml"), "-k", "comment$", "TODO")
	assert.Equal(t, 0, code, stderr)
}
