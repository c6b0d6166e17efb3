package treesitter

// languageExtensions maps language names to their file extensions or special
// filenames. It is always included regardless of build tags: dynamically
// loaded grammars need the mapping as much as compiled-in ones.
//
// Language names double as the shared library base name and the C symbol
// suffix (tree_sitter_<name>) the dynamic loader looks for.
var languageExtensions = map[string][]string{
	// Compiled-in
	"go":         {".go"},
	"rust":       {".rs"},
	"python":     {".py", ".pyw", ".pyi"},
	"javascript": {".js", ".jsx", ".mjs", ".cjs"},
	"typescript": {".ts", ".mts", ".cts"},
	"tsx":        {".tsx"},
	"java":       {".java"},
	"c_sharp":    {".cs"},
	"cpp":        {".cpp", ".hpp", ".cc", ".cxx", ".hxx", ".hh"},
	"php":        {".php"},
	"zig":        {".zig"},

	// Dynamic only
	"c":          {".c", ".h"},
	"ruby":       {".rb"},
	"swift":      {".swift"},
	"kotlin":     {".kt", ".kts"},
	"scala":      {".scala", ".sc"},
	"bash":       {".sh", ".bash"},
	"lua":        {".lua"},
	"perl":       {".pl", ".pm"},
	"r":          {".r", ".R"},
	"julia":      {".jl"},
	"elixir":     {".ex", ".exs"},
	"erlang":     {".erl", ".hrl"},
	"haskell":    {".hs"},
	"ocaml":      {".ml", ".mli"},
	"gleam":      {".gleam"},
	"elm":        {".elm"},
	"clojure":    {".clj", ".cljs", ".cljc"},
	"dart":       {".dart"},
	"nim":        {".nim"},
	"d":          {".d"},
	"cuda":       {".cu", ".cuh"},
	"odin":       {".odin"},
	"objc":       {".m", ".mm"},
	"fortran":    {".f90", ".f95", ".f03"},
	"verilog":    {".sv"},
	"vhdl":       {".vhd", ".vhdl"},
	"html":       {".html", ".htm"},
	"css":        {".css"},
	"scss":       {".scss"},
	"vue":        {".vue"},
	"svelte":     {".svelte"},
	"json":       {".json"},
	"yaml":       {".yaml", ".yml"},
	"toml":       {".toml"},
	"sql":        {".sql"},
	"markdown":   {".md"},
	"graphql":    {".graphql", ".gql"},
	"hcl":        {".tf", ".hcl"},
	"dockerfile": {"Dockerfile", ".dockerfile"},
	"nix":        {".nix"},
	"proto":      {".proto"},
	"make":       {"Makefile", ".mk"},
	"cmake":      {"CMakeLists.txt", ".cmake"},
	"solidity":   {".sol"},
	"starlark":   {".bzl", ".star"},
}

// registerExtensions maps file extensions to language names.
func (p *Parser) registerExtensions() {
	for lang, exts := range languageExtensions {
		p.addExt(lang, exts...)
	}
}
