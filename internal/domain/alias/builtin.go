package alias

import (
	"regexp"
	"sort"
	"strings"
)

// Concept tokens understood by the builtin tier.
const (
	ConceptCall          = "call"
	ConceptStringLiteral = "string"
	ConceptAssignment    = "assign"
	ConceptLoop          = "loop"
	ConceptDefer         = "defer"
	ConceptReturn        = "return"
	ConceptImport        = "import"
	ConceptFunction      = "fn"
	ConceptClass         = "class"
)

// conceptKinds maps (language, concept) -> list of AST node kinds.
// Each language maps unified concepts to the concrete tree-sitter node types.
var conceptKinds = map[string]map[string][]string{
	"go": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"interpreted_string_literal", "raw_string_literal"},
		ConceptAssignment:    {"short_var_declaration", "assignment_statement"},
		ConceptLoop:          {"for_statement"},
		ConceptDefer:         {"defer_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"import_declaration"},
		ConceptFunction:      {"function_declaration", "method_declaration", "func_literal"},
		ConceptClass:         {"type_declaration"},
	},
	"python": {
		ConceptCall:          {"call"},
		ConceptStringLiteral: {"string", "concatenated_string"},
		ConceptAssignment:    {"assignment", "augmented_assignment"},
		ConceptLoop:          {"for_statement", "while_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"import_statement", "import_from_statement"},
		ConceptFunction:      {"function_definition", "lambda"},
		ConceptClass:         {"class_definition"},
	},
	"javascript": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"string", "template_string"},
		ConceptAssignment:    {"variable_declarator", "assignment_expression"},
		ConceptLoop:          {"for_statement", "while_statement", "for_in_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"import_statement"},
		ConceptFunction:      {"function_declaration", "arrow_function", "method_definition"},
		ConceptClass:         {"class_declaration"},
	},
	"typescript": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"string", "template_string"},
		ConceptAssignment:    {"variable_declarator", "assignment_expression"},
		ConceptLoop:          {"for_statement", "while_statement", "for_in_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"import_statement"},
		ConceptFunction:      {"function_declaration", "arrow_function", "method_definition"},
		ConceptClass:         {"class_declaration", "interface_declaration"},
	},
	"rust": {
		ConceptCall:          {"call_expression", "macro_invocation"},
		ConceptStringLiteral: {"string_literal", "raw_string_literal"},
		ConceptAssignment:    {"let_declaration", "assignment_expression"},
		ConceptLoop:          {"for_expression", "while_expression", "loop_expression"},
		ConceptReturn:        {"return_expression"},
		ConceptImport:        {"use_declaration"},
		ConceptFunction:      {"function_item", "closure_expression"},
		ConceptClass:         {"struct_item", "enum_item", "impl_item", "trait_item"},
	},
	"java": {
		ConceptCall:          {"method_invocation"},
		ConceptStringLiteral: {"string_literal"},
		ConceptAssignment:    {"local_variable_declaration", "assignment_expression"},
		ConceptLoop:          {"for_statement", "enhanced_for_statement", "while_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"import_declaration"},
		ConceptFunction:      {"method_declaration", "constructor_declaration"},
		ConceptClass:         {"class_declaration", "interface_declaration"},
	},
	"c": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"string_literal"},
		ConceptAssignment:    {"declaration", "assignment_expression"},
		ConceptLoop:          {"for_statement", "while_statement", "do_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"preproc_include"},
		ConceptFunction:      {"function_definition"},
		ConceptClass:         {"struct_specifier"},
	},
	"cpp": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"string_literal", "raw_string_literal"},
		ConceptAssignment:    {"declaration", "assignment_expression"},
		ConceptLoop:          {"for_statement", "while_statement", "for_range_loop"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"preproc_include"},
		ConceptFunction:      {"function_definition", "lambda_expression"},
		ConceptClass:         {"class_specifier", "struct_specifier"},
	},
	"c_sharp": {
		ConceptCall:          {"invocation_expression"},
		ConceptStringLiteral: {"string_literal", "verbatim_string_literal"},
		ConceptAssignment:    {"variable_declaration", "assignment_expression"},
		ConceptLoop:          {"for_statement", "foreach_statement", "while_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"using_directive"},
		ConceptFunction:      {"method_declaration", "constructor_declaration", "local_function_statement"},
		ConceptClass:         {"class_declaration", "struct_declaration", "interface_declaration"},
	},
	"php": {
		ConceptCall:          {"function_call_expression", "member_call_expression"},
		ConceptStringLiteral: {"string", "encapsed_string"},
		ConceptAssignment:    {"assignment_expression"},
		ConceptLoop:          {"for_statement", "foreach_statement", "while_statement"},
		ConceptReturn:        {"return_statement"},
		ConceptImport:        {"namespace_use_declaration"},
		ConceptFunction:      {"function_definition", "method_declaration"},
		ConceptClass:         {"class_declaration", "interface_declaration", "trait_declaration"},
	},
	"ruby": {
		ConceptCall:          {"call", "method_call"},
		ConceptStringLiteral: {"string"},
		ConceptAssignment:    {"assignment"},
		ConceptLoop:          {"for", "while", "until"},
		ConceptReturn:        {"return"},
		ConceptFunction:      {"method", "singleton_method"},
		ConceptClass:         {"class", "module"},
	},
	"zig": {
		ConceptCall:          {"call_expression"},
		ConceptStringLiteral: {"string"},
		ConceptLoop:          {"for_statement", "while_statement"},
		ConceptDefer:         {"defer_statement"},
		ConceptReturn:        {"return_expression"},
		ConceptFunction:      {"function_declaration"},
	},
}

func init() {
	conceptKinds["tsx"] = conceptKinds["typescript"]
}

// Resolve returns the AST node kinds for a given language and concept.
// Returns nil for unknown languages or concepts.
func Resolve(lang, concept string) []string {
	concepts, ok := conceptKinds[lang]
	if !ok {
		return nil
	}
	return concepts[concept]
}

// BuiltinPattern returns a kind pattern matching kind paths that end in one
// of the node kinds behind a concept token, e.g. "fn" in rust becomes
// `(^|/)(?:function_item|closure_expression)$`.
func BuiltinPattern(lang, concept string) (string, bool) {
	kinds := Resolve(lang, concept)
	if len(kinds) == 0 {
		return "", false
	}
	quoted := make([]string, len(kinds))
	for i, k := range kinds {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return `(^|/)(?:` + strings.Join(quoted, "|") + `)$`, true
}

// BuiltinEntries returns every builtin token -> pattern pair for a language.
func BuiltinEntries(lang string) map[string]string {
	concepts, ok := conceptKinds[lang]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(concepts))
	for concept := range concepts {
		if p, ok := BuiltinPattern(lang, concept); ok {
			out[concept] = p
		}
	}
	return out
}

// BuiltinLanguages returns all languages with builtin concept entries, sorted.
func BuiltinLanguages() []string {
	langs := make([]string, 0, len(conceptKinds))
	for lang := range conceptKinds {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
