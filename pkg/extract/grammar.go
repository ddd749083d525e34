// Package extract implements the import extraction engine: it scans raw
// source text of a known language and produces a normalized, ordered list of
// import records plus recoverable diagnostics. The engine is stateless and
// performs no I/O; callers feed it already-loaded text one file at a time.
package extract

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownLanguage indicates no grammar is registered for a language ID.
var ErrUnknownLanguage = errors.New("unknown language")

// ErrGrammarInvalid indicates a grammar descriptor fails basic validation.
var ErrGrammarInvalid = errors.New("invalid grammar")

// Grammar declaratively describes one language's import syntax. It is pure
// data: the classifier and joiner are parameterized by a Grammar, so adding
// a language is a table entry, not a new code path.
type Grammar struct {
	// Language is the normalized identifier the grammar is registered under.
	Language string

	// ImportKeyword introduces an import statement ("import").
	ImportKeyword string
	// FromKeyword introduces a from-import statement; empty when the
	// language has no from-import form.
	FromKeyword string
	// AliasKeyword binds an alias after the name ("as"); empty when the
	// alias precedes the module path instead, as in Go.
	AliasKeyword string

	// ModuleSeparator joins module path segments ("." or "/").
	ModuleSeparator string
	// RelativeMarker is the token whose leading run encodes parent-package
	// depth; empty when the language has no relative imports.
	RelativeMarker string
	// WildcardToken imports all members unqualified ("*", or "." for Go
	// dot imports).
	WildcardToken string
	// BlankToken imports for side effects only ("_" in Go).
	BlankToken string
	// ModuleQuoted is true when module paths are written as quoted strings.
	ModuleQuoted bool

	// GroupOpen and GroupClose delimit multi-line groups.
	GroupOpen  string
	GroupClose string
	// GroupPerSpec is true when each line of a group is an independent
	// import spec (Go's import block) rather than a member list of one
	// module (Python's from-import parentheses).
	GroupPerSpec bool
	// ContinuationEscape continues a statement onto the next physical
	// line ("\" in Python); empty when unsupported.
	ContinuationEscape string

	// LineComment starts a comment running to end of line.
	LineComment string
	// BlockCommentOpen and BlockCommentClose delimit block comments;
	// empty when the language has none.
	BlockCommentOpen  string
	BlockCommentClose string

	// GuardKeyword opens a try-then-fallback guard construct; empty when
	// the language has no guarded imports.
	GuardKeyword string
	// GuardArmKeyword switches the guard to a fallback arm ("except").
	GuardArmKeyword string
	// GuardNeutralKeywords continue the guard construct without being an
	// import arm ("else", "finally").
	GuardNeutralKeywords []string
	// GuardIndentDelimited is true when guard arms close by dedent.
	GuardIndentDelimited bool
}

// validate checks the descriptor fields the engine cannot work without.
func (g Grammar) validate() error {
	if g.Language == "" {
		return fmt.Errorf("%w: language must not be empty", ErrGrammarInvalid)
	}

	if g.ImportKeyword == "" {
		return fmt.Errorf("%w: import keyword must not be empty", ErrGrammarInvalid)
	}

	if (g.GroupOpen == "") != (g.GroupClose == "") {
		return fmt.Errorf("%w: group delimiters must be paired", ErrGrammarInvalid)
	}

	return nil
}

// pythonGrammar covers CPython's import and from-import forms, including
// relative dots, aliases, parenthesized symbol groups, backslash
// continuation, and try/except import guards.
var pythonGrammar = Grammar{
	Language:             "python",
	ImportKeyword:        "import",
	FromKeyword:          "from",
	AliasKeyword:         "as",
	ModuleSeparator:      ".",
	RelativeMarker:       ".",
	WildcardToken:        "*",
	GroupOpen:            "(",
	GroupClose:           ")",
	ContinuationEscape:   "\\",
	LineComment:          "#",
	GuardKeyword:         "try",
	GuardArmKeyword:      "except",
	GuardNeutralKeywords: []string{"else", "finally"},
	GuardIndentDelimited: true,
}

// goGrammar covers Go's single and grouped import declarations, quoted
// module paths, leading aliases, and dot/blank imports.
var goGrammar = Grammar{
	Language:          "go",
	ImportKeyword:     "import",
	ModuleSeparator:   "/",
	WildcardToken:     ".",
	BlankToken:        "_",
	ModuleQuoted:      true,
	GroupOpen:         "(",
	GroupClose:        ")",
	GroupPerSpec:      true,
	LineComment:       "//",
	BlockCommentOpen:  "/*",
	BlockCommentClose: "*/",
}

// languageAliases maps common alternate spellings to registered IDs.
var languageAliases = map[string]string{
	"python2": "python",
	"python3": "python",
	"py":      "python",
	"golang":  "go",
}

var (
	grammarMu sync.RWMutex
	grammars  = map[string]Grammar{
		pythonGrammar.Language: pythonGrammar,
		goGrammar.Language:     goGrammar,
	}
)

// NormalizeLanguage maps a language name to its registered grammar ID.
func NormalizeLanguage(lang string) string {
	id := strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := languageAliases[id]; ok {
		return canonical
	}

	return id
}

// Register adds or replaces a grammar in the table.
func Register(g Grammar) error {
	if err := g.validate(); err != nil {
		return err
	}

	g.Language = NormalizeLanguage(g.Language)

	grammarMu.Lock()
	defer grammarMu.Unlock()

	grammars[g.Language] = g

	return nil
}

// Lookup returns the grammar registered for a language.
func Lookup(lang string) (Grammar, bool) {
	grammarMu.RLock()
	defer grammarMu.RUnlock()

	g, ok := grammars[NormalizeLanguage(lang)]

	return g, ok
}

// Languages returns the registered grammar IDs in sorted order.
func Languages() []string {
	grammarMu.RLock()
	defer grammarMu.RUnlock()

	ids := make([]string, 0, len(grammars))
	for id := range grammars {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
