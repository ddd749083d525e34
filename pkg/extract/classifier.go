package extract

import (
	"strconv"
	"strings"

	"github.com/importscout/importscout/pkg/importmodel"
)

// shape is the tagged variant a logical statement classifies to. Every
// statement maps to exactly one variant; shapeNotImport is the explicit
// catch-all.
type shape int

const (
	shapeNotImport shape = iota
	shapeSimpleImport
	shapeFromImport
	shapeAliasedModule
)

// target is one whole-module import target with its optional alias.
type target struct {
	module string
	alias  string
}

// symbolRef is one imported member with its optional alias.
type symbolRef struct {
	name  string
	alias string
}

// classification is the structured match of one logical statement.
type classification struct {
	kind     shape
	module   string // from-import module part, relative markers included
	targets  []target
	symbols  []symbolRef
	wildcard bool
}

// classify matches one logical statement against the grammar. Statements
// that carry an import keyword but fail structural validation yield a
// MalformedImport diagnostic and classify to shapeNotImport.
func classify(st *statement, g Grammar) (classification, *importmodel.Diagnostic) {
	text := strings.TrimSpace(st.text)

	switch {
	case g.FromKeyword != "" && startsWithWord(text, g.FromKeyword):
		return classifyFrom(text, st, g)
	case startsWithWord(text, g.ImportKeyword):
		return classifySimple(text, st, g)
	default:
		return classification{kind: shapeNotImport}, nil
	}
}

// classifyFrom matches the from-import form: module part, import keyword,
// then a symbol list, a bracketed symbol group, or the wildcard token.
func classifyFrom(text string, st *statement, g Grammar) (classification, *importmodel.Diagnostic) {
	rest := strings.TrimSpace(text[len(g.FromKeyword):])

	kwIdx := indexWord(rest, g.ImportKeyword)
	if kwIdx < 0 {
		return notImport(), malformed(st, "missing import keyword after module part")
	}

	module := strings.TrimSpace(rest[:kwIdx])
	if module == "" {
		return notImport(), malformed(st, "missing module part before import keyword")
	}

	symsPart := strings.TrimSpace(rest[kwIdx+len(g.ImportKeyword):])
	symsPart = trimGroupDelimiters(symsPart, g)

	if symsPart == "" {
		return notImport(), malformed(st, "missing imported symbols")
	}

	if g.WildcardToken != "" && symsPart == g.WildcardToken {
		return classification{kind: shapeFromImport, module: module, wildcard: true}, nil
	}

	symbols, ok := parseSymbolList(symsPart, g)
	if !ok {
		return notImport(), malformed(st, "invalid symbol list")
	}

	return classification{kind: shapeFromImport, module: module, symbols: symbols}, nil
}

// classifySimple matches the plain import form: one or more module targets,
// each with an optional alias.
func classifySimple(text string, st *statement, g Grammar) (classification, *importmodel.Diagnostic) {
	rest := strings.TrimSpace(text[len(g.ImportKeyword):])
	if rest == "" {
		return notImport(), malformed(st, "missing module after import keyword")
	}

	var targets []target

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tgt, ok := parseTarget(part, g)
		if !ok {
			return notImport(), malformed(st, "invalid import target "+strconv.Quote(part))
		}

		targets = append(targets, tgt)
	}

	if len(targets) == 0 {
		return notImport(), malformed(st, "missing module after import keyword")
	}

	kind := shapeSimpleImport
	if len(targets) == 1 && targets[0].alias != "" {
		kind = shapeAliasedModule
	}

	return classification{kind: kind, targets: targets}, nil
}

// parseTarget parses one whole-module target. For quoted-module grammars the
// alias precedes the quoted path; otherwise the alias keyword follows it.
func parseTarget(part string, g Grammar) (target, bool) {
	if g.ModuleQuoted {
		return parseQuotedTarget(part, g)
	}

	name, alias, ok := splitAlias(part, g)
	if !ok || name == "" {
		return target{}, false
	}

	if strings.ContainsAny(name, " \t") {
		return target{}, false
	}

	return target{module: name, alias: alias}, true
}

// parseQuotedTarget parses a Go-style target: [alias|wildcard|blank] "path".
func parseQuotedTarget(part string, g Grammar) (target, bool) {
	fields := strings.Fields(part)

	var prefix, quoted string

	switch len(fields) {
	case 1:
		quoted = fields[0]
	case 2: //nolint:mnd // alias plus path.
		prefix, quoted = fields[0], fields[1]
	default:
		return target{}, false
	}

	module, ok := unquoteModule(quoted)
	if !ok || module == "" {
		return target{}, false
	}

	if !validTargetPrefix(prefix, g) {
		return target{}, false
	}

	return target{module: module, alias: prefix}, true
}

// validTargetPrefix accepts an empty prefix, the wildcard or blank tokens,
// or a plain identifier alias.
func validTargetPrefix(prefix string, g Grammar) bool {
	if prefix == "" || prefix == g.WildcardToken || prefix == g.BlankToken {
		return true
	}

	for _, r := range prefix {
		if !isIdentChar(r) {
			return false
		}
	}

	return true
}

// unquoteModule strips matching string delimiters from a module path.
func unquoteModule(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}

	open := s[0]
	if open != '"' && open != '\'' && open != '`' {
		return "", false
	}

	if s[len(s)-1] != open {
		return "", false
	}

	return s[1 : len(s)-1], true
}

// parseSymbolList parses a comma-separated member list, tolerating a
// trailing separator.
func parseSymbolList(s string, g Grammar) ([]symbolRef, bool) {
	var symbols []symbolRef

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, alias, ok := splitAlias(part, g)
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, false
		}

		symbols = append(symbols, symbolRef{name: name, alias: alias})
	}

	return symbols, len(symbols) > 0
}

// splitAlias splits "name as alias" on the grammar's alias keyword. A
// missing alias keyword leaves the alias empty; a dangling one fails.
func splitAlias(part string, g Grammar) (name, alias string, ok bool) {
	if g.AliasKeyword == "" {
		return part, "", true
	}

	idx := indexWord(part, g.AliasKeyword)
	if idx < 0 {
		return part, "", true
	}

	name = strings.TrimSpace(part[:idx])
	alias = strings.TrimSpace(part[idx+len(g.AliasKeyword):])

	if name == "" || alias == "" || strings.ContainsAny(alias, " \t") {
		return "", "", false
	}

	return name, alias, true
}

// trimGroupDelimiters removes a surrounding bracket pair left over from a
// joined multi-line group.
func trimGroupDelimiters(s string, g Grammar) string {
	if g.GroupOpen == "" || !strings.HasPrefix(s, g.GroupOpen) {
		return s
	}

	s = strings.TrimPrefix(s, g.GroupOpen)
	s = strings.TrimSuffix(strings.TrimSpace(s), g.GroupClose)

	return strings.TrimSpace(s)
}

// indexWord finds keyword as a standalone word inside s, or -1.
func indexWord(s, keyword string) int {
	for from := 0; from < len(s); {
		idx := strings.Index(s[from:], keyword)
		if idx < 0 {
			return -1
		}

		idx += from

		beforeOK := idx == 0 || !isIdentChar(rune(s[idx-1]))
		end := idx + len(keyword)
		afterOK := end == len(s) || !isIdentChar(rune(s[end]))

		if beforeOK && afterOK {
			return idx
		}

		from = idx + len(keyword)
	}

	return -1
}

func notImport() classification {
	return classification{kind: shapeNotImport}
}

func malformed(st *statement, msg string) *importmodel.Diagnostic {
	return &importmodel.Diagnostic{
		Kind:    importmodel.DiagMalformedImport,
		Span:    st.span,
		Message: msg,
	}
}
