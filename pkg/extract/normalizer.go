package extract

import (
	"strings"

	"github.com/importscout/importscout/pkg/importmodel"
)

// normalize converts a classified match into canonical import records. A
// multi-target simple import yields one record per target; every record
// shares the statement's span and branch tag.
func normalize(c classification, g Grammar, span importmodel.Span, branch importmodel.Branch) []importmodel.Record {
	switch c.kind {
	case shapeFromImport:
		return []importmodel.Record{normalizeFrom(c, g, span, branch)}
	case shapeSimpleImport, shapeAliasedModule:
		records := make([]importmodel.Record, 0, len(c.targets))
		for _, tgt := range c.targets {
			records = append(records, normalizeTarget(tgt, g, span, branch))
		}

		return records
	case shapeNotImport:
		return nil
	default:
		return nil
	}
}

// normalizeFrom builds the record for a from-import statement.
func normalizeFrom(c classification, g Grammar, span importmodel.Span, branch importmodel.Branch) importmodel.Record {
	module, depth := splitRelative(c.module, g)

	rec := importmodel.Record{
		Module:        module,
		RelativeDepth: depth,
		Wildcard:      c.wildcard,
		Branch:        branch,
		Span:          span,
	}

	if !c.wildcard {
		rec.Symbols = make([]importmodel.Symbol, len(c.symbols))
		for i, sym := range c.symbols {
			rec.Symbols[i] = importmodel.Symbol{Name: sym.name, Alias: sym.alias}
		}
	}

	return rec
}

// normalizeTarget builds the record for one whole-module target.
func normalizeTarget(tgt target, g Grammar, span importmodel.Span, branch importmodel.Branch) importmodel.Record {
	module, depth := splitRelative(tgt.module, g)

	rec := importmodel.Record{
		Module:        module,
		RelativeDepth: depth,
		Branch:        branch,
		Span:          span,
	}

	switch {
	case g.WildcardToken != "" && tgt.alias == g.WildcardToken:
		rec.Wildcard = true
	default:
		rec.Alias = tgt.alias
	}

	return rec
}

// splitRelative separates the leading relative-marker run from the module
// name. A relative import with no module name keeps the markers themselves
// as the parent-package sentinel, so Module is never empty.
func splitRelative(module string, g Grammar) (string, int) {
	if g.RelativeMarker == "" {
		return module, 0
	}

	depth := 0
	rest := module

	for strings.HasPrefix(rest, g.RelativeMarker) {
		depth++
		rest = rest[len(g.RelativeMarker):]
	}

	if depth == 0 {
		return module, 0
	}

	if rest == "" {
		return strings.Repeat(g.RelativeMarker, depth), depth
	}

	return rest, depth
}
