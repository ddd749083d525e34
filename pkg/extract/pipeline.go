package extract

import (
	"fmt"

	"github.com/importscout/importscout/pkg/importmodel"
)

// Engine extracts import records from source text of one language. An
// Engine holds no per-file state: Extract calls are independent, so one
// Engine may serve many goroutines concurrently.
type Engine struct {
	grammar Grammar
}

// NewEngine returns an engine for the given language, or
// ErrUnknownLanguage when no grammar is registered for it.
func NewEngine(language string) (*Engine, error) {
	g, ok := Lookup(language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}

	return &Engine{grammar: g}, nil
}

// Grammar returns the grammar the engine was built with.
func (e *Engine) Grammar() Grammar {
	return e.grammar
}

// Extract scans source text and returns the import records in source order
// plus any recoverable diagnostics. Malformed statements degrade to
// diagnostics; nothing aborts extraction of the rest of the file.
func (e *Engine) Extract(source string) ([]importmodel.Record, []importmodel.Diagnostic) {
	var (
		records []importmodel.Record
		diags   []importmodel.Diagnostic
	)

	j := newJoiner(e.grammar, source)
	tracker := newGuardTracker(e.grammar)

	for {
		st, diag, more := j.next()
		if diag != nil {
			diags = append(diags, *diag)
		}

		if !more {
			break
		}

		if st == nil {
			continue
		}

		branch := tracker.observe(st)

		c, cdiag := classify(st, e.grammar)
		if cdiag != nil {
			diags = append(diags, *cdiag)

			continue
		}

		if c.kind == shapeNotImport {
			continue
		}

		records = append(records, normalize(c, e.grammar, st.span, branch)...)
	}

	return records, diags
}

// Extract is the one-shot convenience form: it builds an engine for the
// language and runs it over the source text.
func Extract(source, language string) ([]importmodel.Record, []importmodel.Diagnostic, error) {
	engine, err := NewEngine(language)
	if err != nil {
		return nil, nil, err
	}

	records, diags := engine.Extract(source)

	return records, diags, nil
}
