// Package importmodel defines the data model for source file import analysis.
package importmodel

import "fmt"

// Branch marks the guard arm an import statement belongs to.
type Branch int

const (
	// BranchNone marks an unconditional import.
	BranchNone Branch = iota
	// BranchPrimary marks an import inside the attempted arm of a guard.
	BranchPrimary
	// BranchFallback marks an import inside a fallback arm of a guard.
	BranchFallback
)

// String returns the branch name.
func (b Branch) String() string {
	switch b {
	case BranchNone:
		return "none"
	case BranchPrimary:
		return "primary"
	case BranchFallback:
		return "fallback"
	default:
		return fmt.Sprintf("branch(%d)", int(b))
	}
}

// MarshalText encodes the branch as its name for JSON and YAML output.
func (b Branch) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a branch from its name.
func (b *Branch) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*b = BranchNone
	case "primary":
		*b = BranchPrimary
	case "fallback":
		*b = BranchFallback
	default:
		return fmt.Errorf("unknown branch %q", text)
	}

	return nil
}

// Span is a 1-indexed, inclusive physical line range.
type Span struct {
	Start int `json:"start_line" yaml:"start_line"`
	End   int `json:"end_line"   yaml:"end_line"`
}

// Symbol is one imported member: the name as written and its optional alias.
type Symbol struct {
	Name  string `json:"original_name"   yaml:"original_name"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Record is one normalized import statement. Records are immutable once
// emitted and appear in source order.
type Record struct {
	// Module is the module path as written, with any relative markers
	// stripped. For a relative import with no module name it holds the
	// parent-package sentinel: the relative marker repeated RelativeDepth
	// times. Never empty.
	Module string `json:"source_module" yaml:"source_module"`

	// Symbols lists imported members in source order. Empty when the
	// statement imports the module itself.
	Symbols []Symbol `json:"imported_symbols,omitempty" yaml:"imported_symbols,omitempty"`

	// Alias is the name bound to the whole module, if any.
	Alias string `json:"module_alias,omitempty" yaml:"module_alias,omitempty"`

	// RelativeDepth counts parent-package levels; 0 means absolute.
	RelativeDepth int `json:"relative_depth" yaml:"relative_depth"`

	// Wildcard is true when all members are imported unqualified.
	Wildcard bool `json:"is_wildcard,omitempty" yaml:"is_wildcard,omitempty"`

	// Branch tags guard membership; BranchNone for unconditional imports.
	Branch Branch `json:"conditional_branch" yaml:"conditional_branch"`

	// Span covers the full logical statement, including every physical
	// line of a multi-line group.
	Span Span `json:"line_span" yaml:"line_span"`
}

// DiagnosticKind classifies a recoverable parse issue.
type DiagnosticKind int

const (
	// DiagUnterminatedGroup indicates a bracketed group that never closed.
	DiagUnterminatedGroup DiagnosticKind = iota
	// DiagMalformedImport indicates an import keyword with invalid structure.
	DiagMalformedImport
)

// String returns the diagnostic kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnterminatedGroup:
		return "unterminated_group"
	case DiagMalformedImport:
		return "malformed_import"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// MarshalText encodes the kind as its name for JSON and YAML output.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a diagnostic kind from its name.
func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unterminated_group":
		*k = DiagUnterminatedGroup
	case "malformed_import":
		*k = DiagMalformedImport
	default:
		return fmt.Errorf("unknown diagnostic kind %q", text)
	}

	return nil
}

// Diagnostic reports a non-fatal parse issue. The statement it covers is
// discarded; extraction of the rest of the file continues.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"      yaml:"kind"`
	Span    Span           `json:"line_span" yaml:"line_span"`
	Message string         `json:"message"   yaml:"message"`
}
