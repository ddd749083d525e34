package importmodel

// File represents one scanned source file with its detected language,
// extracted imports, and any read error.
type File struct {
	Path        string       `json:"path"                  yaml:"path"`
	Lang        string       `json:"lang"                  yaml:"lang"`
	Records     []Record     `json:"imports"               yaml:"imports"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       error        `json:"-"                     yaml:"-"`
}
