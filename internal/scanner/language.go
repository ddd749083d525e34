package scanner

import (
	"path/filepath"

	"github.com/src-d/enry/v2"

	"github.com/importscout/importscout/pkg/extract"
)

// DetectLanguage maps a file to a registered grammar ID, or "" when the
// language is undetected or has no grammar. Detection prefers the filename
// and falls back to content heuristics for ambiguous extensions.
func DetectLanguage(path string, contents []byte) string {
	lang := enry.GetLanguage(filepath.Base(path), nil)
	if lang == "" || lang == enry.OtherLanguage {
		lang = enry.GetLanguage(filepath.Base(path), contents)
	}

	if lang == "" || lang == enry.OtherLanguage {
		return ""
	}

	id := extract.NormalizeLanguage(lang)
	if _, ok := extract.Lookup(id); !ok {
		return ""
	}

	return id
}
