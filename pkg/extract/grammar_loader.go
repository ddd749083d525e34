package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrGrammarFileInvalid indicates a grammar definition file failed schema
// validation.
var ErrGrammarFileInvalid = errors.New("invalid grammar file")

// grammarFileSchema validates user-supplied grammar definition files before
// their entries reach the table. Only language and import_keyword are
// required; everything else defaults to "feature absent".
const grammarFileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["grammars"],
  "properties": {
    "grammars": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["language", "import_keyword"],
        "additionalProperties": false,
        "properties": {
          "language": {"type": "string", "minLength": 1},
          "import_keyword": {"type": "string", "minLength": 1},
          "from_keyword": {"type": "string"},
          "alias_keyword": {"type": "string"},
          "module_separator": {"type": "string"},
          "relative_marker": {"type": "string"},
          "wildcard_token": {"type": "string"},
          "blank_token": {"type": "string"},
          "module_quoted": {"type": "boolean"},
          "group_open": {"type": "string"},
          "group_close": {"type": "string"},
          "group_per_spec": {"type": "boolean"},
          "continuation_escape": {"type": "string"},
          "line_comment": {"type": "string"},
          "block_comment_open": {"type": "string"},
          "block_comment_close": {"type": "string"},
          "guard_keyword": {"type": "string"},
          "guard_arm_keyword": {"type": "string"},
          "guard_neutral_keywords": {"type": "array", "items": {"type": "string"}},
          "guard_indent_delimited": {"type": "boolean"}
        }
      }
    }
  }
}`

// grammarFile mirrors the YAML layout of a grammar definition file.
type grammarFile struct {
	Grammars []grammarEntry `yaml:"grammars"`
}

type grammarEntry struct {
	Language             string   `yaml:"language"`
	ImportKeyword        string   `yaml:"import_keyword"`
	FromKeyword          string   `yaml:"from_keyword"`
	AliasKeyword         string   `yaml:"alias_keyword"`
	ModuleSeparator      string   `yaml:"module_separator"`
	RelativeMarker       string   `yaml:"relative_marker"`
	WildcardToken        string   `yaml:"wildcard_token"`
	BlankToken           string   `yaml:"blank_token"`
	ModuleQuoted         bool     `yaml:"module_quoted"`
	GroupOpen            string   `yaml:"group_open"`
	GroupClose           string   `yaml:"group_close"`
	GroupPerSpec         bool     `yaml:"group_per_spec"`
	ContinuationEscape   string   `yaml:"continuation_escape"`
	LineComment          string   `yaml:"line_comment"`
	BlockCommentOpen     string   `yaml:"block_comment_open"`
	BlockCommentClose    string   `yaml:"block_comment_close"`
	GuardKeyword         string   `yaml:"guard_keyword"`
	GuardArmKeyword      string   `yaml:"guard_arm_keyword"`
	GuardNeutralKeywords []string `yaml:"guard_neutral_keywords"`
	GuardIndentDelimited bool     `yaml:"guard_indent_delimited"`
}

// LoadGrammarFile reads a YAML grammar definition file and registers every
// entry. It returns the registered language IDs.
func LoadGrammarFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}

	ids, err := LoadGrammars(data)
	if err != nil {
		return nil, fmt.Errorf("load grammar file %s: %w", path, err)
	}

	return ids, nil
}

// LoadGrammars parses YAML grammar definitions, validates them against the
// embedded schema, and registers every entry.
func LoadGrammars(data []byte) ([]string, error) {
	if err := validateGrammarData(data); err != nil {
		return nil, err
	}

	var file grammarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal grammars: %w", err)
	}

	ids := make([]string, 0, len(file.Grammars))

	for _, entry := range file.Grammars {
		g := entry.toGrammar()
		if err := Register(g); err != nil {
			return nil, fmt.Errorf("register grammar %q: %w", entry.Language, err)
		}

		ids = append(ids, NormalizeLanguage(entry.Language))
	}

	return ids, nil
}

// validateGrammarData checks the raw YAML document against the schema.
func validateGrammarData(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal grammars: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(grammarFileSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate grammars: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrGrammarFileInvalid, strings.Join(msgs, "; "))
}

func (e grammarEntry) toGrammar() Grammar {
	return Grammar{
		Language:             e.Language,
		ImportKeyword:        e.ImportKeyword,
		FromKeyword:          e.FromKeyword,
		AliasKeyword:         e.AliasKeyword,
		ModuleSeparator:      e.ModuleSeparator,
		RelativeMarker:       e.RelativeMarker,
		WildcardToken:        e.WildcardToken,
		BlankToken:           e.BlankToken,
		ModuleQuoted:         e.ModuleQuoted,
		GroupOpen:            e.GroupOpen,
		GroupClose:           e.GroupClose,
		GroupPerSpec:         e.GroupPerSpec,
		ContinuationEscape:   e.ContinuationEscape,
		LineComment:          e.LineComment,
		BlockCommentOpen:     e.BlockCommentOpen,
		BlockCommentClose:    e.BlockCommentClose,
		GuardKeyword:         e.GuardKeyword,
		GuardArmKeyword:      e.GuardArmKeyword,
		GuardNeutralKeywords: e.GuardNeutralKeywords,
		GuardIndentDelimited: e.GuardIndentDelimited,
	}
}
