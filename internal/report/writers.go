package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const jsonIndent = "  "

// WriteJSON renders a result as indented JSON.
func WriteJSON(w io.Writer, result Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

// WriteYAML renders a result as YAML.
func WriteYAML(w io.Writer, result Result) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return nil
}
