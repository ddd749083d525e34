package report //nolint:testpackage // testing internal implementation.

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/importscout/importscout/pkg/importmodel"
)

func sampleFiles() []importmodel.File {
	return []importmodel.File{
		{
			Path: "a.py",
			Lang: "python",
			Records: []importmodel.Record{
				{Module: "os", Span: importmodel.Span{Start: 1, End: 1}},
				{Module: "json", Span: importmodel.Span{Start: 2, End: 2}},
			},
		},
		{
			Path: "b.py",
			Lang: "python",
			Records: []importmodel.Record{
				{Module: "os", Span: importmodel.Span{Start: 1, End: 1}},
			},
			Diagnostics: []importmodel.Diagnostic{
				{
					Kind:    importmodel.DiagMalformedImport,
					Span:    importmodel.Span{Start: 3, End: 3},
					Message: "import statement has no module",
				},
			},
		},
		{
			Path: "main.go",
			Lang: "go",
			Records: []importmodel.Record{
				{Module: "fmt", Span: importmodel.Span{Start: 3, End: 3}},
			},
		},
		{Path: "broken.py", Error: errors.New("read file: permission denied")},
	}
}

func TestBuild_Summary(t *testing.T) {
	t.Parallel()

	result := Build("/src", sampleFiles(), 2*time.Second, 0)

	assert.Equal(t, "/src", result.Root)
	assert.Equal(t, 4, result.Summary.FileCount)
	assert.Equal(t, 4, result.Summary.RecordCount)
	assert.Equal(t, 1, result.Summary.DiagnosticCount)
	assert.Equal(t, 1, result.Summary.ErrorCount)
	assert.Equal(t, map[string]int{"python": 2, "go": 1}, result.Summary.Languages)
}

func TestBuild_TopModulesRanking(t *testing.T) {
	t.Parallel()

	result := Build("/src", sampleFiles(), 0, 2)

	require.Len(t, result.Summary.TopModules, 2)
	assert.Equal(t, ModuleCount{Module: "os", Count: 2}, result.Summary.TopModules[0])
	// Ties break alphabetically.
	assert.Equal(t, ModuleCount{Module: "fmt", Count: 1}, result.Summary.TopModules[1])
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := Build("/src", sampleFiles(), 0, 0)
	require.NoError(t, WriteJSON(&buf, result))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/src", decoded["root"])

	assert.Contains(t, buf.String(), `"source_module": "os"`)
	assert.Contains(t, buf.String(), `"kind": "malformed_import"`)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := Build("/src", sampleFiles(), 0, 0)
	require.NoError(t, WriteYAML(&buf, result))

	var decoded Result

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/src", decoded.Root)
	assert.Equal(t, result.Summary.RecordCount, decoded.Summary.RecordCount)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := Build("/src", sampleFiles(), 1500*time.Millisecond, 0)
	require.NoError(t, WriteTable(&buf, result, TableOptions{NoColor: true}))

	out := buf.String()
	assert.Contains(t, out, "a.py")
	assert.Contains(t, out, "Top modules")
	assert.Contains(t, out, "os")
	assert.Contains(t, out, "4 files, 4 imports, 1 diagnostics in 1.5s")
	assert.Contains(t, out, "1 files could not be read")
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := Build("/src", sampleFiles(), 0, 0)
	require.NoError(t, WriteHTML(&buf, result))

	out := buf.String()
	assert.True(t, strings.Contains(out, "echarts"))
	assert.Contains(t, out, "Top Imported Modules")
	assert.Contains(t, out, `"os"`)
}
