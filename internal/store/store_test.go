package store //nolint:testpackage // testing internal implementation.

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/importscout/importscout/internal/report"
	"github.com/importscout/importscout/pkg/importmodel"
)

func sampleResult() report.Result {
	files := []importmodel.File{
		{
			Path: "a.py",
			Lang: "python",
			Records: []importmodel.Record{
				{Module: "os", Span: importmodel.Span{Start: 1, End: 1}},
				{
					Module:        "utils",
					RelativeDepth: 1,
					Symbols:       []importmodel.Symbol{{Name: "helper"}},
					Span:          importmodel.Span{Start: 2, End: 2},
				},
			},
		},
	}

	return report.Build("/src", files, time.Second, 0)
}

func TestSaveLoad_PlainJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.json")
	want := sampleResult()

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, want.Root, got.Root)
	assert.Equal(t, want.Summary.RecordCount, got.Summary.RecordCount)
	require.Len(t, got.Files, 1)
	assert.Equal(t, want.Files[0].Records, got.Files[0].Records)
}

func TestSaveLoad_Compressed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.json.lz4")
	want := sampleResult()

	require.NoError(t, Save(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// LZ4 frame magic, not JSON.
	require.GreaterOrEqual(t, len(raw), 4)
	assert.Equal(t, []byte{0x04, 0x22, 0x4d, 0x18}, raw[:4])

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Files, got.Files)
}

func TestSave_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deep", "scan.json")

	require.NoError(t, Save(path, sampleResult()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_CorruptPayload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
