package config //nolint:testpackage // testing internal implementation.

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultScanWorkers, cfg.Scan.Workers)
	assert.Equal(t, DefaultScanCacheSize, cfg.Scan.CacheSize)
	assert.Equal(t, int64(DefaultScanMaxFileSize), cfg.Scan.MaxFileSize)
	assert.True(t, cfg.Scan.SkipVendor)
	assert.Equal(t, DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, DefaultOutputTopModules, cfg.Output.TopModules)
	assert.Empty(t, cfg.GrammarFile)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "importscout.yaml")
	content := `scan:
  workers: 8
  exclude:
    - "*_test.py"
output:
  format: json
  top_modules: 5
grammar_file: grammars.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, []string{"*_test.py"}, cfg.Scan.Exclude)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.TopModules)
	assert.Equal(t, "grammars.yaml", cfg.GrammarFile)
	// Unset keys keep defaults.
	assert.Equal(t, DefaultScanCacheSize, cfg.Scan.CacheSize)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("IMPORTSCOUT_OUTPUT_FORMAT", "yaml")
	t.Setenv("IMPORTSCOUT_SCAN_WORKERS", "3")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 3, cfg.Scan.Workers)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr error
	}{
		{"negative workers", "scan:\n  workers: -1\n", ErrInvalidWorkers},
		{"negative cache", "scan:\n  cache_size: -1\n", ErrInvalidCacheSize},
		{"negative max file size", "scan:\n  max_file_size: -1\n", ErrInvalidMaxFileSize},
		{"unknown format", "output:\n  format: xml\n", ErrInvalidFormat},
		{"negative top modules", "output:\n  top_modules: -1\n", ErrInvalidTopModules},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "importscout.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := LoadConfig(path)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_AcceptsAllFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"table", "json", "yaml", "html"} {
		cfg := Config{Output: OutputConfig{Format: format}}
		require.NoError(t, cfg.Validate())
	}
}
