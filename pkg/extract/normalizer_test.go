package extract //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		module    string
		wantName  string
		wantDepth int
	}{
		{name: "absolute", module: "os.path", wantName: "os.path", wantDepth: 0},
		{name: "depth one with name", module: ".config", wantName: "config", wantDepth: 1},
		{name: "depth two with name", module: "..models", wantName: "models", wantDepth: 2},
		{name: "depth one sentinel", module: ".", wantName: ".", wantDepth: 1},
		{name: "depth two sentinel", module: "..", wantName: "..", wantDepth: 2},
		{name: "depth three nested", module: "...pkg.mod", wantName: "pkg.mod", wantDepth: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, depth := splitRelative(tt.module, pythonGrammar)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDepth, depth)
		})
	}
}

func TestSplitRelative_NoMarkerGrammar(t *testing.T) {
	t.Parallel()

	name, depth := splitRelative("github.com/lib/pq", goGrammar)
	assert.Equal(t, "github.com/lib/pq", name)
	assert.Equal(t, 0, depth)
}

func TestNormalize_ModuleNeverEmpty(t *testing.T) {
	t.Parallel()

	sources := []string{
		"import os",
		"from . import utils",
		"from .. import helpers",
		"from ...deep.pkg import thing",
		"from m import *",
		"import a as b, c",
	}

	for _, source := range sources {
		records, _ := mustExtract(t, source, "python")
		for _, rec := range records {
			assert.NotEmpty(t, rec.Module, "source %q", source)
		}
	}
}

func TestNormalize_RelativeDepthImpliesRelativeSyntax(t *testing.T) {
	t.Parallel()

	records, _ := mustExtract(t, "import os\nfrom sys import path\n", "python")
	for _, rec := range records {
		assert.Equal(t, 0, rec.RelativeDepth)
	}
}
