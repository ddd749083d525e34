package commands //nolint:testpackage // testing internal implementation.

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages_ListsBuiltins(t *testing.T) {
	t.Parallel()

	cmd := NewLanguagesCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "python")
	assert.Contains(t, out.String(), "go")
}
