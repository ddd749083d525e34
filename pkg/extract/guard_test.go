package extract //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/importscout/importscout/pkg/importmodel"
)

// branchesFor extracts the source and returns the branch tag of every record.
func branchesFor(t *testing.T, source string) []importmodel.Branch {
	t.Helper()

	records, _, err := Extract(source, "python")
	require.NoError(t, err)

	branches := make([]importmodel.Branch, len(records))
	for i, rec := range records {
		branches[i] = rec.Branch
	}

	return branches
}

func TestGuard_PrimaryFallbackPair(t *testing.T) {
	t.Parallel()

	source := "try:\n" +
		"    import ujson\n" +
		"except ImportError:\n" +
		"    import json\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
	}, branchesFor(t, source))
}

func TestGuard_ChainedFallbackArms(t *testing.T) {
	t.Parallel()

	source := "try:\n" +
		"    import cjson\n" +
		"except ImportError:\n" +
		"    import ujson\n" +
		"except Exception:\n" +
		"    import json\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
		importmodel.BranchFallback,
	}, branchesFor(t, source))
}

func TestGuard_ImportsOutsideGuardUntagged(t *testing.T) {
	t.Parallel()

	source := "import os\n" +
		"try:\n" +
		"    import ujson\n" +
		"except ImportError:\n" +
		"    import json\n" +
		"import sys\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchNone,
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
		importmodel.BranchNone,
	}, branchesFor(t, source))
}

func TestGuard_NestedGuards(t *testing.T) {
	t.Parallel()

	source := "try:\n" +
		"    import fast\n" +
		"except ImportError:\n" +
		"    try:\n" +
		"        import medium\n" +
		"    except ImportError:\n" +
		"        import slow\n" +
		"    import after_inner\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchPrimary,
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
		importmodel.BranchFallback,
	}, branchesFor(t, source))
}

func TestGuard_NeutralArmsUntagged(t *testing.T) {
	t.Parallel()

	source := "try:\n" +
		"    import ujson\n" +
		"except ImportError:\n" +
		"    import json\n" +
		"finally:\n" +
		"    import atexit\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
		importmodel.BranchNone,
	}, branchesFor(t, source))
}

func TestGuard_DedentClosesGuard(t *testing.T) {
	t.Parallel()

	source := "try:\n" +
		"    import ujson\n" +
		"except ImportError:\n" +
		"    import json\n" +
		"value = 1\n" +
		"import os\n"

	assert.Equal(t, []importmodel.Branch{
		importmodel.BranchPrimary,
		importmodel.BranchFallback,
		importmodel.BranchNone,
	}, branchesFor(t, source))
}

func TestGuard_LanguageWithoutGuards(t *testing.T) {
	t.Parallel()

	records, _, err := Extract("import \"fmt\"\n", "go")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, importmodel.BranchNone, records[0].Branch)
}
