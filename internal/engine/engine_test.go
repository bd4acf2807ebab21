package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelint/corelint/internal/policy"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func TestScanFindsPlantedViolations(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/Bad.cpp":   "try { throw 1; } catch (...) {}\n",
		"Source/Core/Clean.cpp": "int add(int a, int b) { return a + b; }\n",
		"Source/Core/notes.txt": "throw throw throw\n",
	})
	res, err := Scan(Config{Root: root, NoCache: true}, policy.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesScanned, "non-code extensions are not scanned")
	require.NotEmpty(t, res.Violations)
	for _, v := range res.Violations {
		assert.Equal(t, "Source/Core/Bad.cpp", v.Path)
		assert.Equal(t, 1, v.Line)
	}
	// try, throw, catch: one violation each.
	assert.Len(t, res.Violations, 3)
}

func TestScanSortOrderIsDeterministic(t *testing.T) {
	files := map[string]string{
		"Source/Core/B.cpp":     "delete p;\nthrow x;\n",
		"Source/Core/A.cpp":     "int* p = new int;\n",
		"Source/Core/Sub/C.hpp": "#include <regex>\n",
	}
	root := writeTree(t, files)

	first, err := Scan(Config{Root: root, Threads: 4, NoCache: true}, policy.Default())
	require.NoError(t, err)
	second, err := Scan(Config{Root: root, Threads: 1, NoCache: true}, policy.Default())
	require.NoError(t, err)

	assert.Equal(t, first.Violations, second.Violations, "thread count must not affect the report")
	for i := 1; i < len(first.Violations); i++ {
		prev, cur := first.Violations[i-1], first.Violations[i]
		less := prev.Path < cur.Path ||
			(prev.Path == cur.Path && prev.Line < cur.Line) ||
			(prev.Path == cur.Path && prev.Line == cur.Line && prev.Message <= cur.Message)
		assert.True(t, less, "violations out of order at %d: %+v then %+v", i, prev, cur)
	}
}

func TestScanModulesSubtreeOnlyWhenEnabled(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/A.cpp":    "int x;\n",
		"Source/Modules/M.cpp": "throw 1;\n",
	})
	pol := policy.Default()

	res, err := Scan(Config{Root: root, NoCache: true}, pol)
	require.NoError(t, err)
	assert.Empty(t, res.Violations, "modules subtree excluded by default")

	res, err = Scan(Config{Root: root, IncludeModules: true, NoCache: true}, pol)
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "Source/Modules/M.cpp", res.Violations[0].Path)
}

func TestScanCoreRulesScopedToCoreSubtree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/A.cpp":    "free(p);\n",
		"Source/Modules/M.cpp": "free(p);\n",
	})
	res, err := Scan(Config{Root: root, IncludeModules: true, NoCache: true}, policy.Default())
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "Source/Core/A.cpp", res.Violations[0].Path)
}

func TestScanAllowlistProducesHit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/Memory/GlobalNewDelete.cpp": "void* p = malloc(n);\n",
	})
	res, err := Scan(Config{Root: root, NoCache: true}, policy.Default())
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "core:malloc", res.Hits[0].Reason)
}

func TestScanCacheSkipsUnchangedCleanFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/Clean.cpp": "int add(int a, int b) { return a + b; }\n",
		"Source/Core/Bad.cpp":   "throw 1;\n",
	})
	pol := policy.Default()

	first, err := Scan(Config{Root: root}, pol)
	require.NoError(t, err)
	assert.Equal(t, 2, first.FilesScanned)

	second, err := Scan(Config{Root: root}, pol)
	require.NoError(t, err)
	assert.Equal(t, 1, second.FilesCached, "clean file is skipped")
	assert.Equal(t, 1, second.FilesScanned, "violating file is always rescanned")
	assert.Equal(t, first.Violations, second.Violations, "cache must not change the report")
}

func TestScanGlobFilters(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/A.cpp":     "throw 1;\n",
		"Source/Core/Gen/G.cpp": "throw 1;\n",
	})
	res, err := Scan(Config{Root: root, ExcludeGlobs: "Source/Core/Gen/**", NoCache: true}, policy.Default())
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "Source/Core/A.cpp", res.Violations[0].Path)
}

func TestScanMaxBytes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Source/Core/Big.cpp": "throw 1; // padded with a long tail to exceed the byte cap\n",
	})
	res, err := Scan(Config{Root: root, MaxBytes: 8, NoCache: true}, policy.Default())
	require.NoError(t, err)
	assert.Zero(t, res.FilesScanned)
	assert.Empty(t, res.Violations)
}
