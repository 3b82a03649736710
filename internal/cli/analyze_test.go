package cli

// Test Plan for the analyze command helpers:
// - resolvePaths keeps explicit files and discovers inside directories
// - resolvePaths fails on a nonexistent path
// - analyzeFile produces a valid result document
// - analyzeFile serves repeat content from the cache byte-identically
// - writeJSON writes compact and indented output to a file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
	"github.com/asears/grand-ai-hotel/internal/cache"
	"github.com/asears/grand-ai-hotel/internal/config"
)

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inside := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(inside, []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n"), 0o644))

	outside := filepath.Join(t.TempDir(), "direct.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	files, err := resolvePaths([]string{dir, outside}, config.Default())
	require.NoError(t, err)
	// Explicit file arguments skip the include filter.
	assert.ElementsMatch(t, []string{inside, outside}, files)

	_, err = resolvePaths([]string{filepath.Join(dir, "missing")}, config.Default())
	assert.Error(t, err)
}

func TestAnalyzeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    return 1\n"), 0o644))

	data, err := analyzeFile(analyzer.New(), nil, path)
	require.NoError(t, err)

	var result analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Structure)
	assert.Len(t, result.Structure.Functions, 1)
}

func TestAnalyzeFileCached(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.py")
	source := []byte("import pickle\npickle.loads(x)\n")
	require.NoError(t, os.WriteFile(path, source, 0o644))

	store, err := cache.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer store.Close()

	engine := analyzer.New()
	first, err := analyzeFile(engine, store, path)
	require.NoError(t, err)

	count, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	second, err := analyzeFile(engine, store, path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"success": true}

	compact := filepath.Join(t.TempDir(), "out", "compact.json")
	require.NoError(t, writeJSON(payload, false, compact))
	data, err := os.ReadFile(compact)
	require.NoError(t, err)
	assert.Equal(t, "{\"success\":true}\n", string(data))

	pretty := filepath.Join(t.TempDir(), "pretty.json")
	require.NoError(t, writeJSON(payload, true, pretty))
	data, err = os.ReadFile(pretty)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n"))
	assert.Contains(t, string(data), "  \"success\": true")
}
