package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []int{1, 2, 5}, SortedKeys(map[int]bool{5: true, 1: true, 2: false}))
}

func TestSumMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(6, Sum([]int{1, 2, 3}))
	assert.Equal(1.5, Sum([]float64{1, 0.5}))
	assert.Equal(2, Min(2, 3))
	assert.Equal(3, Max(2, 3))
}

func TestCompareGrams(t *testing.T) {
	assert := assert.New(t)
	assert.Less(CompareGrams([]string{"A4", "C5"}, []string{"A4", "D5"}), 0)
	assert.Greater(CompareGrams([]string{"B4"}, []string{"A4", "D5"}), 0)
	assert.Equal(0, CompareGrams([]string{"A4"}, []string{"A4"}))
	assert.Less(CompareGrams([]string{"A4"}, []string{"A4", "B4"}), 0)
}

func TestGatherAllScorePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.musicxml", "b.XML", "c.mid", "sub/d.xml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, []byte("<x/>"), 0644))
	}

	paths, err := GatherAllScorePaths(dir, 0)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	paths, err = GatherAllScorePaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestRecreateOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	t.Setenv("TRANHDEX_CACHE_DIR", dir)
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.json"), []byte("{}"), 0644))

	require.NoError(t, RecreateOutputDir())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
