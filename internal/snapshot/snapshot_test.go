package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	g := graphdb.New()
	fileID := g.AddFile(graphdb.FileData{Path: "/proj/a.ts", Language: graphdb.LangTS})
	g.AddSymbol(fileID, graphdb.SymbolData{Name: "helper", Kind: graphdb.SymFunction, Exported: true})

	report := &diag.Report{}
	report.Add(diag.ParseFailure, "/proj/b.ts", "unexpected token")

	snap := Snapshot{
		Version:     Version,
		ProjectRoot: "/proj",
		FileHashes:  map[string]string{"/proj/a.ts": HashContent([]byte("const x = 1"))},
		Graph:       g.Export(),
		Diagnostics: report.Diagnostics,
	}

	path := filepath.Join(t.TempDir(), "sub", "test.snap")
	require.NoError(t, Save(path, snap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Version, loaded.Version)
	assert.Equal(t, "/proj", loaded.ProjectRoot)
	assert.Len(t, loaded.Diagnostics, 1)

	restored := graphdb.Restore(loaded.Graph)
	gotFileID, ok := restored.FileByPath("/proj/a.ts")
	require.True(t, ok)
	assert.Equal(t, fileID, gotFileID)
	assert.Len(t, restored.SymbolsOf(gotFileID), 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.snap"))
	assert.Error(t, err)
}

func TestCachePath_StableForSameRoot(t *testing.T) {
	p1, err := CachePath("/some/project")
	require.NoError(t, err)
	p2, err := CachePath("/some/project")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	p3, err := CachePath("/some/other-project")
	require.NoError(t, err)
	assert.NotEqual(t, p1, p3)
}

func TestComputeDiff(t *testing.T) {
	old := map[string]string{
		"a.ts": "hash-a",
		"b.ts": "hash-b",
		"c.ts": "hash-c",
	}
	current := map[string]string{
		"a.ts": "hash-a",    // unchanged
		"b.ts": "hash-b-v2", // changed
		"d.ts": "hash-d",    // added
		// c.ts removed
	}

	diff := ComputeDiff(old, current)
	assert.Equal(t, []string{"d.ts"}, diff.Added)
	assert.Equal(t, []string{"c.ts"}, diff.Removed)
	assert.Equal(t, []string{"b.ts"}, diff.Changed)
	assert.False(t, diff.Empty())
}

func TestComputeDiff_Empty(t *testing.T) {
	same := map[string]string{"a.ts": "hash-a"}
	diff := ComputeDiff(same, same)
	assert.True(t, diff.Empty())
}
