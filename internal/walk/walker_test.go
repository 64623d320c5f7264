package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalk_DiscoversSourceExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "app.ts"), "")
	writeFile(t, filepath.Join(root, "src", "app.tsx"), "")
	writeFile(t, filepath.Join(root, "src", "util.js"), "")
	writeFile(t, filepath.Join(root, "src", "README.md"), "")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "")

	files, err := Walk(root, Options{})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	assert.ElementsMatch(t, []string{"src/app.ts", "src/app.tsx", "src/util.js"}, rels)
}

func TestWalk_RespectsGitignoreWithoutGitRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "dist/\n*.gen.ts\n")
	writeFile(t, filepath.Join(root, "dist", "bundle.js"), "")
	writeFile(t, filepath.Join(root, "src", "app.ts"), "")
	writeFile(t, filepath.Join(root, "src", "schema.gen.ts"), "")

	files, err := Walk(root, Options{})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	assert.ElementsMatch(t, []string{"src/app.ts"}, rels)
}

func TestWalk_ExcludePathsAndGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "legacy", "old.ts"), "")
	writeFile(t, filepath.Join(root, "src", "app.ts"), "")
	writeFile(t, filepath.Join(root, "src", "app.stories.tsx"), "")

	files, err := Walk(root, Options{
		ExcludePaths: []string{"legacy"},
		ExcludeGlobs: []string{"*.stories.tsx"},
	})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	assert.ElementsMatch(t, []string{"src/app.ts"}, rels)
}

func TestWalk_SortedDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.ts"), "")
	writeFile(t, filepath.Join(root, "a.ts"), "")
	writeFile(t, filepath.Join(root, "c.ts"), "")

	files, err := Walk(root, Options{})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.ts", files[0].RelPath)
	assert.Equal(t, "b.ts", files[1].RelPath)
	assert.Equal(t, "c.ts", files[2].RelPath)
}
