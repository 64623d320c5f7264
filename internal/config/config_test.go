package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AbsentFileIsEmptyExcludeList(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Exclude.Paths)
	assert.Empty(t, cfg.Exclude.Globs)
}

func TestLoad_JSONConfig(t *testing.T) {
	root := t.TempDir()
	content := `{"exclude": {"paths": ["legacy", "vendor"], "globs": ["*.stories.tsx"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "codegraph.json"), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "vendor"}, cfg.Exclude.Paths)
	assert.Equal(t, []string{"*.stories.tsx"}, cfg.Exclude.Globs)
}

func TestLoad_DotfileVariant(t *testing.T) {
	root := t.TempDir()
	content := "exclude:\n  paths:\n    - legacy\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".codegraph.yaml"), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy"}, cfg.Exclude.Paths)
}
