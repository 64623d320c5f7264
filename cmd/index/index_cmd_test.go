package index

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexCmd_ReportsFileCount(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export const x = 1;\n"), 0o644))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Indexed 1 file")
}

func TestIndexCmd_EmptyProjectReportsZeroFiles(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{t.TempDir()})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Indexed 0 file")
}

func TestIndexCmd_RequiresExactlyOneArg(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.Error(t, cmd.Execute())
}
