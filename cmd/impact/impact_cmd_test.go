package impact

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImpactCmd_ReportsImportingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export function helper() { return 1; }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("import { helper } from './a';\nhelper();\n"), 0o644))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"helper", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "b.ts")
}

func TestImpactCmd_UnknownSymbolSuggests(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export function helper() {}\n"), 0o644))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"helpr", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "No symbol matched")
}
