package find

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := "export function greet(name: string) { return `hi ${name}`; }\n" +
		"export class Greeter {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte(src), 0o644))
	return dir
}

func TestFindCmd_CompactOutput(t *testing.T) {
	dir := writeFixture(t)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"greet", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "greet")
}

func TestFindCmd_KindFilterExcludesOtherKinds(t *testing.T) {
	dir := writeFixture(t)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{".*", dir, "--kind", "class"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Greeter")
	require.NotContains(t, out.String(), "greet(")
}

func TestFindCmd_UnknownKindErrors(t *testing.T) {
	dir := writeFixture(t)

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"greet", dir, "--kind", "bogus"})

	require.Error(t, cmd.Execute())
}

func TestFindCmd_UnknownFormatErrors(t *testing.T) {
	dir := writeFixture(t)

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"greet", dir, "--format", "xml"})

	require.Error(t, cmd.Execute())
}
