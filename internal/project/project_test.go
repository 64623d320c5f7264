package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndex_ResolvesImportAndFindsSymbol(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ts", `export function greet() { return "hi"; }`)
	writeFile(t, dir, "main.ts", `import { greet } from "./lib";

function run() {
	return greet();
}`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	report, err := p.Index(context.Background())
	require.NoError(t, err)
	assert.False(t, report.ResumedSnapshot)
	assert.Empty(t, report.Diagnostics)

	result := query.FindSymbol(p.Graph(), p.Root, "greet", "")
	require.Len(t, result.Matches, 1)

	refs := query.FindReferences(p.Graph(), result.Matches[0].ID)
	assert.NotEmpty(t, refs)
}

func TestIndex_DetectsCircularImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b";
export const a = 1;`)
	writeFile(t, dir, "b.ts", `import "./a";
export const b = 2;`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	cycles, err := query.DetectCircular(p.Graph())
	require.NoError(t, err)
	assert.NotEmpty(t, cycles)
}

func TestIndex_ImpactChasesBarrelReexport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/user.ts", `export class User { constructor() {} }`)
	writeFile(t, dir, "src/index.ts", `export { User } from './user';`)
	writeFile(t, dir, "src/app.ts", `import { User } from './';

new User();`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	userPath := filepath.Join(dir, "src", "user.ts")
	indexPath := filepath.Join(dir, "src", "index.ts")
	appPath := filepath.Join(dir, "src", "app.ts")

	entries := query.Impact(p.Graph(), userPath)
	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.Contains(t, paths, indexPath)
	assert.Contains(t, paths, appPath)
}

func TestIndex_DetectsCircularImportThroughBarrel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.ts", `export { B } from './b';
export const A = 1;`)
	writeFile(t, dir, "src/b.ts", `import { A } from './a';
export class B {}`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	cycles, err := query.DetectCircular(p.Graph())
	require.NoError(t, err)
	require.NotEmpty(t, cycles)

	aPath := filepath.Join(dir, "src", "a.ts")
	bPath := filepath.Join(dir, "src", "b.ts")
	assert.ElementsMatch(t, []string{aPath, bPath}, cycles[0].Files)
}

func TestReindex_RemovedFileDropsItsSymbols(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFile(t, dir, "lib.ts", `export function greet() { return "hi"; }`)
	writeFile(t, dir, "main.ts", `import { greet } from "./lib";
greet();`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(libPath))

	_, err = p.Reindex(context.Background(), watch.Batch{libPath: watch.Removed})
	require.NoError(t, err)

	result := query.FindSymbol(p.Graph(), p.Root, "greet", "")
	assert.Empty(t, result.Matches)

	_, ok := p.Graph().FileByPath(libPath)
	assert.False(t, ok)
}

func TestReindex_ChangedFileReplacesItsSymbols(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFile(t, dir, "lib.ts", `export function greet() { return "hi"; }`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	writeFile(t, dir, "lib.ts", `export function farewell() { return "bye"; }`)
	_, err = p.Reindex(context.Background(), watch.Batch{libPath: watch.Modified})
	require.NoError(t, err)

	assert.Empty(t, query.FindSymbol(p.Graph(), p.Root, "greet", "").Matches)
	assert.Len(t, query.FindSymbol(p.Graph(), p.Root, "farewell", "").Matches, 1)
}

func TestIndex_ResumesFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ts", `export function greet() { return "hi"; }`)

	p1, err := Open(dir, nil)
	require.NoError(t, err)
	_, err = p1.Index(context.Background())
	require.NoError(t, err)
	require.NoError(t, p1.Close())

	p2, err := Open(dir, nil)
	require.NoError(t, err)
	defer p2.Close()

	report, err := p2.Index(context.Background())
	require.NoError(t, err)
	assert.True(t, report.ResumedSnapshot)
	assert.Zero(t, report.FilesParsed)

	result := query.FindSymbol(p2.Graph(), p2.Root, "greet", "")
	require.Len(t, result.Matches, 1)
}

func TestFindSymbol_NotFoundSuggestsNearMiss(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ts", `export function greeting() { return "hi"; }`)

	p, err := Open(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Index(context.Background())
	require.NoError(t, err)

	result := query.FindSymbol(p.Graph(), p.Root, "greting", "")
	assert.Empty(t, result.Matches)
	assert.Contains(t, result.Suggestions, "greeting")
}

func TestLanguageForPath(t *testing.T) {
	assert.Equal(t, graphdb.LangTS, languageForPath("a.ts"))
	assert.Equal(t, graphdb.LangTSX, languageForPath("a.tsx"))
	assert.Equal(t, graphdb.LangJSX, languageForPath("a.jsx"))
	assert.Equal(t, graphdb.LangJS, languageForPath("a.js"))
}
