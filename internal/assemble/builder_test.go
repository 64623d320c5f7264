package assemble

import (
	"testing"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/extract"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_WiresImportsAndCalls(t *testing.T) {
	results := map[string]extract.FileResult{
		"/proj/util.ts": {
			Language: graphdb.LangTS,
			Symbols: []extract.Symbol{
				{Name: "helper", Kind: graphdb.SymFunction, StartLine: 1, EndLine: 3, Exported: true},
			},
			Exports: []extract.Export{
				{Form: extract.ExportNamed, LocalName: "helper", ExportedAs: "helper"},
			},
		},
		"/proj/main.ts": {
			Language: graphdb.LangTS,
			Symbols: []extract.Symbol{
				{Name: "run", Kind: graphdb.SymFunction, StartLine: 3, EndLine: 6, Exported: false},
			},
			Imports: []extract.Import{
				{Specifier: "./util", Kind: extract.ImportESM, Names: []extract.ImportedName{{Name: "helper"}}},
			},
			Relations: []extract.Relation{
				{Kind: graphdb.Calls, CallerScope: "run", TargetName: "helper", Line: 4},
			},
		},
	}

	known := func(p string) bool { return p == "/proj/util.ts" || p == "/proj/main.ts" }
	resolver := resolve.NewResolver(known, nil, nil)

	g := graphdb.New()
	report := &diag.Report{}
	b := New(g, resolver, report)
	g.Lock()
	b.Build(results)
	g.Unlock()

	g.RLock()
	defer g.RUnlock()

	mainID, ok := g.FileByPath("/proj/main.ts")
	require.True(t, ok)
	utilID, ok := g.FileByPath("/proj/util.ts")
	require.True(t, ok)

	rawImports := g.EdgesOut(mainID, graphdb.RawImport)
	require.Len(t, rawImports, 1)
	assert.Equal(t, utilID, rawImports[0].To)

	resolvedImports := g.EdgesOut(mainID, graphdb.ResolvedImport)
	require.Len(t, resolvedImports, 1)

	helperID, ok := findSymbol(g, utilID, "helper")
	require.True(t, ok)
	assert.Equal(t, helperID, resolvedImports[0].To)

	runID, ok := findSymbol(g, mainID, "run")
	require.True(t, ok)
	calls := g.EdgesOut(runID, graphdb.Calls)
	require.Len(t, calls, 1)
	assert.Equal(t, helperID, calls[0].To)

	exportsEdges := g.EdgesOut(utilID, graphdb.Exports)
	require.Len(t, exportsEdges, 1)
	assert.Equal(t, helperID, exportsEdges[0].To)
}

func TestBuild_UnresolvedImportRecordsDiagnostic(t *testing.T) {
	results := map[string]extract.FileResult{
		"/proj/main.ts": {
			Language: graphdb.LangTS,
			Imports:  []extract.Import{{Specifier: "./missing", Kind: extract.ImportESM}},
		},
	}
	known := func(p string) bool { return p == "/proj/main.ts" }
	resolver := resolve.NewResolver(known, nil, nil)

	g := graphdb.New()
	report := &diag.Report{}
	b := New(g, resolver, report)
	g.Lock()
	b.Build(results)
	g.Unlock()

	assert.Equal(t, 1, report.Count(diag.ResolutionFailure))
}

func TestBuild_ExternalPackageImport(t *testing.T) {
	results := map[string]extract.FileResult{
		"/proj/main.ts": {
			Language: graphdb.LangTS,
			Imports:  []extract.Import{{Specifier: "lodash", Kind: extract.ImportESM, DefaultName: "_"}},
		},
	}
	known := func(p string) bool { return p == "/proj/main.ts" }
	resolver := resolve.NewResolver(known, nil, nil)

	g := graphdb.New()
	report := &diag.Report{}
	b := New(g, resolver, report)
	g.Lock()
	b.Build(results)
	g.Unlock()

	g.RLock()
	defer g.RUnlock()
	mainID, _ := g.FileByPath("/proj/main.ts")
	raw := g.EdgesOut(mainID, graphdb.RawImport)
	require.Len(t, raw, 1)
	node, ok := g.Node(raw[0].To)
	require.True(t, ok)
	assert.Equal(t, graphdb.ExternalNode, node.Kind)
	assert.Equal(t, "lodash", node.External.Name)
}

func findSymbol(g *graphdb.Graph, file graphdb.NodeID, name string) (graphdb.NodeID, bool) {
	for _, id := range g.SymbolsOf(file) {
		node, ok := g.Node(id)
		if ok && node.Symbol != nil && node.Symbol.Name == name {
			return id, true
		}
	}
	return 0, false
}
