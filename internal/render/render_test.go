package render

import (
	"bytes"
	"testing"

	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindResult() query.FindResult {
	return query.FindResult{
		Matches: []query.SymbolRef{
			{File: "/proj/a.ts", Name: "greet", Kind: graphdb.SymFunction, StartLine: 1, Exported: true},
		},
	}
}

func sampleStats() query.Stats {
	return query.Stats{
		TotalFiles:            2,
		TotalSymbols:          3,
		TotalExternalPackages: 1,
		ByLanguage:            map[string]query.LanguageStats{"ts": {Files: 2, Symbols: 3}},
		BySymbolKind:          map[string]int{"function": 2, "class": 1},
	}
}

func TestFind_JSON_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Find(&buf, JSON, "/proj", sampleFindResult()))

	g := goldie.New(t)
	g.Assert(t, "find_json", buf.Bytes())
}

func TestStats_JSON_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, JSON, sampleStats()))

	g := goldie.New(t)
	g.Assert(t, "stats_json", buf.Bytes())
}

func TestFind_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Find(&buf, Compact, "/proj", sampleFindResult()))

	out := buf.String()
	assert.Contains(t, out, "1 definition found")
	assert.Contains(t, out, "a.ts:1 | function | greet")
}

func TestFind_Compact_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	result := query.FindResult{Suggestions: []string{"greet"}}
	require.NoError(t, Find(&buf, Compact, "/proj", result))

	assert.Contains(t, buf.String(), "no matches, did you mean: greet")
}

func TestFind_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Find(&buf, Table, "/proj", sampleFindResult()))

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "greet")
	assert.Contains(t, out, "true")
}

func TestReferences_Compact(t *testing.T) {
	refs := []query.Reference{
		{Kind: graphdb.Calls, From: query.SymbolRef{File: "/proj/b.ts", StartLine: 4}, Via: "greet"},
	}
	var buf bytes.Buffer
	require.NoError(t, References(&buf, Compact, "/proj", refs, nil))

	out := buf.String()
	assert.Contains(t, out, "1 reference found")
	assert.Contains(t, out, "b.ts:4 | calls | greet")
}

func TestReferences_Compact_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, References(&buf, Compact, "/proj", nil, nil))
	assert.Contains(t, buf.String(), "no matches")
}

func TestReferences_Compact_EmptySuggests(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, References(&buf, Compact, "/proj", nil, []string{"greet"}))
	assert.Contains(t, buf.String(), "no matches, did you mean: greet")
}

func TestImpact_Compact_SortsByDepthThenPath(t *testing.T) {
	entries := []query.ImpactEntry{
		{Path: "/proj/z.ts", Depth: 1},
		{Path: "/proj/a.ts", Depth: 1},
		{Path: "/proj/root.ts", Depth: 0},
	}
	var buf bytes.Buffer
	require.NoError(t, Impact(&buf, Compact, "/proj", entries))

	out := buf.String()
	rootIdx := bytes.Index(buf.Bytes(), []byte("root.ts"))
	aIdx := bytes.Index(buf.Bytes(), []byte("a.ts"))
	zIdx := bytes.Index(buf.Bytes(), []byte("z.ts"))
	assert.Contains(t, out, "3 files in blast radius")
	assert.True(t, rootIdx < aIdx && aIdx < zIdx)
}

func TestCircular_Compact(t *testing.T) {
	cycles := []query.Cycle{{Files: []string{"/proj/a.ts", "/proj/b.ts"}}}
	var buf bytes.Buffer
	require.NoError(t, Circular(&buf, Compact, "/proj", cycles))

	out := buf.String()
	assert.Contains(t, out, "1 cycle found")
	assert.Contains(t, out, "a.ts -> b.ts")
}

func TestCircular_Compact_None(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Circular(&buf, Compact, "/proj", nil))
	assert.Contains(t, buf.String(), "no import cycles found")
}

func TestStats_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, Compact, sampleStats()))

	out := buf.String()
	assert.Contains(t, out, "2 files | 3 symbols | 1 external packages")
	assert.Contains(t, out, "ts | 2 files | 3 symbols")
}

func TestStats_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, Table, sampleStats()))

	out := buf.String()
	assert.Contains(t, out, "METRIC")
	assert.Contains(t, out, "external packages")
}

func TestContext_Compact_Sections(t *testing.T) {
	ctx := query.SymbolContext{
		Definitions: []query.SymbolRef{{File: "/proj/a.ts", Name: "greet", Kind: graphdb.SymFunction, StartLine: 1}},
		Callers:     []query.Reference{{Kind: graphdb.Calls, From: query.SymbolRef{File: "/proj/b.ts", StartLine: 4}, Via: "greet"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Context(&buf, Compact, "/proj", ctx, nil))

	out := buf.String()
	assert.Contains(t, out, "--- definitions ---")
	assert.Contains(t, out, "--- references ---")
	assert.Contains(t, out, "--- callers ---")
	assert.Contains(t, out, "--- callees ---")
	assert.Contains(t, out, "--- extends ---")
	assert.Contains(t, out, "--- implements ---")
	assert.Contains(t, out, "--- extended-by ---")
	assert.Contains(t, out, "--- implemented-by ---")
	assert.Contains(t, out, "a.ts:1 | function | greet")
	assert.Contains(t, out, "b.ts:4 | calls | greet")
}

func TestContext_NotFound_Suggests(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Context(&buf, Compact, "/proj", query.SymbolContext{}, []string{"greet"}))
	assert.Contains(t, buf.String(), "did you mean: greet")
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("table")
	assert.True(t, ok)
	assert.Equal(t, Table, f)

	_, ok = ParseFormat("yaml")
	assert.False(t, ok)
}
