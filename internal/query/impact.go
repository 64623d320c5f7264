package query

import (
	"sort"

	"github.com/codegraphhq/codegraph/internal/graphdb"
)

// ImpactEntry is one file in a change's blast radius.
type ImpactEntry struct {
	Path  string
	Depth int // 1 = imports the target directly, 2 = imports something that does, etc.
}

// Impact returns every file that transitively depends on fileAbsPath via
// ResolvedImport — the binding-resolved import graph, not the raw one —
// each with the shortest dependency-chain depth at which it was reached.
// A file reachable via more than one path is reported once, at its
// minimum depth — standard BFS dedup, which also makes this safe against
// the import graph's own cycles.
func Impact(g *graphdb.Graph, fileAbsPath string) []ImpactEntry {
	g.RLock()
	defer g.RUnlock()

	startID, ok := g.FileByPath(fileAbsPath)
	if !ok {
		return nil
	}

	depth := map[graphdb.NodeID]int{startID: 0}
	queue := []graphdb.NodeID{startID}

	relax := func(from, cur graphdb.NodeID) {
		if _, seen := depth[from]; seen {
			return
		}
		depth[from] = depth[cur] + 1
		queue = append(queue, from)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// A ResolvedImport can target the file node directly (a namespace
		// import binds the whole module, not one symbol) as well as a
		// symbol the file declares.
		for _, e := range g.EdgesIn(cur, graphdb.ResolvedImport) {
			relax(e.From, cur)
		}
		for _, symID := range g.SymbolsOf(cur) {
			for _, e := range g.EdgesIn(symID, graphdb.ResolvedImport) {
				relax(e.From, cur)
			}
		}
	}

	var out []ImpactEntry
	for id, d := range depth {
		if id == startID {
			continue
		}
		node, ok := g.Node(id)
		if !ok || node.File == nil {
			continue
		}
		out = append(out, ImpactEntry{Path: node.File.Path, Depth: d})
	}
	return out
}

// ImpactByPattern resolves pattern to one or more symbols (as FindSymbol
// would) and merges the blast radius of every file that defines a match,
// keeping each affected file at its minimum depth across all seeds. If
// nothing matches, it returns FindSymbol's fuzzy-match suggestions.
func ImpactByPattern(g *graphdb.Graph, root, pattern, fileGlob string) ([]ImpactEntry, []string) {
	g.RLock()
	found := findSymbolLocked(g, root, pattern, fileGlob)
	g.RUnlock()

	if len(found.Matches) == 0 {
		return nil, found.Suggestions
	}

	best := make(map[string]int)
	seedFiles := make(map[string]bool)
	for _, m := range found.Matches {
		if seedFiles[m.File] {
			continue
		}
		seedFiles[m.File] = true
		for _, e := range Impact(g, m.File) {
			if d, ok := best[e.Path]; !ok || e.Depth < d {
				best[e.Path] = e.Depth
			}
		}
	}

	entries := make([]ImpactEntry, 0, len(best))
	for path, depth := range best {
		entries = append(entries, ImpactEntry{Path: path, Depth: depth})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
