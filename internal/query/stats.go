package query

import "github.com/codegraphhq/codegraph/internal/graphdb"

// LanguageStats counts files and symbols for one source dialect.
type LanguageStats struct {
	Files   int
	Symbols int
}

// Stats is the payload of get_stats: totals plus a per-language and
// per-symbol-kind breakdown.
type Stats struct {
	TotalFiles            int
	TotalSymbols          int
	TotalExternalPackages int
	ByLanguage            map[string]LanguageStats
	BySymbolKind          map[string]int
}

// GetStats computes a snapshot summary of the whole graph.
func GetStats(g *graphdb.Graph) Stats {
	g.RLock()
	defer g.RUnlock()

	stats := Stats{
		ByLanguage:   make(map[string]LanguageStats),
		BySymbolKind: make(map[string]int),
	}

	for _, node := range g.Nodes() {
		switch node.Kind {
		case graphdb.FileNode:
			stats.TotalFiles++
			lang := node.File.Language.String()
			entry := stats.ByLanguage[lang]
			entry.Files++
			stats.ByLanguage[lang] = entry
		case graphdb.SymbolNode:
			stats.TotalSymbols++
			stats.BySymbolKind[node.Symbol.Kind.String()]++
			if fileNode, ok := g.Node(node.Symbol.File); ok && fileNode.File != nil {
				lang := fileNode.File.Language.String()
				entry := stats.ByLanguage[lang]
				entry.Symbols++
				stats.ByLanguage[lang] = entry
			}
		case graphdb.ExternalNode:
			stats.TotalExternalPackages++
		}
	}

	return stats
}
