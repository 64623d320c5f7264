package query

import "github.com/codegraphhq/codegraph/internal/graphdb"

// FindReferences returns every Calls/Extends/Implements/TypeRef/
// ResolvedImport edge pointing at symbolID, each annotated with the
// referencing symbol or file.
func FindReferences(g *graphdb.Graph, symbolID graphdb.NodeID) []Reference {
	g.RLock()
	defer g.RUnlock()
	return findReferencesLocked(g, symbolID)
}

// findReferencesLocked is FindReferences' body, callable by other query
// operations that already hold the graph's read lock.
func findReferencesLocked(g *graphdb.Graph, symbolID graphdb.NodeID) []Reference {
	kinds := []graphdb.EdgeKind{
		graphdb.Calls, graphdb.Extends, graphdb.Implements,
		graphdb.TypeRef, graphdb.ResolvedImport,
	}

	var refs []Reference
	for _, e := range g.EdgesIn(symbolID, kinds...) {
		target, ok := g.Node(symbolID)
		via := ""
		if ok && target.Symbol != nil {
			via = target.Symbol.Name
		}
		refs = append(refs, Reference{
			Kind: e.Kind,
			From: refFor(g, e.From),
			Via:  via,
		})
	}
	return refs
}
