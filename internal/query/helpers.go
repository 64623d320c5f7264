package query

import "github.com/codegraphhq/codegraph/internal/graphdb"

// symbolRef builds a SymbolRef for a Symbol node. Caller must hold
// graph.RLock.
func symbolRef(g *graphdb.Graph, id graphdb.NodeID) (SymbolRef, bool) {
	node, ok := g.Node(id)
	if !ok || node.Symbol == nil {
		return SymbolRef{}, false
	}
	fileNode, ok := g.Node(node.Symbol.File)
	path := ""
	if ok && fileNode.File != nil {
		path = fileNode.File.Path
	}
	return SymbolRef{
		ID:        id,
		Name:      node.Symbol.Name,
		Kind:      node.Symbol.Kind,
		File:      path,
		StartLine: node.Symbol.StartLine,
		EndLine:   node.Symbol.EndLine,
		Exported:  node.Symbol.Exported,
	}, true
}

// enclosingFileRef describes a reference site that's a File node (a
// file-level relation with no enclosing symbol scope).
func enclosingFileRef(g *graphdb.Graph, id graphdb.NodeID) SymbolRef {
	node, ok := g.Node(id)
	if !ok || node.File == nil {
		return SymbolRef{}
	}
	return SymbolRef{File: node.File.Path}
}

// refFor builds the "from" side of a Reference regardless of whether the
// edge originates at a Symbol or a File node.
func refFor(g *graphdb.Graph, id graphdb.NodeID) SymbolRef {
	if ref, ok := symbolRef(g, id); ok {
		return ref
	}
	return enclosingFileRef(g, id)
}
