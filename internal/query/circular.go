package query

import (
	"github.com/codegraphhq/codegraph/internal/graphdb"
	graphlib "github.com/dominikbraun/graph"
)

// Cycle is one strongly-connected component of size > 1 in the file
// import graph — a genuine import cycle, not just a self-reference.
type Cycle struct {
	Files []string
}

// DetectCircular builds a throwaway projection of the file subgraph as a
// dominikbraun/graph directed graph and runs its strongly-connected-
// components algorithm. An edge is added for each file pair (A, B) where
// A has a ResolvedImport reaching a symbol B declares (or, for a
// namespace import, B itself); if no such ResolvedImport exists for that
// pair, a direct RawImport(A, B) is used instead, so a side-effect-only
// import (no named binding ever resolved) still participates in cycle
// detection. This projection is rebuilt on every call rather than kept
// live: it needs none of the live graph's stable-identity or multi-edge
// guarantees, only a one-shot topology snapshot, which is exactly what a
// throwaway graphlib.Graph is for.
func DetectCircular(g *graphdb.Graph) ([]Cycle, error) {
	g.RLock()
	defer g.RUnlock()

	proj := graphlib.New(graphlib.StringHash, graphlib.Directed())

	pathByID := make(map[graphdb.NodeID]string)
	for _, node := range g.Nodes() {
		if node.Kind != graphdb.FileNode {
			continue
		}
		pathByID[node.ID] = node.File.Path
		if err := proj.AddVertex(node.File.Path); err != nil && err != graphlib.ErrVertexAlreadyExists {
			return nil, err
		}
	}

	added := make(map[[2]graphdb.NodeID]bool)
	addFileEdge := func(from, to graphdb.NodeID) error {
		if from == to {
			return nil
		}
		key := [2]graphdb.NodeID{from, to}
		if added[key] {
			return nil
		}
		fromPath, ok := pathByID[from]
		if !ok {
			return nil
		}
		toPath, ok := pathByID[to]
		if !ok {
			return nil // the other endpoint is an ExternalPackage node, not a File
		}
		if err := proj.AddEdge(fromPath, toPath); err != nil && err != graphlib.ErrEdgeAlreadyExists {
			return err
		}
		added[key] = true
		return nil
	}

	for id := range pathByID {
		for _, e := range g.EdgesOut(id, graphdb.ResolvedImport) {
			to := e.To
			if node, ok := g.Node(to); ok && node.Kind == graphdb.SymbolNode {
				to = node.Symbol.File
			}
			if err := addFileEdge(id, to); err != nil {
				return nil, err
			}
		}
	}

	for id := range pathByID {
		for _, e := range g.EdgesOut(id, graphdb.RawImport) {
			if err := addFileEdge(id, e.To); err != nil {
				return nil, err
			}
		}
	}

	components, err := graphlib.StronglyConnectedComponents(proj)
	if err != nil {
		return nil, err
	}

	var cycles []Cycle
	for _, comp := range components {
		if len(comp) > 1 {
			cycles = append(cycles, Cycle{Files: comp})
		}
	}
	return cycles, nil
}
