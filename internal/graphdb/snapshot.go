package graphdb

// Snapshot is the plain-struct mirror of a Graph's private tables, used
// only for gob encoding by internal/snapshot. It preserves NodeID
// identity exactly rather than reassigning IDs on reload, since edges and
// SymbolData.File/ContainerID reference IDs directly.
type Snapshot struct {
	NextID          NodeID
	Nodes           []*Node
	FilesByPath     map[string]NodeID
	ExternalsByName map[string]NodeID
	SymbolsOf       map[NodeID][]NodeID
	Out             map[NodeID][]Edge
	In              map[NodeID][]Edge
}

// Export snapshots the graph's current state. Caller must not hold any
// lock; Export takes RLock itself.
func (g *Graph) Export() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Snapshot{
		NextID:          g.nextID,
		Nodes:           make([]*Node, 0, len(g.nodes)),
		FilesByPath:     make(map[string]NodeID, len(g.filesByPath)),
		ExternalsByName: make(map[string]NodeID, len(g.externalsByName)),
		SymbolsOf:       make(map[NodeID][]NodeID, len(g.symbolsOf)),
		Out:             make(map[NodeID][]Edge, len(g.out)),
		In:              make(map[NodeID][]Edge, len(g.in)),
	}
	for _, n := range g.nodes {
		s.Nodes = append(s.Nodes, n)
	}
	for k, v := range g.filesByPath {
		s.FilesByPath[k] = v
	}
	for k, v := range g.externalsByName {
		s.ExternalsByName[k] = v
	}
	for k, v := range g.symbolsOf {
		s.SymbolsOf[k] = append([]NodeID(nil), v...)
	}
	for k, v := range g.out {
		s.Out[k] = append([]Edge(nil), v...)
	}
	for k, v := range g.in {
		s.In[k] = append([]Edge(nil), v...)
	}
	return s
}

// Restore rebuilds a live Graph from a Snapshot, identity-preserving.
func Restore(s Snapshot) *Graph {
	g := New()
	g.nextID = s.NextID
	for _, n := range s.Nodes {
		g.nodes[n.ID] = n
	}
	for k, v := range s.FilesByPath {
		g.filesByPath[k] = v
	}
	for k, v := range s.ExternalsByName {
		g.externalsByName[k] = v
	}
	for k, v := range s.SymbolsOf {
		g.symbolsOf[k] = append([]NodeID(nil), v...)
	}
	for k, v := range s.Out {
		g.out[k] = append([]Edge(nil), v...)
	}
	for k, v := range s.In {
		g.in[k] = append([]Edge(nil), v...)
	}
	return g
}
