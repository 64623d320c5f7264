package graphdb

import "sync"

// Graph is the live, lock-protected node/edge table. Readers (CLI
// queries, assistant tool calls) take the shared side of mu; the watcher
// takes the exclusive side during incremental update.
type Graph struct {
	mu sync.RWMutex

	nodes  map[NodeID]*Node
	nextID NodeID

	filesByPath     map[string]NodeID
	externalsByName map[string]NodeID

	// symbolsOf indexes a File's Contains children for fast removal and
	// for find()/context() lookups without a full edge scan.
	symbolsOf map[NodeID][]NodeID

	out map[NodeID][]Edge
	in  map[NodeID][]Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:           make(map[NodeID]*Node),
		filesByPath:     make(map[string]NodeID),
		externalsByName: make(map[string]NodeID),
		symbolsOf:       make(map[NodeID][]NodeID),
		out:             make(map[NodeID][]Edge),
		in:              make(map[NodeID][]Edge),
	}
}

// RLock/RUnlock/Lock/Unlock expose the graph's single reader-writer lock
// directly so callers (query engine, builder, watcher txn) can bracket a
// multi-step operation atomically instead of this package re-deriving
// locking policy per method.
func (g *Graph) RLock()   { g.mu.RLock() }
func (g *Graph) RUnlock() { g.mu.RUnlock() }
func (g *Graph) Lock()    { g.mu.Lock() }
func (g *Graph) Unlock()  { g.mu.Unlock() }

func (g *Graph) nextIDLocked() NodeID {
	g.nextID++
	return g.nextID
}

// FileByPath returns the File node for an absolute path, if present.
// Caller must hold at least RLock.
func (g *Graph) FileByPath(path string) (NodeID, bool) {
	id, ok := g.filesByPath[path]
	return id, ok
}

// Node returns a node by ID. Caller must hold at least RLock.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node, unordered. Caller must hold at least RLock.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		result = append(result, n)
	}
	return result
}

// SymbolsOf returns the NodeIDs of every Symbol Contained by file.
// Caller must hold at least RLock.
func (g *Graph) SymbolsOf(file NodeID) []NodeID {
	return append([]NodeID(nil), g.symbolsOf[file]...)
}

// EdgesOut returns outgoing edges from id, optionally filtered to kinds.
// Caller must hold at least RLock.
func (g *Graph) EdgesOut(id NodeID, kinds ...EdgeKind) []Edge {
	return filterEdges(g.out[id], kinds)
}

// EdgesIn returns incoming edges to id, optionally filtered to kinds.
// Caller must hold at least RLock.
func (g *Graph) EdgesIn(id NodeID, kinds ...EdgeKind) []Edge {
	return filterEdges(g.in[id], kinds)
}

func filterEdges(edges []Edge, kinds []EdgeKind) []Edge {
	if len(kinds) == 0 {
		return append([]Edge(nil), edges...)
	}
	allow := make(map[EdgeKind]bool, len(kinds))
	for _, k := range kinds {
		allow[k] = true
	}
	var result []Edge
	for _, e := range edges {
		if allow[e.Kind] {
			result = append(result, e)
		}
	}
	return result
}

// AddFile inserts a File node, or returns the existing one for that path
// (insertion is idempotent on path so re-running index is safe). Caller
// must hold Lock.
func (g *Graph) AddFile(data FileData) NodeID {
	if id, ok := g.filesByPath[data.Path]; ok {
		g.nodes[id].File = &data
		return id
	}
	id := g.nextIDLocked()
	g.nodes[id] = &Node{ID: id, Kind: FileNode, File: &data}
	g.filesByPath[data.Path] = id
	return id
}

// AddSymbol inserts a Symbol node and its Contains edge from file. Caller
// must hold Lock.
func (g *Graph) AddSymbol(file NodeID, data SymbolData) NodeID {
	data.File = file
	id := g.nextIDLocked()
	g.nodes[id] = &Node{ID: id, Kind: SymbolNode, Symbol: &data}
	g.symbolsOf[file] = append(g.symbolsOf[file], id)
	g.addEdgeLocked(Edge{Kind: Contains, From: file, To: id})
	return id
}

// External returns the ExternalPackage node for name, creating it if
// absent. Caller must hold Lock.
func (g *Graph) External(name string) NodeID {
	if id, ok := g.externalsByName[name]; ok {
		return id
	}
	id := g.nextIDLocked()
	g.nodes[id] = &Node{ID: id, Kind: ExternalNode, External: &ExternalData{Name: name}}
	g.externalsByName[name] = id
	return id
}

// AddEdge inserts a typed edge. Duplicate edges are permitted: the graph
// is a multigraph. Caller must hold Lock.
func (g *Graph) AddEdge(e Edge) {
	g.addEdgeLocked(e)
}

func (g *Graph) addEdgeLocked(e Edge) {
	g.out[e.From] = append(g.out[e.From], e)
	g.in[e.To] = append(g.in[e.To], e)
}

// RemoveFile deletes the File node, every Symbol it Contains, and every
// edge incident to any of those nodes. External package nodes are left
// untouched even if this was their last referencing RawImport — callers
// that care about refcounting call PruneExternals separately, since
// whether to keep an orphaned external node around is a query-time
// policy, not something deletion itself needs to decide.
func (g *Graph) RemoveFile(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fileID, ok := g.filesByPath[path]
	if !ok {
		return
	}

	toRemove := map[NodeID]bool{fileID: true}
	for _, sym := range g.symbolsOf[fileID] {
		toRemove[sym] = true
	}

	for id := range toRemove {
		for _, e := range g.out[id] {
			g.removeFromSlice(g.in, e.To, id, e.Kind)
		}
		for _, e := range g.in[id] {
			g.removeFromSlice(g.out, e.From, id, e.Kind)
		}
		delete(g.out, id)
		delete(g.in, id)
		delete(g.nodes, id)
	}

	delete(g.filesByPath, path)
	delete(g.symbolsOf, fileID)
}

// removeFromSlice drops every edge in index[key] whose other endpoint is
// target and whose kind matches, used while tearing down a removed node's
// incident edges from the opposite-direction index.
func (g *Graph) removeFromSlice(index map[NodeID][]Edge, key, target NodeID, kind EdgeKind) {
	edges := index[key]
	filtered := edges[:0]
	for _, e := range edges {
		if e.Kind == kind && (e.From == target || e.To == target) {
			continue
		}
		filtered = append(filtered, e)
	}
	if len(filtered) == 0 {
		delete(index, key)
	} else {
		index[key] = filtered
	}
}

// PruneExternals removes any ExternalPackage node with no incoming
// RawImport edges: these nodes persist until the last file referencing
// them is gone, then disappear on the next prune rather than immediately.
// Caller must hold Lock.
func (g *Graph) PruneExternals() {
	for name, id := range g.externalsByName {
		if len(g.in[id]) == 0 {
			delete(g.externalsByName, name)
			delete(g.nodes, id)
		}
	}
}
