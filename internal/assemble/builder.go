// Package assemble runs the three-pass graph builder over a batch of
// internal/extract.FileResult values, writing into a
// internal/graphdb.Graph.
package assemble

import (
	"time"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/extract"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/resolve"
)

// fileState is the per-file bookkeeping the three passes share: the
// file's own NodeID and a name -> NodeID map of the symbols it declares,
// used to wire ChildOf/Exports/ResolvedImport edges without re-scanning
// the graph by name on every lookup.
type fileState struct {
	fileID  graphdb.NodeID
	symbols map[string]graphdb.NodeID
	result  extract.FileResult
}

// Builder owns the running pass state across a batch build. A fresh
// Builder is created per full (re)index; the watcher's incremental path
// uses internal/graphdb.Graph.RemoveFile directly instead, then re-runs a
// Builder scoped to just the changed files plus their one-hop import
// neighbours (the files that import them and the files they import).
type Builder struct {
	graph    *graphdb.Graph
	resolver *resolve.Resolver
	report   *diag.Report

	files map[string]*fileState // absolute path -> state
}

// New creates a Builder writing into graph, classifying specifiers with
// resolver, and recording resolution failures into report.
func New(graph *graphdb.Graph, resolver *resolve.Resolver, report *diag.Report) *Builder {
	return &Builder{graph: graph, resolver: resolver, report: report, files: make(map[string]*fileState)}
}

// Build runs all three passes over results. Caller holds graph.Lock() for
// the duration — the builder performs many small graph mutations that
// must not interleave with a concurrent reader's traversal.
func (b *Builder) Build(results map[string]extract.FileResult) {
	b.passInsertNodes(results)
	b.passRawImports(results)
	b.passSymbolWiring(results)
}

// passInsertNodes is pass 1: File and Symbol nodes, Contains (via
// AddSymbol), ChildOf (method/property -> enclosing class/interface), and
// Exports (file -> the symbol it exports under a plain declaration).
func (b *Builder) passInsertNodes(results map[string]extract.FileResult) {
	for path, result := range results {
		fileID := b.graph.AddFile(graphdb.FileData{
			Path:      path,
			Language:  result.Language,
			ModTime:   time.Now(),
			LineCount: result.LineCount,
		})
		state := &fileState{fileID: fileID, symbols: make(map[string]graphdb.NodeID), result: result}
		b.files[path] = state

		for _, sym := range result.Symbols {
			id := b.graph.AddSymbol(fileID, graphdb.SymbolData{
				Name:      sym.Name,
				Kind:      sym.Kind,
				StartLine: sym.StartLine,
				StartCol:  sym.StartCol,
				EndLine:   sym.EndLine,
				Exported:  sym.Exported,
			})
			// First declaration of a name wins ties (e.g. function
			// overload signatures) — later ones still get their own
			// Symbol node but aren't addressable by name for wiring.
			if _, exists := state.symbols[sym.Name]; !exists {
				state.symbols[sym.Name] = id
			}
		}

		for _, sym := range result.Symbols {
			if sym.ContainerName == "" {
				continue
			}
			containerID, ok := state.symbols[sym.ContainerName]
			if !ok {
				continue
			}
			symID, ok := state.symbols[sym.Name]
			if !ok {
				continue
			}
			b.graph.AddEdge(graphdb.Edge{Kind: graphdb.ChildOf, From: symID, To: containerID})
			if node, ok := b.graph.Node(symID); ok {
				node.Symbol.ContainerID = containerID
			}
		}

		for _, exp := range result.Exports {
			if exp.Form != extract.ExportNamed && exp.Form != extract.ExportDefault {
				continue
			}
			symID, ok := state.symbols[exp.LocalName]
			if !ok {
				continue
			}
			b.graph.AddEdge(graphdb.Edge{Kind: graphdb.Exports, From: fileID, To: symID})
		}
	}
}

// passRawImports is pass 2: a RawImport edge per import specifier,
// pointing at the resolved project file, or at a synthetic
// ExternalPackage node for builtin/external/unresolved specifiers. A
// re-export (`export {X} from './y'`, `export * from './y'`) is a
// textual dependency exactly like an import, so each file's re-export
// sources get the same treatment, deduplicated per specifier since a
// multi-name re-export clause (`export {A, B} from './y'`) yields several
// Export records sharing one Source. This pass runs only after every
// file in the batch has a File node (pass 1 complete for the whole
// batch), so relative-import resolution can see every candidate target
// regardless of map iteration order.
func (b *Builder) passRawImports(results map[string]extract.FileResult) {
	for path, result := range results {
		state := b.files[path]
		for _, imp := range result.Imports {
			b.emitRawImport(path, state, imp.Specifier)
		}

		seenSources := make(map[string]bool)
		for _, exp := range result.Exports {
			if exp.Source == "" || seenSources[exp.Source] {
				continue
			}
			seenSources[exp.Source] = true
			b.emitRawImport(path, state, exp.Source)
		}
	}
}

// emitRawImport resolves one import/re-export specifier from path and
// records the RawImport edge it produces. A specifier that can't be
// classified at all also records a resolution-failure diagnostic, and its
// edge points at a synthetic ExternalPackage named by the raw specifier.
func (b *Builder) emitRawImport(path string, state *fileState, specifier string) {
	resolution := b.resolver.Resolve(path, specifier)
	switch resolution.Outcome {
	case resolve.OutcomeFile:
		target, ok := b.files[resolution.AbsPath]
		if !ok {
			// Resolved to a real extension/index candidate, but
			// that file wasn't part of this index run (outside
			// the walked tree, or excluded) — treat as external
			// by path rather than silently dropping the edge.
			extID := b.graph.External(resolution.AbsPath)
			b.graph.AddEdge(graphdb.Edge{Kind: graphdb.RawImport, From: state.fileID, To: extID})
			return
		}
		b.graph.AddEdge(graphdb.Edge{Kind: graphdb.RawImport, From: state.fileID, To: target.fileID})
	case resolve.OutcomeBuiltin, resolve.OutcomeExternal:
		extID := b.graph.External(resolution.Name)
		b.graph.AddEdge(graphdb.Edge{Kind: graphdb.RawImport, From: state.fileID, To: extID})
	case resolve.OutcomeUnresolved:
		b.report.Add(diag.ResolutionFailure, path, "cannot resolve import \""+specifier+"\"")
		extID := b.graph.External(specifier)
		b.graph.AddEdge(graphdb.Edge{Kind: graphdb.RawImport, From: state.fileID, To: extID})
	}
}

// passSymbolWiring is pass 3: ResolvedImport (import binding -> the
// symbol it ultimately names, chasing barrel re-exports) and the
// structural relation edges (Calls/Extends/Implements/TypeRef), resolved
// against imported bindings first and same-file declarations second.
func (b *Builder) passSymbolWiring(results map[string]extract.FileResult) {
	for path, result := range results {
		state := b.files[path]
		bindings := b.importBindings(path, result)

		for _, target := range bindings {
			b.graph.AddEdge(graphdb.Edge{Kind: graphdb.ResolvedImport, From: state.fileID, To: target})
		}

		b.wireReexports(path, state, result)

		for _, rel := range result.Relations {
			b.wireRelation(path, state, rel, bindings)
		}
	}
}

// wireReexports adds a ResolvedImport edge from path's own file node to
// the symbol a named re-export (`export {X} from './y'`, possibly
// chained through further barrels) ultimately defines. Without this, a
// barrel file's own dependency on the module it re-exports from is only
// visible as the RawImport edge emitted in passRawImports — impact() and
// circular(), which walk ResolvedImport, would otherwise never see the
// barrel-to-origin edge, only the edges of whoever imports through the
// barrel. `export * from`/`export * as ns from` propagate an unknown set
// of names rather than one, so there's no single symbol to chase here;
// downstream importers that ask for a specific name still chase through
// them correctly via importBindings.
func (b *Builder) wireReexports(path string, state *fileState, result extract.FileResult) {
	for _, exp := range result.Exports {
		if exp.Form != extract.ExportReexportNamed {
			continue
		}
		if id, ok := b.chase(path, exp.ExportedAs); ok {
			b.graph.AddEdge(graphdb.Edge{Kind: graphdb.ResolvedImport, From: state.fileID, To: id})
		}
	}
}

func (b *Builder) exportsOf(path string) ([]extract.Export, bool) {
	state, ok := b.files[path]
	if !ok {
		return nil, false
	}
	return state.result.Exports, true
}

func (b *Builder) specifierResolver(fromFile, specifier string) (string, bool) {
	resolution := b.resolver.Resolve(fromFile, specifier)
	if resolution.Outcome == resolve.OutcomeFile {
		return resolution.AbsPath, true
	}
	return "", false
}

// importBindings resolves every named/default/namespace import of path to
// the NodeID it denotes: either a specific Symbol (chased through any
// barrel re-exports) or, for a namespace import, the imported File's own
// node. Bindings that don't chase to anything (external packages, builtin
// modules, or a name the target module doesn't actually export) are
// omitted rather than recorded as dangling.
func (b *Builder) importBindings(path string, result extract.FileResult) map[string]graphdb.NodeID {
	bindings := make(map[string]graphdb.NodeID)

	for _, imp := range result.Imports {
		resolution := b.resolver.Resolve(path, imp.Specifier)
		if resolution.Outcome != resolve.OutcomeFile {
			continue
		}
		target, ok := b.files[resolution.AbsPath]
		if !ok {
			continue
		}

		if imp.NamespaceAs != "" {
			bindings[imp.NamespaceAs] = target.fileID
		}
		if imp.DefaultName != "" {
			if id, ok := b.chase(resolution.AbsPath, "default"); ok {
				bindings[imp.DefaultName] = id
			}
		}
		for _, n := range imp.Names {
			local := n.Alias
			if local == "" {
				local = n.Name
			}
			if id, ok := b.chase(resolution.AbsPath, n.Name); ok {
				bindings[local] = id
			}
		}
	}
	return bindings
}

func (b *Builder) chase(file, exportedAs string) (graphdb.NodeID, bool) {
	origin, ok := resolve.ChaseBarrel(file, exportedAs, b.exportsOf, b.specifierResolver)
	if !ok {
		return 0, false
	}
	if origin.Namespace {
		target, ok := b.files[origin.File]
		if !ok {
			return 0, false
		}
		return target.fileID, true
	}
	target, ok := b.files[origin.File]
	if !ok {
		return 0, false
	}
	id, ok := target.symbols[origin.LocalName]
	return id, ok
}

// wireRelation resolves one Calls/Extends/Implements/TypeRef reference by
// name, in precedence order: (a) an imported binding with that local
// name, since an import shadows anything the file itself might also call
// that name in a different scope; (b) a symbol declared in the same file;
// (c) otherwise the reference targets something this indexer can't place
// (a global, a builtin, a dynamically constructed value) and is dropped —
// recording a Calls/Extends/etc. edge to a guessed target would be worse
// than recording none.
func (b *Builder) wireRelation(path string, state *fileState, rel extract.Relation, bindings map[string]graphdb.NodeID) {
	if target, ok := bindings[rel.TargetName]; ok {
		b.addRelationEdge(state, rel, target)
		return
	}
	if target, ok := state.symbols[rel.TargetName]; ok {
		b.addRelationEdge(state, rel, target)
		return
	}
}

func (b *Builder) addRelationEdge(state *fileState, rel extract.Relation, target graphdb.NodeID) {
	from := state.fileID
	if rel.CallerScope != "" {
		if scopeID, ok := state.symbols[rel.CallerScope]; ok {
			from = scopeID
		}
	}
	b.graph.AddEdge(graphdb.Edge{Kind: rel.Kind, From: from, To: target})
}

