package query

import "github.com/codegraphhq/codegraph/internal/graphdb"

// SymbolContext is the 360° view behind get_context: a symbol's own
// definitions plus every relationship edge touching it, bucketed by
// direction and kind rather than lumped into one list the way
// FindReferences reports them for the plainer refs operation.
type SymbolContext struct {
	Definitions   []SymbolRef
	References    []Reference
	Callers       []Reference
	Callees       []Reference
	Extends       []Reference
	Implements    []Reference
	ExtendedBy    []Reference
	ImplementedBy []Reference
}

// GetContext resolves pattern to one or more symbols (as FindSymbol
// would, including fileGlob scoping) and aggregates their full
// relationship context. If nothing matches, it returns a zero
// SymbolContext and FindSymbol's fuzzy-match suggestions.
func GetContext(g *graphdb.Graph, root, pattern, fileGlob string) (SymbolContext, []string) {
	g.RLock()
	defer g.RUnlock()

	found := findSymbolLocked(g, root, pattern, fileGlob)
	if len(found.Matches) == 0 {
		return SymbolContext{}, found.Suggestions
	}

	ctx := SymbolContext{Definitions: found.Matches}
	for _, def := range found.Matches {
		ctx.References = append(ctx.References, findReferencesLocked(g, def.ID)...)

		for _, e := range g.EdgesOut(def.ID, graphdb.Calls) {
			ctx.Callees = append(ctx.Callees, Reference{Kind: e.Kind, From: def, Via: refFor(g, e.To).Name})
		}
		for _, e := range g.EdgesIn(def.ID, graphdb.Calls) {
			ctx.Callers = append(ctx.Callers, Reference{Kind: e.Kind, From: refFor(g, e.From), Via: def.Name})
		}
		for _, e := range g.EdgesOut(def.ID, graphdb.Extends) {
			ctx.Extends = append(ctx.Extends, Reference{Kind: e.Kind, From: def, Via: refFor(g, e.To).Name})
		}
		for _, e := range g.EdgesIn(def.ID, graphdb.Extends) {
			ctx.ExtendedBy = append(ctx.ExtendedBy, Reference{Kind: e.Kind, From: refFor(g, e.From), Via: def.Name})
		}
		for _, e := range g.EdgesOut(def.ID, graphdb.Implements) {
			ctx.Implements = append(ctx.Implements, Reference{Kind: e.Kind, From: def, Via: refFor(g, e.To).Name})
		}
		for _, e := range g.EdgesIn(def.ID, graphdb.Implements) {
			ctx.ImplementedBy = append(ctx.ImplementedBy, Reference{Kind: e.Kind, From: refFor(g, e.From), Via: def.Name})
		}
	}
	return ctx, nil
}
