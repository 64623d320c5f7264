// Package query implements the read-only operations exposed by both the
// CLI and the assistant-tool server: find, references, impact radius,
// circular-import detection, context, and stats. Every operation takes
// the graph's read lock for its own duration and releases it before
// returning.
package query

import "github.com/codegraphhq/codegraph/internal/graphdb"

// SymbolRef is a symbol result shared by find/refs/context — enough to
// render a location without a second graph lookup.
type SymbolRef struct {
	ID        graphdb.NodeID
	Name      string
	Kind      graphdb.SymbolKind
	File      string
	StartLine int
	EndLine   int
	Exported  bool
}

// Reference is one place a symbol is referenced from.
type Reference struct {
	Kind graphdb.EdgeKind
	From SymbolRef // the referencing symbol; File == enclosing file, Name == "" if file-level
	Via  string     // declared name of the symbol the edge points at
}
