// Package extract runs the compiled tree-sitter queries of internal/parse
// against a file's syntax tree, producing four independent record
// streams: symbols, imports, exports, relations.
package extract

import "github.com/codegraphhq/codegraph/internal/graphdb"

// Symbol is one extracted symbol-declaration record.
type Symbol struct {
	Name          string
	Kind          graphdb.SymbolKind
	StartLine     int // 1-based
	StartCol      int
	EndLine       int
	Exported      bool
	ContainerName string // nearest enclosing symbol's name, "" if file-level
}

// ImportKind distinguishes the three import forms this package records.
type ImportKind int

const (
	ImportESM ImportKind = iota
	ImportCJS
	ImportDynamic
)

// ImportedName is one named binding pulled from an import, with its
// optional "as" alias.
type ImportedName struct {
	Name  string
	Alias string
}

// Import is one extracted import record — one per specifier occurrence,
// not one per file.
type Import struct {
	Specifier   string
	Kind        ImportKind
	Names       []ImportedName
	DefaultName string // non-empty if a default import was bound
	NamespaceAs string // non-empty if `import * as X`
	Line        int
}

// ExportForm distinguishes the export record shapes this package records.
type ExportForm int

const (
	ExportNamed ExportForm = iota
	ExportDefault
	ExportReexportNamed
	ExportReexportStar
	ExportReexportStarAs
)

// Export is one extracted export/re-export record.
type Export struct {
	Form       ExportForm
	LocalName  string // for Named/Default: the declared local symbol
	ExportedAs string // alias, or equal to LocalName when none given
	Source     string // re-export specifier, empty for plain exports
	Line       int
}

// RelationKind narrows graphdb.EdgeKind to the four relation edge kinds
// this package can discover before graph assembly.
type RelationKind = graphdb.EdgeKind

// Relation is one unresolved structural reference: a call site, an
// extends/implements clause, or a type-position reference. Targets are
// raw names; graph assembly (internal/assemble) resolves them to symbols.
type Relation struct {
	Kind         RelationKind
	CallerScope  string // enclosing symbol's name, "" if undeterminable
	TargetName   string
	Line         int
}

// Diagnostic mirrors internal/diag.Diagnostic shape without importing it,
// since extract only ever reports ParseFailure for a single file and the
// caller (internal/project) already owns a diag.Report to append into.
type Diagnostic struct {
	Message string
}

// FileResult is everything extracted from one file.
type FileResult struct {
	Path      string
	Language  graphdb.Language
	LineCount int
	Symbols   []Symbol
	Imports   []Import
	Exports   []Export
	Relations []Relation
	ParseErr  error
}
