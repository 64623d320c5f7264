// Package graphdb is the stable-indexed directed multigraph over files and
// symbols: typed nodes, typed (possibly multi-) edges, written by the
// three-pass builder in internal/assemble from extractor output.
package graphdb

import "time"

// NodeID is a stable opaque identity assigned on first insert and
// preserved across incremental edits. Edges store endpoint identities,
// not owning references, so delete-and-reinsert never invalidates
// unrelated nodes.
type NodeID uint64

// NodeKind discriminates a node's role: file, symbol, or external package.
type NodeKind int

const (
	FileNode NodeKind = iota
	SymbolNode
	ExternalNode
)

// Language tags a File node by source dialect.
type Language int

const (
	LangTS Language = iota
	LangTSX
	LangJS
	LangJSX
)

func (l Language) String() string {
	switch l {
	case LangTS:
		return "ts"
	case LangTSX:
		return "tsx"
	case LangJS:
		return "js"
	case LangJSX:
		return "jsx"
	default:
		return "unknown"
	}
}

// SymbolKind enumerates the declaration kinds this indexer distinguishes.
type SymbolKind int

const (
	SymFunction SymbolKind = iota
	SymClass
	SymInterface
	SymTypeAlias
	SymEnum
	SymVariable
	SymComponent
	SymMethod
	SymProperty
)

func (k SymbolKind) String() string {
	switch k {
	case SymFunction:
		return "function"
	case SymClass:
		return "class"
	case SymInterface:
		return "interface"
	case SymTypeAlias:
		return "type_alias"
	case SymEnum:
		return "enum"
	case SymVariable:
		return "variable"
	case SymComponent:
		return "component"
	case SymMethod:
		return "method"
	case SymProperty:
		return "property"
	default:
		return "unknown"
	}
}

// ParseSymbolKind converts a --kind flag value (as printed by String) back
// to a SymbolKind.
func ParseSymbolKind(s string) (SymbolKind, bool) {
	switch s {
	case "function":
		return SymFunction, true
	case "class":
		return SymClass, true
	case "interface":
		return SymInterface, true
	case "type_alias":
		return SymTypeAlias, true
	case "enum":
		return SymEnum, true
	case "variable":
		return SymVariable, true
	case "component":
		return SymComponent, true
	case "method":
		return SymMethod, true
	case "property":
		return SymProperty, true
	default:
		return 0, false
	}
}

// EdgeKind enumerates the directed, typed edge kinds this graph carries.
type EdgeKind int

const (
	Contains EdgeKind = iota
	ChildOf
	Exports
	RawImport
	ResolvedImport
	Calls
	Extends
	Implements
	TypeRef
)

func (k EdgeKind) String() string {
	switch k {
	case Contains:
		return "contains"
	case ChildOf:
		return "child_of"
	case Exports:
		return "exports"
	case RawImport:
		return "raw_import"
	case ResolvedImport:
		return "resolved_import"
	case Calls:
		return "calls"
	case Extends:
		return "extends"
	case Implements:
		return "implements"
	case TypeRef:
		return "type_ref"
	default:
		return "unknown"
	}
}

// FileData is the payload of a File node.
type FileData struct {
	Path        string // absolute, canonicalized
	Language    Language
	ModTime     time.Time
	ContentHash string
	LineCount   int
}

// SymbolData is the payload of a Symbol node.
type SymbolData struct {
	File       NodeID
	Name       string
	Kind       SymbolKind
	StartLine  int // 1-based
	StartCol   int // 0-based
	EndLine    int
	Exported   bool
	ContainerID NodeID // 0 if file-level; else the enclosing symbol's NodeID
}

// ExternalData is the payload of an ExternalPackage node, deduplicated by
// Name.
type ExternalData struct {
	Name string
}

// Node is a tagged union over the three node kinds. Exactly one of File/
// Symbol/External is non-nil, matching Kind.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	File     *FileData
	Symbol   *SymbolData
	External *ExternalData
}

// Edge is one directed, typed edge. Graphs in this package are
// multigraphs: two nodes may be joined by more than one Edge, even of the
// same Kind (e.g. two distinct call sites).
type Edge struct {
	Kind EdgeKind
	From NodeID
	To   NodeID
}
