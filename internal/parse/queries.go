package parse

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Queries holds one compiled *sitter.Query per record family: symbols,
// imports, exports, and relations are independent streams. Compiled once
// per grammar at Set construction, never per file.
//
// Every pattern captures whole statement/declaration nodes rather than
// individual fields. The extractors in internal/extract then inspect each
// captured node's children directly — needed anyway for fields
// tree-sitter doesn't expose as named fields in every grammar (e.g.
// namespace_import's bound identifier), and capturing coarse nodes keeps
// one query pattern valid across the small field-naming differences
// between the typescript and javascript grammars.
type Queries struct {
	Symbols   *sitter.Query
	Imports   *sitter.Query
	Exports   *sitter.Query
	Relations *sitter.Query
}

func (q *Queries) Close() {
	if q == nil {
		return
	}
	for _, query := range []*sitter.Query{q.Symbols, q.Imports, q.Exports, q.Relations} {
		if query != nil {
			query.Close()
		}
	}
}

// compileQueries builds the four query families for grammar g. TypeScript
// and TSX share the typescript-family patterns (interfaces, type aliases,
// and enums exist only there); JavaScript uses the js-family patterns.
func compileQueries(g Grammar, lang *sitter.Language) (*Queries, error) {
	patterns := jsPatterns
	if g == TypeScript || g == TSX {
		patterns = tsPatterns
	}

	symbols, err := sitter.NewQuery([]byte(patterns.symbols), lang)
	if err != nil {
		return nil, fmt.Errorf("symbols query: %w", err)
	}
	imports, err := sitter.NewQuery([]byte(patterns.imports), lang)
	if err != nil {
		return nil, fmt.Errorf("imports query: %w", err)
	}
	exports, err := sitter.NewQuery([]byte(patterns.exports), lang)
	if err != nil {
		return nil, fmt.Errorf("exports query: %w", err)
	}
	relations, err := sitter.NewQuery([]byte(patterns.relations), lang)
	if err != nil {
		return nil, fmt.Errorf("relations query: %w", err)
	}

	return &Queries{Symbols: symbols, Imports: imports, Exports: exports, Relations: relations}, nil
}

type patternSet struct {
	symbols   string
	imports   string
	exports   string
	relations string
}

// tsPatterns targets the typescript/tsx grammars.
var tsPatterns = patternSet{
	symbols: `
[
  (function_declaration) @symbol.function
  (variable_declarator) @symbol.variable
  (class_declaration) @symbol.class
  (interface_declaration) @symbol.interface
  (type_alias_declaration) @symbol.type_alias
  (enum_declaration) @symbol.enum
  (method_definition) @symbol.method
  (public_field_definition) @symbol.property
] @symbol.any
`,
	imports: `
[
  (import_statement) @import.stmt
  (call_expression) @import.call
] @import.any
`,
	exports: `
(export_statement) @export.stmt
`,
	relations: `
[
  (call_expression) @relation.call
  (class_heritage) @relation.heritage
  (type_annotation) @relation.type_annotation
] @relation.any
`,
}

// jsPatterns targets the plain javascript grammar (also used for .jsx,
// .mjs, .cjs). No interface/type-alias/enum constructs exist here.
var jsPatterns = patternSet{
	symbols: `
[
  (function_declaration) @symbol.function
  (variable_declarator) @symbol.variable
  (class_declaration) @symbol.class
  (method_definition) @symbol.method
  (field_definition) @symbol.property
] @symbol.any
`,
	imports: `
[
  (import_statement) @import.stmt
  (call_expression) @import.call
] @import.any
`,
	exports: `
(export_statement) @export.stmt
`,
	relations: `
[
  (call_expression) @relation.call
  (class_heritage) @relation.heritage
] @relation.any
`,
}
