// Package parse owns grammar selection and query compilation: one
// *sitter.Language and one compiled query set per grammar, built once,
// process-wide, and reused for every file of that grammar.
package parse

import (
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Grammar identifies one of the three tree-sitter grammars this indexer
// dispatches on. .mjs/.cjs map to JavaScript.
type Grammar int

const (
	TypeScript Grammar = iota
	TSX
	JavaScript
)

func (g Grammar) String() string {
	switch g {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	case JavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// GrammarForExt chooses a grammar by file extension.
func GrammarForExt(ext string) (Grammar, bool) {
	switch ext {
	case ".ts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	default:
		return 0, false
	}
}

// GrammarForPath is a convenience wrapper around GrammarForExt.
func GrammarForPath(path string) (Grammar, bool) {
	return GrammarForExt(filepath.Ext(path))
}

// Set holds the compiled language and query handles for every supported
// grammar. Construction compiles every query exactly once; callers must
// not recompile queries per file.
type Set struct {
	languages map[Grammar]*sitter.Language
	queries   map[Grammar]*Queries
}

// NewSet builds the grammar set, compiling all queries up front. An error
// here is a startup (fatal) condition — a query fails to compile against
// its own grammar only if the grammar/query pair is mismatched, which is
// a programming error, not a per-file runtime one.
func NewSet() (*Set, error) {
	languages := map[Grammar]*sitter.Language{
		TypeScript: typescript.GetLanguage(),
		TSX:        tsx.GetLanguage(),
		JavaScript: javascript.GetLanguage(),
	}

	queries := make(map[Grammar]*Queries, len(languages))
	for g, lang := range languages {
		qs, err := compileQueries(g, lang)
		if err != nil {
			return nil, fmt.Errorf("compiling queries for grammar %s: %w", g, err)
		}
		queries[g] = qs
	}

	return &Set{languages: languages, queries: queries}, nil
}

// Language returns the compiled grammar for g.
func (s *Set) Language(g Grammar) *sitter.Language {
	return s.languages[g]
}

// Queries returns the compiled query set for g.
func (s *Set) Queries(g Grammar) *Queries {
	return s.queries[g]
}

// Close releases every compiled query. Languages carry no Go-side
// resources beyond the query handles.
func (s *Set) Close() {
	for _, qs := range s.queries {
		qs.Close()
	}
}
