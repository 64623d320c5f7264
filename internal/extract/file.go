package extract

import (
	"bytes"
	"fmt"

	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/parse"
)

// File parses src with set's grammar g and runs all four queries against
// the resulting tree, producing one FileResult. lang is the File node's
// recorded language — callers pass it explicitly rather than deriving it
// from g, since g collapses .jsx/.mjs/.cjs into the single JavaScript
// grammar while graphdb.Language still distinguishes LangJSX from LangJS.
func File(set *parse.Set, g parse.Grammar, lang graphdb.Language, path string, src []byte) FileResult {
	result := FileResult{
		Path:      path,
		Language:  lang,
		LineCount: bytes.Count(src, []byte("\n")) + 1,
	}

	tree, err := set.Parse(g, src)
	if err != nil {
		result.ParseErr = fmt.Errorf("%s: %w", path, err)
		return result
	}
	defer tree.Close()

	queries := set.Queries(g)
	root := tree.RootNode()

	result.Symbols = extractSymbols(queries.Symbols, root, src)
	result.Imports = extractImports(queries.Imports, root, src)
	result.Exports = extractExports(queries.Exports, root, src)
	result.Relations = extractRelations(queries.Relations, root, src)

	return result
}
