package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parse parses src with grammar g's compiled language. Callers must call
// tree.Close() when done. Parse errors (syntax the grammar cannot accept
// at all) surface as an error; partial/recovered trees from tree-sitter's
// own error-node recovery are still returned successfully — a file riddled
// with ERROR nodes still yields whatever symbols/imports the tree does
// contain, rather than aborting the whole file.
func (s *Set) Parse(g Grammar, src []byte) (*sitter.Tree, error) {
	lang := s.Language(g)
	if lang == nil {
		return nil, fmt.Errorf("no compiled language for grammar %s", g)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return tree, nil
}
