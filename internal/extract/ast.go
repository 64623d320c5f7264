package extract

import sitter "github.com/smacker/go-tree-sitter"

// childOfType returns the first direct child of n whose Type() is t, or
// nil. Used whenever a field isn't exposed as a named field by a grammar
// and must be found by scanning children instead.
func childOfType(n *sitter.Node, t string) *sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c != nil && c.Type() == t {
			return c
		}
	}
	return nil
}

// childrenOfType returns every direct child of n whose Type() is t.
func childrenOfType(n *sitter.Node, t string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var result []*sitter.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c != nil && c.Type() == t {
			result = append(result, c)
		}
	}
	return result
}

// namedField returns n's field named field if the grammar exposes it,
// falling back to scanning direct children for fallbackType otherwise.
func namedField(n *sitter.Node, field, fallbackType string) *sitter.Node {
	if n == nil {
		return nil
	}
	if f := n.ChildByFieldName(field); f != nil {
		return f
	}
	return childOfType(n, fallbackType)
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// isExported walks up from n, including n itself, looking for an
// enclosing export_statement — arrow-function exports capture at the
// export node rather than the identifier's parent, so starting the walk
// at n itself (not n.Parent()) is required.
func isExported(n *sitter.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() == "export_statement" {
			return true
		}
	}
	return false
}

// declaredName finds the identifier-like name of a declaration node,
// trying the conventional "name" field first and falling back to
// scanning for the node types that carry a declaration's name across the
// TS/JS grammars.
func declaredName(n *sitter.Node, src []byte) (string, bool) {
	for _, field := range []string{"name"} {
		if f := n.ChildByFieldName(field); f != nil {
			return text(f, src), true
		}
	}
	for _, t := range []string{"identifier", "type_identifier", "property_identifier"} {
		if c := childOfType(n, t); c != nil {
			return text(c, src), true
		}
	}
	return "", false
}

// enclosingSymbolName walks up from n's parent looking for the nearest
// declaration that would itself be recorded as a Symbol, returning its
// name — used to compute Relation.CallerScope and Symbol.ContainerName.
// Returns "" when no enclosing symbol is unambiguously determinable, in
// which case the caller falls back to file scope.
func enclosingSymbolName(n *sitter.Node, src []byte) string {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "function_declaration", "class_declaration", "method_definition":
			if name, ok := declaredName(cur, src); ok {
				return name
			}
			return ""
		case "variable_declarator":
			if val := namedField(cur, "value", "arrow_function"); val != nil && val.Type() == "arrow_function" {
				if name, ok := declaredName(cur, src); ok {
					return name
				}
			}
		}
	}
	return ""
}

// containsJSX reports whether n's subtree contains a JSX-producing node,
// bounded to avoid pathological recursion on generated files.
func containsJSX(n *sitter.Node, budget int) bool {
	if n == nil || budget <= 0 {
		return false
	}
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if containsJSX(n.Child(i), budget-1) {
			return true
		}
	}
	return false
}

// stringLiteralContent strips the surrounding quotes (or backticks, for a
// template literal with no substitutions) from a string/template node's
// text.
func stringLiteralContent(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		raw := text(n, src)
		if len(raw) >= 2 {
			return raw[1 : len(raw)-1], true
		}
		return "", false
	case "template_string":
		// Only a template literal with no substitutions is a usable
		// static specifier; anything containing a template_substitution
		// is left dynamic and dropped by the caller. Partial-prefix
		// resolution of a templated specifier is not attempted.
		if childOfType(n, "template_substitution") != nil {
			return "", false
		}
		raw := text(n, src)
		if len(raw) >= 2 {
			return raw[1 : len(raw)-1], true
		}
		return "", false
	default:
		return "", false
	}
}

func pointLine(p sitter.Point) int { return int(p.Row) + 1 }
func pointCol(p sitter.Point) int  { return int(p.Column) }
