package extract

import (
	"github.com/codegraphhq/codegraph/internal/graphdb"
	sitter "github.com/smacker/go-tree-sitter"
)

// extractRelations runs the relations query over root and returns every
// call site, extends/implements clause, and type-position reference it
// can discover by name. Targets are raw identifier text — graph assembly
// resolves them against the file's imports and the rest of the graph.
func extractRelations(query *sitter.Query, root *sitter.Node, src []byte) []Relation {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var out []Relation
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			switch query.CaptureNameForId(cap.Index) {
			case "relation.call":
				if rel, ok := callRelation(cap.Node, src); ok {
					out = append(out, rel)
				}
			case "relation.heritage":
				out = append(out, heritageRelations(cap.Node, src)...)
			case "relation.type_annotation":
				out = append(out, typeRefRelations(cap.Node, src)...)
			}
		}
	}
	return out
}

func callRelation(node *sitter.Node, src []byte) (Relation, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return Relation{}, false
	}
	var target string
	switch fn.Type() {
	case "identifier":
		target = text(fn, src)
	case "member_expression":
		prop := fn.ChildByFieldName("property")
		if prop == nil {
			return Relation{}, false
		}
		target = text(prop, src)
	default:
		return Relation{}, false
	}
	if target == "require" {
		// Already recorded as an Import, not a structural call.
		return Relation{}, false
	}
	return Relation{
		Kind:        graphdb.Calls,
		CallerScope: enclosingSymbolName(node, src),
		TargetName:  target,
		Line:        pointLine(node.StartPoint()),
	}, true
}

func heritageRelations(node *sitter.Node, src []byte) []Relation {
	scope := enclosingSymbolName(node, src)
	line := pointLine(node.StartPoint())
	var out []Relation

	if extends := childOfType(node, "extends_clause"); extends != nil {
		if val := extends.ChildByFieldName("value"); val != nil {
			if name, ok := heritageTargetName(val, src); ok {
				out = append(out, Relation{Kind: graphdb.Extends, CallerScope: scope, TargetName: name, Line: line})
			}
		}
	}
	if impl := childOfType(node, "implements_clause"); impl != nil {
		for _, t := range collectTypeIdentifiers(impl, 20) {
			out = append(out, Relation{Kind: graphdb.Implements, CallerScope: scope, TargetName: text(t, src), Line: line})
		}
	}
	return out
}

func heritageTargetName(val *sitter.Node, src []byte) (string, bool) {
	switch val.Type() {
	case "identifier":
		return text(val, src), true
	case "member_expression":
		if prop := val.ChildByFieldName("property"); prop != nil {
			return text(prop, src), true
		}
	}
	return "", false
}

func typeRefRelations(node *sitter.Node, src []byte) []Relation {
	scope := enclosingSymbolName(node, src)
	line := pointLine(node.StartPoint())
	var out []Relation
	for _, t := range collectTypeIdentifiers(node, 20) {
		out = append(out, Relation{Kind: graphdb.TypeRef, CallerScope: scope, TargetName: text(t, src), Line: line})
	}
	return out
}

// collectTypeIdentifiers walks n's subtree (bounded) collecting every
// type_identifier node — covers both bare references (Foo) and generic
// instantiations (Array<Foo>, Map<K, V>) without needing a grammar-exact
// structural pattern per form.
func collectTypeIdentifiers(n *sitter.Node, budget int) []*sitter.Node {
	if n == nil || budget <= 0 {
		return nil
	}
	var out []*sitter.Node
	if n.Type() == "type_identifier" {
		out = append(out, n)
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		out = append(out, collectTypeIdentifiers(n.Child(i), budget-1)...)
	}
	return out
}
