package extract

import sitter "github.com/smacker/go-tree-sitter"

// extractExports runs the exports query over root and expands each
// export_statement into its record shape: named, default, re-exported
// named, re-exported star, or re-exported star-as-namespace.
func extractExports(query *sitter.Query, root *sitter.Node, src []byte) []Export {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var out []Export
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			if query.CaptureNameForId(cap.Index) != "export.stmt" {
				continue
			}
			out = append(out, expandExportStatement(cap.Node, src)...)
		}
	}
	return out
}

func expandExportStatement(node *sitter.Node, src []byte) []Export {
	line := pointLine(node.StartPoint())

	if hasDirectChildType(node, "default") {
		return []Export{exportDefault(node, src, line)}
	}

	source, hasSource := stringLiteralContent(namedField(node, "source", "string"), src)
	if hasSource {
		return reexportForms(node, src, line, source)
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		return namedExportsFromDeclaration(decl, src, line)
	}

	if clause := childOfType(node, "export_clause"); clause != nil {
		return namedExportsFromClause(clause, src, line, "")
	}

	return nil
}

func exportDefault(node *sitter.Node, src []byte, line int) Export {
	exp := Export{Form: ExportDefault, ExportedAs: "default", Line: line}
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		if name, ok := declaredName(decl, src); ok {
			exp.LocalName = name
		}
		return exp
	}
	if val := node.ChildByFieldName("value"); val != nil && val.Type() == "identifier" {
		exp.LocalName = text(val, src)
	}
	return exp
}

func reexportForms(node *sitter.Node, src []byte, line int, source string) []Export {
	if ns := childOfType(node, "namespace_export"); ns != nil {
		alias := ""
		if id := childOfType(ns, "identifier"); id != nil {
			alias = text(id, src)
		}
		return []Export{{Form: ExportReexportStarAs, ExportedAs: alias, Source: source, Line: line}}
	}
	if hasDirectChildType(node, "*") {
		return []Export{{Form: ExportReexportStar, Source: source, Line: line}}
	}
	if clause := childOfType(node, "export_clause"); clause != nil {
		return namedExportsFromClause(clause, src, line, source)
	}
	return nil
}

func namedExportsFromClause(clause *sitter.Node, src []byte, line int, source string) []Export {
	form := ExportNamed
	if source != "" {
		form = ExportReexportNamed
	}
	var out []Export
	for _, spec := range childrenOfType(clause, "export_specifier") {
		nameNode := namedField(spec, "name", "identifier")
		if nameNode == nil {
			continue
		}
		localName := text(nameNode, src)
		exportedAs := localName
		if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
			exportedAs = text(aliasNode, src)
		}
		out = append(out, Export{Form: form, LocalName: localName, ExportedAs: exportedAs, Source: source, Line: line})
	}
	return out
}

func namedExportsFromDeclaration(decl *sitter.Node, src []byte, line int) []Export {
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
		var out []Export
		for _, dtor := range childrenOfType(decl, "variable_declarator") {
			if name, ok := declaredName(dtor, src); ok {
				out = append(out, Export{Form: ExportNamed, LocalName: name, ExportedAs: name, Line: line})
			}
		}
		return out
	default:
		if name, ok := declaredName(decl, src); ok {
			return []Export{{Form: ExportNamed, LocalName: name, ExportedAs: name, Line: line}}
		}
		return nil
	}
}

func hasDirectChildType(n *sitter.Node, t string) bool {
	return childOfType(n, t) != nil
}
