package extract

import sitter "github.com/smacker/go-tree-sitter"

// extractImports runs the imports query over root and returns one record
// per ESM import_statement, per require() call, and per dynamic import()
// call whose specifier is a static string literal. Non-literal require/
// import arguments (computed specifiers) are silently dropped — only
// statically determinable specifiers can be resolved to a file at all.
func extractImports(query *sitter.Query, root *sitter.Node, src []byte) []Import {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var out []Import
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			switch query.CaptureNameForId(cap.Index) {
			case "import.stmt":
				if imp, ok := esmImport(cap.Node, src); ok {
					out = append(out, imp)
				}
			case "import.call":
				if imp, ok := callStyleImport(cap.Node, src); ok {
					out = append(out, imp)
				}
			}
		}
	}
	return out
}

func esmImport(node *sitter.Node, src []byte) (Import, bool) {
	sourceNode := namedField(node, "source", "string")
	specifier, ok := stringLiteralContent(sourceNode, src)
	if !ok {
		return Import{}, false
	}

	imp := Import{
		Specifier: specifier,
		Kind:      ImportESM,
		Line:      pointLine(node.StartPoint()),
	}

	clause := childOfType(node, "import_clause")
	if clause == nil {
		// Side-effect-only import: `import "./polyfill"`.
		return imp, true
	}

	count := int(clause.ChildCount())
	for i := 0; i < count; i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			imp.DefaultName = text(child, src)
		case "namespace_import":
			if id := childOfType(child, "identifier"); id != nil {
				imp.NamespaceAs = text(id, src)
			}
		case "named_imports":
			imp.Names = append(imp.Names, namedImportSpecifiers(child, src)...)
		}
	}
	return imp, true
}

func namedImportSpecifiers(namedImports *sitter.Node, src []byte) []ImportedName {
	var names []ImportedName
	for _, spec := range childrenOfType(namedImports, "import_specifier") {
		nameNode := namedField(spec, "name", "identifier")
		if nameNode == nil {
			continue
		}
		entry := ImportedName{Name: text(nameNode, src)}
		if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
			entry.Alias = text(aliasNode, src)
		}
		names = append(names, entry)
	}
	return names
}

// callStyleImport recognizes `require("x")` and dynamic `import("x")`
// call expressions. Both are call_expression nodes in the grammar; they
// differ in what the "function" position contains.
func callStyleImport(node *sitter.Node, src []byte) (Import, bool) {
	fn := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if args == nil {
		args = childOfType(node, "arguments")
	}
	if args == nil {
		return Import{}, false
	}

	firstArg := firstNamedChild(args)
	specifier, ok := stringLiteralContent(firstArg, src)
	if !ok {
		return Import{}, false
	}

	switch {
	case fn != nil && fn.Type() == "identifier" && text(fn, src) == "require":
		return Import{Specifier: specifier, Kind: ImportCJS, Line: pointLine(node.StartPoint())}, true
	case fn != nil && fn.Type() == "import":
		return Import{Specifier: specifier, Kind: ImportDynamic, Line: pointLine(node.StartPoint())}, true
	default:
		return Import{}, false
	}
}

// firstNamedChild returns the first child of n that is a string or
// template_string literal, skipping the surrounding parens tokens.
func firstNamedChild(n *sitter.Node) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "string" || c.Type() == "template_string" {
			return c
		}
	}
	return nil
}
