package extract

import (
	"strings"

	"github.com/codegraphhq/codegraph/internal/graphdb"
	sitter "github.com/smacker/go-tree-sitter"
)

// kindForCapture maps a symbols-query capture name to the SymbolKind it
// declares. "symbol.any" is the wrapping alternation capture and carries
// no kind of its own.
func kindForCapture(name string) (graphdb.SymbolKind, bool) {
	switch name {
	case "symbol.function":
		return graphdb.SymFunction, true
	case "symbol.variable":
		return graphdb.SymVariable, true
	case "symbol.class":
		return graphdb.SymClass, true
	case "symbol.interface":
		return graphdb.SymInterface, true
	case "symbol.type_alias":
		return graphdb.SymTypeAlias, true
	case "symbol.enum":
		return graphdb.SymEnum, true
	case "symbol.method":
		return graphdb.SymMethod, true
	case "symbol.property":
		return graphdb.SymProperty, true
	default:
		return 0, false
	}
}

// extractSymbols runs the symbols query over root and returns one Symbol
// per declaration, deduplicated on (name, start line) so a declaration
// reported by more than one match is recorded once.
func extractSymbols(query *sitter.Query, root *sitter.Node, src []byte) []Symbol {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	type dedupKey struct {
		name string
		line int
	}
	seen := make(map[dedupKey]bool)
	var out []Symbol

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			name := query.CaptureNameForId(cap.Index)
			kind, isDecl := kindForCapture(name)
			if !isDecl {
				continue
			}
			node := cap.Node

			// A variable_declarator is only a symbol when it has a plain
			// identifier target; destructuring patterns (`const {a,b} =
			// ...`) don't name a single symbol and are skipped.
			declName, hasName := declaredName(node, src)
			if !hasName {
				continue
			}
			if target := node.ChildByFieldName("name"); kind == graphdb.SymVariable && target != nil && target.Type() != "identifier" {
				continue
			}

			if kind == graphdb.SymVariable {
				if arrow := namedField(node, "value", "arrow_function"); arrow != nil && containsJSX(arrow, 40) && isComponentName(declName) {
					kind = graphdb.SymComponent
				}
				if fn := namedField(node, "value", "function"); fn != nil && containsJSX(fn, 40) && isComponentName(declName) {
					kind = graphdb.SymComponent
				}
			}
			if kind == graphdb.SymFunction && containsJSX(node, 40) && isComponentName(declName) {
				kind = graphdb.SymComponent
			}

			start := pointLine(node.StartPoint())
			key := dedupKey{name: declName, line: start}
			if seen[key] {
				continue
			}
			seen[key] = true

			out = append(out, Symbol{
				Name:          declName,
				Kind:          kind,
				StartLine:     start,
				StartCol:      pointCol(node.StartPoint()),
				EndLine:       pointLine(node.EndPoint()),
				Exported:      isExported(node),
				ContainerName: enclosingSymbolName(node, src),
			})
		}
	}
	return out
}

// isComponentName applies the conventional React rule: a function/
// variable that returns JSX is only classified SymComponent when its name
// is capitalized, trusting naming convention over type inference for
// JSX-producing bindings.
func isComponentName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0:1]
	return strings.ToUpper(first) == first && strings.ToLower(first) != first
}
