package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codegraphhq/codegraph/internal/query"
)

// Context renders a get_context result: labeled sections in compact and
// table mode, a single structured object in json mode.
func Context(w io.Writer, format Format, root string, ctx query.SymbolContext, suggestions []string) error {
	if len(ctx.Definitions) == 0 {
		switch format {
		case JSON:
			return json.NewEncoder(w).Encode(struct {
				Suggestions []string `json:"suggestions,omitempty"`
			}{suggestions})
		default:
			fmt.Fprintln(w, suggestionLine(suggestions))
			return nil
		}
	}

	defs := make([]findRow, len(ctx.Definitions))
	for i, d := range ctx.Definitions {
		defs[i] = findRow{File: relPath(root, d.File), Line: d.StartLine, Kind: d.Kind.String(), Name: d.Name, Exported: d.Exported}
	}

	if format == JSON {
		return json.NewEncoder(w).Encode(struct {
			Definitions   []findRow `json:"definitions"`
			References    []refRow  `json:"references"`
			Callers       []refRow  `json:"callers"`
			Callees       []refRow  `json:"callees"`
			Extends       []refRow  `json:"extends"`
			Implements    []refRow  `json:"implements"`
			ExtendedBy    []refRow  `json:"extendedBy"`
			ImplementedBy []refRow  `json:"implementedBy"`
		}{
			defs,
			toRefRows(root, ctx.References),
			toRefRows(root, ctx.Callers),
			toRefRows(root, ctx.Callees),
			toRefRows(root, ctx.Extends),
			toRefRows(root, ctx.Implements),
			toRefRows(root, ctx.ExtendedBy),
			toRefRows(root, ctx.ImplementedBy),
		})
	}

	writeSection := func(title string, rows []refRow) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(rows) == 0 {
			fmt.Fprintln(w, "(none)")
			return
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s:%d | %s | %s\n", r.File, r.Line, r.Kind, r.Via)
		}
	}

	fmt.Fprintln(w, "--- definitions ---")
	for _, d := range defs {
		fmt.Fprintf(w, "%s:%d | %s | %s\n", d.File, d.Line, d.Kind, d.Name)
	}
	writeSection("references", toRefRows(root, ctx.References))
	writeSection("callers", toRefRows(root, ctx.Callers))
	writeSection("callees", toRefRows(root, ctx.Callees))
	writeSection("extends", toRefRows(root, ctx.Extends))
	writeSection("implements", toRefRows(root, ctx.Implements))
	writeSection("extended-by", toRefRows(root, ctx.ExtendedBy))
	writeSection("implemented-by", toRefRows(root, ctx.ImplementedBy))
	return nil
}
