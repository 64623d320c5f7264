package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codegraphhq/codegraph/internal/query"
)

type findRow struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Exported bool   `json:"exported"`
}

// Find renders a find_symbol result.
func Find(w io.Writer, format Format, root string, result query.FindResult) error {
	rows := make([]findRow, len(result.Matches))
	for i, m := range result.Matches {
		rows[i] = findRow{File: relPath(root, m.File), Line: m.StartLine, Kind: m.Kind.String(), Name: m.Name, Exported: m.Exported}
	}

	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(struct {
			Definitions []findRow `json:"definitions"`
			Suggestions []string  `json:"suggestions,omitempty"`
		}{rows, result.Suggestions})

	case Table:
		if len(rows) == 0 {
			fmt.Fprintln(w, suggestionLine(result.Suggestions))
			return nil
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "FILE\tLINE\tKIND\tNAME\tEXPORTED")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%t\n", r.File, r.Line, r.Kind, r.Name, r.Exported)
		}
		return tw.Flush()

	default: // Compact
		if len(rows) == 0 {
			fmt.Fprintln(w, suggestionLine(result.Suggestions))
			return nil
		}
		fmt.Fprintf(w, "%s\n", plural(len(rows), "definition")+" found")
		for _, r := range rows {
			fmt.Fprintf(w, "%s:%d | %s | %s\n", r.File, r.Line, r.Kind, r.Name)
		}
		return nil
	}
}
