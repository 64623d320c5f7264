package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codegraphhq/codegraph/internal/query"
)

type refRow struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Via  string `json:"via"`
}

func toRefRows(root string, refs []query.Reference) []refRow {
	rows := make([]refRow, len(refs))
	for i, r := range refs {
		rows[i] = refRow{File: relPath(root, r.From.File), Line: r.From.StartLine, Kind: r.Kind.String(), Via: r.Via}
	}
	return rows
}

// References renders a find_references result. suggestions carries
// FindSymbol's fuzzy-match candidates for when pattern itself resolved
// to nothing — refs never reaches the point of looking for references at
// all in that case, so an empty refs slice there means "no such symbol",
// not "symbol exists but is unused".
func References(w io.Writer, format Format, root string, refs []query.Reference, suggestions []string) error {
	rows := toRefRows(root, refs)

	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(struct {
			References  []refRow `json:"references"`
			Suggestions []string `json:"suggestions,omitempty"`
		}{rows, suggestions})

	case Table:
		if len(rows) == 0 {
			fmt.Fprintln(w, suggestionLine(suggestions))
			return nil
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "FILE\tLINE\tKIND\tVIA")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.File, r.Line, r.Kind, r.Via)
		}
		return tw.Flush()

	default: // Compact
		if len(rows) == 0 {
			fmt.Fprintln(w, suggestionLine(suggestions))
			return nil
		}
		fmt.Fprintln(w, plural(len(rows), "reference")+" found")
		for _, r := range rows {
			fmt.Fprintf(w, "%s:%d | %s | %s\n", r.File, r.Line, r.Kind, r.Via)
		}
		return nil
	}
}
