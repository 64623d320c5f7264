package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/codegraphhq/codegraph/internal/query"
)

type impactRow struct {
	File  string `json:"file"`
	Depth int    `json:"depth"`
}

// Impact renders a get_impact result, sorted by depth then path so the
// blast radius reads as a set of expanding rings.
func Impact(w io.Writer, format Format, root string, entries []query.ImpactEntry) error {
	rows := make([]impactRow, len(entries))
	for i, e := range entries {
		rows[i] = impactRow{File: relPath(root, e.Path), Depth: e.Depth}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Depth != rows[j].Depth {
			return rows[i].Depth < rows[j].Depth
		}
		return rows[i].File < rows[j].File
	})

	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(struct {
			Impact []impactRow `json:"impact"`
		}{rows})

	case Table:
		if len(rows) == 0 {
			fmt.Fprintln(w, "no files in blast radius")
			return nil
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "FILE\tDEPTH")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%d\n", r.File, r.Depth)
		}
		return tw.Flush()

	default: // Compact
		if len(rows) == 0 {
			fmt.Fprintln(w, "no files in blast radius")
			return nil
		}
		fmt.Fprintln(w, plural(len(rows), "file")+" in blast radius")
		for _, r := range rows {
			fmt.Fprintf(w, "%s | depth %d\n", r.File, r.Depth)
		}
		return nil
	}
}
