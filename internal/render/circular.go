package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/codegraphhq/codegraph/internal/query"
)

// Circular renders a detect_circular result.
func Circular(w io.Writer, format Format, root string, cycles []query.Cycle) error {
	rels := make([][]string, len(cycles))
	for i, c := range cycles {
		files := make([]string, len(c.Files))
		for j, f := range c.Files {
			files[j] = relPath(root, f)
		}
		rels[i] = files
	}

	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(struct {
			Cycles [][]string `json:"cycles"`
		}{rels})

	case Table:
		if len(rels) == 0 {
			fmt.Fprintln(w, "no import cycles found")
			return nil
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "CYCLE\tFILES")
		for i, files := range rels {
			fmt.Fprintf(tw, "%d\t%s\n", i+1, strings.Join(files, ", "))
		}
		return tw.Flush()

	default: // Compact
		if len(rels) == 0 {
			fmt.Fprintln(w, "no import cycles found")
			return nil
		}
		fmt.Fprintln(w, plural(len(rels), "cycle")+" found")
		for _, files := range rels {
			fmt.Fprintln(w, strings.Join(files, " -> "))
		}
		return nil
	}
}
