package render

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
)

// relPath renders abs relative to root for display, falling back to abs
// itself when filepath.Rel cannot relate the two (e.g. an external package
// name, which is not an absolute path).
func relPath(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// newTable returns a tabwriter configured the way every table renderer in
// this package uses it: tab-separated input columns, two trailing spaces
// of padding between rendered columns.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func suggestionLine(suggestions []string) string {
	if len(suggestions) == 0 {
		return "no matches"
	}
	line := "no matches, did you mean:"
	for _, s := range suggestions {
		line += " " + s
	}
	return line
}
