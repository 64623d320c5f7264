package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/codegraphhq/codegraph/internal/query"
)

// Stats renders a get_stats result.
func Stats(w io.Writer, format Format, stats query.Stats) error {
	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(stats)

	case Table:
		tw := newTable(w)
		fmt.Fprintln(tw, "METRIC\tVALUE")
		fmt.Fprintf(tw, "files\t%d\n", stats.TotalFiles)
		fmt.Fprintf(tw, "symbols\t%d\n", stats.TotalSymbols)
		fmt.Fprintf(tw, "external packages\t%d\n", stats.TotalExternalPackages)
		for _, lang := range sortedKeys(stats.ByLanguage) {
			entry := stats.ByLanguage[lang]
			fmt.Fprintf(tw, "%s files\t%d\n", lang, entry.Files)
			fmt.Fprintf(tw, "%s symbols\t%d\n", lang, entry.Symbols)
		}
		for _, kind := range sortedIntKeys(stats.BySymbolKind) {
			fmt.Fprintf(tw, "%s symbols\t%d\n", kind, stats.BySymbolKind[kind])
		}
		return tw.Flush()

	default: // Compact
		fmt.Fprintf(w, "%d files | %d symbols | %d external packages\n",
			stats.TotalFiles, stats.TotalSymbols, stats.TotalExternalPackages)
		for _, lang := range sortedKeys(stats.ByLanguage) {
			entry := stats.ByLanguage[lang]
			fmt.Fprintf(w, "%s | %d files | %d symbols\n", lang, entry.Files, entry.Symbols)
		}
		return nil
	}
}

func sortedKeys(m map[string]query.LanguageStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
