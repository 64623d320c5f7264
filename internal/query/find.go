package query

import (
	"path/filepath"
	"regexp"
	"sort"

	"github.com/codegraphhq/codegraph/internal/graphdb"
)

// FindResult is the outcome of a find_symbol call: either a list of
// matches, or — when nothing matched — a short list of near-miss names to
// suggest instead.
type FindResult struct {
	Matches     []SymbolRef
	Suggestions []string
}

// FindOptions narrows a find/context lookup beyond name and file scope.
// The zero value matches every kind, case-sensitively.
type FindOptions struct {
	Kind            graphdb.SymbolKind
	KindSet         bool
	CaseInsensitive bool
}

// FindOption configures a FindOptions value.
type FindOption func(*FindOptions)

// WithKind restricts matches to one declaration kind.
func WithKind(k graphdb.SymbolKind) FindOption {
	return func(o *FindOptions) { o.Kind = k; o.KindSet = true }
}

// WithCaseInsensitive folds case when matching pattern against symbol names.
func WithCaseInsensitive() FindOption {
	return func(o *FindOptions) { o.CaseInsensitive = true }
}

// FindSymbol looks up every Symbol whose name matches pattern — a literal
// name or a regular expression, matched against the whole name — optionally
// scoped to files whose path (relative to root) matches fileGlob. A
// fileGlob of "" matches every file. An invalid regex pattern matches
// nothing and suggests nothing, rather than erroring: find is a read-only
// query operation with no error return of its own.
func FindSymbol(g *graphdb.Graph, root, pattern, fileGlob string, opts ...FindOption) FindResult {
	g.RLock()
	defer g.RUnlock()
	return findSymbolLocked(g, root, pattern, fileGlob, opts...)
}

// findSymbolLocked is FindSymbol's body, callable by other query
// operations that already hold the graph's read lock.
func findSymbolLocked(g *graphdb.Graph, root, pattern, fileGlob string, opts ...FindOption) FindResult {
	var o FindOptions
	for _, fn := range opts {
		fn(&o)
	}

	re, err := compileNamePattern(pattern, o.CaseInsensitive)
	if err != nil {
		return FindResult{}
	}

	var matches []SymbolRef
	var allNames []string

	for _, node := range g.Nodes() {
		if node.Kind != graphdb.SymbolNode {
			continue
		}
		allNames = append(allNames, node.Symbol.Name)
		if o.KindSet && node.Symbol.Kind != o.Kind {
			continue
		}
		if !re.MatchString(node.Symbol.Name) {
			continue
		}
		ref, ok := symbolRef(g, node.ID)
		if !ok {
			continue
		}
		if fileGlob != "" && !matchesFileGlob(root, ref.File, fileGlob) {
			continue
		}
		matches = append(matches, ref)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].File != matches[j].File {
			return matches[i].File < matches[j].File
		}
		return matches[i].StartLine < matches[j].StartLine
	})

	if len(matches) == 0 {
		return FindResult{Suggestions: Suggest(dedupe(allNames), pattern, 3)}
	}
	return FindResult{Matches: matches}
}

// compileNamePattern anchors pattern to match a whole symbol name, so a
// plain identifier behaves as exact equality while a user-supplied regex
// (e.g. "^get.*") still works unanchored internally.
func compileNamePattern(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	expr := "^(?:" + pattern + ")$"
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

func matchesFileGlob(root, absPath, pattern string) bool {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	ok, err := filepath.Match(pattern, rel)
	if err != nil {
		return false
	}
	return ok
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
