package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/codegraphhq/codegraph/internal/query"
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

// commonParams is embedded by every tool's request shape: project_path
// and limit are accepted uniformly across all six tools.
type commonParams struct {
	ProjectPath string `json:"project_path,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

func applyLimit[T any](rows []T, limit int) []T {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}

type symbolRow struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Exported bool   `json:"exported"`
}

func toSymbolRows(root string, refs []query.SymbolRef) []symbolRow {
	rows := make([]symbolRow, len(refs))
	for i, r := range refs {
		rows[i] = symbolRow{File: relPath(root, r.File), Line: r.StartLine, Kind: r.Kind.String(), Name: r.Name, Exported: r.Exported}
	}
	return rows
}

type referenceRow struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Via  string `json:"via"`
}

func toReferenceRows(root string, refs []query.Reference) []referenceRow {
	rows := make([]referenceRow, len(refs))
	for i, r := range refs {
		rows[i] = referenceRow{File: relPath(root, r.From.File), Line: r.From.StartLine, Kind: r.Kind.String(), Via: r.Via}
	}
	return rows
}

func (s *Server) registerTools() {
	s.registerTool(&Tool{
		Name:        "find_symbol",
		Description: "Find every declaration of a named symbol in the project, optionally scoped to files matching a glob.",
		InputSchema: schema(map[string]interface{}{
			"pattern":      strProp("Exact symbol name to find"),
			"file_glob":    strProp("Optional glob, relative to project root, to scope the search"),
			"project_path": strProp("Optional path to the project root (defaults to the server's project)"),
			"limit":        numProp("Maximum number of results"),
		}, "pattern"),
		Handler: handleFindSymbol,
	})

	s.registerTool(&Tool{
		Name:        "find_references",
		Description: "Find every call site, import, and type reference to a named symbol.",
		InputSchema: schema(map[string]interface{}{
			"pattern":      strProp("Exact symbol name to find references for"),
			"project_path": strProp("Optional path to the project root"),
			"limit":        numProp("Maximum number of results"),
		}, "pattern"),
		Handler: handleFindReferences,
	})

	s.registerTool(&Tool{
		Name:        "get_impact",
		Description: "List every file that transitively depends on a symbol's defining file, nearest first.",
		InputSchema: schema(map[string]interface{}{
			"pattern":      strProp("Exact symbol name whose blast radius to compute"),
			"project_path": strProp("Optional path to the project root"),
			"limit":        numProp("Maximum number of results"),
		}, "pattern"),
		Handler: handleGetImpact,
	})

	s.registerTool(&Tool{
		Name:        "detect_circular",
		Description: "List every circular import chain among the project's files.",
		InputSchema: schema(map[string]interface{}{
			"project_path": strProp("Optional path to the project root"),
			"limit":        numProp("Maximum number of cycles to report"),
		}),
		Handler: handleDetectCircular,
	})

	s.registerTool(&Tool{
		Name:        "get_context",
		Description: "Get a symbol's full relationship view: definitions, references, callers, callees, and type hierarchy.",
		InputSchema: schema(map[string]interface{}{
			"pattern":      strProp("Exact symbol name to build context for"),
			"file_glob":    strProp("Optional glob, relative to project root, to scope the match"),
			"project_path": strProp("Optional path to the project root"),
		}, "pattern"),
		Handler: handleGetContext,
	})

	s.registerTool(&Tool{
		Name:        "get_stats",
		Description: "Get project-wide totals: file count, symbol count, external packages, and per-language breakdown.",
		InputSchema: schema(map[string]interface{}{
			"project_path": strProp("Optional path to the project root"),
		}),
		Handler: handleGetStats,
	})
}

func schema(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func strProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func numProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func handleFindSymbol(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req struct {
		commonParams
		Pattern  string `json:"pattern"`
		FileGlob string `json:"file_glob"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}

	result := query.FindSymbol(p.Graph(), p.Root, req.Pattern, req.FileGlob)
	if len(result.Matches) == 0 {
		return nil, &notFoundError{pattern: req.Pattern, suggestions: result.Suggestions}
	}

	rows := applyLimit(toSymbolRows(p.Root, result.Matches), req.Limit)
	return map[string]interface{}{"definitions": rows, "count": len(rows)}, nil
}

func handleFindReferences(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req struct {
		commonParams
		Pattern string `json:"pattern"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}

	found := query.FindSymbol(p.Graph(), p.Root, req.Pattern, "")
	if len(found.Matches) == 0 {
		return nil, &notFoundError{pattern: req.Pattern, suggestions: found.Suggestions}
	}

	var refs []query.Reference
	for _, m := range found.Matches {
		refs = append(refs, query.FindReferences(p.Graph(), m.ID)...)
	}

	rows := applyLimit(toReferenceRows(p.Root, refs), req.Limit)
	return map[string]interface{}{"references": rows, "count": len(rows)}, nil
}

func handleGetImpact(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req struct {
		commonParams
		Pattern string `json:"pattern"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}

	entries, suggestions := query.ImpactByPattern(p.Graph(), p.Root, req.Pattern, "")
	if entries == nil && suggestions != nil {
		return nil, &notFoundError{pattern: req.Pattern, suggestions: suggestions}
	}

	type impactRow struct {
		File  string `json:"file"`
		Depth int    `json:"depth"`
	}
	rows := make([]impactRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, impactRow{File: relPath(p.Root, e.Path), Depth: e.Depth})
	}

	rows = applyLimit(rows, req.Limit)
	return map[string]interface{}{"impact": rows, "count": len(rows)}, nil
}

func handleDetectCircular(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req commonParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}

	cycles, err := query.DetectCircular(p.Graph())
	if err != nil {
		return nil, fmt.Errorf("mcpserver: detect_circular: %w", err)
	}

	rels := make([][]string, len(cycles))
	for i, c := range cycles {
		files := make([]string, len(c.Files))
		for j, f := range c.Files {
			files[j] = relPath(p.Root, f)
		}
		rels[i] = files
	}
	rels = applyLimit(rels, req.Limit)
	return map[string]interface{}{"cycles": rels, "count": len(rels)}, nil
}

func handleGetContext(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req struct {
		commonParams
		Pattern  string `json:"pattern"`
		FileGlob string `json:"file_glob"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}

	sctx, suggestions := query.GetContext(p.Graph(), p.Root, req.Pattern, req.FileGlob)
	if len(sctx.Definitions) == 0 {
		return nil, &notFoundError{pattern: req.Pattern, suggestions: suggestions}
	}

	return map[string]interface{}{
		"definitions":    toSymbolRows(p.Root, sctx.Definitions),
		"references":     toReferenceRows(p.Root, sctx.References),
		"callers":        toReferenceRows(p.Root, sctx.Callers),
		"callees":        toReferenceRows(p.Root, sctx.Callees),
		"extends":        toReferenceRows(p.Root, sctx.Extends),
		"implements":     toReferenceRows(p.Root, sctx.Implements),
		"extended_by":    toReferenceRows(p.Root, sctx.ExtendedBy),
		"implemented_by": toReferenceRows(p.Root, sctx.ImplementedBy),
	}, nil
}

func handleGetStats(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	var req commonParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	p, err := s.resolveProject(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}
	return query.GetStats(p.Graph()), nil
}
