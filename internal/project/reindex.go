package project

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/parse"
	"github.com/codegraphhq/codegraph/internal/watch"
)

// debounceWindow is how long the watcher coalesces a burst of filesystem
// events into a single batch before handing it to Reindex.
const debounceWindow = 75 * time.Millisecond

// configFileNames are files the resolver's inputs depend on directly
// (workspace manifests, tsconfig chains) rather than through the graph.
// A batch touching one of these triggers a resolver-input refresh before
// the batch itself is applied.
var configFileNames = map[string]bool{
	"package.json":        true,
	"pnpm-workspace.yaml": true,
	"tsconfig.json":       true,
}

// Reindex applies one debounced watch batch: files the batch reports
// Created or Modified are re-parsed, files it reports Removed are torn
// out of the graph, and in both cases each touched file's one-hop
// neighbors are swept into the same Builder pass so edges crossing the
// batch boundary stay correct. See applyChanges.
func (p *Project) Reindex(ctx context.Context, batch watch.Batch) (IndexReport, error) {
	report := &diag.Report{}

	var added, changed, removed []string
	refreshResolver := false
	for path, kind := range batch {
		if configFileNames[filepath.Base(path)] {
			refreshResolver = true
		}
		switch kind {
		case watch.Removed:
			removed = append(removed, path)
		default:
			p.mu.Lock()
			_, known := p.fileHashes[path]
			p.mu.Unlock()
			if known {
				changed = append(changed, path)
			} else {
				added = append(added, path)
			}
		}
	}

	if refreshResolver {
		if err := p.refreshResolverInputs(); err != nil {
			return IndexReport{}, err
		}
	}

	parsed, err := p.applyChanges(ctx, added, changed, removed, report)
	if err != nil {
		return IndexReport{}, err
	}

	return IndexReport{
		FilesParsed: parsed,
		Diagnostics: report.Diagnostics,
	}, nil
}

// StartWatching launches a recursive filesystem watcher over the project
// root and runs it until ctx is cancelled or Close is called. Each
// debounced batch is applied via Reindex; per-batch errors are logged
// rather than propagated, since a single bad batch should not take the
// watcher down.
func (p *Project) StartWatching(ctx context.Context) error {
	include := func(path string) bool {
		_, ok := parse.GrammarForPath(path)
		return ok
	}

	handler := func(batch watch.Batch) {
		if _, err := p.Reindex(ctx, batch); err != nil {
			p.log.Warn("project: reindex failed", "error", err)
		}
	}

	w, err := watch.New([]string{p.Root}, debounceWindow, include, handler, p.log)
	if err != nil {
		return fmt.Errorf("project: start watcher: %w", err)
	}
	p.watcher = w

	return w.Run(ctx)
}

