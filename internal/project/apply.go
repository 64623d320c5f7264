package project

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/codegraphhq/codegraph/internal/assemble"
	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/extract"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/parse"
	"github.com/codegraphhq/codegraph/internal/snapshot"
	"golang.org/x/sync/errgroup"
)

// hashAll reads every path and returns its content hash, without parsing.
// This is the cheap pass that lets a cold start with a valid snapshot
// decide which files actually need the expensive tree-sitter pass.
func hashAll(ctx context.Context, paths []string, report *diag.Report) (map[string]string, error) {
	hashes := make(map[string]string, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				report.Add(diag.ParseFailure, path, err.Error())
				mu.Unlock()
				return nil
			}
			mu.Lock()
			hashes[path] = snapshot.HashContent(data)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// neighborClosure finds the one-hop files that must be reprocessed
// alongside a changed/removed set so their edges into and out of it stay
// correct: files that currently import any of seed (so stale edges into a
// since-deleted symbol get recomputed) and files that seed's still-present
// members import (so barrel-chase/import-binding resolution has every
// target it needs already present in the same Builder batch). Chains of
// re-exports more than one hop beyond this closure may lag until the next
// full Index — see DESIGN.md.
func neighborClosure(g *graphdb.Graph, seed []string) (importers, targets []string) {
	g.RLock()
	defer g.RUnlock()

	importerSet := make(map[string]bool)
	targetSet := make(map[string]bool)

	for _, path := range seed {
		fileID, ok := g.FileByPath(path)
		if !ok {
			continue
		}
		for _, e := range g.EdgesIn(fileID, graphdb.RawImport) {
			if from, ok := g.Node(e.From); ok && from.File != nil {
				importerSet[from.File.Path] = true
			}
		}
		for _, e := range g.EdgesOut(fileID, graphdb.RawImport) {
			if to, ok := g.Node(e.To); ok && to.File != nil {
				targetSet[to.File.Path] = true
			}
		}
	}

	for p := range importerSet {
		importers = append(importers, p)
	}
	for p := range targetSet {
		targets = append(targets, p)
	}
	sort.Strings(importers)
	sort.Strings(targets)
	return importers, targets
}

// applyChanges is the shared core of Index (diffed against a restored
// snapshot) and Reindex (diffed against a watch batch): remove the
// affected files plus their one-hop neighbors from the graph, re-parse
// just that batch, and re-run the three-pass builder over it. Caller
// supplies added/changed/removed already deduplicated against each other.
func (p *Project) applyChanges(ctx context.Context, added, changed, removed []string, report *diag.Report) (parsed int, err error) {
	seed := append(append(append([]string{}, added...), changed...), removed...)
	importers, targets := neighborClosure(p.graph, seed)

	batchSet := make(map[string]bool)
	for _, path := range added {
		batchSet[path] = true
	}
	for _, path := range changed {
		batchSet[path] = true
	}
	for _, path := range importers {
		batchSet[path] = true
	}
	for _, path := range targets {
		batchSet[path] = true
	}
	removedSet := make(map[string]bool, len(removed))
	for _, path := range removed {
		removedSet[path] = true
		delete(batchSet, path)
	}

	batch := make([]string, 0, len(batchSet))
	for path := range batchSet {
		batch = append(batch, path)
	}
	sort.Strings(batch)

	// RemoveFile takes the graph's lock itself, so it runs before the
	// Lock()/Unlock() span Build expects to already be holding.
	for path := range removedSet {
		p.graph.RemoveFile(path)
	}
	for _, path := range batch {
		p.graph.RemoveFile(path)
	}

	results, err := p.parseBatch(ctx, batch, report)
	if err != nil {
		return 0, err
	}

	p.graph.Lock()
	builder := assemble.New(p.graph, p.newResolver(), report)
	builder.Build(results)
	p.graph.PruneExternals()
	p.graph.Unlock()

	p.mu.Lock()
	for path := range removedSet {
		delete(p.fileHashes, path)
	}
	p.mu.Unlock()

	return len(batch), nil
}

// parseBatch runs parse+extract for every path in batch across a worker
// pool, recording each file's content hash as it reads it.
func (p *Project) parseBatch(ctx context.Context, batch []string, report *diag.Report) (map[string]extract.FileResult, error) {
	results := make(map[string]extract.FileResult, len(batch))
	hashes := make(map[string]string, len(batch))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range batch {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				report.Add(diag.ParseFailure, path, err.Error())
				mu.Unlock()
				return nil
			}
			grammar, ok := parse.GrammarForPath(path)
			if !ok {
				return nil
			}
			result := extract.File(p.grammars, grammar, languageForPath(path), path, src)
			if result.ParseErr != nil {
				mu.Lock()
				report.Add(diag.ParseFailure, path, result.ParseErr.Error())
				mu.Unlock()
			}

			mu.Lock()
			results[path] = result
			hashes[path] = snapshot.HashContent(src)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	for path, h := range hashes {
		p.fileHashes[path] = h
	}
	p.mu.Unlock()

	return results, nil
}
