package project

import (
	"context"
	"fmt"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/snapshot"
	"github.com/codegraphhq/codegraph/internal/walk"
)

// IndexReport summarizes one Index call.
type IndexReport struct {
	FilesParsed     int
	FilesFromCache  int
	ResumedSnapshot bool
	Diagnostics     []diag.Diagnostic
}

// Index performs the project's initial load. If a compatible snapshot
// exists, the graph is restored from it and only the files whose content
// hash changed since the snapshot was written (plus their one-hop
// neighbors) go through parsing and graph assembly; everything else keeps
// the NodeIDs the snapshot already assigned it. With no usable snapshot,
// every discovered file is treated as added.
func (p *Project) Index(ctx context.Context) (IndexReport, error) {
	report := &diag.Report{}

	files, err := walk.Walk(p.Root, p.walkOptions())
	if err != nil {
		return IndexReport{}, fmt.Errorf("project: walk: %w", err)
	}
	currentPaths := make([]string, len(files))
	for i, f := range files {
		currentPaths[i] = f.AbsPath
	}

	resumed := false
	priorHashes := map[string]string{}
	if snap, err := snapshot.Load(p.cachePath); err == nil {
		if snap.Version == snapshot.Version && snap.ProjectRoot == p.Root {
			p.graph = graphdb.Restore(snap.Graph)
			priorHashes = snap.FileHashes
			report.Diagnostics = append(report.Diagnostics, snap.Diagnostics...)
			resumed = true
		} else {
			report.Add(diag.SnapshotInvalid, "", "snapshot version or project root mismatch, rebuilding")
		}
	}

	if err := p.refreshResolverInputs(); err != nil {
		return IndexReport{}, err
	}

	currentHashes, err := hashAll(ctx, currentPaths, report)
	if err != nil {
		return IndexReport{}, err
	}

	diff := snapshot.ComputeDiff(priorHashes, currentHashes)

	p.mu.Lock()
	p.fileHashes = currentHashes
	p.mu.Unlock()

	parsed, err := p.applyChanges(ctx, diff.Added, diff.Changed, diff.Removed, report)
	if err != nil {
		return IndexReport{}, err
	}

	if err := p.writeSnapshot(); err != nil {
		report.Add(diag.SnapshotWriteFailed, "", err.Error())
	}

	return IndexReport{
		FilesParsed:     parsed,
		FilesFromCache:  len(currentPaths) - parsed,
		ResumedSnapshot: resumed,
		Diagnostics:     report.Diagnostics,
	}, nil
}
