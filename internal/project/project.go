// Package project owns the end-to-end lifecycle of one indexed
// TypeScript/JavaScript project: discovery, parsing, graph assembly,
// snapshot persistence, and the live filesystem watcher. It is the single
// object every CLI command and the assistant-tool server construct and
// drive.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/codegraphhq/codegraph/internal/config"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/parse"
	"github.com/codegraphhq/codegraph/internal/resolve"
	"github.com/codegraphhq/codegraph/internal/snapshot"
	"github.com/codegraphhq/codegraph/internal/walk"
	"github.com/codegraphhq/codegraph/internal/watch"
)

// Project owns one project's grammar set, resolver inputs, live graph,
// and on-disk snapshot path.
type Project struct {
	Root string

	grammars  *parse.Set
	graph     *graphdb.Graph
	cfg       config.Config
	log       *slog.Logger
	cachePath string

	// fileHashes records each currently known file's content hash, the
	// basis for both cold-start snapshot diffing and the resolver's
	// "is this path part of the project" predicate.
	mu         sync.Mutex
	fileHashes map[string]string
	tsconfigs  map[string]resolve.TSConfig
	workspace  *resolve.Workspace

	watcher *watch.Watcher
}

// Open constructs a Project rooted at root. It does not index anything;
// call Index to populate the graph.
func Open(root string, log *slog.Logger) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("project: resolve root: %w", err)
	}
	grammars, err := parse.NewSet()
	if err != nil {
		return nil, fmt.Errorf("project: compile grammars: %w", err)
	}
	cfg, err := config.Load(absRoot)
	if err != nil {
		grammars.Close()
		return nil, fmt.Errorf("project: load config: %w", err)
	}
	cachePath, err := snapshot.CachePath(absRoot)
	if err != nil {
		grammars.Close()
		return nil, fmt.Errorf("project: compute cache path: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Project{
		Root:       absRoot,
		grammars:   grammars,
		graph:      graphdb.New(),
		cfg:        cfg,
		log:        log,
		cachePath:  cachePath,
		fileHashes: make(map[string]string),
	}, nil
}

// Graph returns the live graph every query operates against.
func (p *Project) Graph() *graphdb.Graph {
	return p.graph
}

// Close stops any running watcher, writes a final snapshot, and releases
// compiled grammar resources.
func (p *Project) Close() error {
	if p.watcher != nil {
		if err := p.watcher.Close(); err != nil {
			p.log.Warn("project: error closing watcher", "error", err)
		}
	}
	err := p.writeSnapshot()
	p.grammars.Close()
	return err
}

func (p *Project) writeSnapshot() error {
	p.mu.Lock()
	hashes := make(map[string]string, len(p.fileHashes))
	for k, v := range p.fileHashes {
		hashes[k] = v
	}
	p.mu.Unlock()

	snap := snapshot.Snapshot{
		Version:     snapshot.Version,
		ProjectRoot: p.Root,
		FileHashes:  hashes,
		Graph:       p.graph.Export(),
	}
	if err := snapshot.Save(p.cachePath, snap); err != nil {
		p.log.Warn("project: snapshot write failed", "error", err)
		return err
	}
	return nil
}

func (p *Project) walkOptions() walk.Options {
	return walk.Options{ExcludePaths: p.cfg.Exclude.Paths, ExcludeGlobs: p.cfg.Exclude.Globs}
}

// knownFn builds the resolver's "is this an indexed project file" predicate
// over the current fileHashes key set. Caller must hold p.mu is not
// required; the returned closure takes the lock itself on each call since
// resolution happens during concurrent extraction.
func (p *Project) knownFn() func(string) bool {
	return func(abs string) bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		_, ok := p.fileHashes[abs]
		return ok
	}
}

func (p *Project) newResolver() *resolve.Resolver {
	p.mu.Lock()
	tsconfigs := p.tsconfigs
	workspace := p.workspace
	p.mu.Unlock()
	return resolve.NewResolver(p.knownFn(), tsconfigs, workspace)
}

// refreshResolverInputs reloads the workspace manifest and every
// tsconfig.json under root, composing each extends chain. Called once at
// cold start and again whenever a reindex's file set includes a
// package.json, pnpm-workspace.yaml, or tsconfig.json (config files the
// resolver itself depends on).
func (p *Project) refreshResolverInputs() error {
	ws, err := resolve.LoadWorkspace(p.Root)
	if err != nil {
		return fmt.Errorf("project: load workspace: %w", err)
	}

	tsconfigs := make(map[string]resolve.TSConfig)
	err = filepath.WalkDir(p.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != "tsconfig.json" {
			return nil
		}
		cfg, ok, err := resolve.LoadTSConfig(path)
		if err != nil {
			p.log.Warn("project: failed to load tsconfig", "path", path, "error", err)
			return nil
		}
		if ok {
			tsconfigs[filepath.Dir(path)] = cfg
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("project: discover tsconfigs: %w", err)
	}

	p.mu.Lock()
	p.workspace = ws
	p.tsconfigs = tsconfigs
	p.mu.Unlock()
	return nil
}

func languageForPath(path string) graphdb.Language {
	switch filepath.Ext(path) {
	case ".ts":
		return graphdb.LangTS
	case ".tsx":
		return graphdb.LangTSX
	case ".jsx":
		return graphdb.LangJSX
	default:
		return graphdb.LangJS
	}
}

