// Package walk discovers indexable TypeScript/JavaScript files under a
// project root, honoring .gitignore files and configured exclusions.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// skippedDirs are unconditionally excluded regardless of .gitignore content.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// sourceExtensions is the extension allow-list this walker indexes.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// Options configures a walk beyond the fixed node_modules/.git exclusion.
type Options struct {
	// ExcludePaths are root-relative path prefixes to exclude.
	ExcludePaths []string
	// ExcludeGlobs are filepath.Match patterns evaluated against the
	// root-relative path.
	ExcludeGlobs []string
}

// File is one discovered, indexable source file.
type File struct {
	AbsPath string
	RelPath string
}

// Walk walks root exactly once, returning indexable files in sorted
// (root-relative path) order. The graph builder receives them as a map
// keyed by path, so node insertion order across files is not fixed by
// this ordering.
func Walk(root string, opts Options) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot = filepath.Clean(absRoot)

	ignorers := newIgnoreStack(absRoot)

	var files []File
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == absRoot {
				ignorers.descend(path)
				return nil
			}
			name := d.Name()
			if skippedDirs[name] || isExcludedPrefix(rel, opts.ExcludePaths) || isExcludedGlob(rel, opts.ExcludeGlobs) {
				return fs.SkipDir
			}
			ignorers.descend(path)
			if ignorers.matches(rel, true) {
				return fs.SkipDir
			}
			return nil
		}

		if !sourceExtensions[filepath.Ext(d.Name())] {
			return nil
		}
		if isExcludedPrefix(rel, opts.ExcludePaths) || isExcludedGlob(rel, opts.ExcludeGlobs) {
			return nil
		}
		if ignorers.matches(rel, false) {
			return nil
		}

		files = append(files, File{AbsPath: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func isExcludedPrefix(rel string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

func isExcludedGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		// Let a pattern without a directory part (e.g. "*.stories.tsx")
		// match at any depth by also trying it against the base name.
		if ok, _ := filepath.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// ignoreStack tracks one compiled *ignore.GitIgnore per directory level that
// carries its own .gitignore, matching real npm workspaces where nested
// packages ship independent ignore files. Matching a path tries every
// ignorer from the file's directory up to the root.
type ignoreStack struct {
	root      string
	compiled  map[string]*ignore.GitIgnore // dir (abs) -> compiled .gitignore, if any
}

func newIgnoreStack(root string) *ignoreStack {
	return &ignoreStack{root: root, compiled: make(map[string]*ignore.GitIgnore)}
}

// descend compiles dir's .gitignore, if present, the first time dir is seen.
func (s *ignoreStack) descend(dir string) {
	if _, ok := s.compiled[dir]; ok {
		return
	}
	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		s.compiled[dir] = nil
		return
	}
	compiled, err := ignore.CompileIgnoreFile(gitignorePath)
	if err != nil {
		s.compiled[dir] = nil
		return
	}
	s.compiled[dir] = compiled
}

// matches reports whether rel (relative to s.root) is ignored by any
// .gitignore between its containing directory and the root.
func (s *ignoreStack) matches(rel string, isDir bool) bool {
	dir := filepath.Dir(filepath.Join(s.root, rel))
	for {
		if matcher := s.compiled[dir]; matcher != nil {
			relToDir, err := filepath.Rel(dir, filepath.Join(s.root, rel))
			if err == nil {
				candidate := filepath.ToSlash(relToDir)
				if isDir {
					candidate += "/"
				}
				if matcher.MatchesPath(candidate) {
					return true
				}
			}
		}
		if dir == s.root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false
}
