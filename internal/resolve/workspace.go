package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workspace maps npm package names declared by this monorepo's own
// packages to their local directory, so an import of "@acme/ui" resolves
// to a local source tree instead of falling through to "external".
type Workspace struct {
	// packages maps package name -> absolute directory of that package.
	packages map[string]string
}

type rawPackageJSON struct {
	Name       string      `json:"name"`
	Workspaces interface{} `json:"workspaces"` // []string or {packages: []string}
}

type rawPnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// LoadWorkspace reads root/package.json and, if present, root's
// pnpm-workspace.yaml, expands every workspace glob, and records each
// member package's declared name.
func LoadWorkspace(root string) (*Workspace, error) {
	ws := &Workspace{packages: make(map[string]string)}

	patterns, err := workspacePatterns(root)
	if err != nil {
		return nil, err
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			continue
		}
		for _, dir := range matches {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			name, ok := packageName(dir)
			if ok {
				ws.packages[name] = dir
			}
		}
	}

	return ws, nil
}

func workspacePatterns(root string) ([]string, error) {
	var patterns []string

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkg rawPackageJSON
		if err := json.Unmarshal(data, &pkg); err == nil {
			patterns = append(patterns, workspacesFromField(pkg.Workspaces)...)
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml")); err == nil {
		var pw rawPnpmWorkspace
		if err := yaml.Unmarshal(data, &pw); err == nil {
			patterns = append(patterns, pw.Packages...)
		}
	}

	return patterns, nil
}

func workspacesFromField(raw interface{}) []string {
	switch v := raw.(type) {
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]interface{}:
		if list, ok := v["packages"].([]interface{}); ok {
			var out []string
			for _, item := range list {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

// packageName reads dir/package.json's "name" field.
func packageName(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return "", false
	}
	var pkg rawPackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil || pkg.Name == "" {
		return "", false
	}
	return pkg.Name, true
}

// Resolve maps a bare specifier to a workspace package's entry file, if
// specifier names one of this workspace's own packages. It prefers a
// src/ subdirectory over the package root when both contain a matching
// entry file, matching the layout convention this pack's monorepo
// examples use (compiled output lives at the package root, sources live
// under src/).
func (w *Workspace) Resolve(specifier string, known func(absPath string) bool) (string, bool) {
	if w == nil {
		return "", false
	}
	pkgName := PackageName(specifier)
	dir, ok := w.packages[pkgName]
	if !ok {
		return "", false
	}

	rest := strings.TrimPrefix(specifier, pkgName)
	rest = strings.TrimPrefix(rest, "/")

	candidateDirs := []string{filepath.Join(dir, "src"), dir}
	for _, candidateDir := range candidateDirs {
		base := candidateDir
		if rest != "" {
			base = filepath.Join(candidateDir, rest)
		} else {
			base = filepath.Join(candidateDir, "index")
		}
		if resolved, ok := resolveFromBase(base, hasSourceExtension(base), known); ok {
			return resolved, true
		}
	}
	return "", false
}
