package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// rawTSConfig mirrors the handful of tsconfig.json fields this resolver
// cares about. encoding/json is used deliberately here, not a pack
// library: tsconfig's "paths" value is a typed nested map
// (string -> []string) under a variably-present "compilerOptions" key,
// exactly the shape encoding/json's struct tags decode precisely and no
// generic config library in the pack (viper) models as cleanly for a
// single, already-located file.
type rawTSConfig struct {
	Extends         string              `json:"extends"`
	CompilerOptions rawCompilerOptions  `json:"compilerOptions"`
}

type rawCompilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// TSConfig is the resolved, extends-chain-composed view of a project's
// path-alias configuration.
type TSConfig struct {
	// Dir is the directory the tsconfig.json that defines BaseURL lives in
	// — paths and baseUrl are resolved relative to this, per the
	// TypeScript convention of always resolving relative to the defining
	// file, not the root tsconfig.
	Dir     string
	BaseURL string
	Paths   map[string][]string
}

// LoadTSConfig reads path and composes its `extends` chain, with values
// defined closer to path overriding values inherited from a base config
// (TypeScript's own precedence rule). Returns ok=false if path doesn't
// exist — having no tsconfig.json is not an error, since alias resolution
// is just one optional step in classifying a specifier.
func LoadTSConfig(path string) (TSConfig, bool, error) {
	return loadTSConfigChain(path, make(map[string]bool))
}

func loadTSConfigChain(path string, visited map[string]bool) (TSConfig, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return TSConfig{}, false, err
	}
	if visited[abs] {
		// extends cycle — stop composing rather than loop forever.
		return TSConfig{}, false, nil
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return TSConfig{}, false, nil
		}
		return TSConfig{}, false, err
	}

	var raw rawTSConfig
	if err := json.Unmarshal(stripJSONComments(data), &raw); err != nil {
		return TSConfig{}, false, err
	}

	dir := filepath.Dir(abs)
	cfg := TSConfig{Dir: dir, BaseURL: raw.CompilerOptions.BaseURL, Paths: raw.CompilerOptions.Paths}

	if raw.Extends != "" && (strings.HasPrefix(raw.Extends, "./") || strings.HasPrefix(raw.Extends, "../")) {
		parentPath := filepath.Join(dir, raw.Extends)
		if filepath.Ext(parentPath) == "" {
			parentPath += ".json"
		}
		parent, ok, err := loadTSConfigChain(parentPath, visited)
		if err != nil {
			return TSConfig{}, false, err
		}
		if ok {
			cfg = mergeTSConfig(parent, cfg)
		}
	}
	// Package-name `extends` (resolving through node_modules) is out of
	// scope: workspace monorepos in this pack's examples consistently
	// reference a sibling tsconfig.base.json by relative path.

	return cfg, true, nil
}

// mergeTSConfig applies child over parent: an empty BaseURL/Paths in child
// inherits parent's, a non-empty one overrides it outright (TypeScript
// does not merge baseUrl, and overrides the whole paths map).
func mergeTSConfig(parent, child TSConfig) TSConfig {
	merged := parent
	merged.Dir = child.Dir
	if child.BaseURL != "" {
		merged.BaseURL = child.BaseURL
	}
	if len(child.Paths) > 0 {
		merged.Paths = child.Paths
	}
	return merged
}

// stripJSONComments removes // line comments so tsconfig.json's common
// JSONC dialect decodes with the standard library's strict JSON parser.
// Block comments and comments inside string literals are left alone,
// which is sufficient for the single-line "// " convention every tsconfig
// in the wild actually uses.
func stripJSONComments(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		inString := false
		for j := 0; j < len(line)-1; j++ {
			switch {
			case line[j] == '"' && (j == 0 || line[j-1] != '\\'):
				inString = !inString
			case !inString && line[j] == '/' && line[j+1] == '/':
				lines[i] = line[:j]
				j = len(line)
			}
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

// ResolveAlias tries every `paths` pattern against specifier, returning
// the first candidate absolute path known accepts. TypeScript path
// patterns use a single "*" wildcard at most.
func (c TSConfig) ResolveAlias(specifier string, known func(absPath string) bool) (string, bool) {
	if len(c.Paths) == 0 {
		return "", false
	}
	baseDir := c.Dir
	if c.BaseURL != "" {
		baseDir = filepath.Join(c.Dir, c.BaseURL)
	}

	for pattern, targets := range c.Paths {
		prefix, suffix, wildcard := splitWildcard(pattern)
		if wildcard {
			if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
				continue
			}
			matched := specifier[len(prefix) : len(specifier)-len(suffix)]
			for _, target := range targets {
				tprefix, tsuffix, twild := splitWildcard(target)
				candidateBase := tprefix
				if twild {
					candidateBase = tprefix + matched + tsuffix
				}
				full := filepath.Join(baseDir, candidateBase)
				if resolved, ok := resolveFromBase(full, hasSourceExtension(full), known); ok {
					return resolved, true
				}
			}
		} else if specifier == pattern {
			for _, target := range targets {
				full := filepath.Join(baseDir, target)
				if resolved, ok := resolveFromBase(full, hasSourceExtension(full), known); ok {
					return resolved, true
				}
			}
		}
	}
	return "", false
}

func splitWildcard(pattern string) (prefix, suffix string, hasWildcard bool) {
	idx := strings.IndexByte(pattern, '*')
	if idx < 0 {
		return pattern, "", false
	}
	return pattern[:idx], pattern[idx+1:], true
}
