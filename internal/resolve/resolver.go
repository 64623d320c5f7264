package resolve

import "path/filepath"

// Outcome classifies how a specifier resolved.
type Outcome int

const (
	OutcomeFile Outcome = iota
	OutcomeBuiltin
	OutcomeExternal
	OutcomeUnresolved
)

// Resolution is the result of classifying one import specifier from one
// importing file.
type Resolution struct {
	Outcome  Outcome
	AbsPath  string // set when Outcome == OutcomeFile
	Name     string // builtin/external package name
}

// Resolver classifies import specifiers against a project's known file
// set, tsconfig path aliases, and workspace package map.
type Resolver struct {
	known     func(absPath string) bool
	tsconfigs map[string]TSConfig // directory with its own tsconfig -> its composed TSConfig
	workspace *Workspace
}

// NewResolver builds a Resolver. known reports whether an absolute path
// is one of the project's indexed source files. tsconfigByDir maps every
// directory that has its own (already extends-composed) TSConfig; Resolve
// walks up from the importing file's directory to find the nearest one,
// matching how the TypeScript compiler itself looks up tsconfig.json.
func NewResolver(known func(absPath string) bool, tsconfigByDir map[string]TSConfig, workspace *Workspace) *Resolver {
	return &Resolver{known: known, tsconfigs: tsconfigByDir, workspace: workspace}
}

// Resolve classifies specifier as imported from fromFile (an absolute
// path), trying in order: relative/absolute path, tsconfig alias,
// workspace package, Node builtin, external.
func (r *Resolver) Resolve(fromFile, specifier string) Resolution {
	if IsRelative(specifier) {
		if abs, ok := ResolveRelative(fromFile, specifier, r.known); ok {
			return Resolution{Outcome: OutcomeFile, AbsPath: abs}
		}
		return Resolution{Outcome: OutcomeUnresolved}
	}

	if cfg, ok := r.nearestTSConfig(fromFile); ok {
		if abs, ok := cfg.ResolveAlias(specifier, r.known); ok {
			return Resolution{Outcome: OutcomeFile, AbsPath: abs}
		}
	}

	if abs, ok := r.workspace.Resolve(specifier, r.known); ok {
		return Resolution{Outcome: OutcomeFile, AbsPath: abs}
	}

	if IsBuiltin(specifier) {
		return Resolution{Outcome: OutcomeBuiltin, Name: specifier}
	}

	return Resolution{Outcome: OutcomeExternal, Name: PackageName(specifier)}
}

func (r *Resolver) nearestTSConfig(fromFile string) (TSConfig, bool) {
	dir := filepath.Dir(fromFile)
	for {
		if cfg, ok := r.tsconfigs[dir]; ok {
			return cfg, true
		}
		next := filepath.Dir(dir)
		if next == dir {
			return TSConfig{}, false
		}
		dir = next
	}
}
