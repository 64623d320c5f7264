package resolve

import "github.com/codegraphhq/codegraph/internal/extract"

// ExportsOf returns the already-extracted Export records for absPath, and
// false if absPath isn't a file this project indexed.
type ExportsOf func(absPath string) ([]extract.Export, bool)

// SpecifierResolver resolves a re-export's Source specifier (as written in
// fromFile) to an absolute file path.
type SpecifierResolver func(fromFile, specifier string) (string, bool)

// Origin is where a chased export name ultimately terminates.
type Origin struct {
	File      string
	LocalName string
	// Namespace is true when the chase terminated on `export * as ns`:
	// LocalName is meaningless and File's entire export surface is the
	// target.
	Namespace bool
}

// ChaseBarrel follows re-export chains starting at file's export named
// exportedAs until it reaches a plain declaration (ExportNamed/
// ExportDefault) or a namespace re-export, repeating through any number
// of intermediate barrel files. Cycles (a barrel that re-exports through
// itself, directly or via other barrels) terminate the chase with ok=false
// rather than looping forever.
func ChaseBarrel(file, exportedAs string, exportsOf ExportsOf, resolveSpecifier SpecifierResolver) (Origin, bool) {
	visited := make(map[[2]string]bool)
	return chase(file, exportedAs, exportsOf, resolveSpecifier, visited)
}

func chase(file, name string, exportsOf ExportsOf, resolveSpecifier SpecifierResolver, visited map[[2]string]bool) (Origin, bool) {
	key := [2]string{file, name}
	if visited[key] {
		return Origin{}, false
	}
	visited[key] = true

	exports, ok := exportsOf(file)
	if !ok {
		return Origin{}, false
	}

	// Direct match: a plain declaration or a rename re-export naming
	// `name` exactly.
	for _, e := range exports {
		if e.ExportedAs != name {
			continue
		}
		switch e.Form {
		case extract.ExportNamed, extract.ExportDefault:
			return Origin{File: file, LocalName: e.LocalName}, true
		case extract.ExportReexportNamed:
			next, ok := resolveSpecifier(file, e.Source)
			if !ok {
				return Origin{}, false
			}
			return chase(next, e.LocalName, exportsOf, resolveSpecifier, visited)
		case extract.ExportReexportStarAs:
			next, ok := resolveSpecifier(file, e.Source)
			if !ok {
				return Origin{}, false
			}
			return Origin{File: next, Namespace: true}, true
		}
	}

	// No direct match: fall through any `export * from` barrels, in
	// source order, since the name might be re-exported transparently.
	for _, e := range exports {
		if e.Form != extract.ExportReexportStar {
			continue
		}
		next, ok := resolveSpecifier(file, e.Source)
		if !ok {
			continue
		}
		if origin, ok := chase(next, name, exportsOf, resolveSpecifier, visited); ok {
			return origin, true
		}
	}

	return Origin{}, false
}
