package resolve

import "path/filepath"

// sourceExtensions is the resolution order tried against an extensionless
// specifier, matching TypeScript's own module resolution order.
var sourceExtensions = []string{".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs"}

// ResolveRelative resolves a relative/absolute specifier against the
// absolute path of the importing file, trying, in order: the exact path if
// the specifier already carries a source extension, the path with each
// resolvable extension appended, then each extension's index file inside
// the path taken as a directory. known reports whether a candidate exists
// in the indexed file set.
func ResolveRelative(fromFile, specifier string, known func(absPath string) bool) (string, bool) {
	base := filepath.Clean(filepath.Join(filepath.Dir(fromFile), specifier))
	return resolveFromBase(base, hasSourceExtension(specifier), known)
}

// resolveFromBase applies the shared extension/index resolution order to
// an already-computed base path. exact carries a base path that already
// has a source extension, so the unmodified base is tried first.
func resolveFromBase(base string, exact bool, known func(absPath string) bool) (string, bool) {
	if exact && known(base) {
		return base, true
	}

	for _, ext := range sourceExtensions {
		candidate := base + ext
		if known(candidate) {
			return candidate, true
		}
	}

	for _, ext := range sourceExtensions {
		candidate := filepath.Join(base, "index"+ext)
		if known(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func hasSourceExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range sourceExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
