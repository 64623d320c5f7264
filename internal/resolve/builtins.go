// Package resolve turns a raw import specifier into either an absolute
// project file path, a workspace package's local path, or a decision that
// the specifier names a Node builtin or an external npm package — the
// five-step classification a Resolver runs per specifier.
package resolve

import "strings"

// nodeBuiltins is the set of Node.js builtin module names a bare
// specifier might name.
var nodeBuiltins = map[string]bool{
	"assert":         true,
	"buffer":         true,
	"child_process":  true,
	"cluster":        true,
	"crypto":         true,
	"dgram":          true,
	"dns":            true,
	"events":         true,
	"fs":             true,
	"http":           true,
	"https":          true,
	"net":            true,
	"os":             true,
	"path":           true,
	"querystring":    true,
	"readline":       true,
	"stream":         true,
	"string_decoder": true,
	"timers":         true,
	"tls":            true,
	"tty":            true,
	"url":            true,
	"util":           true,
	"v8":             true,
	"vm":             true,
	"zlib":           true,
	"worker_threads": true,
	"perf_hooks":     true,
	"async_hooks":    true,
	"fs/promises":    true,
	"path/posix":     true,
	"path/win32":     true,
	"module":         true,
	"process":        true,
	"inspector":      true,
	"diagnostics_channel": true,
}

// IsBuiltin reports whether specifier names a Node builtin module, with or
// without the explicit "node:" prefix.
func IsBuiltin(specifier string) bool {
	if strings.HasPrefix(specifier, "node:") {
		return true
	}
	return nodeBuiltins[specifier]
}

// IsRelative reports whether specifier is a relative or absolute
// filesystem-style path rather than a bare module name.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") ||
		strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/")
}

// PackageName returns the npm package name portion of a bare specifier,
// stripping any subpath (e.g. "lodash/fp" -> "lodash",
// "@scope/pkg/sub" -> "@scope/pkg").
func PackageName(specifier string) string {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
