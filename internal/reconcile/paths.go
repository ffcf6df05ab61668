package reconcile

import (
	"runtime"
	"strings"
)

// caseInsensitivePaths reports whether the platform's default filesystems
// compare paths case-insensitively.
var caseInsensitivePaths = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// normalizePath unifies separators to forward slashes, strips a trailing
// separator, and folds case only on case-insensitive platforms. Exact path
// equality must not conflate distinct files on case-sensitive filesystems.
func normalizePath(path string, caseInsensitive bool) string {
	unified := strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	for len(unified) > 1 && strings.HasSuffix(unified, "/") {
		unified = strings.TrimSuffix(unified, "/")
	}
	if caseInsensitive {
		unified = strings.ToLower(unified)
	}
	return unified
}

// baseName returns the final path component regardless of which separator
// style the stored path uses.
func baseName(path string) string {
	unified := strings.ReplaceAll(path, "\\", "/")
	unified = strings.TrimSuffix(unified, "/")
	if idx := strings.LastIndexByte(unified, '/'); idx >= 0 {
		return unified[idx+1:]
	}
	return unified
}
