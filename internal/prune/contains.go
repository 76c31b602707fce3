package prune

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Canonicalize resolves path to a stable comparable form: absolute, symlinks
// resolved where possible, separators cleaned, and case folded on
// case-insensitive platforms. Resolution failures (e.g. the path does not
// exist yet) fall back to the cleaned absolute form.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	abs = filepath.Clean(abs)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		abs = strings.ToLower(abs)
	}
	return abs, nil
}

// Within reports whether canonical path p lies under (or equals) canonical
// root. The comparison is directory-boundary aware: "/data/ab" is not inside
// "/data/a". Both arguments must already be canonicalized.
func Within(root, p string) bool {
	if p == root {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(p, root)
}
