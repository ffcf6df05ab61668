// Package fileutil provides filesystem helpers for library scanning.
package fileutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// videoExtensions are the container extensions picked up by library scans.
var videoExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".mov":  {},
	".avi":  {},
	".webm": {},
	".ts":   {},
	".m2ts": {},
	".wmv":  {},
}

// IsVideoFile reports whether a file name carries a recognized video
// container extension.
func IsVideoFile(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FindVideoFiles walks root recursively and returns every video file path in
// sorted order. Hidden directories are skipped.
func FindVideoFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if IsVideoFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
