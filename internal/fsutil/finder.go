// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"slices"
)

// FindFilesByName lists the regular files directly inside dir whose base name
// is one of names. The search does not descend into subdirectories. Results
// are full paths sorted lexically so callers see a stable order.
func FindFilesByName(dir string, names ...string) ([]string, error) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if _, ok := wanted[e.Name()]; !ok {
			continue
		}
		if !e.Type().IsRegular() {
			// Symlinks count when they point at a regular file.
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	slices.Sort(files)
	return files, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
