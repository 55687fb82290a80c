package pngopt

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindPNGFilesRecursively scans a directory for PNG files
func FindPNGFilesRecursively(directory string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if IsPNGFile(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// ExpandPaths expands directory arguments into the PNG files below them.
// Plain file arguments are kept only when they have a .png extension.
// The input order is preserved and duplicates are dropped.
func ExpandPaths(paths []string) ([]string, error) {
	var expanded []string
	seen := make(map[string]bool)

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		expanded = append(expanded, path)
	}

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !fi.IsDir() {
			if IsPNGFile(path) {
				add(path)
			}
			continue
		}

		files, err := FindPNGFilesRecursively(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		for _, f := range files {
			add(f)
		}
	}

	return expanded, nil
}
