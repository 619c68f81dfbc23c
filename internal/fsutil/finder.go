// Package fsutil locates configuration files on disk.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFiles resolves path to a list of files. A regular file is returned as
// is; a directory is walked recursively for files ending with extension, in
// lexical order.
func FindFiles(path string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
