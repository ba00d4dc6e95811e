// Package fs provides file system adapters for resolving and fingerprinting corpus files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker yields the files below a corpus directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root in lexical order.
// Entries whose name matches one of ignores are skipped, directories included.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && ignored(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func ignored(name string, ignores []string) bool {
	for _, pattern := range ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
