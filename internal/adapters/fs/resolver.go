package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

// hiddenPattern skips dot files and dot directories, the artifact store included.
const hiddenPattern = ".?*"

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements ports.InputResolver using filepath.Glob.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Resolve expands pattern into a sorted list of unique files.
func (r *Resolver) Resolve(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNoInputFiles.Error()), "pattern", pattern)
	}

	unique := make(map[string]struct{})
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCorpusOpenFailed.Error()), "file", match)
		}
		if !info.IsDir() {
			unique[match] = struct{}{}
			continue
		}
		for file := range r.walker.WalkFiles(match, []string{hiddenPattern}) {
			unique[file] = struct{}{}
		}
	}

	if len(unique) == 0 {
		return nil, zerr.With(domain.ErrNoInputFiles, "pattern", pattern)
	}

	files := make([]string, 0, len(unique))
	for file := range unique {
		files = append(files, file)
	}
	slices.Sort(files)
	return files, nil
}
