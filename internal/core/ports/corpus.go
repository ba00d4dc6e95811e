package ports

import (
	"context"

	"go.trai.ch/tagger/internal/core/domain"
)

//go:generate mockgen -source=corpus.go -destination=mocks/mock_corpus.go -package=mocks

// CorpusReader opens tabular corpus files as a stream of records.
type CorpusReader interface {
	// Open starts reading every file matched by pattern, in lexical order.
	// The pattern "-" reads standard input as a single document.
	Open(ctx context.Context, pattern string, format domain.CorpusFormat) (RecordReader, error)
	// Files returns the files matched by pattern.
	Files(pattern string) ([]string, error)
}

// RecordReader yields corpus records one at a time.
type RecordReader interface {
	// Next returns the next record, or io.EOF once every file is exhausted.
	Next() (domain.Record, error)
	// Close releases the underlying file.
	Close() error
}

// InstanceSource is a re-openable producer of training instances.
type InstanceSource interface {
	// Open starts a new pass over the instances.
	Open(ctx context.Context) (InstanceReader, error)
	// Restartable reports whether Open may be called more than once.
	Restartable() bool
}

// InstanceReader yields the instances of one pass.
type InstanceReader interface {
	// Next returns the next instance, or io.EOF at the end of the pass.
	Next() (domain.Instance, error)
	// Close releases the resources of the pass.
	Close() error
}
