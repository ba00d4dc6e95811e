package ports

import "go.trai.ch/tagger/internal/core/domain"

// Hasher defines the interface for computing content fingerprints.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// Fingerprint computes the fingerprint of the encoder-relevant settings and the given files.
	Fingerprint(settings *domain.Settings, files []string) (string, error)
}
