package ports

import "go.trai.ch/tagger/internal/core/domain"

// ArtifactStore defines the interface for storing and retrieving fitted encoders.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get retrieves the encoder artifact stored below root for a given fingerprint.
	// Returns nil, nil if not found.
	Get(root, fingerprint string) (*domain.EncoderArtifact, error)

	// Put stores the encoder artifact below root under its fingerprint.
	Put(root string, artifact domain.EncoderArtifact) error
}
