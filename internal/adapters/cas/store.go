// Package cas stores fitted encoders addressed by the fingerprint of their inputs.
package cas

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore using a file-per-fingerprint strategy.
type Store struct{}

// NewStore creates a new ArtifactStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the encoder artifact for a given fingerprint.
func (s *Store) Get(root, fingerprint string) (*domain.EncoderArtifact, error) {
	filename := s.getFilename(root, fingerprint)
	//nolint:gosec // Path is constructed from the model path and a hex fingerprint
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	var artifact domain.EncoderArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}

	return &artifact, nil
}

// Put stores the encoder artifact.
func (s *Store) Put(root string, artifact domain.EncoderArtifact) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, artifact.Fingerprint)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", filepath.Dir(filename))
	}

	//nolint:gosec // Path is constructed from the model path and a hex fingerprint
	if err := os.WriteFile(filename, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}

	return nil
}

// Path returns the file an artifact with fingerprint is stored in.
func (s *Store) Path(root, fingerprint string) string {
	return s.getFilename(root, fingerprint)
}

func (s *Store) getFilename(root, fingerprint string) string {
	return filepath.Join(domain.DefaultStorePath(root), filepath.Base(fingerprint)+".json")
}
