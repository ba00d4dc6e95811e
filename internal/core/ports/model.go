package ports

import (
	"context"

	"go.trai.ch/tagger/internal/core/domain"
)

//go:generate mockgen -source=model.go -destination=mocks/mock_model.go -package=mocks

// Model is the tagger collaborator that turns encoded batches into losses and predictions.
type Model interface {
	// Loss returns the loss of every requested task on the batch.
	Loss(ctx context.Context, batch *domain.EncodedBatch, tasks []string) (map[string]float64, error)
	// Predict returns the decoded label sequences of every task for the batch.
	Predict(ctx context.Context, batch *domain.EncodedBatch) (map[string][][]string, error)
	// Snapshot captures the current parameters.
	Snapshot() ([]byte, error)
	// Restore replaces the parameters with a previous snapshot.
	Restore(state []byte) error
}

// Optimizer updates the model from weighted task losses.
type Optimizer interface {
	// Step applies one update for the given losses scaled by their task weights.
	Step(ctx context.Context, batch *domain.EncodedBatch, losses, weights map[string]float64) error
	// LearningRate returns the current learning rate.
	LearningRate() float64
	// SetLearningRate replaces the learning rate.
	SetLearningRate(lr float64)
}

// ModelFactory builds the model and optimizer of a training run.
type ModelFactory interface {
	// NewModel returns a fresh model and its optimizer for the given settings.
	NewModel(settings *domain.Settings) (Model, Optimizer, error)
}
