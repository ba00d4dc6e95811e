package baseline

import (
	"context"
	"slices"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
)

var _ ports.Optimizer = (*Optimizer)(nil)

// Optimizer updates a Model by adding the batch counts scaled by lr times the task weight.
type Optimizer struct {
	model *Model
	lr    float64
}

// NewOptimizer creates an Optimizer for m.
func NewOptimizer(m *Model, lr float64) *Optimizer {
	return &Optimizer{model: m, lr: lr}
}

// Step counts the batch for every task in losses.
// Language model tasks are counted on every step when enabled.
func (o *Optimizer) Step(ctx context.Context, batch *domain.EncodedBatch, losses, weights map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tasks := make([]string, 0, len(losses)+2)
	for task := range losses {
		tasks = append(tasks, task)
	}
	if o.model.includeLM {
		for _, lm := range []string{domain.LMForward, domain.LMBack} {
			if _, ok := losses[lm]; !ok {
				tasks = append(tasks, lm)
			}
		}
	}
	slices.Sort(tasks)

	o.model.mu.Lock()
	defer o.model.mu.Unlock()
	for _, task := range tasks {
		w, ok := weights[task]
		if !ok {
			w = 1
		}
		o.model.observe(batch, task, o.lr*w)
	}
	return nil
}

// LearningRate returns the current learning rate.
func (o *Optimizer) LearningRate() float64 {
	return o.lr
}

// SetLearningRate replaces the learning rate.
func (o *Optimizer) SetLearningRate(lr float64) {
	o.lr = lr
}

// Factory builds baseline models from settings.
type Factory struct {
	// Smoothing overrides DefaultSmoothing when positive.
	Smoothing float64
}

// NewModel returns a fresh Model and its Optimizer.
func (f Factory) NewModel(settings *domain.Settings) (ports.Model, ports.Optimizer, error) {
	m := NewModel(settings.TaskNames(),
		WithLanguageModel(settings.IncludeLM),
		WithSmoothing(f.Smoothing),
	)
	return m, NewOptimizer(m, settings.Training.LR), nil
}
