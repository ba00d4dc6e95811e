package schedule

import (
	"math/rand/v2"
)

// targetFactor is how many times more often the target is sampled than all
// auxiliary tasks taken together.
const targetFactor = 2

// Sampler picks the task whose loss drives each training batch.
type Sampler struct {
	tasks []string
	probs []float64
	rng   *rand.Rand
}

// NewSampler creates a seeded Sampler over tasks.
func NewSampler(tasks []string, target string, seed int64) *Sampler {
	probs := make([]float64, len(tasks))
	aux := 0.0
	if len(tasks) > 1 {
		aux = (1 / float64(len(tasks)-1)) / targetFactor
	}
	for i, task := range tasks {
		if task != target {
			probs[i] = aux
		}
	}
	for i, task := range tasks {
		if task == target {
			probs[i] = 1 - aux*float64(len(tasks)-1)
		}
	}

	s := uint64(seed) //nolint:gosec // reinterpretation of the configured seed
	return &Sampler{
		tasks: tasks,
		probs: probs,
		rng:   rand.New(rand.NewPCG(s, s^0x5851f42d4c957f2d)),
	}
}

// Probabilities returns the sampling probability of every task.
func (s *Sampler) Probabilities() map[string]float64 {
	out := make(map[string]float64, len(s.tasks))
	for i, task := range s.tasks {
		out[task] = s.probs[i]
	}
	return out
}

// Sample draws one task.
func (s *Sampler) Sample() string {
	if len(s.tasks) == 1 {
		return s.tasks[0]
	}
	r := s.rng.Float64()
	acc := 0.0
	for i, p := range s.probs {
		acc += p
		if r < acc {
			return s.tasks[i]
		}
	}
	return s.tasks[len(s.tasks)-1]
}
