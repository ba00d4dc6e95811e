package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tagger/internal/engine/schedule"
)

func TestSampler_Probabilities(t *testing.T) {
	s := schedule.NewSampler([]string{"lemma", "pos", "morph"}, "pos", 1)

	p := s.Probabilities()
	assert.InDelta(t, 0.5, p["pos"], 1e-12)
	assert.InDelta(t, 0.25, p["lemma"], 1e-12)
	assert.InDelta(t, 0.25, p["morph"], 1e-12)
}

func TestSampler_SingleTask(t *testing.T) {
	s := schedule.NewSampler([]string{"pos"}, "pos", 1)

	assert.InDelta(t, 1.0, s.Probabilities()["pos"], 1e-12)
	for range 10 {
		assert.Equal(t, "pos", s.Sample())
	}
}

func TestSampler_SeededAndBalanced(t *testing.T) {
	tasks := []string{"lemma", "pos", "morph"}
	a := schedule.NewSampler(tasks, "pos", 42)
	b := schedule.NewSampler(tasks, "pos", 42)

	counts := map[string]int{}
	const draws = 20000
	for range draws {
		task := a.Sample()
		assert.Equal(t, task, b.Sample())
		counts[task]++
	}

	assert.InDelta(t, 0.5, float64(counts["pos"])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts["lemma"])/draws, 0.02)
}
