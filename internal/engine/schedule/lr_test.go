package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/engine/schedule"
)

func TestPlateau(t *testing.T) {
	lr := schedule.NewLRSchedule(domain.TrainingSettings{
		LR:         0.1,
		LRFactor:   0.5,
		LRPatience: 1,
		MinLR:      0.02,
	})
	require.IsType(t, &schedule.Plateau{}, lr)

	metrics := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.6, 0.6, 0.6, 0.6, 0.6}
	want := []float64{0.1, 0.1, 0.05, 0.05, 0.025, 0.025, 0.025, 0.02, 0.02, 0.02}

	for i, m := range metrics {
		assert.InDelta(t, want[i], lr.Step(m), 1e-12, "step %d", i)
	}
	assert.InDelta(t, 0.02, lr.LR(), 1e-12)
}

func TestCosine(t *testing.T) {
	lr := schedule.NewLRSchedule(domain.TrainingSettings{
		LR:          1,
		LRScheduler: domain.LRCosineAnnealing,
		LRTMax:      4,
	})

	assert.InDelta(t, 0.8535533905932737, lr.Step(0), 1e-9)
	assert.InDelta(t, 0.5, lr.Step(0), 1e-9)
	lr.Step(0)
	assert.InDelta(t, 0, lr.Step(0), 1e-9)
	assert.Contains(t, lr.String(), "T_max=4")
}

func TestCosineWarmRestarts(t *testing.T) {
	lr := schedule.NewLRSchedule(domain.TrainingSettings{
		LR:          1,
		MinLR:       0,
		LRScheduler: domain.LRCosineWarmRestarts,
		LRT0:        2,
	})

	assert.InDelta(t, 0.5, lr.Step(0), 1e-9)
	assert.InDelta(t, 1.0, lr.Step(0), 1e-9, "restart")
	assert.InDelta(t, 0.5, lr.Step(0), 1e-9)
}

func TestDelayed(t *testing.T) {
	lr := schedule.NewLRSchedule(domain.TrainingSettings{
		LR:          1,
		LRScheduler: domain.LRCosineAnnealing,
		LRTMax:      2,
		LRDelayed:   2,
	})
	delayed, ok := lr.(*schedule.Delayed)
	require.True(t, ok)

	assert.InDelta(t, 1.0, lr.Step(0), 1e-9)
	assert.InDelta(t, 1.0, lr.Step(0), 1e-9)
	assert.True(t, delayed.Waiting())
	assert.Contains(t, lr.String(), "delay=2")

	assert.InDelta(t, 0.5, lr.Step(0), 1e-9)
	assert.False(t, delayed.Waiting())
	assert.Contains(t, lr.String(), "CosineAnnealingLR")
}
