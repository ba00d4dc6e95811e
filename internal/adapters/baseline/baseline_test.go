package baseline_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/adapters/baseline"
	"go.trai.ch/tagger/internal/core/domain"
)

// encoded builds a one-instance batch where word i of tokens is encoded as words[i].
func encoded(tokens []string, words []int, labels map[string][]string) *domain.EncodedBatch {
	inst := domain.Instance{Tokens: tokens, Labels: labels}
	return &domain.EncodedBatch{
		Batch:   domain.Batch{Instances: []domain.Instance{inst}},
		Lengths: []int{len(tokens)},
		Words:   [][]int{words},
	}
}

func TestModel_UntrainedLossIsUniform(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	batch := encoded([]string{"a", "b"}, []int{2, 3}, map[string][]string{"pos": {"N", "V"}})

	losses, err := m.Loss(context.Background(), batch, []string{"pos"})
	require.NoError(t, err)
	// Nothing observed yet: the single unseen-label bucket takes all the mass.
	assert.InDelta(t, 0, losses["pos"], 1e-9)
}

func TestOptimizer_StepLowersLoss(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	opt := baseline.NewOptimizer(m, 1)
	ctx := context.Background()
	batch := encoded([]string{"a", "b", "a"}, []int{2, 3, 2}, map[string][]string{"pos": {"N", "V", "N"}})
	other := encoded([]string{"c"}, []int{4}, map[string][]string{"pos": {"X"}})

	require.NoError(t, opt.Step(ctx, other, map[string]float64{"pos": 1}, nil))
	before, err := m.Loss(ctx, batch, []string{"pos"})
	require.NoError(t, err)

	require.NoError(t, opt.Step(ctx, batch, map[string]float64{"pos": 1}, map[string]float64{"pos": 1}))
	after, err := m.Loss(ctx, batch, []string{"pos"})
	require.NoError(t, err)

	assert.Less(t, after["pos"], before["pos"])
	assert.False(t, math.IsNaN(after["pos"]))
}

func TestModel_PredictMostFrequentWithFallback(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	opt := baseline.NewOptimizer(m, 1)
	ctx := context.Background()

	train := encoded([]string{"a", "a", "a", "b"}, []int{2, 2, 2, 3}, map[string][]string{"pos": {"N", "N", "V", "V"}})
	require.NoError(t, opt.Step(ctx, train, map[string]float64{"pos": 1}, nil))

	got, err := m.Predict(ctx, encoded([]string{"a", "b", "z"}, []int{2, 3, 0}, nil))
	require.NoError(t, err)
	// "z" was never seen: N and V tie overall and the smallest label wins.
	assert.Equal(t, [][]string{{"N", "V", "N"}}, got["pos"])
}

func TestModel_PredictUntrained(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	got, err := m.Predict(context.Background(), encoded([]string{"a"}, []int{2}, nil))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{domain.UnkSymbol}}, got["pos"])
}

func TestOptimizer_WeightScalesCounts(t *testing.T) {
	ctx := context.Background()
	batch := encoded([]string{"a"}, []int{2}, map[string][]string{"pos": {"N"}})

	heavy := baseline.NewModel([]string{"pos"})
	require.NoError(t, baseline.NewOptimizer(heavy, 1).Step(ctx, batch, map[string]float64{"pos": 1}, map[string]float64{"pos": 1}))
	light := baseline.NewModel([]string{"pos"})
	require.NoError(t, baseline.NewOptimizer(light, 1).Step(ctx, batch, map[string]float64{"pos": 1}, map[string]float64{"pos": 0.1}))

	h, err := heavy.Loss(ctx, batch, []string{"pos"})
	require.NoError(t, err)
	l, err := light.Loss(ctx, batch, []string{"pos"})
	require.NoError(t, err)
	assert.Less(t, h["pos"], l["pos"])
}

func TestModel_LanguageModelTasks(t *testing.T) {
	m := baseline.NewModel([]string{"pos"}, baseline.WithLanguageModel(true))
	opt := baseline.NewOptimizer(m, 1)
	ctx := context.Background()
	batch := encoded([]string{"a", "b", "c"}, []int{2, 3, 4}, map[string][]string{"pos": {"N", "V", "N"}})
	other := encoded([]string{"d", "e"}, []int{5, 6}, map[string][]string{"pos": {"X", "X"}})
	require.NoError(t, opt.Step(ctx, other, map[string]float64{"pos": 1}, nil))

	before, err := m.Loss(ctx, batch, []string{domain.LMForward, domain.LMBack})
	require.NoError(t, err)

	// Only pos is sampled but the bigrams are counted too.
	require.NoError(t, opt.Step(ctx, batch, map[string]float64{"pos": 1}, nil))

	after, err := m.Loss(ctx, batch, []string{domain.LMForward, domain.LMBack})
	require.NoError(t, err)
	assert.Less(t, after[domain.LMForward], before[domain.LMForward])
	assert.Less(t, after[domain.LMBack], before[domain.LMBack])
}

func TestModel_UnknownTask(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	batch := encoded([]string{"a"}, []int{2}, map[string][]string{"pos": {"N"}})

	_, err := m.Loss(context.Background(), batch, []string{"lemma"})
	require.ErrorContains(t, err, domain.ErrUnknownTask.Error())

	_, err = m.Loss(context.Background(), batch, []string{domain.LMForward})
	require.ErrorContains(t, err, domain.ErrUnknownTask.Error())
}

func TestModel_SnapshotRestore(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})
	opt := baseline.NewOptimizer(m, 1)
	ctx := context.Background()
	query := encoded([]string{"a"}, []int{2}, nil)

	require.NoError(t, opt.Step(ctx, encoded([]string{"a"}, []int{2}, map[string][]string{"pos": {"N"}}), map[string]float64{"pos": 1}, nil))
	state, err := m.Snapshot()
	require.NoError(t, err)

	require.NoError(t, opt.Step(ctx, encoded([]string{"a", "a"}, []int{2, 2}, map[string][]string{"pos": {"V", "V"}}), map[string]float64{"pos": 1}, nil))
	got, err := m.Predict(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "V", got["pos"][0][0])

	require.NoError(t, m.Restore(state))
	got, err = m.Predict(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "N", got["pos"][0][0])
}

func TestModel_RestoreInvalid(t *testing.T) {
	m := baseline.NewModel([]string{"pos"})

	err := m.Restore([]byte("not json"))
	require.ErrorContains(t, err, domain.ErrInvalidSnapshot.Error())

	err = m.Restore([]byte(`{"lemma":{"by_word":{},"totals":{}}}`))
	require.ErrorContains(t, err, domain.ErrInvalidSnapshot.Error())
}

func TestOptimizer_LearningRate(t *testing.T) {
	opt := baseline.NewOptimizer(baseline.NewModel(nil), 0.01)
	assert.InDelta(t, 0.01, opt.LearningRate(), 1e-12)
	opt.SetLearningRate(0.5)
	assert.InDelta(t, 0.5, opt.LearningRate(), 1e-12)
}

func TestOptimizer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opt := baseline.NewOptimizer(baseline.NewModel([]string{"pos"}), 1)
	require.ErrorIs(t, opt.Step(ctx, encoded(nil, nil, nil), nil, nil), context.Canceled)
}

func TestFactory_NewModel(t *testing.T) {
	settings := &domain.Settings{
		Tasks:     []domain.Task{{Name: "pos", Target: true}},
		IncludeLM: true,
		Training:  domain.TrainingSettings{LR: 0.002},
	}
	model, opt, err := baseline.Factory{}.NewModel(settings)
	require.NoError(t, err)
	assert.InDelta(t, 0.002, opt.LearningRate(), 1e-12)

	_, err = model.Loss(context.Background(), encoded([]string{"a"}, []int{2}, nil), []string{domain.LMForward})
	require.NoError(t, err)
}
