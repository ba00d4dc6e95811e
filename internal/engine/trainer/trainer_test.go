package trainer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/core/ports/mocks"
	"go.trai.ch/tagger/internal/engine/schedule"
	"go.trai.ch/tagger/internal/engine/segmenter"
	"go.trai.ch/tagger/internal/engine/trainer"
	"go.trai.ch/tagger/internal/engine/vocab"
	"go.uber.org/mock/gomock"
)

type trainerMocks struct {
	model     *mocks.MockModel
	optimizer *mocks.MockOptimizer
	logger    *mocks.MockLogger
	tracer    *mocks.MockTracer
	span      *mocks.MockSpan
}

func newMocks(t *testing.T) trainerMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := trainerMocks{
		model:     mocks.NewMockModel(ctrl),
		optimizer: mocks.NewMockOptimizer(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		tracer:    mocks.NewMockTracer(ctrl),
		span:      mocks.NewMockSpan(ctrl),
	}

	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()

	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	m.optimizer.EXPECT().SetLearningRate(gomock.Any()).AnyTimes()
	m.optimizer.EXPECT().LearningRate().Return(0.001).AnyTimes()
	return m
}

func testSettings() *domain.Settings {
	return &domain.Settings{
		Seed: 1,
		Tasks: []domain.Task{
			{Name: "pos", Target: true, Level: domain.LevelToken},
			{Name: "lemma", Level: domain.LevelToken},
		},
		Schedule: domain.ScheduleDefaults{Patience: 1, Factor: 0.5, Threshold: 0.001, MinWeight: 0.1},
		Training: domain.TrainingSettings{
			Epochs:         5,
			BatchSize:      2,
			BufferSize:     10,
			ChecksPerEpoch: 2,
			ReportFreq:     1,
			LR:             0.001,
			LRFactor:       0.5,
			LRPatience:     2,
		},
	}
}

func sentence(tokens, pos []string) domain.Instance {
	return domain.Instance{
		Tokens: tokens,
		Labels: map[string][]string{"pos": pos, "lemma": tokens},
	}
}

func trainSet() []domain.Instance {
	return []domain.Instance{
		sentence([]string{"a", "cat"}, []string{"DET", "NOUN"}),
		sentence([]string{"the", "dog"}, []string{"DET", "NOUN"}),
		sentence([]string{"cats", "run"}, []string{"NOUN", "VERB"}),
		sentence([]string{"dogs", "bark"}, []string{"NOUN", "VERB"}),
	}
}

func devSet() []domain.Instance {
	return []domain.Instance{
		sentence([]string{"a", "dog"}, []string{"DET", "NOUN"}),
		sentence([]string{"cats", "bark"}, []string{"NOUN", "VERB"}),
	}
}

func gold(batch *domain.EncodedBatch) map[string][][]string {
	out := map[string][][]string{}
	for _, inst := range batch.Batch.Instances {
		for task, labels := range inst.Labels {
			out[task] = append(out[task], labels)
		}
	}
	return out
}

func wrong(batch *domain.EncodedBatch) map[string][][]string {
	out := map[string][][]string{}
	for _, inst := range batch.Batch.Instances {
		for task, labels := range inst.Labels {
			bad := make([]string, len(labels))
			for i := range bad {
				bad[i] = "X"
			}
			out[task] = append(out[task], bad)
		}
	}
	return out
}

func lossFor(_ context.Context, _ *domain.EncodedBatch, tasks []string) (map[string]float64, error) {
	out := make(map[string]float64, len(tasks))
	for _, task := range tasks {
		out[task] = 0.5
	}
	return out, nil
}

func newTrainer(t *testing.T, s *domain.Settings, m trainerMocks, opts ...trainer.Option) *trainer.Trainer {
	t.Helper()
	enc, err := vocab.FitEncoder(context.Background(), segmenter.NewMemorySource(trainSet()), s)
	require.NoError(t, err)

	tr, err := trainer.New(trainer.Config{
		Settings:     s,
		Encoder:      enc,
		Model:        m.model,
		Optimizer:    m.optimizer,
		Logger:       m.logger,
		Tracer:       m.tracer,
		NumInstances: len(trainSet()),
	}, opts...)
	require.NoError(t, err)
	return tr
}

func TestCheckFrequency(t *testing.T) {
	tests := []struct {
		name           string
		numBatches     int
		checksPerEpoch int
		want           int
	}{
		{name: "once per epoch checks after the last batch", numBatches: 10, checksPerEpoch: 1, want: 9},
		{name: "more checks than batches checks every batch", numBatches: 3, checksPerEpoch: 5, want: 1},
		{name: "several checks split the epoch", numBatches: 10, checksPerEpoch: 3, want: 3},
		{name: "zero disables checks", numBatches: 10, checksPerEpoch: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trainer.CheckFrequency(tt.numBatches, tt.checksPerEpoch))
		})
	}
}

func TestTrain_EarlyStopRestoresBest(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(lossFor).AnyTimes()
	m.optimizer.EXPECT().Step(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	gomock.InOrder(
		m.model.EXPECT().Predict(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b *domain.EncodedBatch) (map[string][][]string, error) {
				return gold(b), nil
			},
		),
		m.model.EXPECT().Predict(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b *domain.EncodedBatch) (map[string][][]string, error) {
				return wrong(b), nil
			},
		),
	)
	m.model.EXPECT().Snapshot().Return([]byte("best"), nil).Times(1)
	m.model.EXPECT().Restore([]byte("best")).Return(nil).Times(1)

	tr := newTrainer(t, testSettings(), m)
	assert.Equal(t, 1, tr.CheckFreq())

	res, err := tr.Train(context.Background(),
		segmenter.NewMemorySource(trainSet()),
		segmenter.NewMemorySource(devSet()),
	)
	require.NoError(t, err)

	assert.True(t, res.Stopped)
	assert.Equal(t, 2, res.Epochs)
	assert.Equal(t, 4, res.Batches)
	assert.Equal(t, map[string]float64{"pos": 1.0}, res.Scores)
	assert.True(t, tr.Controller().Stopped())
	require.Len(t, res.States, 2)
	assert.Equal(t, schedule.KindTarget, res.States[0].Kind)
}

func TestTrain_NoDevRunsAllEpochs(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Len(1)).DoAndReturn(lossFor).Times(6)
	m.optimizer.EXPECT().Step(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.EncodedBatch, losses, weights map[string]float64) error {
			assert.Len(t, losses, 1)
			assert.Equal(t, map[string]float64{"pos": 1, "lemma": 1}, weights)
			return nil
		}).Times(6)

	s := testSettings()
	s.Training.Epochs = 3
	tr := newTrainer(t, s, m)

	res, err := tr.Train(context.Background(), segmenter.NewMemorySource(trainSet()), nil)
	require.NoError(t, err)

	assert.False(t, res.Stopped)
	assert.Equal(t, 3, res.Epochs)
	assert.Equal(t, 6, res.Batches)
	assert.Nil(t, res.Scores)
	assert.InDelta(t, 0.001, res.LR, 1e-12)
}

func TestTrain_EmptyLoss(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]float64{}, nil)

	tr := newTrainer(t, testSettings(), m)
	_, err := tr.Train(context.Background(), segmenter.NewMemorySource(trainSet()), nil)

	require.ErrorContains(t, err, domain.ErrEmptyLoss.Error())
}

func TestTrain_ModelFailure(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("device lost"))

	tr := newTrainer(t, testSettings(), m)
	_, err := tr.Train(context.Background(), segmenter.NewMemorySource(trainSet()), nil)

	require.ErrorContains(t, err, domain.ErrModelFailed.Error())
	require.ErrorContains(t, err, "device lost")
}

func TestTrain_OptimizerFailure(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(lossFor)
	m.optimizer.EXPECT().Step(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("nan"))

	tr := newTrainer(t, testSettings(), m)
	_, err := tr.Train(context.Background(), segmenter.NewMemorySource(trainSet()), nil)

	require.ErrorContains(t, err, domain.ErrOptimizerFailed.Error())
}

func TestTrain_Canceled(t *testing.T) {
	m := newMocks(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := newTrainer(t, testSettings(), m)
	_, err := tr.Train(ctx, segmenter.NewMemorySource(trainSet()), nil)

	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_RejectsMissingTarget(t *testing.T) {
	m := newMocks(t)
	s := testSettings()
	s.Tasks[0].Target = false

	enc, err := vocab.FitEncoder(context.Background(), segmenter.NewMemorySource(trainSet()), s)
	require.NoError(t, err)

	_, err = trainer.New(trainer.Config{
		Settings:  s,
		Encoder:   enc,
		Model:     m.model,
		Optimizer: m.optimizer,
		Logger:    m.logger,
		Tracer:    m.tracer,
	})
	require.ErrorContains(t, err, domain.ErrNoTargetTask.Error())
}

func TestEvaluate(t *testing.T) {
	m := newMocks(t)
	s := testSettings()
	s.IncludeLM = true

	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), []string{"pos", "lemma", domain.LMForward, domain.LMBack}).
		DoAndReturn(lossFor)
	m.model.EXPECT().Predict(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, b *domain.EncodedBatch) (map[string][][]string, error) {
			out := gold(b)
			out["pos"][0] = []string{"DET", "VERB"}
			return out, nil
		},
	)

	tr := newTrainer(t, s, m)
	losses, scores, err := tr.Evaluate(context.Background(), segmenter.NewMemorySource(devSet()))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, losses[domain.LMForward], 1e-12)
	assert.InDelta(t, 0.75, scores["pos"], 1e-12)
	assert.InDelta(t, 1.0, scores["lemma"], 1e-12)
}

func TestTrain_VerboseReportsSchedule(t *testing.T) {
	m := newMocks(t)
	m.model.EXPECT().Loss(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(lossFor).AnyTimes()
	m.model.EXPECT().Predict(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, b *domain.EncodedBatch) (map[string][][]string, error) {
			return gold(b), nil
		},
	).AnyTimes()
	m.model.EXPECT().Snapshot().Return([]byte("s"), nil).AnyTimes()
	m.optimizer.EXPECT().Step(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s := testSettings()
	s.Verbose = true
	s.Training.Epochs = 1

	var reports int
	clock := time.Unix(0, 0)
	tr := newTrainer(t, s, m,
		trainer.WithReporter(func(states []schedule.State) string {
			reports++
			return "table"
		}),
		trainer.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)

	res, err := tr.Train(context.Background(),
		segmenter.NewMemorySource(trainSet()),
		segmenter.NewMemorySource(devSet()),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, reports, "once at start, once per checkpoint")
	assert.Equal(t, map[string]float64{"pos": 1, "lemma": 1}, res.Scores)
}
