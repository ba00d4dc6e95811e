package app

import (
	"context"
	"fmt"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/engine/trainer"
	"go.trai.ch/tagger/internal/ui/report"
	"go.trai.ch/zerr"
)

// TrainResult is the outcome of a training run.
type TrainResult struct {
	trainer.Result
	Vocab     *VocabResult
	Instances int
}

// Train runs the whole pipeline: settings, data, vocabularies and the training loop.
func (a *App) Train(ctx context.Context, opts Options) (*TrainResult, error) {
	settings, err := a.loadSettings(ctx, opts)
	if err != nil {
		return nil, err
	}

	data, err := a.loadData(ctx, settings)
	if err != nil {
		return nil, err
	}
	if data.dev == nil {
		a.logger.Warn("no dev data: early stopping and task schedules are disabled")
	}

	enc, vocabRes, err := a.fitEncoder(ctx, settings, data.train, opts.NoCache)
	if err != nil {
		return nil, err
	}

	res := &TrainResult{Vocab: vocabRes, Instances: data.size}
	err = a.stage(ctx, "train", func(ctx context.Context, v ports.Vertex) error {
		model, optimizer, err := a.models.NewModel(settings)
		if err != nil {
			return err
		}

		tr, err := trainer.New(trainer.Config{
			Settings:     settings,
			Encoder:      enc,
			Model:        model,
			Optimizer:    optimizer,
			Logger:       a.logger,
			Tracer:       a.tracer,
			NumInstances: data.size,
		}, trainer.WithReporter(report.Schedule))
		if err != nil {
			return err
		}

		out, err := tr.Train(ctx, data.train, data.dev)
		if err != nil {
			return err
		}
		res.Result = out
		v.Log(domain.LogLevelInfo, fmt.Sprintf("trained %d epochs, %d batches", out.Epochs, out.Batches))
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTrainingFailed.Error())
	}
	return res, nil
}
