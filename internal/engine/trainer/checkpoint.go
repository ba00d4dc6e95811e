package trainer

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/engine/schedule"
	"go.trai.ch/zerr"
)

// accuracy counts correct token predictions of one task.
type accuracy struct {
	correct int
	total   int
}

func (a accuracy) value() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.correct) / float64(a.total)
}

// lossTasks returns every task the model reports a dev loss for.
func (t *Trainer) lossTasks() []string {
	tasks := t.settings.TaskNames()
	if t.settings.IncludeLM {
		tasks = append(tasks, domain.LMForward, domain.LMBack)
	}
	return tasks
}

// Evaluate computes the averaged dev losses and the per-task accuracy on dev.
func (t *Trainer) Evaluate(ctx context.Context, dev ports.InstanceSource) (losses, scores map[string]float64, err error) {
	tasks := t.lossTasks()
	totals := make(map[string]float64, len(tasks))
	acc := make(map[string]*accuracy, len(t.settings.Tasks))
	for _, name := range t.settings.TaskNames() {
		acc[name] = &accuracy{}
	}

	batches := 0
	err = t.evaluator.Stream(ctx, dev, func(batch domain.Batch) error {
		batches++
		encoded := t.encoder.EncodeBatch(batch)

		batchLoss, err := t.model.Loss(ctx, encoded, tasks)
		if err != nil {
			return zerr.Wrap(err, domain.ErrModelFailed.Error())
		}
		for k, v := range batchLoss {
			totals[k] += v
		}

		predictions, err := t.model.Predict(ctx, encoded)
		if err != nil {
			return zerr.Wrap(err, domain.ErrModelFailed.Error())
		}
		for task, a := range acc {
			predicted := predictions[task]
			for i, inst := range batch.Instances {
				gold := inst.Labels[task]
				a.total += len(gold)
				if i >= len(predicted) {
					continue
				}
				for j, label := range gold {
					if j < len(predicted[i]) && predicted[i][j] == label {
						a.correct++
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	losses = make(map[string]float64, len(totals))
	for k, v := range totals {
		losses[k] = v / float64(max(batches, 1))
	}
	scores = make(map[string]float64, len(acc))
	for task, a := range acc {
		scores[task] = a.value()
	}
	return losses, scores, nil
}

// checkpoint evaluates on dev and advances the task and learning rate schedules.
func (t *Trainer) checkpoint(ctx context.Context, dev ports.InstanceSource) (d schedule.Decision, err error) {
	ctx, span := t.tracer.Start(ctx, "checkpoint")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	t.logger.Info("evaluating model on dev set")
	losses, scores, err := t.Evaluate(ctx, dev)
	if err != nil {
		return d, err
	}
	t.logger.Info("dev losses: " + formatScores(losses))
	t.logger.Info("dev scores: " + formatScores(scores))

	if t.settings.IncludeLM {
		for _, lm := range []string{domain.LMForward, domain.LMBack} {
			if v, ok := losses[lm]; ok {
				scores[lm] = v
			}
		}
	}

	d = t.controller.Step(scores)
	if d.Improved {
		state, err := t.model.Snapshot()
		if err != nil {
			return d, zerr.Wrap(err, domain.ErrModelFailed.Error())
		}
		t.best = state
	}
	t.scores = scores

	lr := t.lr.Step(scores[t.controller.Target()])
	t.optimizer.SetLearningRate(lr)

	for task, v := range scores {
		span.SetAttribute("score."+task, v)
	}
	for task, w := range t.controller.Weights() {
		span.SetAttribute("weight."+task, w)
	}
	span.SetAttribute("lr", lr)
	span.SetAttribute("stop", d.Stop)

	if t.settings.Verbose {
		if t.reporter != nil {
			t.logger.Info("task schedules\n" + t.reporter(t.controller.States()))
		}
		t.logger.Info("learning rate schedule: " + t.lr.String())
	}
	return d, nil
}

func formatScores(values map[string]float64) string {
	parts := make([]string, 0, len(values))
	for _, k := range slices.Sorted(maps.Keys(values)) {
		parts = append(parts, fmt.Sprintf("%s: %.4f", k, values[k]))
	}
	return strings.Join(parts, ", ")
}
