// Package trainer runs the multi-task training loop.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/engine/batcher"
	"go.trai.ch/tagger/internal/engine/schedule"
	"go.trai.ch/tagger/internal/engine/vocab"
	"go.trai.ch/zerr"
)

// errEarlyStop ends the batch stream once the target task runs out of patience.
var errEarlyStop = errors.New("early stop")

// Reporter renders the schedule state logged after a checkpoint.
type Reporter func(states []schedule.State) string

// Config holds the collaborators of a training run.
type Config struct {
	Settings  *domain.Settings
	Encoder   *vocab.Encoder
	Model     ports.Model
	Optimizer ports.Optimizer
	Logger    ports.Logger
	Tracer    ports.Tracer
	// NumInstances is the size of the training set, used to derive the check frequency.
	NumInstances int
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithReporter renders the schedule after every checkpoint in verbose mode.
func WithReporter(r Reporter) Option {
	return func(t *Trainer) {
		t.reporter = r
	}
}

// WithClock replaces time.Now for throughput reports.
func WithClock(now func() time.Time) Option {
	return func(t *Trainer) {
		t.now = now
	}
}

// Result is the outcome of Train.
type Result struct {
	// Scores holds {target: best} after an early stop, otherwise the last dev scores.
	Scores  map[string]float64
	Stopped bool
	Epochs  int
	Batches int
	LR      float64
	States  []schedule.State
}

// Trainer drives the model through epochs of batches.
// A Trainer runs once and is not safe for concurrent use.
type Trainer struct {
	settings   *domain.Settings
	encoder    *vocab.Encoder
	model      ports.Model
	optimizer  ports.Optimizer
	logger     ports.Logger
	tracer     ports.Tracer
	controller *schedule.Controller
	lr         schedule.LRSchedule
	sampler    *schedule.Sampler
	batcher    *batcher.Batcher
	evaluator  *batcher.Batcher
	reporter   Reporter
	now        func() time.Time

	numBatches int
	checkFreq  int
	best       []byte
	scores     map[string]float64
}

// CheckFrequency returns every how many batches the dev set is evaluated.
// Zero disables checks.
func CheckFrequency(numBatches, checksPerEpoch int) int {
	switch {
	case checksPerEpoch == 1:
		return numBatches - 1
	case checksPerEpoch > numBatches:
		return 1
	case checksPerEpoch > 1:
		return numBatches / checksPerEpoch
	default:
		return 0
	}
}

// New creates a Trainer. It fails when the task schedules are inconsistent.
func New(cfg Config, opts ...Option) (*Trainer, error) {
	controller, err := schedule.NewFromSettings(cfg.Settings)
	if err != nil {
		return nil, err
	}

	s := cfg.Settings
	numBatches := batcher.NumBatches(cfg.NumInstances, s.Training.BatchSize)
	t := &Trainer{
		settings:   s,
		encoder:    cfg.Encoder,
		model:      cfg.Model,
		optimizer:  cfg.Optimizer,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		controller: controller,
		lr:         schedule.NewLRSchedule(s.Training),
		sampler:    schedule.NewSampler(s.TaskNames(), s.TargetTask(), s.Seed),
		batcher:    batcher.New(batcher.OptionsFromSettings(s)),
		evaluator: batcher.New(batcher.Options{
			BatchSize:  s.Training.BatchSize,
			BufferSize: s.Training.BufferSize,
		}),
		now:        time.Now,
		numBatches: numBatches,
		checkFreq:  CheckFrequency(numBatches, s.Training.ChecksPerEpoch),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.optimizer.SetLearningRate(t.lr.LR())
	return t, nil
}

// Controller exposes the task schedules.
func (t *Trainer) Controller() *schedule.Controller {
	return t.controller
}

// CheckFreq returns the number of batches between two checkpoints.
func (t *Trainer) CheckFreq() int {
	return t.checkFreq
}

// Train runs up to Epochs passes over train, evaluating on dev at every check.
// dev may be nil, in which case no checkpoint ever happens.
func (t *Trainer) Train(ctx context.Context, train, dev ports.InstanceSource) (res Result, err error) {
	ctx, span := t.tracer.Start(ctx, "train",
		ports.WithAttribute("epochs", t.settings.Training.Epochs),
		ports.WithAttribute("batches", t.numBatches),
		ports.WithAttribute("check_freq", t.checkFreq),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	t.logger.Info(fmt.Sprintf("evaluation check every %d/%d batches", t.checkFreq, t.numBatches))
	t.logger.Debug("learning rate schedule: " + t.lr.String())
	if t.settings.Verbose && t.reporter != nil {
		t.logger.Info("task schedules\n" + t.reporter(t.controller.States()))
	}

	start := t.now()
	for epoch := 1; epoch <= t.settings.Training.Epochs; epoch++ {
		res.Epochs = epoch
		batches, err := t.epoch(ctx, epoch, train, dev)
		res.Batches += batches
		if errors.Is(err, errEarlyStop) {
			res.Stopped = true
			break
		}
		if err != nil {
			return res, err
		}
	}

	if res.Stopped {
		d := t.controller.Decision()
		t.logger.Info(fmt.Sprintf("early stopping training: task [%s] with best score %.4f", d.Task, d.Best))
		if t.best != nil {
			if err := t.model.Restore(t.best); err != nil {
				return res, zerr.Wrap(err, domain.ErrModelFailed.Error())
			}
		}
		t.scores = map[string]float64{d.Task: d.Best}
	}

	t.logger.Info(fmt.Sprintf("finished training in [%.0f] secs", t.now().Sub(start).Seconds()))
	res.Scores = t.scores
	res.LR = t.optimizer.LearningRate()
	res.States = t.controller.States()
	return res, nil
}

// report accumulates per-task losses between two progress lines.
type report struct {
	loss     map[string]float64
	batches  map[string]int
	weighted float64
	steps    int
	tokens   int
	start    time.Time
}

func (t *Trainer) newReport() *report {
	return &report{
		loss:    make(map[string]float64),
		batches: make(map[string]int),
		start:   t.now(),
	}
}

func (r *report) String(now time.Time) string {
	var b strings.Builder
	for _, task := range slices.Sorted(maps.Keys(r.loss)) {
		fmt.Fprintf(&b, "%s:%.4f  ", task, r.loss[task]/float64(r.batches[task]))
	}
	rate := 0.0
	if secs := now.Sub(r.start).Seconds(); secs > 0 {
		rate = float64(r.tokens) / secs
	}
	joint := 0.0
	if r.steps > 0 {
		joint = r.weighted / float64(r.steps)
	}
	return fmt.Sprintf("%s|| weighted:%.4f || %.0f w/s", b.String(), joint, rate)
}

func (t *Trainer) epoch(ctx context.Context, epoch int, train, dev ports.InstanceSource) (int, error) {
	ctx, span := t.tracer.Start(ctx, "epoch", ports.WithAttribute("epoch", epoch))
	defer span.End()

	t.logger.Info(fmt.Sprintf("starting epoch [%d]", epoch))
	epochStart := t.now()
	rep := t.newReport()

	b := 0
	err := t.batcher.Stream(ctx, train, func(batch domain.Batch) error {
		defer func() { b++ }()
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := t.step(ctx, batch, rep); err != nil {
			return err
		}

		if b > 0 && t.settings.Training.ReportFreq > 0 && b%t.settings.Training.ReportFreq == 0 {
			t.logger.Info(fmt.Sprintf("batch [%d/%d] || %s", b, t.numBatches, rep.String(t.now())))
			rep = t.newReport()
		}

		if dev != nil && t.checkFreq > 0 && b > 0 && b%t.checkFreq == 0 {
			checkStart := t.now()
			d, err := t.checkpoint(ctx, dev)
			if err != nil {
				return err
			}
			t.logger.Info(fmt.Sprintf("evaluation time: %.0f sec", t.now().Sub(checkStart).Seconds()))
			rep.start = t.now()
			if d.Stop {
				return errEarlyStop
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEarlyStop) {
		span.RecordError(err)
	}
	t.logger.Info(fmt.Sprintf("finished epoch [%d] in [%.0f] secs", epoch, t.now().Sub(epochStart).Seconds()))
	return b, err
}

func (t *Trainer) step(ctx context.Context, batch domain.Batch, rep *report) error {
	encoded := t.encoder.EncodeBatch(batch)
	task := t.sampler.Sample()

	losses, err := t.model.Loss(ctx, encoded, []string{task})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModelFailed.Error()), "task", task)
	}
	if len(losses) == 0 {
		return zerr.With(domain.ErrEmptyLoss, "task", task)
	}

	if err := t.optimizer.Step(ctx, encoded, losses, t.controller.Weights()); err != nil {
		return zerr.Wrap(err, domain.ErrOptimizerFailed.Error())
	}

	rep.tokens += batch.Tokens()
	rep.steps++
	rep.weighted += t.controller.WeightLoss(losses)
	for k, v := range losses {
		rep.loss[k] += v
		rep.batches[k]++
	}
	return nil
}
