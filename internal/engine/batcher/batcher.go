// Package batcher groups instances into training batches.
package batcher

import (
	"cmp"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"slices"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Options control how instances are grouped.
type Options struct {
	BatchSize   int
	BufferSize  int
	MinimizePad bool
	Shuffle     bool
	Seed        int64
}

// OptionsFromSettings extracts the batching options of a run.
func OptionsFromSettings(s *domain.Settings) Options {
	return Options{
		BatchSize:   s.Training.BatchSize,
		BufferSize:  s.Training.BufferSize,
		MinimizePad: s.Training.MinimizePad,
		Shuffle:     s.Training.Shuffle,
		Seed:        s.Seed,
	}
}

// Batcher partitions instances into batches.
// It is not safe for concurrent use.
type Batcher struct {
	opts Options
	rng  *rand.Rand
}

// New creates a Batcher seeded with opts.Seed.
func New(opts Options) *Batcher {
	opts.BatchSize = max(opts.BatchSize, 1)
	opts.BufferSize = max(opts.BufferSize, opts.BatchSize)
	seed := uint64(opts.Seed) //nolint:gosec // reinterpretation of the configured seed
	return &Batcher{
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NumBatches returns the number of full batches in a pool of n instances.
func NumBatches(n, batchSize int) int {
	if batchSize <= 0 {
		return 0
	}
	return n / batchSize
}

// Partition splits pool into batches.
// The pool itself is never reordered.
func (b *Batcher) Partition(pool []domain.Instance) []domain.Batch {
	var out []domain.Batch
	if !b.opts.MinimizePad {
		window := slices.Clone(pool)
		b.shuffle(window)
		return b.slice(window)
	}

	for start := 0; start < len(pool); start += b.opts.BufferSize {
		end := min(start+b.opts.BufferSize, len(pool))
		window := slices.Clone(pool[start:end])
		b.shuffle(window)
		b.sortByLength(window)
		batches := b.slice(window)
		if b.opts.Shuffle {
			b.rng.Shuffle(len(batches), func(i, j int) {
				batches[i], batches[j] = batches[j], batches[i]
			})
		}
		out = append(out, batches...)
	}
	return out
}

func (b *Batcher) shuffle(instances []domain.Instance) {
	if !b.opts.Shuffle {
		return
	}
	b.rng.Shuffle(len(instances), func(i, j int) {
		instances[i], instances[j] = instances[j], instances[i]
	})
}

// lengthJitter is the width of the random offset added to sort keys when shuffling.
// Instances whose lengths differ by less than it may swap places.
const lengthJitter = 2.0

type keyedInstance struct {
	inst domain.Instance
	key  float64
}

// sortByLength orders window by length. With Shuffle, length-adjacent instances are
// mixed so batch composition changes from one pass to the next.
func (b *Batcher) sortByLength(window []domain.Instance) {
	if !b.opts.Shuffle {
		slices.SortStableFunc(window, func(x, y domain.Instance) int {
			return cmp.Compare(x.Len(), y.Len())
		})
		return
	}

	keyed := make([]keyedInstance, len(window))
	for i, inst := range window {
		keyed[i] = keyedInstance{inst: inst, key: float64(inst.Len()) + b.rng.Float64()*lengthJitter}
	}
	slices.SortStableFunc(keyed, func(x, y keyedInstance) int {
		return cmp.Compare(x.key, y.key)
	})
	for i := range keyed {
		window[i] = keyed[i].inst
	}
}

func (b *Batcher) slice(instances []domain.Instance) []domain.Batch {
	out := make([]domain.Batch, 0, (len(instances)+b.opts.BatchSize-1)/b.opts.BatchSize)
	for start := 0; start < len(instances); start += b.opts.BatchSize {
		end := min(start+b.opts.BatchSize, len(instances))
		out = append(out, domain.Batch{Instances: instances[start:end:end]})
	}
	return out
}

// Stream reads src on a producer goroutine and calls fn for every batch.
// Batches are cut per window of BufferSize instances. The queue is unbuffered, so
// the window is the only buffer: once it holds BufferSize unconsumed instances the
// producer blocks with at most one more instance read.
func (b *Batcher) Stream(ctx context.Context, src ports.InstanceSource, fn func(domain.Batch) error) error {
	g, ctx := errgroup.WithContext(ctx)
	queue := make(chan domain.Instance)

	g.Go(func() error {
		defer close(queue)

		reader, err := src.Open(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = reader.Close() }()

		for {
			inst, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case queue <- inst:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		window := make([]domain.Instance, 0, b.opts.BufferSize)
		flush := func() error {
			for _, batch := range b.Partition(window) {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(batch); err != nil {
					return err
				}
			}
			window = window[:0]
			return nil
		}

		for inst := range queue {
			window = append(window, inst)
			if len(window) < b.opts.BufferSize {
				continue
			}
			if err := flush(); err != nil {
				return err
			}
		}
		if len(window) == 0 {
			return nil
		}
		return flush()
	})

	return g.Wait()
}
