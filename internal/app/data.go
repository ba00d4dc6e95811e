package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/engine/segmenter"
	"go.trai.ch/zerr"
)

// stdinPattern is the input path that reads standard input.
const stdinPattern = "-"

// dataset holds the instance sources of a run.
type dataset struct {
	train ports.InstanceSource
	// dev is nil when neither dev_path nor dev_split is set.
	dev ports.InstanceSource
	// size is the number of training instances.
	size int
}

func (a *App) source(settings *domain.Settings, pattern string) ports.InstanceSource {
	seg := segmenter.New(segmenter.ConfigFromSettings(settings))
	src := segmenter.NewSource(a.corpus, pattern, settings.Data.Format(), seg)
	if pattern == stdinPattern {
		return segmenter.NewOnceSource(src)
	}
	return src
}

// loadData builds the training and dev sources.
// Single-pass inputs, dev splits and cache_dataset read the training corpus into memory.
func (a *App) loadData(ctx context.Context, settings *domain.Settings) (*dataset, error) {
	d := settings.Data
	train := a.source(settings, d.InputPath)

	var dev ports.InstanceSource
	if d.DevPath != "" {
		dev = a.source(settings, d.DevPath)
		if !dev.Restartable() {
			mem, err := segmenter.Materialize(ctx, dev)
			if err != nil {
				return nil, zerr.With(err, "dev_path", d.DevPath)
			}
			dev = mem
		}
	}

	if d.DevSplit > 0 || d.CacheDataset || !train.Restartable() {
		mem, err := segmenter.Materialize(ctx, train)
		if err != nil {
			return nil, zerr.With(err, "input_path", d.InputPath)
		}
		a.logger.Info(fmt.Sprintf("loaded %d training instances into memory", mem.Len()))

		if d.DevSplit > 0 {
			trainSet, devSet := segmenter.SplitDev(mem.Instances(), d.DevSplit, settings.Seed)
			if len(trainSet) == 0 {
				return nil, zerr.With(domain.ErrEmptyCorpus, "dev_split", d.DevSplit)
			}
			a.logger.Info(fmt.Sprintf("split %d instances off for dev", len(devSet)))
			mem = segmenter.NewMemorySource(trainSet)
			if len(devSet) > 0 {
				dev = segmenter.NewMemorySource(devSet)
			}
		}
		return &dataset{train: mem, dev: dev, size: mem.Len()}, nil
	}

	stats, err := collectStats(ctx, train)
	if err != nil {
		return nil, zerr.With(err, "input_path", d.InputPath)
	}
	if stats.Instances == 0 {
		return nil, zerr.With(domain.ErrEmptyCorpus, "input_path", d.InputPath)
	}
	return &dataset{train: train, dev: dev, size: stats.Instances}, nil
}

// Stats summarizes the segmented corpus.
type Stats struct {
	Instances int
	Tokens    int
	MinLen    int
	MaxLen    int
	// Lengths counts instances per token length.
	Lengths map[int]int
}

// MeanLen returns the average instance length.
func (s Stats) MeanLen() float64 {
	if s.Instances == 0 {
		return 0
	}
	return float64(s.Tokens) / float64(s.Instances)
}

// SortedLengths returns the distinct instance lengths in increasing order.
func (s Stats) SortedLengths() []int {
	lengths := make([]int, 0, len(s.Lengths))
	for l := range s.Lengths {
		lengths = append(lengths, l)
	}
	slices.Sort(lengths)
	return lengths
}

func (s *Stats) add(inst domain.Instance) {
	n := inst.Len()
	if s.Instances == 0 || n < s.MinLen {
		s.MinLen = n
	}
	s.MaxLen = max(s.MaxLen, n)
	s.Instances++
	s.Tokens += n
	s.Lengths[n]++
}

// collectStats reads one pass of src.
func collectStats(ctx context.Context, src ports.InstanceSource) (Stats, error) {
	stats := Stats{Lengths: make(map[int]int)}
	reader, err := src.Open(ctx)
	if err != nil {
		return stats, err
	}
	defer func() {
		_ = reader.Close()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		inst, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats.add(inst)
	}
}

// Segment segments the training corpus and summarizes the instances.
func (a *App) Segment(ctx context.Context, opts Options) (Stats, error) {
	settings, err := a.loadSettings(ctx, opts)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	err = a.stage(ctx, "segment corpus", func(ctx context.Context, v ports.Vertex) error {
		stats, err = collectStats(ctx, a.source(settings, settings.Data.InputPath))
		if err != nil {
			return zerr.With(err, "input_path", settings.Data.InputPath)
		}
		v.Log(domain.LogLevelInfo, fmt.Sprintf("segmented %d instances", stats.Instances))
		return nil
	})
	return stats, err
}
