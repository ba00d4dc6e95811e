package segmenter

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"slices"
	"sync"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

// MemorySource is a restartable InstanceSource over materialized instances.
type MemorySource struct {
	instances []domain.Instance
}

// NewMemorySource creates a MemorySource over instances.
func NewMemorySource(instances []domain.Instance) *MemorySource {
	return &MemorySource{instances: instances}
}

// Instances returns the materialized instances.
func (m *MemorySource) Instances() []domain.Instance {
	return m.instances
}

// Len returns the number of instances.
func (m *MemorySource) Len() int {
	return len(m.instances)
}

// Open starts a new pass over the instances.
func (m *MemorySource) Open(ctx context.Context) (ports.InstanceReader, error) {
	return &sliceReader{ctx: ctx, instances: m.instances}, nil
}

// Restartable reports true.
func (m *MemorySource) Restartable() bool {
	return true
}

type sliceReader struct {
	ctx       context.Context
	instances []domain.Instance
	pos       int
}

func (r *sliceReader) Next() (domain.Instance, error) {
	if err := r.ctx.Err(); err != nil {
		return domain.Instance{}, err
	}
	if r.pos >= len(r.instances) {
		return domain.Instance{}, io.EOF
	}
	inst := r.instances[r.pos]
	r.pos++
	return inst, nil
}

func (r *sliceReader) Close() error {
	return nil
}

// OnceSource wraps a source that can only be read once, such as standard input.
type OnceSource struct {
	inner  ports.InstanceSource
	mu     sync.Mutex
	opened bool
}

// NewOnceSource marks inner as a single-pass source.
func NewOnceSource(inner ports.InstanceSource) *OnceSource {
	return &OnceSource{inner: inner}
}

// Open opens the inner source the first time and fails afterwards.
func (o *OnceSource) Open(ctx context.Context) (ports.InstanceReader, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.opened {
		return nil, domain.ErrSourceNotRestartable
	}
	o.opened = true
	return o.inner.Open(ctx)
}

// Restartable reports false.
func (o *OnceSource) Restartable() bool {
	return false
}

// Materialize reads one full pass of src into memory.
func Materialize(ctx context.Context, src ports.InstanceSource) (*MemorySource, error) {
	reader, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}

	var instances []domain.Instance
	for {
		inst, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = reader.Close()
			return nil, err
		}
		instances = append(instances, inst)
	}
	if err := reader.Close(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCorpusReadFailed.Error())
	}
	if len(instances) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	return NewMemorySource(instances), nil
}

// SplitDev shuffles instances with seed and moves the last ratio share into a dev set.
func SplitDev(instances []domain.Instance, ratio float64, seed int64) (train, dev []domain.Instance) {
	if ratio <= 0 || len(instances) == 0 {
		return instances, nil
	}

	shuffled := slices.Clone(instances)
	rng := rand.New(rand.NewPCG(uint64(seed), 0)) // #nosec G404 -- reproducible shuffling, not security
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := int(float64(len(shuffled)) * ratio)
	cut := len(shuffled) - n
	return shuffled[:cut], shuffled[cut:]
}
