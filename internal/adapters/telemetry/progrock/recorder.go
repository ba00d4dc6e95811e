// Package progrock records pipeline stages on a progrock tape.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/tagger/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu   sync.Mutex
	seen map[string]int
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		seen: make(map[string]int),
	}
}

// Record starts recording a new stage vertex.
// Stages recorded twice under the same name get distinct digests.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	n := r.seen[name]
	r.seen[name] = n + 1
	r.mu.Unlock()

	key := name
	if n > 0 {
		key = fmt.Sprintf("%s#%d", name, n)
	}
	d := digest.FromString(key)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
