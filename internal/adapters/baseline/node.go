package baseline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tagger/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the baseline model factory Graft node.
	NodeID graft.ID = "adapter.baseline"
)

func init() {
	graft.Register(graft.Node[ports.ModelFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModelFactory, error) {
			return Factory{}, nil
		},
	})
}
