package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tagger/internal/adapters/logger"
	"go.trai.ch/tagger/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the concrete OTel tracer Graft node.
	ProviderNodeID graft.ID = "adapter.telemetry.otel"
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*OTelTracer]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*OTelTracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProviderTracer("tagger", NewBridge(log)), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			return graft.Dep[*OTelTracer](ctx)
		},
	})
}
