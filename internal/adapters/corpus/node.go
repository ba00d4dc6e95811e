package corpus

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tagger/internal/adapters/fs"
	"go.trai.ch/tagger/internal/adapters/logger"
	"go.trai.ch/tagger/internal/core/ports"
)

// NodeID is the unique identifier for the corpus reader Graft node.
const NodeID graft.ID = "adapter.corpus"

func init() {
	graft.Register(graft.Node[ports.CorpusReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.CorpusReader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(log, resolver), nil
		},
	})
}
