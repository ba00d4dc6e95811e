package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tagger/internal/adapters/baseline"           //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/corpus"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			corpus.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			baseline.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			logger.ConcreteNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.CorpusReader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	models, err := graft.Dep[ports.ModelFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, reader, hasher, store, tracer, recorder, models), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	concrete, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:        app.WithLevelController(concrete),
		Logger:     log,
		LogControl: concrete,
	}, nil
}
