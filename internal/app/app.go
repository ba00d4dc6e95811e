// Package app implements the application layer for tagger.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

// LevelController switches the logger to debug output.
type LevelController interface {
	SetVerbose(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	corpus       ports.CorpusReader
	hasher       ports.Hasher
	store        ports.ArtifactStore
	tracer       ports.Tracer
	telemetry    ports.Telemetry
	models       ports.ModelFactory
	levels       LevelController
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	corpus ports.CorpusReader,
	hasher ports.Hasher,
	store ports.ArtifactStore,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
	models ports.ModelFactory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		corpus:       corpus,
		hasher:       hasher,
		store:        store,
		tracer:       tracer,
		telemetry:    telemetry,
		models:       models,
	}
}

// WithLevelController lets the settings' verbose flag enable debug logs.
func (a *App) WithLevelController(levels LevelController) *App {
	a.levels = levels
	return a
}

// Options holds the command line overrides shared by every command.
type Options struct {
	// ConfigPath is the settings document; empty selects domain.SettingsFileName.
	ConfigPath string
	// Verbose forces verbose output regardless of the settings.
	Verbose bool
	// Epochs overrides training.epochs when positive.
	Epochs int
	// Seed overrides the settings seed when not nil.
	Seed *int64
	// NoCache refits the vocabularies even when a stored artifact matches.
	NoCache bool
}

func (o Options) configPath() string {
	if o.ConfigPath == "" {
		return domain.SettingsFileName
	}
	return o.ConfigPath
}

// stage records fn as one pipeline stage vertex.
func (a *App) stage(ctx context.Context, name string, fn func(ctx context.Context, v ports.Vertex) error) error {
	ctx, vertex := a.telemetry.Record(ctx, name)
	err := fn(ctx, vertex)
	vertex.Complete(err)
	return err
}

// loadSettings loads the settings document and applies the overrides.
func (a *App) loadSettings(ctx context.Context, opts Options) (*domain.Settings, error) {
	var settings *domain.Settings
	err := a.stage(ctx, "load config", func(_ context.Context, v ports.Vertex) error {
		s, err := a.configLoader.Load(opts.configPath())
		if err != nil {
			return err
		}
		if opts.Verbose {
			s.Verbose = true
		}
		if opts.Epochs > 0 {
			s.Training.Epochs = opts.Epochs
		}
		if opts.Seed != nil {
			s.Seed = *opts.Seed
		}
		if s.Verbose && a.levels != nil {
			a.levels.SetVerbose(true)
		}
		v.Log(domain.LogLevelInfo, fmt.Sprintf("loaded %d tasks from %s", len(s.Tasks), opts.configPath()))
		settings = s
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return settings, nil
}

// Check loads and validates the settings document.
func (a *App) Check(ctx context.Context, opts Options) (*domain.Settings, error) {
	settings, err := a.loadSettings(ctx, opts)
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("configuration is valid: target task [%s]", settings.TargetTask()))
	return settings, nil
}

// Clean removes the artifact store below the model path.
func (a *App) Clean(ctx context.Context, opts Options) error {
	settings, err := a.loadSettings(ctx, opts)
	if err != nil {
		return err
	}

	path := domain.DefaultStorePath(settings.ModelPath)
	a.logger.Info(fmt.Sprintf("removing %s...", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove artifact store"), "path", path)
	}
	a.logger.Info("removed artifact store")
	return nil
}

// Close flushes the stage recorder.
func (a *App) Close() error {
	return a.telemetry.Close()
}
