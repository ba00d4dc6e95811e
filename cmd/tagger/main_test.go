package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tagger/internal/adapters/baseline"
	"go.trai.ch/tagger/internal/adapters/telemetry"
	"go.trai.ch/tagger/internal/adapters/telemetry/progrock"
	"go.trai.ch/tagger/internal/app"
	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		logger,
		mocks.NewMockCorpusReader(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockArtifactStore(ctrl),
		telemetry.NewNoOpTracer(),
		progrock.New(),
		baseline.Factory{},
	)
}

func TestRun_ProviderError(t *testing.T) {
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"check"}, io.Discard, stderr, func(context.Context) (*app.Components, func(), error) {
		return nil, func() {}, errors.New("graph failed")
	})

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: graph failed")
}

func TestRun_Check(t *testing.T) {
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	loader.EXPECT().Load("tagger.yaml").Return(&domain.Settings{
		Tasks: []domain.Task{{Name: "pos", Target: true}},
	}, nil)

	cleaned := false
	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"check"}, stdout, io.Discard, func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: newApp(ctrl, loader, logger), Logger: logger}, func() { cleaned = true }, nil
	})

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "settings are valid")
	assert.True(t, cleaned)
}

func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Times(1)

	loader.EXPECT().Load("missing.yaml").Return(nil, domain.ErrConfigReadFailed)

	exitCode := run(context.Background(), []string{"check", "-c", "missing.yaml"}, io.Discard, io.Discard, func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: newApp(ctrl, loader, logger), Logger: logger}, func() {}, nil
	})

	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)

	blockCh := make(chan struct{})
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.Settings, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"train"}, io.Discard, io.Discard, func(context.Context) (*app.Components, func(), error) {
			return &app.Components{App: newApp(ctrl, loader, logger), Logger: logger}, func() {}, nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
