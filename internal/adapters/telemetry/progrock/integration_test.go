package progrock_test

import (
	"context"
	"testing"

	"go.trai.ch/tagger/internal/adapters/telemetry/progrock"
	"go.trai.ch/tagger/internal/core/domain"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx := context.Background()
	_, vertex := recorder.Record(ctx, "load config")

	if _, err := vertex.Stdout().Write([]byte("Standard Output\n")); err != nil {
		t.Errorf("failed to write to stdout: %v", err)
	}

	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Log(domain.LogLevelWarn, "warn msg")

	vertex.Complete(nil)

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
