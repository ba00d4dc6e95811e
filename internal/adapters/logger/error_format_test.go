package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tagger/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "zerr with metadata",
			err: zerr.With(
				zerr.With(zerr.New("malformed row"), "file", "train.tsv"),
				"row", 12,
			),
			wantMessages: []string{"malformed row"},
			wantMetadata: []map[string]any{{"file": "train.tsv", "row": 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			assert.Len(t, entries, len(tt.wantMessages))
			for i, want := range tt.wantMessages {
				assert.Equal(t, want, entries[i].Message)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata)
			}
		})
	}

	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "caused by",
			entries: []logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}, {Message: "root"}},
			want:    "Error: outer\n\n  Caused by:\n    → inner\n    → root",
		},
		{
			name: "sorted metadata",
			entries: []logger.ErrorEntry{{
				Message:  "malformed row",
				Metadata: map[string]any{"row": 3, "file": "a.tsv"},
			}},
			want: "Error: malformed row\n       file: a.tsv\n       row: 3",
		},
		{
			name:    "multiline cause",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "line1\nline2"}},
			want:    "Error: main\n\n  Caused by:\n    → line1\n      line2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
