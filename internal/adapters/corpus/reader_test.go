package corpus_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/adapters/corpus"
	"go.trai.ch/tagger/internal/adapters/fs"
	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var headerFormat = domain.CorpusFormat{Sep: "\t", Header: true, OnDataError: domain.DataErrorAbort}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func readAll(t *testing.T, rr ports.RecordReader) ([]domain.Record, error) {
	t.Helper()
	defer func() { _ = rr.Close() }()

	var out []domain.Record
	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func newReader(t *testing.T) *corpus.Reader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return corpus.NewReader(mocks.NewMockLogger(ctrl), fs.NewResolver(fs.NewWalker()))
}

func TestReader_Header(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tsv", "lemma\ttoken\tpos\nthe\tThe\tDET\n\ndog\tdogs\t\n")
	writeFile(t, dir, "b.tsv", "token\tpos\nrun\tVERB\n")

	rr, err := newReader(t).Open(context.Background(), filepath.Join(dir, "*.tsv"), headerFormat)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "The", records[0].Token)
	assert.Equal(t, map[string]string{"lemma": "the", "pos": "DET"}, records[0].Fields)
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, 1, records[0].Doc)

	assert.Equal(t, "dogs", records[1].Token)
	assert.Equal(t, map[string]string{"lemma": "dog"}, records[1].Fields, "empty cells are missing values")
	assert.Equal(t, 4, records[1].Row)

	assert.Equal(t, "run", records[2].Token)
	assert.Equal(t, 2, records[2].Doc)
	assert.Equal(t, filepath.Join(dir, "b.tsv"), records[2].Source)
}

func TestReader_TokenColumnFallsBackToFirst(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsv", "form\tpos\ncats\tNOUN\n")

	rr, err := newReader(t).Open(context.Background(), path, headerFormat)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cats", records[0].Token)
	assert.Equal(t, map[string]string{"pos": "NOUN"}, records[0].Fields)
}

func TestReader_TasksOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsv", "cats,cat,NOUN\n")

	format := domain.CorpusFormat{Sep: ",", TasksOrder: []string{"lemma", "pos"}}
	rr, err := newReader(t).Open(context.Background(), path, format)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cats", records[0].Token)
	assert.Equal(t, map[string]string{"lemma": "cat", "pos": "NOUN"}, records[0].Fields)
	assert.Equal(t, 1, records[0].Row)
}

func TestReader_FieldCountMismatch_Abort(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsv", "token\tpos\nthe\tDET\nbroken\n")

	rr, err := newReader(t).Open(context.Background(), path, headerFormat)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.Error(t, err)
	assert.Len(t, records, 1)
	require.ErrorContains(t, err, domain.ErrFieldCountMismatch.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	meta := zErr.Metadata()
	assert.Equal(t, path, meta["file"])
	assert.Equal(t, 3, meta["row"])
}

func TestReader_MalformedRow_Skip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsv", "token\tpos\n\tDET\nbroken\nok\tNOUN\n")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(2)

	format := headerFormat
	format.OnDataError = domain.DataErrorSkip
	rr, err := corpus.NewReader(mockLogger, fs.NewResolver(fs.NewWalker())).Open(context.Background(), path, format)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].Token)
}

func TestReader_Stdin(t *testing.T) {
	r := newReader(t).WithStdin(strings.NewReader("token\tpos\na\tDET\n"))

	rr, err := r.Open(context.Background(), corpus.StdinPattern, headerFormat)
	require.NoError(t, err)

	records, err := readAll(t, rr)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, corpus.StdinPattern, records[0].Source)
}

func TestReader_NoFiles(t *testing.T) {
	_, err := newReader(t).Open(context.Background(), filepath.Join(t.TempDir(), "*.tsv"), headerFormat)
	require.ErrorContains(t, err, domain.ErrNoInputFiles.Error())
}

func TestReader_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsv", "token\nx\n")

	ctx, cancel := context.WithCancel(context.Background())
	rr, err := newReader(t).Open(ctx, path, headerFormat)
	require.NoError(t, err)
	cancel()

	_, err = rr.Next()
	require.ErrorIs(t, err, context.Canceled)
}
