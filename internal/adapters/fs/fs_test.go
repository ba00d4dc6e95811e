package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/adapters/fs"
	"go.trai.ch/tagger/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.tsv"), "x")
	writeFile(t, filepath.Join(dir, "sub", "a.tsv"), "x")
	writeFile(t, filepath.Join(dir, ".tagger", "store", "f.json"), "{}")
	writeFile(t, filepath.Join(dir, ".hidden.tsv"), "x")

	files := slices.Collect(fs.NewWalker().WalkFiles(dir, []string{".?*"}))

	assert.Equal(t, []string{
		filepath.Join(dir, "b.tsv"),
		filepath.Join(dir, "sub", "a.tsv"),
	}, files)
}

func TestWalker_StopsEarly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "x")
	writeFile(t, filepath.Join(dir, "b"), "x")

	count := 0
	for range fs.NewWalker().WalkFiles(dir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestResolver_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "train", "b.tsv"), "x")
	writeFile(t, filepath.Join(dir, "train", "a.tsv"), "x")
	writeFile(t, filepath.Join(dir, "train", "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "docs", "c.tsv"), "x")

	resolver := fs.NewResolver(fs.NewWalker())

	t.Run("glob", func(t *testing.T) {
		files, err := resolver.Resolve(filepath.Join(dir, "train", "*.tsv"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "train", "a.tsv"),
			filepath.Join(dir, "train", "b.tsv"),
		}, files)
	})

	t.Run("directory", func(t *testing.T) {
		files, err := resolver.Resolve(filepath.Join(dir, "docs"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "docs", "c.tsv")}, files)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := resolver.Resolve(filepath.Join(dir, "*.conll"))
		require.ErrorContains(t, err, domain.ErrNoInputFiles.Error())
	})

	t.Run("malformed pattern", func(t *testing.T) {
		_, err := resolver.Resolve("[")
		require.ErrorContains(t, err, domain.ErrNoInputFiles.Error())
	})
}

func fingerprintSettings() *domain.Settings {
	return &domain.Settings{
		Data: domain.DataSettings{
			Breakline:   domain.Breakline{Type: domain.BreaklineFullstop, Ref: domain.BreaklineInput, Symbol: "."},
			MaxSentLen:  35,
			MaxSents:    1000000,
			Header:      true,
			Sep:         "\t",
			OnDataError: domain.DataErrorAbort,
		},
		Tasks: []domain.Task{
			{Name: "pos", Target: true, Level: domain.LevelToken},
			{Name: "lemma", Level: domain.LevelChar, EOS: true, Default: domain.DefaultPolicy{Copy: true}},
		},
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	writeFile(t, a, "token\tpos\nthe\tDET\n")
	writeFile(t, b, "token\tpos\ndog\tNOUN\n")

	hasher := fs.NewHasher()
	base, err := hasher.Fingerprint(fingerprintSettings(), []string{a, b})
	require.NoError(t, err)
	assert.Len(t, base, 16)

	t.Run("file order does not matter", func(t *testing.T) {
		got, err := hasher.Fingerprint(fingerprintSettings(), []string{b, a})
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("content changes", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "a.tsv")
		writeFile(t, other, "token\tpos\nthe\tPRON\n")
		got, err := hasher.Fingerprint(fingerprintSettings(), []string{other, b})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})

	t.Run("vocabulary settings change", func(t *testing.T) {
		s := fingerprintSettings()
		s.Data.WordMaxSize = 100
		got, err := hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)

		s = fingerprintSettings()
		s.Tasks[1].BOS = true
		got, err = hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})

	t.Run("training settings do not change it", func(t *testing.T) {
		s := fingerprintSettings()
		s.Training.Epochs = 99
		s.Training.LR = 0.5
		got, err := hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("dev split and its seed change it", func(t *testing.T) {
		s := fingerprintSettings()
		s.Seed = 3
		got, err := hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.Equal(t, base, got, "seed is irrelevant without a split")

		s.Data.DevSplit = 0.2
		split3, err := hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.NotEqual(t, base, split3)

		s.Seed = 4
		split4, err := hasher.Fingerprint(s, []string{a, b})
		require.NoError(t, err)
		assert.NotEqual(t, split3, split4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := hasher.Fingerprint(fingerprintSettings(), []string{filepath.Join(dir, "missing.tsv")})
		require.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
	})
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	writeFile(t, path, "start-content")

	first, err := fs.NewHasher().ComputeFileHash(path)
	require.NoError(t, err)
	second, err := fs.NewHasher().ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
