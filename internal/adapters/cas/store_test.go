package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/adapters/cas"
	"go.trai.ch/tagger/internal/core/domain"
)

func artifact() domain.EncoderArtifact {
	return domain.EncoderArtifact{
		Fingerprint: "0202c01740364154",
		Word: domain.VocabularyTable{
			Name:    "word",
			Level:   domain.LevelToken,
			Symbols: []string{domain.UnkSymbol, domain.PadSymbol, "the", "dog"},
		},
		Char: domain.VocabularyTable{
			Name:    "char",
			Level:   domain.LevelChar,
			Symbols: []string{domain.UnkSymbol, domain.PadSymbol, "e", "t", "h"},
		},
		Tasks: []domain.VocabularyTable{
			{
				Name:    "pos",
				Level:   domain.LevelToken,
				Symbols: []string{domain.UnkSymbol, domain.PadSymbol, "DET", "NOUN"},
			},
			{
				Name:    "lemma",
				Level:   domain.LevelChar,
				BOS:     true,
				EOS:     true,
				Symbols: []string{domain.UnkSymbol, domain.PadSymbol, domain.BOSSymbol, domain.EOSSymbol, "d", "o", "g"},
			},
		},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, artifact()))

	got, err := store.Get(root, "0202c01740364154")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, artifact(), *got)

	assert.FileExists(t, filepath.Join(root, domain.TaggerDirName, domain.StoreDirName, "0202c01740364154.json"))
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore().Get(t.TempDir(), "ffffffffffffffff")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()
	path := store.Path(root, "abc")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	_, err := store.Get(root, "abc")
	require.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_PutUnwritable(t *testing.T) {
	root := filepath.Join(t.TempDir(), "model")
	require.NoError(t, os.WriteFile(root, []byte("a file, not a directory"), domain.FilePerm))

	err := cas.NewStore().Put(root, artifact())
	require.ErrorContains(t, err, domain.ErrStoreCreateFailed.Error())
}

func TestStore_ArtifactFormat(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()
	require.NoError(t, store.Put(root, artifact()))

	data, err := os.ReadFile(store.Path(root, "0202c01740364154"))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "encoder_artifact", data)
}
