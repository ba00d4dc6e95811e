package app

import (
	"context"
	"fmt"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/tagger/internal/engine/vocab"
	"go.trai.ch/zerr"
)

// VocabResult describes the fitted vocabularies.
type VocabResult struct {
	Fingerprint string
	// Cached is true when the vocabularies were loaded from the artifact store.
	Cached bool
	// Names lists the vocabularies in report order: word, char, then the tasks.
	Names []string
	Sizes map[string]int
}

func newVocabResult(enc *vocab.Encoder, fingerprint string, cached bool) *VocabResult {
	res := &VocabResult{
		Fingerprint: fingerprint,
		Cached:      cached,
		Names:       []string{vocab.WordVocabulary, vocab.CharVocabulary},
		Sizes: map[string]int{
			vocab.WordVocabulary: enc.Word.Size(),
			vocab.CharVocabulary: enc.Char.Size(),
		},
	}
	for _, name := range enc.TaskNames() {
		v, _ := enc.Task(name)
		res.Names = append(res.Names, name)
		res.Sizes[name] = v.Size()
	}
	return res
}

// fingerprint returns the artifact key of the training corpus, or "" when it cannot be cached.
func (a *App) fingerprint(settings *domain.Settings) (string, error) {
	if settings.Data.InputPath == stdinPattern {
		return "", nil
	}
	files, err := a.corpus.Files(settings.Data.InputPath)
	if err != nil {
		return "", err
	}
	return a.hasher.Fingerprint(settings, files)
}

// fitEncoder loads the encoder from the artifact store or fits and stores it.
func (a *App) fitEncoder(ctx context.Context, settings *domain.Settings, train ports.InstanceSource, noCache bool) (*vocab.Encoder, *VocabResult, error) {
	var (
		enc *vocab.Encoder
		res *VocabResult
	)
	err := a.stage(ctx, "fit vocabulary", func(ctx context.Context, v ports.Vertex) error {
		fp, err := a.fingerprint(settings)
		if err != nil {
			return err
		}

		if fp != "" && !noCache {
			artifact, err := a.store.Get(settings.ModelPath, fp)
			if err != nil {
				return err
			}
			if artifact != nil {
				cached := vocab.FromArtifact(artifact)
				if cached.Covers(settings) {
					a.logger.Info(fmt.Sprintf("loaded vocabularies from artifact %s", fp))
					v.Cached()
					enc, res = cached, newVocabResult(cached, fp, true)
					return nil
				}
				a.logger.Warn(fmt.Sprintf("artifact %s does not match the tasks, refitting", fp))
			}
		}

		fitted, err := vocab.FitEncoder(ctx, train, settings)
		if err != nil {
			return err
		}
		if fp != "" {
			if err := a.store.Put(settings.ModelPath, fitted.Artifact(fp)); err != nil {
				return err
			}
			a.logger.Debug(fmt.Sprintf("stored vocabularies as artifact %s", fp))
		}
		v.Log(domain.LogLevelInfo, fmt.Sprintf("fitted %d vocabularies", len(fitted.TaskNames())+2))
		enc, res = fitted, newVocabResult(fitted, fp, false)
		return nil
	})
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to fit vocabularies")
	}
	return enc, res, nil
}

// Vocab fits the vocabularies on the training corpus and stores them.
func (a *App) Vocab(ctx context.Context, opts Options) (*VocabResult, error) {
	settings, err := a.loadSettings(ctx, opts)
	if err != nil {
		return nil, err
	}
	data, err := a.loadData(ctx, settings)
	if err != nil {
		return nil, err
	}
	_, res, err := a.fitEncoder(ctx, settings, data.train, opts.NoCache)
	return res, err
}
