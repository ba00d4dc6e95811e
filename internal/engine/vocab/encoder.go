package vocab

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Names of the input vocabularies.
const (
	WordVocabulary = "word"
	CharVocabulary = "char"
)

// fanoutBuffer bounds the instances queued for each builder goroutine.
const fanoutBuffer = 256

// Encoder turns instances into integer batches.
type Encoder struct {
	Word  *Vocabulary
	Char  *Vocabulary
	order []string
	tasks map[string]*Vocabulary
}

// Task returns the vocabulary of a task.
func (e *Encoder) Task(name string) (*Vocabulary, bool) {
	v, ok := e.tasks[name]
	return v, ok
}

// TaskNames returns the encoded tasks in declaration order.
func (e *Encoder) TaskNames() []string {
	return append([]string(nil), e.order...)
}

type fitter struct {
	builder *Builder
	feed    func(b *Builder, inst domain.Instance)
}

func newFitters(s *domain.Settings) []fitter {
	fitters := []fitter{
		{
			builder: NewBuilder(WordVocabulary, domain.LevelToken, Options{
				MaxSize: s.Data.WordMaxSize,
				MinFreq: s.Data.WordMinFreq,
			}),
			feed: func(b *Builder, inst domain.Instance) {
				for _, tok := range inst.Tokens {
					b.Add(tok)
				}
			},
		},
		{
			builder: NewBuilder(CharVocabulary, domain.LevelChar, Options{
				MaxSize: s.Data.CharMaxSize,
				MinFreq: s.Data.CharMinFreq,
			}),
			feed: func(b *Builder, inst domain.Instance) {
				for _, tok := range inst.Tokens {
					b.AddChars(tok)
				}
			},
		},
	}

	for _, t := range s.Tasks {
		name, level := t.Name, t.Level
		fitters = append(fitters, fitter{
			builder: NewBuilder(name, level, Options{
				MaxSize: t.MaxSize,
				MinFreq: t.MinFreq,
				BOS:     t.BOS,
				EOS:     t.EOS,
			}),
			feed: func(b *Builder, inst domain.Instance) {
				for _, label := range inst.Labels[name] {
					if level == domain.LevelChar {
						b.AddChars(label)
					} else {
						b.Add(label)
					}
				}
			},
		})
	}
	return fitters
}

// FitEncoder reads one full pass of src and fits every vocabulary.
// Each vocabulary is counted on its own goroutine; the pass completes before FitEncoder returns.
func FitEncoder(ctx context.Context, src ports.InstanceSource, s *domain.Settings) (*Encoder, error) {
	fitters := newFitters(s)

	g, ctx := errgroup.WithContext(ctx)
	feeds := make([]chan domain.Instance, len(fitters))
	for i := range fitters {
		feeds[i] = make(chan domain.Instance, fanoutBuffer)
		f, feed := fitters[i], feeds[i]
		g.Go(func() error {
			for inst := range feed {
				f.feed(f.builder, inst)
			}
			return nil
		})
	}

	var instances int
	g.Go(func() error {
		defer func() {
			for _, feed := range feeds {
				close(feed)
			}
		}()

		reader, err := src.Open(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = reader.Close() }()

		for {
			inst, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			instances++
			for _, feed := range feeds {
				select {
				case feed <- inst:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if instances == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	enc := &Encoder{
		Word:  fitters[0].builder.Build(),
		Char:  fitters[1].builder.Build(),
		tasks: make(map[string]*Vocabulary, len(s.Tasks)),
	}
	for _, f := range fitters[2:] {
		v := f.builder.Build()
		enc.order = append(enc.order, v.Name())
		enc.tasks[v.Name()] = v
	}
	return enc, nil
}

// Artifact returns the serializable form of the encoder.
func (e *Encoder) Artifact(fingerprint string) domain.EncoderArtifact {
	a := domain.EncoderArtifact{
		Fingerprint: fingerprint,
		Word:        e.Word.Table(),
		Char:        e.Char.Table(),
		Tasks:       make([]domain.VocabularyTable, 0, len(e.order)),
	}
	for _, name := range e.order {
		a.Tasks = append(a.Tasks, e.tasks[name].Table())
	}
	return a
}

// FromArtifact restores an Encoder from a stored artifact.
func FromArtifact(a *domain.EncoderArtifact) *Encoder {
	enc := &Encoder{
		Word:  FromTable(a.Word),
		Char:  FromTable(a.Char),
		tasks: make(map[string]*Vocabulary, len(a.Tasks)),
	}
	for _, t := range a.Tasks {
		enc.order = append(enc.order, t.Name)
		enc.tasks[t.Name] = FromTable(t)
	}
	return enc
}

// Covers reports whether the encoder has a vocabulary for every task of the settings.
func (e *Encoder) Covers(s *domain.Settings) bool {
	for _, t := range s.Tasks {
		v, ok := e.tasks[t.Name]
		if !ok || v.Level() != t.Level {
			return false
		}
	}
	return true
}

func (e *Encoder) encodeChars(v *Vocabulary, s string) []int {
	out := make([]int, 0, len(s)+2)
	if i := v.BOSIndex(); i >= 0 {
		out = append(out, i)
	}
	for _, r := range s {
		out = append(out, v.Encode(string(r)))
	}
	if i := v.EOSIndex(); i >= 0 {
		out = append(out, i)
	}
	return out
}

// EncodeBatch pads the batch to its longest instance and encodes every column.
func (e *Encoder) EncodeBatch(batch domain.Batch) *domain.EncodedBatch {
	maxLen := batch.MaxLen()
	out := &domain.EncodedBatch{
		Batch:   batch,
		Lengths: make([]int, batch.Size()),
		Words:   make([][]int, batch.Size()),
		Chars:   make([][][]int, batch.Size()),
		Tasks:   make(map[string]domain.EncodedLabels, len(e.order)),
	}

	for i, inst := range batch.Instances {
		out.Lengths[i] = inst.Len()
		out.Words[i] = padded(maxLen)
		out.Chars[i] = make([][]int, inst.Len())
		for j, tok := range inst.Tokens {
			out.Words[i][j] = e.Word.Encode(tok)
			out.Chars[i][j] = e.encodeChars(e.Char, tok)
		}
	}

	for _, name := range e.order {
		v := e.tasks[name]
		labels := domain.EncodedLabels{Level: v.Level()}
		if v.Level() == domain.LevelChar {
			labels.Chars = make([][][]int, batch.Size())
		} else {
			labels.Token = make([][]int, batch.Size())
		}

		for i, inst := range batch.Instances {
			seq := inst.Labels[name]
			if v.Level() == domain.LevelChar {
				labels.Chars[i] = make([][]int, len(seq))
				for j, l := range seq {
					labels.Chars[i][j] = e.encodeChars(v, l)
				}
				continue
			}
			labels.Token[i] = padded(maxLen)
			for j, l := range seq {
				labels.Token[i][j] = v.Encode(l)
			}
		}
		out.Tasks[name] = labels
	}
	return out
}

func padded(n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = PadIndex
	}
	return row
}

// DecodeChars turns a char index sequence back into a string, dropping reserved symbols.
func DecodeChars(v *Vocabulary, indices []int) string {
	var out []rune
	for _, i := range indices {
		if i < v.Reserved() {
			continue
		}
		out = append(out, []rune(v.Decode(i))...)
	}
	return string(out)
}
