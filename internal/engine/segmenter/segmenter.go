// Package segmenter cuts corpus records into bounded training instances.
package segmenter

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
)

// Config holds the boundary rules of a Segmenter.
type Config struct {
	Breakline  domain.Breakline
	MaxSentLen int
	// MaxSents caps the number of instances of one pass; 0 means no cap.
	MaxSents int
	Tasks    []domain.Task
}

// ConfigFromSettings extracts the segmentation rules from the settings.
func ConfigFromSettings(s *domain.Settings) Config {
	return Config{
		Breakline:  s.Data.Breakline,
		MaxSentLen: s.Data.MaxSentLen,
		MaxSents:   s.Data.MaxSents,
		Tasks:      s.Tasks,
	}
}

// Segmenter turns a record stream into instances.
type Segmenter struct {
	cfg Config
}

// New creates a Segmenter.
func New(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// Segment wraps records into an instance reader. Closing the reader closes records.
func (s *Segmenter) Segment(records ports.RecordReader) ports.InstanceReader {
	return &instanceReader{cfg: s.cfg, records: records}
}

type instanceReader struct {
	cfg     Config
	records ports.RecordReader

	buf     []domain.Record
	pending *domain.Record
	emitted int
	done    bool
}

// Next returns the next instance or io.EOF.
func (r *instanceReader) Next() (domain.Instance, error) {
	if r.capped() {
		return domain.Instance{}, io.EOF
	}

	for !r.done {
		var rec domain.Record
		if r.pending != nil {
			rec, r.pending = *r.pending, nil
		} else {
			var err error
			rec, err = r.records.Next()
			if errors.Is(err, io.EOF) {
				r.done = true
				break
			}
			if err != nil {
				return domain.Instance{}, err
			}
		}

		// A document's tail never spills into the next document.
		if len(r.buf) > 0 && rec.Doc != r.buf[0].Doc {
			r.pending = &rec
			return r.flush(), nil
		}

		r.buf = append(r.buf, rec)
		if r.boundary(rec) {
			return r.flush(), nil
		}
	}

	if len(r.buf) > 0 {
		return r.flush(), nil
	}
	return domain.Instance{}, io.EOF
}

func (r *instanceReader) capped() bool {
	return r.cfg.MaxSents > 0 && r.emitted >= r.cfg.MaxSents
}

func (r *instanceReader) boundary(last domain.Record) bool {
	if r.cfg.MaxSentLen > 0 && len(r.buf) >= r.cfg.MaxSentLen {
		return true
	}

	bl := r.cfg.Breakline
	switch bl.Type {
	case domain.BreaklineLength:
		return bl.Every > 0 && len(r.buf) >= bl.Every
	case domain.BreaklineFullstop:
		return r.refValue(last) == bl.Symbol
	default:
		return false
	}
}

func (r *instanceReader) refValue(rec domain.Record) string {
	ref := r.cfg.Breakline.Ref
	if ref == domain.BreaklineInput || ref == "" {
		return rec.Token
	}
	for _, t := range r.cfg.Tasks {
		if t.Name == ref {
			return label(t, rec)
		}
	}
	return rec.Fields[ref]
}

func label(t domain.Task, rec domain.Record) string {
	if v, ok := rec.Fields[t.Name]; ok {
		return v
	}
	return t.Default.Resolve(rec.Token)
}

func (r *instanceReader) flush() domain.Instance {
	inst := domain.Instance{
		Tokens: make([]string, len(r.buf)),
		Labels: make(map[string][]string, len(r.cfg.Tasks)),
		Source: r.buf[0].Source,
		Row:    r.buf[0].Row,
	}
	for i, rec := range r.buf {
		inst.Tokens[i] = rec.Token
	}
	for _, t := range r.cfg.Tasks {
		labels := make([]string, len(r.buf))
		for i, rec := range r.buf {
			labels[i] = label(t, rec)
		}
		inst.Labels[t.Name] = labels
	}

	r.buf = r.buf[:0]
	r.emitted++
	return inst
}

// Close closes the underlying record reader.
func (r *instanceReader) Close() error {
	return r.records.Close()
}

// Source is a restartable InstanceSource that re-reads the corpus on every Open.
type Source struct {
	reader    ports.CorpusReader
	pattern   string
	format    domain.CorpusFormat
	segmenter *Segmenter
}

// NewSource creates a Source reading pattern through reader.
func NewSource(reader ports.CorpusReader, pattern string, format domain.CorpusFormat, seg *Segmenter) *Source {
	return &Source{reader: reader, pattern: pattern, format: format, segmenter: seg}
}

// Open starts a new pass over the corpus.
func (s *Source) Open(ctx context.Context) (ports.InstanceReader, error) {
	records, err := s.reader.Open(ctx, s.pattern, s.format)
	if err != nil {
		return nil, err
	}
	return s.segmenter.Segment(records), nil
}

// Restartable reports true; files can be read again.
func (s *Source) Restartable() bool {
	return true
}
