// Package vocab fits the symbol tables used to encode instances.
package vocab

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tagger/internal/core/domain"
)

// Reserved indices shared by every vocabulary.
const (
	UnkIndex = 0
	PadIndex = 1
)

// Options bound the size of a vocabulary.
type Options struct {
	// MaxSize keeps the MaxSize most frequent symbols when positive.
	MaxSize int
	// MinFreq drops rarer symbols when MaxSize is not set.
	MinFreq int
	BOS     bool
	EOS     bool
}

// Builder counts symbols in first-seen order.
type Builder struct {
	name   string
	level  domain.Level
	opts   Options
	counts map[string]int
	order  []string
}

// NewBuilder creates a Builder for the vocabulary called name.
func NewBuilder(name string, level domain.Level, opts Options) *Builder {
	return &Builder{
		name:   name,
		level:  level,
		opts:   opts,
		counts: make(map[string]int),
	}
}

// Add counts one occurrence of symbol.
func (b *Builder) Add(symbol string) {
	if _, ok := b.counts[symbol]; !ok {
		b.order = append(b.order, symbol)
	}
	b.counts[symbol]++
}

// AddChars counts every character of s.
func (b *Builder) AddChars(s string) {
	for _, r := range s {
		b.Add(string(r))
	}
}

// Build freezes the counts into a Vocabulary.
// Symbols are ordered by decreasing frequency, ties keep first-seen order.
func (b *Builder) Build() *Vocabulary {
	reserved := reservedSymbols(b.opts.BOS, b.opts.EOS)

	candidates := make([]string, 0, len(b.order))
	for _, s := range b.order {
		if !slices.Contains(reserved, s) {
			candidates = append(candidates, s)
		}
	}
	slices.SortStableFunc(candidates, func(x, y string) int {
		return b.counts[y] - b.counts[x]
	})

	switch {
	case b.opts.MaxSize > 0:
		if len(candidates) > b.opts.MaxSize {
			candidates = candidates[:b.opts.MaxSize]
		}
	case b.opts.MinFreq > 1:
		kept := candidates[:0]
		for _, s := range candidates {
			if b.counts[s] >= b.opts.MinFreq {
				kept = append(kept, s)
			}
		}
		candidates = kept
	}

	return newVocabulary(domain.VocabularyTable{
		Name:    b.name,
		Level:   b.level,
		BOS:     b.opts.BOS,
		EOS:     b.opts.EOS,
		Symbols: append(reserved, candidates...),
	})
}

func reservedSymbols(bos, eos bool) []string {
	reserved := []string{domain.UnkSymbol, domain.PadSymbol}
	if bos {
		reserved = append(reserved, domain.BOSSymbol)
	}
	if eos {
		reserved = append(reserved, domain.EOSSymbol)
	}
	return reserved
}

// Vocabulary is a closed symbol to index table.
type Vocabulary struct {
	table    domain.VocabularyTable
	index    map[string]int
	reserved int
}

func newVocabulary(table domain.VocabularyTable) *Vocabulary {
	index := make(map[string]int, len(table.Symbols))
	for i, s := range table.Symbols {
		index[s] = i
	}
	return &Vocabulary{
		table:    table,
		index:    index,
		reserved: len(reservedSymbols(table.BOS, table.EOS)),
	}
}

// FromTable restores a Vocabulary from its serialized table.
func FromTable(table domain.VocabularyTable) *Vocabulary {
	return newVocabulary(table)
}

// Name returns the vocabulary name.
func (v *Vocabulary) Name() string {
	return v.table.Name
}

// Level returns the segmentation level of the vocabulary.
func (v *Vocabulary) Level() domain.Level {
	return v.table.Level
}

// Size returns the number of symbols, reserved ones included.
func (v *Vocabulary) Size() int {
	return len(v.table.Symbols)
}

// Reserved returns the number of reserved symbols.
func (v *Vocabulary) Reserved() int {
	return v.reserved
}

// Encode returns the index of symbol, or UnkIndex when unseen.
func (v *Vocabulary) Encode(symbol string) int {
	if i, ok := v.index[symbol]; ok {
		return i
	}
	return UnkIndex
}

// Decode returns the symbol at index, or the unknown symbol when out of range.
func (v *Vocabulary) Decode(index int) string {
	if index < 0 || index >= len(v.table.Symbols) {
		return domain.UnkSymbol
	}
	return v.table.Symbols[index]
}

// BOSIndex returns the index of the begin symbol, or -1 when not reserved.
func (v *Vocabulary) BOSIndex() int {
	if !v.table.BOS {
		return -1
	}
	return v.index[domain.BOSSymbol]
}

// EOSIndex returns the index of the end symbol, or -1 when not reserved.
func (v *Vocabulary) EOSIndex() int {
	if !v.table.EOS {
		return -1
	}
	return v.index[domain.EOSSymbol]
}

// Symbols returns the symbols in index order.
func (v *Vocabulary) Symbols() []string {
	return slices.Clone(v.table.Symbols)
}

// Table returns the serializable form of the vocabulary.
func (v *Vocabulary) Table() domain.VocabularyTable {
	t := v.table
	t.Symbols = slices.Clone(v.table.Symbols)
	return t
}

// Fingerprint returns the xxhash of the symbol table.
func (v *Vocabulary) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(v.table.Name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(string(v.table.Level))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(strconv.FormatBool(v.table.BOS) + strconv.FormatBool(v.table.EOS))
	_, _ = d.Write([]byte{0})
	for _, s := range v.table.Symbols {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
