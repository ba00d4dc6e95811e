// Package baseline provides a count-based tagger implementing the model ports.
package baseline

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"sync"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultSmoothing is the additive smoothing constant of the loss.
const DefaultSmoothing = 0.1

var _ ports.Model = (*Model)(nil)

// table counts labels per encoded word.
type table struct {
	ByWord map[int]map[string]float64 `json:"by_word"`
	Totals map[string]float64         `json:"totals"`
}

func newTable() *table {
	return &table{
		ByWord: make(map[int]map[string]float64),
		Totals: make(map[string]float64),
	}
}

func (t *table) add(word int, label string, n float64) {
	row, ok := t.ByWord[word]
	if !ok {
		row = make(map[string]float64)
		t.ByWord[word] = row
	}
	row[label] += n
	t.Totals[label] += n
}

// prob returns the smoothed probability of label given word.
func (t *table) prob(word int, label string, alpha float64) float64 {
	v := float64(len(t.Totals) + 1)
	row := t.ByWord[word]
	sum := 0.0
	for _, c := range row {
		sum += c
	}
	return (row[label] + alpha) / (sum + alpha*v)
}

// best returns the most frequent label of word, then of the whole table.
// Ties resolve to the smallest label.
func (t *table) best(word int) string {
	if label, ok := argmax(t.ByWord[word]); ok {
		return label
	}
	if label, ok := argmax(t.Totals); ok {
		return label
	}
	return domain.UnkSymbol
}

func argmax(counts map[string]float64) (string, bool) {
	best, found := "", false
	bestCount := 0.0
	for _, label := range sortedKeys(counts) {
		if c := counts[label]; c > bestCount {
			best, bestCount, found = label, c, true
		}
	}
	return best, found
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Model predicts, for every task, the label most often seen with the input word.
// The language model tasks are bigram models over the encoded words.
type Model struct {
	mu        sync.RWMutex
	tasks     []string
	includeLM bool
	alpha     float64
	tables    map[string]*table
}

// Option configures a Model.
type Option func(*Model)

// WithLanguageModel enables the lm_fwd and lm_bwd tasks.
func WithLanguageModel(enabled bool) Option {
	return func(m *Model) {
		m.includeLM = enabled
	}
}

// WithSmoothing sets the additive smoothing constant.
func WithSmoothing(alpha float64) Option {
	return func(m *Model) {
		if alpha > 0 {
			m.alpha = alpha
		}
	}
}

// NewModel creates an untrained Model for the given tasks.
func NewModel(tasks []string, opts ...Option) *Model {
	m := &Model{
		tasks:  slices.Clone(tasks),
		alpha:  DefaultSmoothing,
		tables: make(map[string]*table),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, name := range m.knownTasks() {
		m.tables[name] = newTable()
	}
	return m
}

func (m *Model) knownTasks() []string {
	if !m.includeLM {
		return m.tasks
	}
	return append(slices.Clone(m.tasks), domain.LMForward, domain.LMBack)
}

// observation is one (word, label) pair of a task inside a batch.
type observation struct {
	word  int
	label string
}

// observations lists the pairs of task in batch, skipping padding.
func observations(batch *domain.EncodedBatch, task string) ([]observation, bool) {
	var obs []observation
	switch task {
	case domain.LMForward, domain.LMBack:
		for i, words := range batch.Words {
			n := batch.Lengths[i]
			for j := range n {
				k := j + 1
				if task == domain.LMBack {
					k = j - 1
				}
				if k < 0 || k >= n {
					continue
				}
				obs = append(obs, observation{word: words[j], label: symbolKey(words[k])})
			}
		}
		return obs, true
	}

	found := false
	for i, inst := range batch.Batch.Instances {
		labels, ok := inst.Labels[task]
		if !ok {
			continue
		}
		found = true
		for j, label := range labels {
			obs = append(obs, observation{word: batch.Words[i][j], label: label})
		}
	}
	return obs, found
}

func symbolKey(word int) string {
	return "#" + strconv.Itoa(word)
}

// Loss returns the smoothed negative log-likelihood per token of every task.
func (m *Model) Loss(ctx context.Context, batch *domain.EncodedBatch, tasks []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	losses := make(map[string]float64, len(tasks))
	for _, task := range tasks {
		tbl, ok := m.tables[task]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownTask, "task", task)
		}
		obs, ok := observations(batch, task)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownTask, "task", task)
		}
		if len(obs) == 0 {
			losses[task] = 0
			continue
		}
		nll := 0.0
		for _, o := range obs {
			nll -= math.Log(tbl.prob(o.word, o.label, m.alpha))
		}
		losses[task] = nll / float64(len(obs))
	}
	return losses, nil
}

// Predict returns the most frequent label of every word for each task.
func (m *Model) Predict(ctx context.Context, batch *domain.EncodedBatch) (map[string][][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][][]string, len(m.tasks))
	for _, task := range m.tasks {
		tbl := m.tables[task]
		rows := make([][]string, len(batch.Words))
		for i, words := range batch.Words {
			n := batch.Lengths[i]
			row := make([]string, n)
			for j := range n {
				row[j] = tbl.best(words[j])
			}
			rows[i] = row
		}
		out[task] = rows
	}
	return out, nil
}

// observe adds the pairs of task in batch scaled by n.
func (m *Model) observe(batch *domain.EncodedBatch, task string, n float64) {
	tbl, ok := m.tables[task]
	if !ok {
		return
	}
	obs, _ := observations(batch, task)
	for _, o := range obs {
		tbl.add(o.word, o.label, n)
	}
}

// Snapshot captures the current counts.
func (m *Model) Snapshot() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.Marshal(m.tables)
}

// Restore replaces the counts with a previous snapshot.
func (m *Model) Restore(state []byte) error {
	tables := make(map[string]*table)
	if err := json.Unmarshal(state, &tables); err != nil {
		return zerr.Wrap(err, domain.ErrInvalidSnapshot.Error())
	}
	for _, name := range m.knownTasks() {
		tbl, ok := tables[name]
		if !ok || tbl == nil {
			return zerr.With(domain.ErrInvalidSnapshot, "task", name)
		}
		if tbl.ByWord == nil {
			tbl.ByWord = make(map[int]map[string]float64)
		}
		if tbl.Totals == nil {
			tbl.Totals = make(map[string]float64)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = tables
	return nil
}
