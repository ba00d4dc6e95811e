package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints the inputs of vocabulary fitting.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is resolved from the configured corpus
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes every setting that changes the fitted vocabularies together
// with the content of files.
func (h *Hasher) Fingerprint(settings *domain.Settings, files []string) (string, error) {
	hasher := xxhash.New()

	h.hashData(&settings.Data, hasher)
	if settings.Data.DevSplit > 0 {
		// The split and its seed decide which instances the vocabularies are fitted on.
		writeField(hasher,
			strconv.FormatFloat(settings.Data.DevSplit, 'g', -1, 64),
			strconv.FormatInt(settings.Seed, 10),
		)
	}
	h.hashTasks(settings.Tasks, hasher)

	sorted := slices.Clone(files)
	slices.Sort(sorted)
	for _, path := range sorted {
		if err := h.hashFile(path, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, values ...string) {
	for _, v := range values {
		_, _ = hasher.WriteString(v)
		_, _ = hasher.Write([]byte{0})
	}
}

func (h *Hasher) hashData(d *domain.DataSettings, hasher *xxhash.Digest) {
	writeField(hasher,
		string(d.Breakline.Type),
		d.Breakline.Ref,
		d.Breakline.Symbol,
		strconv.Itoa(d.Breakline.Every),
		strconv.Itoa(d.MaxSentLen),
		strconv.Itoa(d.MaxSents),
		strconv.Itoa(d.CharMaxSize),
		strconv.Itoa(d.WordMaxSize),
		strconv.Itoa(d.CharMinFreq),
		strconv.Itoa(d.WordMinFreq),
		strconv.FormatBool(d.IncludeSelf),
		strconv.FormatBool(d.Header),
		d.Sep,
		string(d.OnDataError),
	)
	for _, column := range d.TasksOrder {
		writeField(hasher, column)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func (h *Hasher) hashTasks(tasks []domain.Task, hasher *xxhash.Digest) {
	for _, t := range tasks {
		writeField(hasher,
			t.Name,
			string(t.Level),
			strconv.FormatBool(t.BOS),
			strconv.FormatBool(t.EOS),
			strconv.Itoa(t.MaxSize),
			strconv.Itoa(t.MinFreq),
			t.Default.String(),
		)
	}
	_, _ = hasher.Write([]byte{0})
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, domain.ErrFileHashFailed.Error())
	}
	return nil
}
