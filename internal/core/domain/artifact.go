package domain

// VocabularyTable is the serialized form of a fitted vocabulary.
// Symbols lists every symbol in index order, reserved symbols first.
type VocabularyTable struct {
	Name    string   `json:"name"`
	Level   Level    `json:"level"`
	BOS     bool     `json:"bos,omitempty"`
	EOS     bool     `json:"eos,omitempty"`
	Symbols []string `json:"symbols"`
}

// EncoderArtifact is the persisted set of vocabularies fitted on a corpus.
type EncoderArtifact struct {
	Fingerprint string            `json:"fingerprint"`
	Word        VocabularyTable   `json:"word"`
	Char        VocabularyTable   `json:"char"`
	Tasks       []VocabularyTable `json:"tasks"`
}
