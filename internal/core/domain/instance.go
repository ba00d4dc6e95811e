package domain

// Record is one row of a tabular corpus file.
type Record struct {
	Token  string
	Fields map[string]string
	// Source is the file the record was read from.
	Source string
	// Row is the 1-based line number inside Source.
	Row int
	// Doc identifies the document the row belongs to; it changes at every file boundary.
	Doc int
}

// CorpusFormat describes how corpus rows are split into records.
type CorpusFormat struct {
	Sep         string
	Header      bool
	TasksOrder  []string
	OnDataError DataErrorPolicy
}

// Instance is one bounded unit of training data.
// Every label sequence has the same length as Tokens.
type Instance struct {
	Tokens []string
	Labels map[string][]string
	Source string
	Row    int
}

// Len returns the number of tokens of the instance.
func (i Instance) Len() int {
	return len(i.Tokens)
}

// Batch is an ordered group of instances consumed by a single optimizer step.
type Batch struct {
	Instances []Instance
}

// Size returns the number of instances in the batch.
func (b Batch) Size() int {
	return len(b.Instances)
}

// MaxLen returns the length every instance is padded to.
func (b Batch) MaxLen() int {
	maxLen := 0
	for _, inst := range b.Instances {
		maxLen = max(maxLen, inst.Len())
	}
	return maxLen
}

// Tokens returns the number of non-padding cells.
func (b Batch) Tokens() int {
	n := 0
	for _, inst := range b.Instances {
		n += inst.Len()
	}
	return n
}

// PaddingCells returns the number of padding cells needed to square the batch.
func (b Batch) PaddingCells() int {
	return b.MaxLen()*b.Size() - b.Tokens()
}

// EncodedLabels holds the integer form of one task's labels inside a batch.
// Token-level tasks fill Token, char-level tasks fill Chars.
type EncodedLabels struct {
	Level Level
	Token [][]int
	Chars [][][]int
}

// EncodedBatch is the padded integer form of a Batch handed to the model.
type EncodedBatch struct {
	Batch   Batch
	Lengths []int
	Words   [][]int
	Chars   [][][]int
	Tasks   map[string]EncodedLabels
}
