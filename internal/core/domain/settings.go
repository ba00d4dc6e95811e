// Package domain contains the core domain models of the tagger training pipeline.
package domain

import "regexp"

// BreaklineType selects the rule that closes a training instance.
type BreaklineType string

const (
	// BreaklineLength closes an instance every fixed number of tokens.
	BreaklineLength BreaklineType = "LENGTH"
	// BreaklineFullstop closes an instance after a sentence-ending symbol.
	BreaklineFullstop BreaklineType = "FULLSTOP"
)

// BreaklineInput is the breakline reference that selects the input token column.
const BreaklineInput = "input"

// Level is the segmentation granularity of an encoder.
type Level string

const (
	// LevelToken encodes whole labels.
	LevelToken Level = "token"
	// LevelChar encodes labels character by character.
	LevelChar Level = "char"
)

// Mode tells whether a larger or a smaller checkpoint value is an improvement.
type Mode string

const (
	// ModeMax treats larger values as better (accuracy-like metrics).
	ModeMax Mode = "max"
	// ModeMin treats smaller values as better (losses).
	ModeMin Mode = "min"
)

// CembType is the character embedding encoder type.
type CembType string

const (
	// CembRNN selects a recurrent character encoder.
	CembRNN CembType = "rnn"
	// CembCNN selects a convolutional character encoder.
	CembCNN CembType = "cnn"
)

// MergeType selects how word and character embeddings are combined.
type MergeType string

const (
	// MergeMixer mixes embeddings with a learned gate.
	MergeMixer MergeType = "mixer"
	// MergeConcat concatenates embeddings.
	MergeConcat MergeType = "concat"
)

// Cell is the recurrent cell type of the sentence encoder.
type Cell string

const (
	// CellLSTM selects LSTM cells.
	CellLSTM Cell = "LSTM"
	// CellGRU selects GRU cells.
	CellGRU Cell = "GRU"
)

// LRScheduler names a learning rate schedule.
type LRScheduler string

const (
	// LRReduceOnPlateau decays the learning rate when the target score stalls.
	LRReduceOnPlateau LRScheduler = "ReduceLROnPlateau"
	// LRCosineAnnealing anneals the learning rate along a half cosine.
	LRCosineAnnealing LRScheduler = "CosineAnnealingLR"
	// LRCosineWarmRestarts anneals with periodic restarts.
	LRCosineWarmRestarts LRScheduler = "CosineAnnealingWarmRestarts"
)

// DataErrorPolicy decides what happens with corrupt corpus rows.
type DataErrorPolicy string

const (
	// DataErrorAbort stops reading at the first corrupt row.
	DataErrorAbort DataErrorPolicy = "abort"
	// DataErrorSkip drops corrupt rows with a warning.
	DataErrorSkip DataErrorPolicy = "skip"
)

var deviceRegex = regexp.MustCompile(`^(cpu|cuda(:[0-9]+)?)$`)

// ValidDevice reports whether s names a supported device.
func ValidDevice(s string) bool {
	return deviceRegex.MatchString(s)
}

// Breakline describes how the corpus is cut into instances.
type Breakline struct {
	Type BreaklineType
	// Ref is BreaklineInput or the name of the task whose labels are inspected.
	Ref string
	// Symbol is the sentence-ending value for FULLSTOP.
	Symbol string
	// Every is the chunk width for LENGTH.
	Every int
}

// DataSettings groups the corpus related settings.
type DataSettings struct {
	InputPath    string
	TestPath     string
	DevPath      string
	DevSplit     float64
	Breakline    Breakline
	MaxSentLen   int
	MaxSents     int
	CharMaxSize  int
	WordMaxSize  int
	CharMinFreq  int
	WordMinFreq  int
	IncludeSelf  bool
	Header       bool
	Sep          string
	TasksOrder   []string
	OnDataError  DataErrorPolicy
	CacheDataset bool
}

// Format returns the record layout of the corpus files.
func (d *DataSettings) Format() CorpusFormat {
	return CorpusFormat{
		Sep:         d.Sep,
		Header:      d.Header,
		TasksOrder:  d.TasksOrder,
		OnDataError: d.OnDataError,
	}
}

// ScheduleDefaults holds the global schedule values inherited by tasks.
type ScheduleDefaults struct {
	Patience  int
	Factor    float64
	Threshold float64
	MinWeight float64
}

// TrainingSettings groups the optimization settings.
type TrainingSettings struct {
	BufferSize               int
	MinimizePad              bool
	Dropout                  float64
	WordDropout              float64
	Epochs                   int
	BatchSize                int
	Shuffle                  bool
	Optimizer                string
	LR                       float64
	LRFactor                 float64
	LRPatience               int
	MinLR                    float64
	LRScheduler              LRScheduler
	LRDelayed                int
	LRTMax                   int
	LRT0                     int
	ClipNorm                 float64
	ReportFreq               int
	ChecksPerEpoch           int
	PretrainEmbeddings       bool
	LoadPretrainedEmbeddings string
}

// ModelSettings groups the architecture settings consumed by the model collaborator.
type ModelSettings struct {
	WembDim    int
	CembDim    int
	CembType   CembType
	MergeType  MergeType
	HiddenSize int
	NumLayers  int
	Cell       Cell
}

// Settings is the validated configuration of a training run.
type Settings struct {
	Verbose   bool
	Device    string
	ModelName string
	ModelPath string
	Seed      int64

	Data       DataSettings
	Tasks      []Task
	Schedule   ScheduleDefaults
	IncludeLM  bool
	LMSchedule ScheduleSpec
	Training   TrainingSettings
	Model      ModelSettings
}

// Task returns the task with the given name.
func (s *Settings) Task(name string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// TargetTask returns the name of the target task, or "" when none is marked.
func (s *Settings) TargetTask() string {
	for _, t := range s.Tasks {
		if t.IsTarget() {
			return t.Name
		}
	}
	return ""
}

// TaskNames returns the task names in declaration order.
func (s *Settings) TaskNames() []string {
	names := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		names[i] = t.Name
	}
	return names
}
