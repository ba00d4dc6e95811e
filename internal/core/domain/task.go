package domain

// Reserved symbols shared by every vocabulary.
const (
	UnkSymbol = "<unk>"
	PadSymbol = "<pad>"
	BOSSymbol = "<bos>"
	EOSSymbol = "<eos>"
)

// Auxiliary task names added by the trainer itself.
const (
	SelfTask  = "self"
	LMForward = "lm_fwd"
	LMBack    = "lm_bwd"
)

// ReservedTaskName reports whether name is reserved for auxiliary tasks.
func ReservedTaskName(name string) bool {
	switch name {
	case SelfTask, LMForward, LMBack, BreaklineInput:
		return true
	default:
		return false
	}
}

// copyPolicy is the literal that selects the copy fallback.
const copyPolicy = "copy"

// DefaultPolicy is the fallback used when a task's column is missing from a row.
// The zero value falls back to UnkSymbol.
type DefaultPolicy struct {
	Copy   bool
	Symbol string
}

// ParseDefaultPolicy converts the configuration literal into a DefaultPolicy.
func ParseDefaultPolicy(s string) DefaultPolicy {
	if s == copyPolicy {
		return DefaultPolicy{Copy: true}
	}
	return DefaultPolicy{Symbol: s}
}

// Resolve returns the label to use for token when the task value is missing.
func (p DefaultPolicy) Resolve(token string) string {
	if p.Copy {
		return token
	}
	if p.Symbol == "" {
		return UnkSymbol
	}
	return p.Symbol
}

// String returns the configuration literal of the policy.
func (p DefaultPolicy) String() string {
	if p.Copy {
		return copyPolicy
	}
	return p.Symbol
}

// ScheduleSpec holds the per-task schedule overrides.
// Nil fields inherit the global ScheduleDefaults.
type ScheduleSpec struct {
	Mode      Mode
	Patience  *int
	Threshold *float64
	Factor    *float64
	MinWeight *float64
	Weight    *float64
}

// Task is one labelled column of the corpus trained jointly with the others.
type Task struct {
	Name    string
	Target  bool
	Level   Level
	BOS     bool
	EOS     bool
	MaxSize int
	MinFreq int
	Default DefaultPolicy
	// Schedule overrides the global schedule values for this task.
	Schedule ScheduleSpec
}

// IsTarget reports whether the task gates early stopping.
func (t Task) IsTarget() bool {
	return t.Target
}
