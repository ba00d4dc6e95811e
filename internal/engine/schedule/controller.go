// Package schedule tracks per-task dev scores and turns them into loss weights
// and the early stopping decision.
package schedule

import (
	"math"
	"slices"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/zerr"
)

// Kind tells a target schedule from a slave schedule.
type Kind string

const (
	// KindTarget gates early stopping.
	KindTarget Kind = "target"
	// KindSlave decays its loss weight.
	KindSlave Kind = "slave"
)

// Spec is the resolved schedule configuration of one task.
type Spec struct {
	Task      string
	Target    bool
	Mode      domain.Mode
	Patience  int
	Threshold float64
	Factor    float64
	MinWeight float64
	Weight    float64
}

// SpecsFromSettings resolves the schedule of every task, language model tasks included.
// Unset per-task values inherit the global schedule defaults.
func SpecsFromSettings(s *domain.Settings) []Spec {
	specs := make([]Spec, 0, len(s.Tasks)+2)
	for _, t := range s.Tasks {
		specs = append(specs, resolve(t.Name, t.Target, t.Schedule, s.Schedule))
	}
	if s.IncludeLM {
		specs = append(specs,
			resolve(domain.LMForward, false, s.LMSchedule, s.Schedule),
			resolve(domain.LMBack, false, s.LMSchedule, s.Schedule),
		)
	}
	return specs
}

func resolve(task string, target bool, spec domain.ScheduleSpec, defaults domain.ScheduleDefaults) Spec {
	out := Spec{
		Task:      task,
		Target:    target,
		Mode:      spec.Mode,
		Patience:  defaults.Patience,
		Threshold: defaults.Threshold,
		Factor:    defaults.Factor,
		MinWeight: defaults.MinWeight,
		Weight:    1.0,
	}
	if out.Mode == "" {
		out.Mode = domain.ModeMax
	}
	if spec.Patience != nil {
		out.Patience = *spec.Patience
	}
	if spec.Threshold != nil {
		out.Threshold = *spec.Threshold
	}
	if spec.Factor != nil {
		out.Factor = *spec.Factor
	}
	if spec.MinWeight != nil {
		out.MinWeight = *spec.MinWeight
	}
	if spec.Weight != nil {
		out.Weight = *spec.Weight
	}
	return out
}

// State is a read-only view of one task schedule.
type State struct {
	Task      string
	Kind      Kind
	Mode      domain.Mode
	Best      float64
	Steps     int
	Patience  int
	Threshold float64
	Weight    float64
	Stopped   bool
}

// taskSchedule is implemented by TargetSchedule and SlaveSchedule.
type taskSchedule interface {
	checkpoint(value float64) bool
	state() State
}

type tracker struct {
	task      string
	mode      domain.Mode
	threshold float64
	best      float64
	steps     int
}

func newTracker(spec Spec) tracker {
	best := math.Inf(-1)
	if spec.Mode == domain.ModeMin {
		best = math.Inf(1)
	}
	return tracker{task: spec.Task, mode: spec.Mode, threshold: spec.Threshold, best: best}
}

func (t *tracker) improves(value float64) bool {
	if t.mode == domain.ModeMin {
		return value < t.best-t.threshold
	}
	return value > t.best+t.threshold
}

// observe records value and reports whether it improved on the best one.
func (t *tracker) observe(value float64) bool {
	if t.improves(value) {
		t.best = value
		t.steps = 0
		return true
	}
	t.steps++
	return false
}

// TargetSchedule decides when the whole run stops.
type TargetSchedule struct {
	tracker
	patience int
	stopped  bool
}

func (s *TargetSchedule) checkpoint(value float64) bool {
	if s.stopped {
		return false
	}
	improved := s.observe(value)
	if s.steps >= s.patience {
		s.stopped = true
	}
	return improved
}

func (s *TargetSchedule) state() State {
	return State{
		Task:      s.task,
		Kind:      KindTarget,
		Mode:      s.mode,
		Best:      s.best,
		Steps:     s.steps,
		Patience:  s.patience,
		Threshold: s.threshold,
		Weight:    1.0,
		Stopped:   s.stopped,
	}
}

// SlaveSchedule down-weights an auxiliary task that stopped improving.
type SlaveSchedule struct {
	tracker
	weight    float64
	factor    float64
	minWeight float64
}

func (s *SlaveSchedule) checkpoint(value float64) bool {
	if s.observe(value) {
		return true
	}
	s.weight = max(s.weight*s.factor, s.minWeight)
	return false
}

func (s *SlaveSchedule) state() State {
	return State{
		Task:      s.task,
		Kind:      KindSlave,
		Mode:      s.mode,
		Best:      s.best,
		Steps:     s.steps,
		Threshold: s.threshold,
		Weight:    s.weight,
	}
}

// Decision is the outcome of a checkpoint.
type Decision struct {
	// Improved is set when the target task reached a new best score.
	Improved bool
	// Stop is set once the target task ran out of patience.
	Stop bool
	// Task and Best describe the target task.
	Task string
	Best float64
}

// Controller owns the schedules of all tasks.
// It is driven by a single training loop and holds no locks.
type Controller struct {
	order     []string
	schedules map[string]taskSchedule
	target    *TargetSchedule
}

// New builds a Controller from resolved specs.
// Exactly one spec must be the target.
func New(specs []Spec) (*Controller, error) {
	c := &Controller{schedules: make(map[string]taskSchedule, len(specs))}

	var targets []string
	for _, spec := range specs {
		if _, ok := c.schedules[spec.Task]; ok {
			return nil, zerr.With(domain.ErrDuplicateTask, "task", spec.Task)
		}
		c.order = append(c.order, spec.Task)

		if spec.Target {
			targets = append(targets, spec.Task)
			c.target = &TargetSchedule{tracker: newTracker(spec), patience: spec.Patience}
			c.schedules[spec.Task] = c.target
			continue
		}
		c.schedules[spec.Task] = &SlaveSchedule{
			tracker:   newTracker(spec),
			weight:    spec.Weight,
			factor:    spec.Factor,
			minWeight: spec.MinWeight,
		}
	}

	switch len(targets) {
	case 0:
		return nil, domain.ErrNoTargetTask
	case 1:
		return c, nil
	default:
		return nil, zerr.With(domain.ErrMultipleTargetTasks, "tasks", targets)
	}
}

// NewFromSettings builds the Controller of a run.
func NewFromSettings(s *domain.Settings) (*Controller, error) {
	return New(SpecsFromSettings(s))
}

// Target returns the name of the target task.
func (c *Controller) Target() string {
	return c.target.task
}

// Stopped reports whether the target task ran out of patience.
func (c *Controller) Stopped() bool {
	return c.target.stopped
}

// OnCheckpoint feeds one dev value to the schedule of task.
func (c *Controller) OnCheckpoint(task string, value float64) (Decision, error) {
	s, ok := c.schedules[task]
	if !ok {
		return c.decision(false), zerr.With(domain.ErrUnknownTask, "task", task)
	}
	if c.target.stopped {
		return c.decision(false), nil
	}
	improved := s.checkpoint(value)
	return c.decision(improved && s == taskSchedule(c.target)), nil
}

// Step feeds a map of dev values in task declaration order.
// Values of unknown tasks are ignored.
func (c *Controller) Step(scores map[string]float64) Decision {
	if c.target.stopped {
		return c.decision(false)
	}
	improved := false
	for _, task := range c.order {
		value, ok := scores[task]
		if !ok {
			continue
		}
		s := c.schedules[task]
		if s.checkpoint(value) && s == taskSchedule(c.target) {
			improved = true
		}
	}
	return c.decision(improved)
}

// Decision returns the current state of the target task.
func (c *Controller) Decision() Decision {
	return c.decision(false)
}

func (c *Controller) decision(improved bool) Decision {
	return Decision{
		Improved: improved,
		Stop:     c.target.stopped,
		Task:     c.target.task,
		Best:     c.target.best,
	}
}

// Weight returns the loss weight of task; tasks without a schedule weigh 1.
func (c *Controller) Weight(task string) float64 {
	if s, ok := c.schedules[task].(*SlaveSchedule); ok {
		return s.weight
	}
	return 1.0
}

// Weights returns the loss weight of every scheduled task.
func (c *Controller) Weights() map[string]float64 {
	out := make(map[string]float64, len(c.order))
	for _, task := range c.order {
		out[task] = c.Weight(task)
	}
	return out
}

// WeightLoss sums the losses scaled by their task weight.
func (c *Controller) WeightLoss(losses map[string]float64) float64 {
	tasks := make([]string, 0, len(losses))
	for task := range losses {
		tasks = append(tasks, task)
	}
	slices.Sort(tasks)

	total := 0.0
	for _, task := range tasks {
		total += c.Weight(task) * losses[task]
	}
	return total
}

// States returns the state of every schedule in declaration order.
func (c *Controller) States() []State {
	out := make([]State, 0, len(c.order))
	for _, task := range c.order {
		out = append(out, c.schedules[task].state())
	}
	return out
}
