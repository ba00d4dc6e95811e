package schedule

import (
	"fmt"
	"math"

	"go.trai.ch/tagger/internal/core/domain"
)

// plateauThreshold is the relative improvement ReduceLROnPlateau asks for.
const plateauThreshold = 1e-4

// lrEpsilon is the smallest learning rate change worth applying.
const lrEpsilon = 1e-8

// LRSchedule computes the learning rate after every checkpoint.
type LRSchedule interface {
	// Step advances the schedule; metric is the target dev score.
	Step(metric float64) float64
	// LR returns the current learning rate.
	LR() float64
	String() string
}

// NewLRSchedule builds the learning rate schedule of a run.
func NewLRSchedule(t domain.TrainingSettings) LRSchedule {
	var base LRSchedule
	switch t.LRScheduler {
	case domain.LRCosineAnnealing:
		base = &Cosine{base: t.LR, lr: t.LR, minLR: t.MinLR, period: max(t.LRTMax, 1)}
	case domain.LRCosineWarmRestarts:
		base = &Cosine{base: t.LR, lr: t.LR, minLR: t.MinLR, period: max(t.LRT0, 1), restart: true}
	default:
		base = &Plateau{
			lr:       t.LR,
			factor:   t.LRFactor,
			patience: t.LRPatience,
			minLR:    t.MinLR,
			best:     math.Inf(-1),
		}
	}
	if t.LRDelayed > 0 {
		return &Delayed{delay: t.LRDelayed, base: base}
	}
	return base
}

// Plateau reduces the learning rate when the target score stops improving.
type Plateau struct {
	lr       float64
	factor   float64
	patience int
	minLR    float64
	best     float64
	bad      int
}

// Step implements LRSchedule.
func (p *Plateau) Step(metric float64) float64 {
	if metric > p.best*(1+plateauThreshold) {
		p.best = metric
		p.bad = 0
		return p.lr
	}
	p.bad++
	if p.bad > p.patience {
		if next := max(p.lr*p.factor, p.minLR); p.lr-next > lrEpsilon {
			p.lr = next
		}
		p.bad = 0
	}
	return p.lr
}

// LR implements LRSchedule.
func (p *Plateau) LR() float64 { return p.lr }

func (p *Plateau) String() string {
	return fmt.Sprintf("ReduceLROnPlateau lr=%g steps=%d patience=%d threshold=%g", p.lr, p.bad, p.patience, plateauThreshold)
}

// Cosine anneals the learning rate along a half cosine of the given period.
// With restart set the schedule jumps back to the base rate every period.
type Cosine struct {
	base    float64
	lr      float64
	minLR   float64
	period  int
	restart bool
	t       int
}

// Step implements LRSchedule.
func (c *Cosine) Step(float64) float64 {
	c.t++
	cur := c.t
	if c.restart {
		cur %= c.period
	}
	c.lr = c.minLR + (c.base-c.minLR)*(1+math.Cos(math.Pi*float64(cur)/float64(c.period)))/2
	return c.lr
}

// LR implements LRSchedule.
func (c *Cosine) LR() float64 { return c.lr }

func (c *Cosine) String() string {
	if c.restart {
		return fmt.Sprintf("CosineAnnealingWarmRestarts lr=%g T_0=%d", c.lr, c.period)
	}
	return fmt.Sprintf("CosineAnnealingLR lr=%g T_max=%d", c.lr, c.period)
}

// Delayed holds the learning rate for the first delay steps, then defers to base.
type Delayed struct {
	delay int
	steps int
	base  LRSchedule
}

// Step implements LRSchedule.
func (d *Delayed) Step(metric float64) float64 {
	d.steps++
	if d.steps > d.delay {
		return d.base.Step(metric)
	}
	return d.base.LR()
}

// Waiting reports whether the base schedule has not started yet.
func (d *Delayed) Waiting() bool {
	return d.steps <= d.delay
}

// LR implements LRSchedule.
func (d *Delayed) LR() float64 { return d.base.LR() }

func (d *Delayed) String() string {
	if d.Waiting() {
		return fmt.Sprintf("Delayed lr=%g delay=%d steps=%d", d.base.LR(), d.delay, d.steps)
	}
	return d.base.String()
}
