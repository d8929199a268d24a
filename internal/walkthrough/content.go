package walkthrough

import (
	"fmt"

	"github.com/Iron-Ham/stepthrough/internal/errors"
)

// Content is the immutable input of a walkthrough.
type Content struct {
	// Title and Request are presentation text for the plan panel.
	Title   string
	Request string

	// Source holds the script, one string per line.
	Source []string
	Plan   []PlanStep
	Trace  []TraceEntry

	Outputs Outputs
	// OutputOffset is the trace index after which output begins when no
	// entry carries an explicit output phase.
	OutputOffset int
}

// NewPlan builds plan steps from descriptions, assigning indexes in order.
func NewPlan(descriptions ...string) []PlanStep {
	plan := make([]PlanStep, len(descriptions))
	for i, d := range descriptions {
		plan[i] = PlanStep{Index: i, Description: d}
	}
	return plan
}

// HasExplicitPhases reports whether any trace entry pins its output phase.
func (c *Content) HasExplicitPhases() bool {
	for _, e := range c.Trace {
		if e.OutputPhase != nil {
			return true
		}
	}
	return false
}

// MaxStepTag returns the largest step tag in the trace.
func (c *Content) MaxStepTag() int {
	maxTag := 0
	for _, e := range c.Trace {
		maxTag = max(maxTag, e.StepTag)
	}
	return maxTag
}

// Validate checks every invariant the state machine relies on and returns
// the first violation as a *errors.LessonError wrapping
// errors.ErrInvalidLesson.
func (c *Content) Validate() error {
	invalid := func(field string, idx int, format string, args ...any) error {
		return errors.NewLessonError(fmt.Sprintf(format, args...), errors.ErrInvalidLesson).
			WithLesson(c.Title).WithField(field).WithIndex(idx)
	}

	if len(c.Trace) == 0 {
		return invalid("trace", -1, "trace must contain at least one entry")
	}
	if len(c.Plan) == 0 {
		return invalid("plan", -1, "plan must contain at least one step")
	}
	if len(c.Source) == 0 {
		return invalid("source", -1, "source must contain at least one line")
	}
	for i, step := range c.Plan {
		if step.Index != i {
			return invalid("plan.index", i, "plan step index %d does not match its position", step.Index)
		}
	}

	if c.Trace[0].StepTag != 1 {
		return invalid("trace.step", 0, "first step tag must be 1, got %d: a lesson starts on plan step 1", c.Trace[0].StepTag)
	}

	lastPhase := 0
	for i, e := range c.Trace {
		if e.Line < 1 || e.Line > len(c.Source) {
			return invalid("trace.line", i, "line %d outside source lines 1..%d", e.Line, len(c.Source))
		}
		if e.StepTag < 1 {
			return invalid("trace.step", i, "step tag must be positive, got %d", e.StepTag)
		}
		if e.StepTag > len(c.Plan) {
			return invalid("trace.step", i, "step tag %d has no plan step (plan has %d)", e.StepTag, len(c.Plan))
		}
		if i > 0 {
			prev := c.Trace[i-1].StepTag
			if e.StepTag < prev {
				return invalid("trace.step", i, "step tag %d follows larger tag %d", e.StepTag, prev)
			}
			if e.StepTag > prev+1 {
				return invalid("trace.step", i, "step tag jumps from %d to %d: every plan step needs at least one trace entry", prev, e.StepTag)
			}
		}
		if e.OutputPhase != nil {
			p := *e.OutputPhase
			if p < 0 {
				return invalid("trace.output_phase", i, "output phase must not be negative, got %d", p)
			}
			if p < lastPhase {
				return invalid("trace.output_phase", i, "output phase %d follows larger phase %d", p, lastPhase)
			}
			lastPhase = p
		}
	}

	if _, ok := c.Outputs[0]; !ok {
		return invalid("outputs", -1, "outputs must define phase 0")
	}
	for phase := range c.Outputs {
		if phase < 0 {
			return invalid("outputs", -1, "output phase must not be negative, got %d", phase)
		}
	}
	if c.OutputOffset < 0 {
		return invalid("output_offset", -1, "output offset must not be negative, got %d", c.OutputOffset)
	}

	return nil
}
