package walkthrough

// RevealedLine is one visible source line.
type RevealedLine struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	IsCurrent bool   `json:"is_current"`
	// Hint is set only on the current line, and only when the entry has one.
	Hint string `json:"hint,omitempty"`
}

// Frame is everything a renderer needs for one position.
type Frame struct {
	Title   string `json:"title,omitempty"`
	Request string `json:"request,omitempty"`

	RevealedLines   []RevealedLine `json:"revealed_lines"`
	MaxRevealedLine int            `json:"max_revealed_line"`

	Plan            []PlanStep `json:"plan"`
	ActivePlanIndex int        `json:"active_plan_index"`
	TotalPlanSteps  int        `json:"total_plan_steps"`

	TraceIndex      int    `json:"trace_index"`
	TotalTraceSteps int    `json:"total_trace_steps"`
	CurrentLine     int    `json:"current_line"`
	CurrentHint     string `json:"current_hint,omitempty"`
	CurrentLocals   Locals `json:"current_locals"`

	OutputPhase int    `json:"output_phase"`
	OutputText  string `json:"output_text"`

	AtStart bool `json:"at_start"`
	AtEnd   bool `json:"at_end"`
}

// ActivePlanStep returns the plan step the frame highlights.
func (f Frame) ActivePlanStep() PlanStep {
	return f.Plan[f.ActivePlanIndex]
}

// Project computes the frame for pos. It has no side effects and returns an
// equal frame for equal inputs. pos must come from a Walkthrough over c.
func Project(c *Content, pos Position) Frame {
	current := c.Trace[pos.TraceIndex]
	maxLine := MaxRevealedLine(c.Trace, pos.TraceIndex)
	phase := OutputPhase(c, pos.TraceIndex)
	text, phase := c.Outputs.Phase(phase)

	return Frame{
		Title:           c.Title,
		Request:         c.Request,
		RevealedLines:   RevealLines(c.Source, maxLine, current),
		MaxRevealedLine: maxLine,
		Plan:            c.Plan,
		ActivePlanIndex: pos.PlanIndex,
		TotalPlanSteps:  len(c.Plan),
		TraceIndex:      pos.TraceIndex,
		TotalTraceSteps: len(c.Trace),
		CurrentLine:     current.Line,
		CurrentHint:     current.Hint,
		CurrentLocals:   current.Locals,
		OutputPhase:     phase,
		OutputText:      text,
		AtStart:         pos.TraceIndex == 0,
		AtEnd:           pos.TraceIndex == len(c.Trace)-1,
	}
}

// MaxRevealedLine folds the trace prefix [0, traceIndex] to its largest line.
func MaxRevealedLine(trace []TraceEntry, traceIndex int) int {
	maxLine := 0
	for _, e := range trace[:traceIndex+1] {
		maxLine = max(maxLine, e.Line)
	}
	return maxLine
}

// RevealLines returns source lines 1..maxLine in order, marking the line of
// the current entry and attaching its hint.
func RevealLines(source []string, maxLine int, current TraceEntry) []RevealedLine {
	maxLine = min(maxLine, len(source))
	lines := make([]RevealedLine, 0, maxLine)
	for i := 0; i < maxLine; i++ {
		rl := RevealedLine{Number: i + 1, Text: source[i]}
		if rl.Number == current.Line {
			rl.IsCurrent = true
			rl.Hint = current.Hint
		}
		lines = append(lines, rl)
	}
	return lines
}

// OutputPhase resolves the output phase at traceIndex. Explicit phases win:
// the nearest entry at or before traceIndex that pins a phase decides it.
// Without explicit phases the phase is traceIndex-OutputOffset, floored at 0.
func OutputPhase(c *Content, traceIndex int) int {
	if c.HasExplicitPhases() {
		for i := traceIndex; i >= 0; i-- {
			if p := c.Trace[i].OutputPhase; p != nil {
				return *p
			}
		}
		return 0
	}
	if traceIndex <= c.OutputOffset {
		return 0
	}
	return traceIndex - c.OutputOffset
}
