package walkthrough

// Position is the complete mutable state of a walkthrough.
type Position struct {
	TraceIndex int `json:"trace_index"`
	PlanIndex  int `json:"plan_index"`
}

// Walkthrough owns a trace cursor and the plan cursor derived from it.
type Walkthrough struct {
	content *Content
	pos     Position
}

// New validates content and returns a walkthrough positioned at (0, 0).
// Content is not copied; callers must not modify it afterwards.
func New(content *Content) (*Walkthrough, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return &Walkthrough{content: content}, nil
}

// Content returns the static content driving this walkthrough.
func (w *Walkthrough) Content() *Content {
	return w.content
}

// Position returns the current cursor pair.
func (w *Walkthrough) Position() Position {
	return w.pos
}

// AtStart reports whether the trace cursor is on the first entry.
func (w *Walkthrough) AtStart() bool {
	return w.pos.TraceIndex == 0
}

// AtEnd reports whether the trace cursor is on the last entry.
func (w *Walkthrough) AtEnd() bool {
	return w.pos.TraceIndex == len(w.content.Trace)-1
}

// Advance moves to the next trace entry. At the last entry it does nothing.
// It reports whether the cursor moved.
func (w *Walkthrough) Advance() bool {
	if w.AtEnd() {
		return false
	}
	w.move(w.pos.TraceIndex + 1)
	return true
}

// Retreat moves to the previous trace entry. At the first entry it does
// nothing. It reports whether the cursor moved.
func (w *Walkthrough) Retreat() bool {
	if w.AtStart() {
		return false
	}
	w.move(w.pos.TraceIndex - 1)
	return true
}

// Reset returns both cursors to zero.
func (w *Walkthrough) Reset() {
	w.pos = Position{}
}

// Seek resets and then advances until the trace cursor reaches index,
// clamped to the trace bounds. The plan cursor follows the same path an
// interactive viewer would take.
func (w *Walkthrough) Seek(index int) {
	w.Reset()
	for w.pos.TraceIndex < index && w.Advance() {
	}
}

// Frame projects the current position.
func (w *Walkthrough) Frame() Frame {
	return Project(w.content, w.pos)
}

func (w *Walkthrough) move(next int) {
	trace := w.content.Trace
	from, to := trace[w.pos.TraceIndex], trace[next]
	w.pos.PlanIndex = DerivePlanIndex(w.pos.PlanIndex, from, to, len(w.content.Plan))
	w.pos.TraceIndex = next
}
