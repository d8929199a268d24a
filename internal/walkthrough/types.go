package walkthrough

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Local is one variable snapshot shown alongside a trace entry.
type Local struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Locals keeps variable snapshots in authored order. It marshals to a JSON
// object whose keys appear in that order.
type Locals []Local

// Get returns the display value for name.
func (l Locals) Get(name string) (string, bool) {
	for _, v := range l {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Names returns the variable names in authored order.
func (l Locals) Names() []string {
	names := make([]string, len(l))
	for i, v := range l {
		names[i] = v.Name
	}
	return names
}

// MarshalJSON encodes the locals as an ordered JSON object.
func (l Locals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (l *Locals) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("locals: expected a JSON object, got %v", tok)
	}

	out := Locals{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("locals: unexpected key %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("locals: value of %q: %w", name, err)
		}
		out = append(out, Local{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// TraceEntry describes the program state after running through one source line.
type TraceEntry struct {
	// Line is the 1-based source line this entry corresponds to.
	Line int `json:"line"`
	// Locals snapshots the visible variables at this point.
	Locals Locals `json:"locals"`
	// Hint is the explanation shown under the current line.
	Hint string `json:"hint,omitempty"`
	// StepTag groups consecutive entries under one plan step (1-based).
	StepTag int `json:"step"`
	// OutputPhase optionally pins the output snapshot shown at this entry.
	// Entries without one inherit the previous entry's phase.
	OutputPhase *int `json:"output_phase,omitempty"`
}

// PlanStep is one entry of the coarse-grained plan list.
type PlanStep struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

// Outputs maps an output phase to the cumulative program output at that phase.
type Outputs map[int]string

// Phase returns the snapshot for phase, falling back to phase 0 when the
// phase has no snapshot.
func (o Outputs) Phase(phase int) (string, int) {
	if text, ok := o[phase]; ok {
		return text, phase
	}
	return o[0], 0
}

// Phase returns a pointer to p, for building entries with explicit output phases.
func Phase(p int) *int {
	return &p
}
