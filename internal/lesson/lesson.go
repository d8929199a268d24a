// Package lesson loads walkthrough content from YAML lesson files and from
// the lessons embedded in the binary.
package lesson

import (
	"embed"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"gopkg.in/yaml.v3"
)

//go:embed lessons/*.yaml
var builtinFS embed.FS

// DefaultBuiltin is the lesson shown when no lesson is configured.
const DefaultBuiltin = "pokemon"

// File is the on-disk lesson format.
type File struct {
	Title        string         `yaml:"title"`
	Request      string         `yaml:"request,omitempty"`
	Source       string         `yaml:"source"`
	Plan         []string       `yaml:"plan"`
	Trace        []TraceFile    `yaml:"trace"`
	Outputs      map[int]string `yaml:"outputs"`
	OutputOffset int            `yaml:"output_offset,omitempty"`
}

// TraceFile is one trace entry in a lesson file.
type TraceFile struct {
	Line        int        `yaml:"line"`
	Step        int        `yaml:"step"`
	OutputPhase *int       `yaml:"output_phase,omitempty"`
	Locals      LocalsFile `yaml:"locals,omitempty"`
	Hint        string     `yaml:"hint,omitempty"`
}

// LocalsFile decodes a YAML mapping of variable names to display strings,
// keeping the order the author wrote them in.
type LocalsFile walkthrough.Locals

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *LocalsFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: locals must be a mapping", node.Line)
	}
	out := make(LocalsFile, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: local %q must be a string", v.Line, k.Value)
		}
		out = append(out, walkthrough.Local{Name: k.Value, Value: v.Value})
	}
	*l = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l LocalsFile) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range l {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: v.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}

// Option configures how a lesson is turned into content.
type Option func(*options)

type options struct {
	suggestHints bool
}

// WithSuggestedHints fills empty trace hints with one suggested from the
// entry's source line.
func WithSuggestedHints(enabled bool) Option {
	return func(o *options) {
		o.suggestHints = enabled
	}
}

// Parse decodes lesson YAML and returns validated content. name identifies
// the lesson in error messages.
func Parse(name string, data []byte, opts ...Option) (*walkthrough.Content, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewLessonError("parsing lesson: "+err.Error(), errors.ErrInvalidLesson).
			WithLesson(name)
	}
	return f.Content(name, opts...)
}

// Load reads and parses the lesson file at path.
func Load(path string, opts ...Option) (*walkthrough.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("lesson", path).WithCause(errors.ErrLessonNotFound)
		}
		return nil, errors.Wrapf(err, "reading lesson %s", path)
	}
	return Parse(path, data, opts...)
}

// Builtin returns the embedded lesson called name.
func Builtin(name string, opts ...Option) (*walkthrough.Content, error) {
	data, err := builtinFS.ReadFile(path.Join("lessons", name+".yaml"))
	if err != nil {
		return nil, errors.NewNotFoundError("built-in lesson", name).WithCause(errors.ErrLessonNotFound)
	}
	return Parse(name, data, opts...)
}

// BuiltinNames lists the embedded lessons in sorted order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("lessons")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Resolve loads the lesson at path when set, and the built-in called name
// otherwise. An empty name selects DefaultBuiltin.
func Resolve(path, name string, opts ...Option) (*walkthrough.Content, error) {
	if path != "" {
		return Load(path, opts...)
	}
	if name == "" {
		name = DefaultBuiltin
	}
	return Builtin(name, opts...)
}

// SourceLines splits a lesson's source block into lines.
func SourceLines(source string) []string {
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}

// Content converts the file to validated walkthrough content.
func (f *File) Content(name string, opts ...Option) (*walkthrough.Content, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &walkthrough.Content{
		Title:        f.Title,
		Request:      strings.TrimSpace(f.Request),
		Source:       SourceLines(f.Source),
		Plan:         walkthrough.NewPlan(f.Plan...),
		Trace:        make([]walkthrough.TraceEntry, len(f.Trace)),
		Outputs:      walkthrough.Outputs(f.Outputs),
		OutputOffset: f.OutputOffset,
	}
	for i, e := range f.Trace {
		c.Trace[i] = walkthrough.TraceEntry{
			Line:        e.Line,
			Locals:      walkthrough.Locals(e.Locals),
			Hint:        e.Hint,
			StepTag:     e.Step,
			OutputPhase: e.OutputPhase,
		}
	}
	if c.Title == "" {
		c.Title = name
	}

	if err := c.Validate(); err != nil {
		var lessonErr *errors.LessonError
		if errors.As(err, &lessonErr) {
			lessonErr.WithLesson(name)
		}
		return nil, err
	}

	if o.suggestHints {
		for i := range c.Trace {
			if c.Trace[i].Hint == "" {
				c.Trace[i].Hint = SuggestHint(c.Source[c.Trace[i].Line-1])
			}
		}
	}
	return c, nil
}

// FromContent converts content back to the file format, for exporting.
func FromContent(c *walkthrough.Content) *File {
	f := &File{
		Title:        c.Title,
		Request:      c.Request,
		Source:       strings.Join(c.Source, "\n"),
		Outputs:      map[int]string(c.Outputs),
		OutputOffset: c.OutputOffset,
	}
	for _, p := range c.Plan {
		f.Plan = append(f.Plan, p.Description)
	}
	for _, e := range c.Trace {
		f.Trace = append(f.Trace, TraceFile{
			Line:        e.Line,
			Step:        e.StepTag,
			OutputPhase: e.OutputPhase,
			Locals:      LocalsFile(e.Locals),
			Hint:        e.Hint,
		})
	}
	return f
}
