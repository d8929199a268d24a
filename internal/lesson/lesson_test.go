package lesson

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/Iron-Ham/stepthrough/internal/testutil"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"gopkg.in/yaml.v3"
)

const minimalLesson = `title: Minimal
source: |-
  x = 1
  print(x)
plan:
  - Set x.
  - Print x.
trace:
  - line: 1
    step: 1
    locals:
      x: "1"
  - line: 2
    step: 2
    output_phase: 1
    locals:
      x: "1"
    hint: You print x.
outputs:
  0: ""
  1: "1"
`

func TestBuiltinPokemonMatchesFixture(t *testing.T) {
	got, err := Builtin("pokemon")
	if err != nil {
		t.Fatalf("Builtin(pokemon) error = %v", err)
	}
	want := testutil.PokemonContent()

	gw, err := walkthrough.New(got)
	if err != nil {
		t.Fatalf("New(builtin) error = %v", err)
	}
	ww, err := walkthrough.New(want)
	if err != nil {
		t.Fatalf("New(fixture) error = %v", err)
	}

	for i := range want.Trace {
		gw.Seek(i)
		ww.Seek(i)
		if g, w := gw.Frame(), ww.Frame(); !reflect.DeepEqual(g, w) {
			t.Errorf("frame %d differs:\n got  %+v\n want %+v", i, g, w)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	if !slices.Contains(names, DefaultBuiltin) {
		t.Errorf("BuiltinNames() = %v, missing %q", names, DefaultBuiltin)
	}
	if !slices.IsSorted(names) {
		t.Errorf("BuiltinNames() = %v, want sorted", names)
	}
	for _, name := range names {
		if _, err := Builtin(name); err != nil {
			t.Errorf("Builtin(%q) error = %v", name, err)
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("nope")
	if !errors.Is(err, errors.ErrLessonNotFound) {
		t.Fatalf("Builtin(nope) error = %v, want ErrLessonNotFound", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "ok.yaml", minimalLesson)
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Title != "Minimal" {
			t.Errorf("Title = %q, want Minimal", c.Title)
		}
		if len(c.Source) != 2 || c.Source[1] != "print(x)" {
			t.Errorf("Source = %q", c.Source)
		}
		if c.Trace[1].OutputPhase == nil || *c.Trace[1].OutputPhase != 1 {
			t.Errorf("Trace[1].OutputPhase = %v, want 1", c.Trace[1].OutputPhase)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		if !errors.Is(err, errors.ErrLessonNotFound) {
			t.Fatalf("Load() error = %v, want ErrLessonNotFound", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "bad.yaml", "title: [unclosed\n")
		_, err := Load(path)
		if !errors.Is(err, errors.ErrInvalidLesson) {
			t.Fatalf("Load() error = %v, want ErrInvalidLesson", err)
		}
	})

	t.Run("invalid content names the lesson", func(t *testing.T) {
		bad := strings.Replace(minimalLesson, "step: 2", "step: 3", 1)
		path := testutil.WriteFile(t, dir, "gap.yaml", bad)
		_, err := Load(path)
		var lessonErr *errors.LessonError
		if !errors.As(err, &lessonErr) {
			t.Fatalf("Load() error = %v, want *LessonError", err)
		}
		if lessonErr.Lesson != path {
			t.Errorf("Lesson = %q, want %q", lessonErr.Lesson, path)
		}
		if lessonErr.Field != "trace.step" {
			t.Errorf("Field = %q, want trace.step", lessonErr.Field)
		}
	})
}

func TestLocalsKeepAuthoredOrder(t *testing.T) {
	src := strings.Replace(minimalLesson, "    locals:\n      x: \"1\"\n  - line: 2",
		"    locals:\n      zebra: \"z\"\n      apple: \"a\"\n      mango: \"m\"\n  - line: 2", 1)
	c, err := Parse("order", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := c.Trace[0].Locals.Names()
	want := []string{"zebra", "apple", "mango"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLocalsRejectNested(t *testing.T) {
	src := strings.Replace(minimalLesson, "      x: \"1\"\n  - line: 2", "      x: [1, 2]\n  - line: 2", 1)
	if _, err := Parse("nested", []byte(src)); !errors.Is(err, errors.ErrInvalidLesson) {
		t.Fatalf("Parse() error = %v, want ErrInvalidLesson", err)
	}
}

func TestSuggestedHints(t *testing.T) {
	plain, err := Builtin("grocery")
	if err != nil {
		t.Fatalf("Builtin(grocery) error = %v", err)
	}
	if plain.Trace[1].Hint != "" {
		t.Fatalf("Trace[1].Hint = %q, want empty without suggestions", plain.Trace[1].Hint)
	}

	filled, err := Builtin("grocery", WithSuggestedHints(true))
	if err != nil {
		t.Fatalf("Builtin(grocery) error = %v", err)
	}
	for i, e := range filled.Trace {
		if e.Hint == "" {
			t.Errorf("Trace[%d].Hint is empty with suggestions enabled", i)
		}
	}
	if want := SuggestHint("total = 0"); filled.Trace[1].Hint != want {
		t.Errorf("Trace[1].Hint = %q, want %q", filled.Trace[1].Hint, want)
	}
	if filled.Trace[0].Hint != plain.Trace[0].Hint {
		t.Errorf("authored hint was replaced: %q", filled.Trace[0].Hint)
	}
}

func TestResolve(t *testing.T) {
	c, err := Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if c.Title != testutil.PokemonContent().Title {
		t.Errorf("Resolve default Title = %q", c.Title)
	}

	path := testutil.WriteFile(t, t.TempDir(), "l.yaml", minimalLesson)
	c, err = Resolve(path, "grocery")
	if err != nil {
		t.Fatalf("Resolve(path) error = %v", err)
	}
	if c.Title != "Minimal" {
		t.Errorf("path should win over name, got Title %q", c.Title)
	}
}

func TestFromContentRoundTrip(t *testing.T) {
	orig, err := Builtin("pokemon")
	if err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(FromContent(orig))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	back, err := Parse("exported", data)
	if err != nil {
		t.Fatalf("Parse(exported) error = %v\n%s", err, data)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("exported lesson does not round-trip\n%s", data)
	}
}

func TestSourceLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := SourceLines(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("SourceLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
