package lesson

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DescribeLine returns a short description of what a source line does,
// judged from its leading keyword or call. line should already be trimmed.
func DescribeLine(line string) string {
	switch {
	case strings.HasPrefix(line, "for "):
		return "Loop over a sequence: " + line
	case strings.HasPrefix(line, "while "):
		return "Repeat while a condition is true: " + line
	case strings.HasPrefix(line, "if "):
		return "Check a condition and branch: " + line
	case strings.HasPrefix(line, "elif "), strings.HasPrefix(line, "else"):
		return "Handle an alternative case: " + line
	case strings.HasPrefix(line, "def "):
		return "Define a function: " + line
	case strings.HasPrefix(line, "class "):
		return "Define a class (data + behavior): " + line
	case strings.Contains(line, "input("):
		return "Get input from the user: " + line
	case strings.HasPrefix(line, "print("):
		return "Display something to the user: " + line
	case line == "":
		return "Blank line"
	default:
		return "Compute or update something: " + line
	}
}

// SuggestHint turns a source line into a student-facing hint.
func SuggestHint(line string) string {
	stripped := strings.TrimSpace(line)
	base := lowerFirst(DescribeLine(stripped))

	var extra string
	switch {
	case strings.HasPrefix(stripped, "for "), strings.HasPrefix(stripped, "while "):
		extra = "Check that the loop will run the number of times you expect."
	case strings.Contains(stripped, "append("):
		extra = "Think: which list are you changing and what are you adding to it?"
	case strings.Contains(stripped, "len("):
		extra = "Ask yourself: what collection are you measuring here?"
	case strings.HasPrefix(stripped, "print("):
		extra = "Check if this prints the information you want the user to see."
	case strings.HasPrefix(stripped, "if "), strings.HasPrefix(stripped, "elif "), strings.HasPrefix(stripped, "else"):
		extra = "Consider what happens in each branch of this condition."
	default:
		extra = "Does this step move you closer to your goal (like building the collection or showing results)?"
	}

	return "At this step, you " + base + ". " + extra
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// OutlineStep is one algorithm step derived from a source line.
type OutlineStep struct {
	Line        int    `json:"line"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Outline returns one step per non-blank, non-comment source line.
func Outline(source []string) []OutlineStep {
	var steps []OutlineStep
	for i, raw := range source {
		stripped := strings.TrimSpace(raw)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		steps = append(steps, OutlineStep{
			Line:        i + 1,
			Code:        raw,
			Description: DescribeLine(stripped),
		})
	}
	return steps
}
