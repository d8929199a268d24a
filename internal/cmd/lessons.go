package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the built-in lessons",
	Args:  cobra.NoArgs,
	RunE:  runLessonsList,
}

var lessonsExportCmd = &cobra.Command{
	Use:   "export <name> [output-file]",
	Short: "Export a built-in lesson as YAML",
	Long: `Export a built-in lesson in the lesson file format, as a starting point
for writing your own.

Examples:
  stepthrough lessons export pokemon               # print to stdout
  stepthrough lessons export grocery my-lesson.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLessonsExport,
}

func init() {
	lessonsCmd.AddCommand(lessonsExportCmd)
}

func runLessonsList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Built-in lessons:")
	for _, name := range lesson.BuiltinNames() {
		c, err := lesson.Builtin(name)
		if err != nil {
			fmt.Fprintf(out, "  - %s (failed to load: %v)\n", name, err)
			continue
		}
		marker := ""
		if name == lesson.DefaultBuiltin {
			marker = " [default]"
		}
		fmt.Fprintf(out, "  - %s: %s (%d steps)%s\n", name, c.Title, len(c.Trace), marker)
	}
	return nil
}

func runLessonsExport(cmd *cobra.Command, args []string) error {
	c, err := lesson.Builtin(args[0])
	if err != nil {
		return fmt.Errorf("%w\n\nRun 'stepthrough lessons' to see available lessons", err)
	}
	data, err := yaml.Marshal(lesson.FromContent(c))
	if err != nil {
		return fmt.Errorf("encoding lesson: %w", err)
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lesson exported to: %s\n", args[1])
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
