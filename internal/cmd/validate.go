package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [lesson-file]",
	Short: "Check a lesson for errors",
	Long: `Load a lesson and check it against every rule the viewer relies on:
line numbers inside the source, step tags starting at 1 and rising by at
most one, output phases that never decrease, and an output for phase 0.

Without a file, validates the configured lesson.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	content, err := loadContent(cmd, cfg, args)
	if err != nil {
		var lessonErr *errors.LessonError
		if errors.As(err, &lessonErr) && lessonErr.Index >= 0 {
			section, _, _ := strings.Cut(lessonErr.Field, ".")
			return fmt.Errorf("%w\nhint: look at %s entry #%d", err, section, lessonErr.Index+1)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d source lines, %d plan steps, %d trace entries)\n",
		content.Title, len(content.Source), len(content.Plan), len(content.Trace))
	return nil
}
