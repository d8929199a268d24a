package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [lesson-file]",
	Short: "List the algorithm steps of a lesson's source",
	Long: `Describe each non-blank, non-comment source line in plain words. Useful
as a starting point when writing the plan for a new lesson.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOutline,
}

var outlineJSON bool

func init() {
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "print JSON instead of text")
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	content, err := loadContent(cmd, cfg, args)
	if err != nil {
		return err
	}

	steps := lesson.Outline(content.Source)
	out := cmd.OutOrStdout()
	if outlineJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}

	fmt.Fprintf(out, "Algorithm steps for %s:\n\n", content.Title)
	for i, s := range steps {
		fmt.Fprintf(out, "%2d. line %d: %s\n", i+1, s.Line, strings.TrimSpace(s.Code))
		fmt.Fprintf(out, "    %s\n", s.Description)
	}
	return nil
}
