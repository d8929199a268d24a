package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/stepthrough/internal/tui"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [lesson-file]",
	Short: "Print the frame at one step",
	Long: `Print what the viewer shows after --step advances from the first entry.
Steps past the end stop at the last entry.

Examples:
  stepthrough show --step 5
  stepthrough show --builtin grocery --step 3 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var (
	showStep   int
	showFormat string
)

func init() {
	showCmd.Flags().IntVarP(&showStep, "step", "s", 0, "number of advances from the first entry")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "output format: text or json")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showStep < 0 {
		return fmt.Errorf("--step must be non-negative, got %d", showStep)
	}
	if showFormat != "text" && showFormat != "json" {
		return fmt.Errorf("unknown format %q: expected text or json", showFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	content, err := loadContent(cmd, cfg, args)
	if err != nil {
		return err
	}
	wt, err := walkthrough.New(content)
	if err != nil {
		return err
	}
	wt.Seek(showStep)
	frame := wt.Frame()

	out := cmd.OutOrStdout()
	if showFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(frame)
	}
	_, err = fmt.Fprint(out, tui.RenderPlain(frame, cfg.TUI.HintPrefix))
	return err
}
