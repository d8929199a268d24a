package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/tui"
	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run [lesson-file]",
	Short: "Open the interactive viewer",
	Long: `Open the interactive viewer on a lesson.

Keys: → l n space next step, ← h p previous step, r reset, g/G first/last,
v toggle variables, P toggle plan, ? help, q quit.

With --watch the lesson file is reloaded whenever it is saved; the viewer
restarts from the first step. A lesson that fails to load is reported in the
status bar and the previous version stays on screen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViewer,
}

func init() {
	addViewerFlags(runCmd)
}

// addViewerFlags registers the viewer flags on c. Root and run share the
// same viper keys, so only the command that runs reads them.
func addViewerFlags(c *cobra.Command) {
	c.Flags().StringP("theme", "t", "", "color theme (overrides tui.theme)")
	c.Flags().BoolP("watch", "w", false, "reload the lesson file when it changes")
}

func runViewer(cmd *cobra.Command, args []string) error {
	// Flags are bound here rather than in init since root and run both
	// declare them.
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("lesson.watch", cmd.Flags().Lookup("watch"))
	if len(args) > 0 {
		viper.Set("lesson.path", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Stderr output would corrupt the alternate screen.
	cfg.Logging.Stderr = false
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Close()

	if _, errs := styles.DiscoverCustomThemes(styles.ThemesDir()); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("skipping theme", "error", e)
		}
	}
	if !styles.IsValidTheme(cfg.TUI.Theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default\n", cfg.TUI.Theme)
	}

	content, err := loadContent(cmd, cfg, args)
	if err != nil {
		return err
	}
	wt, err := walkthrough.New(content)
	if err != nil {
		return err
	}
	logger.Info("viewer started",
		"title", content.Title,
		"trace_entries", len(content.Trace),
		"plan_steps", len(content.Plan))

	app := tui.New(wt, tui.Options{
		Theme:      cfg.TUI.Theme,
		ShowLocals: cfg.TUI.ShowLocals,
		ShowPlan:   cfg.TUI.ShowPlan,
		HintPrefix: cfg.TUI.HintPrefix,
		Logger:     logger,
	})
	if cfg.Lesson.Watch {
		app.Watch(cfg.Lesson.Path, lesson.WithSuggestedHints(cfg.Lesson.SuggestHints))
	}
	return app.Run()
}
