package cmd

import (
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/cmd/config"
	appconfig "github.com/Iron-Ham/stepthrough/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "stepthrough",
	Short: "Step through a program one traced line at a time",
	Long: `stepthrough walks a learner through a short program: each step reveals
the next source line, the variables it touched, the program output so far,
and which step of the plan the line belongs to.

Without a subcommand, opens the interactive viewer.`,
	Args:          cobra.NoArgs,
	RunE:          runViewer,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is $HOME/.config/stepthrough/config.yaml)")
	pf.StringP("lesson", "l", "", "lesson YAML file (overrides lesson.path)")
	pf.StringP("builtin", "b", "", "built-in lesson name (overrides lesson.name)")

	addViewerFlags(rootCmd)

	rootCmd.AddCommand(runCmd, showCmd, validateCmd, outlineCmd, lessonsCmd, serveCmd)
	config.Register(rootCmd)
}

// bindFlags ties flags to their config keys. Runs on every execution so
// the bindings survive a viper reset.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("lesson.path", pf.Lookup("lesson"))
	_ = viper.BindPFlag("lesson.name", pf.Lookup("builtin"))
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func initConfig() {
	bindFlags()

	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("STEPTHROUGH")
	// e.g. STEPTHROUGH_LESSON_PATH for lesson.path
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
