package cmd

import (
	"context"

	"llmpack/pkg/logging"
	"llmpack/pkg/settings"
	"llmpack/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	cfgFile string
)

// RootCmd is the base command. Without a subcommand it packs the project.
var RootCmd = &cobra.Command{
	Use:   "llmpack [dir]",
	Short: "llmpack packs a project into a single document for LLM prompts",
	Long: `llmpack walks a project directory, honours .gitignore and .llmpackignore
rules, and writes the directory tree plus every source file into one
Markdown document that can be pasted into a language model.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE:          runCombine,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(verbose, version.AppName, version.Version)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// logger returns the logger installed by the pre-run hook.
func logger() *zap.Logger {
	return logging.Logger
}

// openStore creates and loads the settings store for --config (or the default path).
func openStore() (*settings.Store, settings.Settings, error) {
	store, err := settings.NewStore(cfgFile, logger())
	if err != nil {
		return nil, settings.Settings{}, err
	}
	if err := store.Load(); err != nil {
		return nil, settings.Settings{}, err
	}
	cfg, err := store.Settings()
	if err != nil {
		return nil, settings.Settings{}, err
	}
	return store, cfg, nil
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/llmpack/config.json)")
	addCombineFlags(RootCmd)
}
