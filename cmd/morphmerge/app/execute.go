package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the morphmerge CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "morphmerge",
		Short:   "German morphological dataset reconciliation",
		Version: a.version,
		Long: `Morphmerge reconciles three independently authored German
morphological datasets into one corrected, deduplicated, canonically
ordered lexicon.

The pipeline runs six ordered stages: split, index, fix-plurals,
insert-missing, reduce, and concat. Each stage reads the previous
stage's output from the work directory, so stages can be re-run
individually while tuning a reconciliation.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.morphmerge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.PersistentFlags().StringVarP(&a.config.WorkDir, "work-dir", "w", a.config.WorkDir, "directory for intermediate stage outputs")
	rootCmd.PersistentFlags().StringVar(&a.config.TabularRoot, "tables", a.config.TabularRoot, "root of the tabular inflection corpus")
	rootCmd.PersistentFlags().StringVar(&a.config.LegacyDir, "legacy", a.config.LegacyDir, "directory of the legacy dictionary shards")
	rootCmd.PersistentFlags().StringVar(&a.config.IndexPath, "index", a.config.IndexPath, "lemma index location (default <work-dir>/lemma.idx)")
	rootCmd.PersistentFlags().IntVar(&a.config.Workers, "workers", a.config.Workers, "shards processed concurrently per stage")

	rootCmd.SetVersionTemplate("morphmerge {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// The initial config load in New runs before cobra parses flags, so a
	// --config file has to be re-read here. Values set explicitly on the
	// command line keep precedence over the file.
	if cmd.Flags().Changed("config") {
		fresh, err := LoadConfigFile(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.mergeConfig(cmd, fresh)
	}

	// These flags are defined as persistent flags above, so lookup errors
	// indicate programming errors.
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// mergeConfig adopts values from a freshly loaded config for every field
// whose flag was not set explicitly on the command line.
func (a *App) mergeConfig(cmd *cobra.Command, fresh *Config) {
	flags := cmd.Flags()
	a.config.ConfigFile = fresh.ConfigFile
	a.config.LogFormat = fresh.LogFormat
	if !flags.Changed("work-dir") {
		a.config.WorkDir = fresh.WorkDir
	}
	if !flags.Changed("tables") {
		a.config.TabularRoot = fresh.TabularRoot
	}
	if !flags.Changed("legacy") {
		a.config.LegacyDir = fresh.LegacyDir
	}
	if !flags.Changed("index") {
		a.config.IndexPath = fresh.IndexPath
	}
	if !flags.Changed("workers") {
		a.config.Workers = fresh.Workers
	}
	if !flags.Changed("log-level") {
		a.config.LogLevel = fresh.LogLevel
	}
	// Flags local to individual subcommands; Changed is false for
	// commands that don't define them.
	if !flags.Changed("input") {
		a.config.Input = fresh.Input
	}
	if !flags.Changed("shard-size") {
		a.config.ShardSize = fresh.ShardSize
	}
	if !flags.Changed("output") {
		a.config.Output = fresh.Output
	}
	if !flags.Changed("basic-output") {
		a.config.BasicOutput = fresh.BasicOutput
	}
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewRunCommand())
	rootCmd.AddCommand(a.NewSplitCommand())
	rootCmd.AddCommand(a.NewIndexCommand())
	rootCmd.AddCommand(a.NewFixPluralsCommand())
	rootCmd.AddCommand(a.NewInsertMissingCommand())
	rootCmd.AddCommand(a.NewReduceCommand())
	rootCmd.AddCommand(a.NewConcatCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints an error and exits with status 1. This is meant for
// top-level error handling in main.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
