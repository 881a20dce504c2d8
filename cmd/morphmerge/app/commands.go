package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordforge/morphmerge"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

// NewRunCommand creates the run command, which executes the whole
// pipeline or a named subset of stages in canonical order.
func (a *App) NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [stage...]",
		Short: "Run the reconciliation pipeline",
		Long: `Run executes the named stages in their canonical order: split, index,
fix-plurals, insert-missing, reduce, concat. With no arguments every
stage runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := make([]morphmerge.Stage, 0, len(args))
			for _, name := range args {
				s, ok := morphmerge.ParseStage(name)
				if !ok {
					return fmt.Errorf("unknown stage %q (valid: %s)", name, stageNames())
				}
				stages = append(stages, s)
			}

			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			return p.Run(cmd.Context(), stages...)
		},
	}
	a.addInputFlags(cmd)
	a.addOutputFlags(cmd)
	return cmd
}

// NewSplitCommand creates the split command.
func (a *App) NewSplitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Partition the primary lexicon into shards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			n, err := p.Split(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info().Int("shards", n).Msg("lexicon split")
			return nil
		},
	}
	a.addInputFlags(cmd)
	return cmd
}

// NewIndexCommand creates the index command.
func (a *App) NewIndexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the lemma index over the tabular corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			n, err := p.BuildIndex(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info().Int("lemmas", n).Str("path", p.IndexPath()).Msg("lemma index built")
			return nil
		},
	}
}

// NewFixPluralsCommand creates the fix-plurals command.
func (a *App) NewFixPluralsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-plurals",
		Short: "Backfill missing plural declensions from the legacy dictionary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			res, err := p.FixPlurals(cmd.Context())
			return a.reportResult(res, err)
		},
	}
}

// NewInsertMissingCommand creates the insert-missing command.
func (a *App) NewInsertMissingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert-missing",
		Short: "Insert missing inflections from the tabular corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			res, err := p.InsertMissing(cmd.Context())
			return a.reportResult(res, err)
		},
	}
}

// NewReduceCommand creates the reduce command.
func (a *App) NewReduceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reduce",
		Short: "Derive the basic published variant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			res, err := p.Reduce(cmd.Context())
			return a.reportResult(res, err)
		},
	}
}

// NewConcatCommand creates the concat command.
func (a *App) NewConcatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Merge the reconciled shards into the final artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.Pipeline()
			if err != nil {
				return err
			}
			res, err := p.Concat(cmd.Context())
			return a.reportResult(res, err)
		},
	}
	a.addOutputFlags(cmd)
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("morphmerge %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}

// addInputFlags registers the flags for commands that read the primary
// lexicon.
func (a *App) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.config.Input, "input", "i", a.config.Input, "primary lexicon document")
	cmd.Flags().IntVar(&a.config.ShardSize, "shard-size", a.config.ShardSize, "entries per shard")
}

// addOutputFlags registers the flags for commands that write the final
// artifacts.
func (a *App) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.config.Output, "output", "o", a.config.Output, "final reconciled lexicon path")
	cmd.Flags().StringVar(&a.config.BasicOutput, "basic-output", a.config.BasicOutput, "reduced basic lexicon path (optional)")
}

// reportResult logs a stage result summary and surfaces its errors.
func (a *App) reportResult(res *reconcile.Result, err error) error {
	if err != nil {
		return err
	}
	a.logger.Info().Msg(res.Summary())
	if res.HasErrors() {
		for _, e := range res.Errors {
			a.logger.Error().Err(e).Msg("shard failed")
		}
		return fmt.Errorf("%d file(s) failed", res.FilesFailed)
	}
	return nil
}

// stageNames lists the valid stage names for error messages.
func stageNames() string {
	stages := morphmerge.Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
