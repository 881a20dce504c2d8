// Package app wires configuration, logging, and the reconciliation
// pipeline together for the morphmerge CLI.
package app

import (
	"github.com/rs/zerolog"

	"github.com/wordforge/morphmerge"
	"github.com/wordforge/morphmerge/pkg/errors"
)

// App is the morphmerge CLI application with its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
}

// New creates an App with the given build information and loads its
// configuration from the environment.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the build version.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Pipeline builds a reconciliation pipeline from the current
// configuration. Each command constructs its own pipeline so that flag
// updates from cobra are always reflected.
func (a *App) Pipeline() (*morphmerge.Pipeline, error) {
	opts := []morphmerge.Option{
		morphmerge.WithWorkDir(a.config.WorkDir),
		morphmerge.WithShardSize(a.config.ShardSize),
		morphmerge.WithWorkers(a.config.Workers),
	}
	if a.config.Input != "" {
		opts = append(opts, morphmerge.WithInput(a.config.Input))
	}
	if a.config.Output != "" {
		opts = append(opts, morphmerge.WithOutput(a.config.Output))
	}
	if a.config.BasicOutput != "" {
		opts = append(opts, morphmerge.WithBasicOutput(a.config.BasicOutput))
	}
	if a.config.TabularRoot != "" {
		opts = append(opts, morphmerge.WithTabularCorpus(a.config.TabularRoot))
	}
	if a.config.LegacyDir != "" {
		opts = append(opts, morphmerge.WithLegacyCorpus(a.config.LegacyDir))
	}
	if a.config.IndexPath != "" {
		opts = append(opts, morphmerge.WithIndexPath(a.config.IndexPath))
	}
	return morphmerge.New(opts...)
}
