package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/curriculum/internal/config"
	"github.com/JonMunkholm/curriculum/internal/curriculum"
	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/grid"
	"github.com/JonMunkholm/curriculum/internal/hours"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfg *config.Config

	logLevel  string
	logFormat string
	dataDir   string
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "curriculum",
		Short:         "Build curriculum data and seeds from the yearly plan exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the yearly exports (overrides DATA_DIR)")

	root.AddCommand(
		a.newExtractCommand(),
		a.newPlanCommand(),
		a.newSeedCommand(),
		a.newEntriesCommand(),
		a.newBooksCommand(),
		a.newDBCommand(),
		a.newServeCommand(),
	)

	return root
}

// setup loads configuration, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.dataDir != "" {
		cfg.Paths.DataDir = a.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, runID := logging.WithRunID(cmd.Context())
	cmd.SetContext(ctx)
	slog.Debug("configuration loaded", "run_id", runID, "command", cmd.CommandPath(), "config", cfg.String())
	return nil
}

// hoursPath is the hours table location.
func (a *app) hoursPath() string {
	return a.cfg.Paths.Resolve(a.cfg.Paths.HoursCSV)
}

// bucketPath is the location of one optional-entries bucket file.
func (a *app) bucketPath(bucket string) string {
	return filepath.Join(a.cfg.Paths.Resolve(a.cfg.Paths.EntriesByTypeDir), bucket+".json")
}

// extractFacts discovers the yearly exports and extracts every fact.
func (a *app) extractFacts(ctx context.Context) ([]curriculum.Fact, []curriculum.YearCount, error) {
	table, err := curriculum.LoadCategoryTable(a.cfg.Paths.CategoryTable)
	if err != nil {
		return nil, nil, err
	}
	sources, err := grid.Discover(a.cfg.Paths.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return curriculum.ExtractSources(ctx, sources, a.cfg.Paths.XLSXSheet, table)
}

func (a *app) readHours() ([]hours.Row, error) {
	return hours.ReadFile(a.hoursPath())
}

func (a *app) readBucket(bucket string) ([]entries.Entry, error) {
	return entries.ReadFile(a.bucketPath(bucket))
}
