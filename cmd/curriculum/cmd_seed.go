package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/logging"
	"github.com/JonMunkholm/curriculum/internal/seed"
)

func (a *app) newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print SQL seed statements to stdout",
	}
	cmd.AddCommand(a.newSeedHoursCommand(), a.newSeedReadingCommand(), a.newSeedLabsCommand())
	return cmd
}

func (a *app) newSeedHoursCommand() *cobra.Command {
	var batch int

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Batched unit_subcategory_hours inserts, first row per unit/category/subcategory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := a.readHours()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("batch") {
				batch = a.cfg.Seed.BatchSize
			}

			stmts := seed.HoursInserts(rows, batch)
			for _, s := range stmts {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			logging.FromContext(cmd.Context()).Info("generated hours seed", "rows", len(rows), "statements", len(stmts))
			return nil
		},
	}

	cmd.Flags().IntVar(&batch, "batch", seed.DefaultBatchSize, "rows per INSERT (overrides SEED_BATCH_SIZE)")
	return cmd
}

func (a *app) newSeedReadingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reading",
		Short: "Option group and choice inserts for the required-reading entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.readBucket(entries.BucketRequiredReading)
			if err != nil {
				return err
			}

			sql, err := seed.RequiredReadingSQL(list)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
}

func (a *app) newSeedLabsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labs",
		Short: "unit_optional_items inserts for the optional lab entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.readBucket(entries.BucketLabs)
			if err != nil {
				return err
			}
			rows, err := a.readHours()
			if err != nil {
				return err
			}

			sql, warnings := seed.OptionalLabsSQL(list, rows, a.cfg.Seed.CurriculumID)
			log := logging.FromContext(cmd.Context())
			for _, w := range warnings {
				log.Warn("skipped lab option", "reason", w)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
}
