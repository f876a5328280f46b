package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/curriculum/internal/database"
)

// withPool runs fn against a fresh pool, bounded by DB_TIMEOUT.
func (a *app) withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) error {
	if err := a.cfg.RequireDatabase(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Database.Timeout)
	defer cancel()

	pool, err := database.Connect(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool)
}

func (a *app) newBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Maintain recommended books on option choices",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "patch",
		Short: "Rewrite recommended_books as a plain list of titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				updated, total, err := database.PatchRecommendedBooks(ctx, pool)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d rows.\n", updated, total)
				return nil
			})
		},
	})
	return cmd
}

func (a *app) newDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Load generated data straight into Postgres",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "load-hours",
		Short: "Replace this curriculum's unit_subcategory_hours rows with the hours table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := a.readHours()
			if err != nil {
				return err
			}
			return a.withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				n, err := database.LoadHours(ctx, pool, rows, a.cfg.Seed.CurriculumID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows for %s.\n", n, a.cfg.Seed.CurriculumID)
				return nil
			})
		},
	})
	return cmd
}
