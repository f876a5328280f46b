package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/curriculum/internal/hours"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

func (a *app) newExtractCommand() *cobra.Command {
	var sample int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract hours from every yearly export into the hours table",
		Long: `Reads each "gather round year N" export (.csv or .xlsx) in the data
directory, resolves every hours cell to a (unit, category, subcategory)
fact and writes them all to the hours table CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			facts, counts, err := a.extractFacts(ctx)
			if err != nil {
				return err
			}
			for _, c := range counts {
				fmt.Fprintf(out, "Year %d: %d records\n", c.Year, c.Facts)
			}

			rows := hours.FromFacts(facts)
			path := a.hoursPath()
			if err := hours.WriteFile(path, rows); err != nil {
				return fmt.Errorf("write hours table: %w", err)
			}
			logging.FromContext(ctx).Info("wrote hours table", "path", path, "rows", len(rows))

			fmt.Fprintf(out, "\nTotal records: %d\n", len(rows))
			fmt.Fprintf(out, "Output written to: %s\n", path)

			if sample > 0 && len(rows) > 0 {
				fmt.Fprintf(out, "\n--- Sample data (first %d records) ---\n", min(sample, len(rows)))
				for _, line := range hours.Summary(rows, sample) {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 20, "number of rows to print after writing (0 disables)")
	return cmd
}

func (a *app) newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Write the unit to year plan from the hours table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := a.readHours()
			if err != nil {
				return err
			}

			plan := hours.Plan(rows)
			path := a.cfg.Paths.PlanJSON
			if err := hours.WritePlanFile(path, plan); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d unit->year entries to %s\n", len(plan), path)
			return nil
		},
	}
}
