package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/grid"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

func (a *app) newEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Collect and sort the optional entries below the hours tables",
	}
	cmd.AddCommand(a.newEntriesParseCommand(), a.newEntriesSplitCommand())
	return cmd
}

func (a *app) newEntriesParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Collect optional entries from every yearly export into one JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.FromContext(cmd.Context())

			sources, err := grid.Discover(a.cfg.Paths.DataDir)
			if err != nil {
				return err
			}

			all := []entries.Entry{}
			for _, src := range sources {
				g, err := grid.Load(src.Path, a.cfg.Paths.XLSXSheet)
				if err != nil {
					return err
				}
				found := entries.ParseGrid(g, src.Year)
				log.Info("parsed optional entries", "path", src.Path, "year", src.Year, "entries", len(found))
				all = append(all, found...)
			}

			path := a.cfg.Paths.Resolve(a.cfg.Paths.EntriesJSON)
			if err := entries.WriteFile(path, all); err != nil {
				return fmt.Errorf("write entries: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(all), path)
			return nil
		},
	}
}

func (a *app) newEntriesSplitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split",
		Short: "Split the hand-edited entries file into one file per entry type",
		Long: `Reads the optional entries file, which may carry // comments, and writes
required-reading.json, la-additions.json, labs.json and other.json.
Entries commented out as a whole block are kept and written to other.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := a.cfg.Paths.Resolve(a.cfg.Paths.EntriesJSON)
			raw, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("input file not found: %w", err)
			}

			buckets, err := entries.Split(raw)
			if err != nil {
				return err
			}

			dir := a.cfg.Paths.Resolve(a.cfg.Paths.EntriesByTypeDir)
			counts, err := entries.WriteBuckets(dir, buckets)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, name := range entries.BucketOrder {
				fmt.Fprintf(out, "  %s.json: %d entries\n", name, counts[i])
			}
			fmt.Fprintf(out, "\nWrote %d files to %s\n", len(counts), dir)
			return nil
		},
	}
}
