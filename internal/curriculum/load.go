package curriculum

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/curriculum/internal/grid"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

// YearCount is the number of facts extracted from one source.
type YearCount struct {
	Path  string
	Year  int
	Facts int
}

// ExtractSources loads and extracts every source in order and concatenates
// the facts. Sources without a year in range 1..4 are skipped with a warning.
// A source that cannot be loaded aborts the run.
func ExtractSources(ctx context.Context, sources []grid.Source, sheet string, table CategoryTable) ([]Fact, []YearCount, error) {
	log := logging.FromContext(ctx)

	var (
		all    []Fact
		counts []YearCount
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if src.Year < 1 || src.Year > 4 {
			log.Warn("skipping source without a curriculum year", "path", src.Path, "year", src.Year)
			continue
		}

		g, err := grid.Load(src.Path, sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("year %d: %w", src.Year, err)
		}

		facts := Extract(g, src.Year, table)
		log.Info("extracted year", "year", src.Year, "path", src.Path, "facts", len(facts))

		all = append(all, facts...)
		counts = append(counts, YearCount{Path: src.Path, Year: src.Year, Facts: len(facts)})
	}
	return all, counts, nil
}
