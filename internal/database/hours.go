package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/curriculum/internal/hours"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

// HoursTable is the table LoadHours replaces.
const HoursTable = "unit_subcategory_hours"

var hoursColumns = []string{"unit", "category", "subcategory", "hours", "curriculum_id"}

// LoadHours replaces a curriculum's rows in unit_subcategory_hours with the
// deduplicated rows, in one transaction. It returns the number of rows copied.
func LoadHours(ctx context.Context, db TxStarter, rows []hours.Row, curriculumID string) (int64, error) {
	log := logging.FromContext(ctx)
	rows = hours.Dedupe(rows)

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM "+HoursTable+" WHERE curriculum_id = $1", curriculumID)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", curriculumID, err)
	}
	log.Debug("cleared existing hours", "curriculum_id", curriculumID, "rows", tag.RowsAffected())

	n, err := tx.CopyFrom(ctx, pgx.Identifier{HoursTable}, hoursColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.Unit, r.Category, r.Subcategory, r.Hours, curriculumID}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy hours: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	log.Info("loaded hours", "curriculum_id", curriculumID, "rows", n)
	return n, nil
}
