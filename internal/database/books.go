package database

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/JonMunkholm/curriculum/internal/books"
	"github.com/JonMunkholm/curriculum/internal/logging"
)

type bookRow struct {
	ID    any
	Books []byte
}

// PatchRecommendedBooks rewrites unit_option_choices.recommended_books into
// a plain list of titles wherever the stored value differs, in one
// transaction. It returns how many rows changed out of how many were read.
func PatchRecommendedBooks(ctx context.Context, db TxStarter) (updated, total int, err error) {
	log := logging.FromContext(ctx)

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	list, err := selectBooks(ctx, tx)
	if err != nil {
		return 0, 0, err
	}

	changes, err := planBookUpdates(list)
	if err != nil {
		return 0, 0, err
	}

	for _, c := range changes {
		if _, err := tx.Exec(ctx,
			"UPDATE unit_option_choices SET recommended_books = $1::jsonb WHERE id = $2",
			string(c.Books), c.ID); err != nil {
			return 0, 0, fmt.Errorf("update choice %v: %w", c.ID, err)
		}
		log.Debug("patched recommended books", "id", c.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return len(changes), len(list), nil
}

func selectBooks(ctx context.Context, db DBTX) ([]bookRow, error) {
	rows, err := db.Query(ctx, "SELECT id, recommended_books FROM unit_option_choices ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("select recommended books: %w", err)
	}
	defer rows.Close()

	var out []bookRow
	for rows.Next() {
		var r bookRow
		if err := rows.Scan(&r.ID, &r.Books); err != nil {
			return nil, fmt.Errorf("scan recommended books: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// planBookUpdates returns the rows whose transformed value differs from the
// stored one, with the new value encoded as JSON. NULL columns decode to nil
// and are rewritten as an empty list.
func planBookUpdates(list []bookRow) ([]bookRow, error) {
	var out []bookRow
	for _, r := range list {
		var current any
		if len(r.Books) > 0 {
			if err := json.Unmarshal(r.Books, &current); err != nil {
				return nil, fmt.Errorf("decode recommended books for %v: %w", r.ID, err)
			}
		}

		next := books.Transform(current)
		if reflect.DeepEqual(next, current) {
			continue
		}

		data, err := json.Marshal(next)
		if err != nil {
			return nil, err
		}
		out = append(out, bookRow{ID: r.ID, Books: data})
	}
	return out, nil
}
