package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/memoflow/internal/spacedrep"
)

// insertBatch bounds rows per INSERT to stay under driver variable limits.
const insertBatch = 500

// progressRow is the table layout of one progress record.
type progressRow struct {
	WordID       string `db:"word_id"`
	Stage        int    `db:"stage"`
	NextReview   int64  `db:"next_review"`
	LastReviewed int64  `db:"last_reviewed"`
}

// ProgressRepo stores the progress map. It implements session.ProgressStore.
type ProgressRepo struct {
	db *sqlx.DB
}

// LoadProgress reads every progress record.
func (r *ProgressRepo) LoadProgress(ctx context.Context) (spacedrep.ProgressMap, error) {
	var rows []progressRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT word_id, stage, next_review, last_reviewed FROM progress`); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	progress := make(spacedrep.ProgressMap, len(rows))
	for _, row := range rows {
		progress[row.WordID] = spacedrep.Record{
			WordID:       row.WordID,
			Stage:        row.Stage,
			NextReview:   fromUnixNanos(row.NextReview),
			LastReviewed: fromUnixNanos(row.LastReviewed),
		}
	}
	return progress, nil
}

// SaveProgress replaces the stored map with progress in one transaction.
func (r *ProgressRepo) SaveProgress(ctx context.Context, progress spacedrep.ProgressMap) error {
	ids := make([]string, 0, len(progress))
	for id := range progress {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]progressRow, 0, len(ids))
	for _, id := range ids {
		rec := progress[id]
		rows = append(rows, progressRow{
			WordID:       id,
			Stage:        rec.Stage,
			NextReview:   unixNanos(rec.NextReview),
			LastReviewed: unixNanos(rec.LastReviewed),
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	for start := 0; start < len(rows); start += insertBatch {
		batch := rows[start:min(start+insertBatch, len(rows))]
		_, err := tx.NamedExecContext(ctx, `INSERT INTO progress (word_id, stage, next_review, last_reviewed)
			VALUES (:word_id, :stage, :next_review, :last_reviewed)`, batch)
		if err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

// Reset deletes every progress record and returns how many were removed.
func (r *ProgressRepo) Reset(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM progress`)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
