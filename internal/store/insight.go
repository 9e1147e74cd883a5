package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// CachedInsight is a stored AI insight payload for one word.
type CachedInsight struct {
	WordID    string
	Model     string
	Payload   string
	CreatedAt time.Time
}

// InsightRepo caches generated word insights by word ID.
type InsightRepo struct {
	db *sqlx.DB
}

// GetInsight returns the cached insight for wordID, or nil when absent.
func (r *InsightRepo) GetInsight(ctx context.Context, wordID string) (*CachedInsight, error) {
	var row struct {
		WordID    string `db:"word_id"`
		Model     string `db:"model"`
		Payload   string `db:"payload"`
		CreatedAt int64  `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &row, r.db.Rebind(
		`SELECT word_id, model, payload, created_at FROM insights WHERE word_id = ?`), wordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insight: %w", err)
	}
	return &CachedInsight{
		WordID:    row.WordID,
		Model:     row.Model,
		Payload:   row.Payload,
		CreatedAt: fromUnixNanos(row.CreatedAt),
	}, nil
}

// PutInsight stores or replaces the insight for a word.
func (r *InsightRepo) PutInsight(ctx context.Context, in CachedInsight) error {
	created := in.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO insights (word_id, model, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (word_id) DO UPDATE SET
			model = excluded.model, payload = excluded.payload, created_at = excluded.created_at`),
		in.WordID, in.Model, in.Payload, unixNanos(created))
	if err != nil {
		return fmt.Errorf("put insight: %w", err)
	}
	return nil
}
