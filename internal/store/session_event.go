package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	id := data.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO session_events
		(id, sequence, created_at, course, mode, served, correct, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, seqNum, time.Now().UnixNano(), data.Course, data.Mode,
		data.Served, data.Correct, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	var records []SessionEventRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, sequence, created_at, course, mode, served, correct, duration_secs
		FROM session_events ORDER BY sequence DESC`+limitClause(opts))
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	for i := range records {
		records[i].Timestamp = fromUnixNanos(records[i].CreatedAt)
	}
	return records, nil
}
