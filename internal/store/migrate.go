package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is written in the subset of SQL shared by SQLite and PostgreSQL.
// Times are stored as Unix nanoseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS progress (
		word_id       TEXT PRIMARY KEY,
		stage         INTEGER NOT NULL,
		next_review   BIGINT NOT NULL,
		last_reviewed BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS custom_words (
		course   TEXT NOT NULL,
		word_id  TEXT NOT NULL,
		position INTEGER NOT NULL,
		en       TEXT NOT NULL,
		zh       TEXT NOT NULL,
		phonetic TEXT NOT NULL DEFAULT '',
		pos      TEXT NOT NULL DEFAULT '',
		example  TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (course, word_id)
	)`,
	`CREATE TABLE IF NOT EXISTS insights (
		word_id    TEXT PRIMARY KEY,
		model      TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id            TEXT PRIMARY KEY,
		sequence      BIGINT NOT NULL UNIQUE,
		created_at    BIGINT NOT NULL,
		course        TEXT NOT NULL,
		mode          TEXT NOT NULL,
		served        INTEGER NOT NULL,
		correct       INTEGER NOT NULL,
		duration_secs INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            TEXT PRIMARY KEY,
		sequence      BIGINT NOT NULL UNIQUE,
		created_at    BIGINT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    BIGINT NOT NULL,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
