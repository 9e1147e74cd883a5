package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const llmEventColumns = `id, sequence, created_at, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO llm_request_events (`+llmEventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		uuid.NewString(), seqNum, time.Now().UnixNano(),
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	var records []LLMRequestEventRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT `+llmEventColumns+` FROM llm_request_events ORDER BY sequence DESC`+limitClause(opts))
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	for i := range records {
		records[i].Timestamp = fromUnixNanos(records[i].CreatedAt)
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, sequence int64) (*LLMRequestEventRecord, error) {
	var rec LLMRequestEventRecord
	err := r.db.GetContext(ctx, &rec, r.db.Rebind(
		`SELECT `+llmEventColumns+` FROM llm_request_events WHERE sequence = ?`), sequence)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	rec.Timestamp = fromUnixNanos(rec.CreatedAt)
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	var stats []LLMUsageStats
	err := r.db.SelectContext(ctx, &stats, `SELECT purpose,
		COUNT(*) AS calls,
		SUM(input_tokens) AS input_tokens,
		SUM(output_tokens) AS output_tokens,
		CAST(AVG(latency_ms) AS BIGINT) AS avg_latency_ms
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by purpose: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	var usage []LLMModelUsage
	err := r.db.SelectContext(ctx, &usage, `SELECT model,
		COUNT(*) AS calls,
		SUM(input_tokens) AS input_tokens,
		SUM(output_tokens) AS output_tokens
		FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}
	return usage, nil
}
