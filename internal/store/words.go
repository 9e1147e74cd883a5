package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/memoflow/internal/vocab"
)

type wordRow struct {
	Course   string `db:"course"`
	WordID   string `db:"word_id"`
	Position int    `db:"position"`
	En       string `db:"en"`
	Zh       string `db:"zh"`
	Phonetic string `db:"phonetic"`
	Pos      string `db:"pos"`
	Example  string `db:"example"`
}

func (w wordRow) word() vocab.Word {
	return vocab.Word{
		ID:           w.WordID,
		Text:         w.En,
		Meaning:      w.Zh,
		Phonetic:     w.Phonetic,
		PartOfSpeech: w.Pos,
		Example:      w.Example,
	}
}

// WordRepo stores the imported extension list of each course. It
// implements vocab.CustomSource.
type WordRepo struct {
	db *sqlx.DB
}

// CustomWords returns the imported words of course in import order.
func (r *WordRepo) CustomWords(ctx context.Context, course vocab.CourseID) ([]vocab.Word, error) {
	var rows []wordRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT course, word_id, position, en, zh, phonetic, pos, example
		FROM custom_words WHERE course = ? ORDER BY position`), string(course))
	if err != nil {
		return nil, fmt.Errorf("query custom words: %w", err)
	}

	words := make([]vocab.Word, len(rows))
	for i, row := range rows {
		words[i] = row.word()
	}
	return words, nil
}

// AddCustomWords merges words into the extension list of course. Words whose
// ID is already stored are skipped; the rest are appended in order. It
// returns the number of words added.
func (r *WordRepo) AddCustomWords(ctx context.Context, course vocab.CourseID, words []vocab.Word) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing []string
	if err := tx.SelectContext(ctx, &existing, tx.Rebind(
		`SELECT word_id FROM custom_words WHERE course = ?`), string(course)); err != nil {
		return 0, fmt.Errorf("query custom ids: %w", err)
	}
	var next int
	if err := tx.GetContext(ctx, &next, tx.Rebind(
		`SELECT COALESCE(MAX(position), -1) + 1 FROM custom_words WHERE course = ?`), string(course)); err != nil {
		return 0, fmt.Errorf("query custom position: %w", err)
	}

	seen := make(map[string]bool, len(existing)+len(words))
	for _, id := range existing {
		seen[id] = true
	}

	var rows []wordRow
	for _, w := range words {
		if w.ID == "" || seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		rows = append(rows, wordRow{
			Course:   string(course),
			WordID:   w.ID,
			Position: next,
			En:       w.Text,
			Zh:       w.Meaning,
			Phonetic: w.Phonetic,
			Pos:      w.PartOfSpeech,
			Example:  w.Example,
		})
		next++
	}

	for start := 0; start < len(rows); start += insertBatch {
		batch := rows[start:min(start+insertBatch, len(rows))]
		_, err := tx.NamedExecContext(ctx, `INSERT INTO custom_words
			(course, word_id, position, en, zh, phonetic, pos, example)
			VALUES (:course, :word_id, :position, :en, :zh, :phonetic, :pos, :example)`, batch)
		if err != nil {
			return 0, fmt.Errorf("insert custom words: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit custom words: %w", err)
	}
	return len(rows), nil
}

// CountCustom returns the number of imported words per course.
func (r *WordRepo) CountCustom(ctx context.Context) (map[vocab.CourseID]int, error) {
	var rows []struct {
		Course string `db:"course"`
		N      int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT course, COUNT(*) AS n FROM custom_words GROUP BY course`); err != nil {
		return nil, fmt.Errorf("count custom words: %w", err)
	}
	counts := make(map[vocab.CourseID]int, len(rows))
	for _, row := range rows {
		counts[vocab.CourseID(row.Course)] = row.N
	}
	return counts, nil
}

// ClearCustom deletes every imported word and returns how many were removed.
func (r *WordRepo) ClearCustom(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_words`)
	if err != nil {
		return 0, fmt.Errorf("clear custom words: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
