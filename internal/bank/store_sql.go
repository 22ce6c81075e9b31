package bank

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLStore keeps the bank in a single questions table (sqlite or postgres).
// Row order is preserved through the id column so repeated load/save cycles
// keep the operator's ordering.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT exam_label,question_label,question_text,selections,selection_criteria,correct_answers,difficulty,domain,occurrence,generation
		FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var options string
		var gen sql.NullInt64
		if err := rows.Scan(&rec.ExamLabel, &rec.QuestionLabel, &rec.Text, &options,
			&rec.SelectionCriteria, &rec.CorrectAnswers, &rec.Difficulty, &rec.Domain,
			&rec.Occurrence, &gen); err != nil {
			return nil, err
		}
		rec.Options = SplitJoined(options)
		if gen.Valid {
			g := gen.Int64
			rec.Generation = &g
		}
		if rec.Occurrence < 0 {
			rec.Occurrence = 0
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Save replaces the full row set in one transaction.
func (s *SQLStore) Save(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save questions: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	for i, rec := range records {
		var gen interface{}
		if rec.Generation != nil {
			gen = *rec.Generation
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO questions (id,exam_label,question_label,question_text,selections,selection_criteria,correct_answers,difficulty,domain,occurrence,generation)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			i+1, rec.ExamLabel, rec.QuestionLabel, rec.Text, JoinList(rec.Options),
			rec.SelectionCriteria, rec.CorrectAnswers, rec.Difficulty, rec.Domain,
			rec.Occurrence, gen)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
