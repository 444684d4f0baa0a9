package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/qboard/internal/model"
)

// questionSetRowID is the id of the single question_sets row.
const questionSetRowID = 1

// PostgresRepository stores the QuestionSet in a single question_sets row.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Load(ctx context.Context) (model.QuestionSet, error) {
	var questionsRaw, revealedRaw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT questions, revealed FROM question_sets WHERE id = $1`, questionSetRowID,
	).Scan(&questionsRaw, &revealedRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.EmptyQuestionSet(), nil
	}
	if err != nil {
		return model.QuestionSet{}, fmt.Errorf("select question set: %w", err)
	}

	var set model.QuestionSet
	if err := json.Unmarshal(questionsRaw, &set.Questions); err != nil {
		return model.QuestionSet{}, fmt.Errorf("%w: questions: %v", ErrCorruptData, err)
	}
	if err := json.Unmarshal(revealedRaw, &set.Revealed); err != nil {
		return model.QuestionSet{}, fmt.Errorf("%w: revealed: %v", ErrCorruptData, err)
	}
	return withEmptySlices(set), nil
}

func (r *PostgresRepository) Save(ctx context.Context, set model.QuestionSet) error {
	set = withEmptySlices(set)
	questionsRaw, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	revealedRaw, err := json.Marshal(set.Revealed)
	if err != nil {
		return fmt.Errorf("encode revealed: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO question_sets (id, questions, revealed, updated_at)
		 VALUES ($1, $2::jsonb, $3::jsonb, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET questions = EXCLUDED.questions, revealed = EXCLUDED.revealed, updated_at = NOW()`,
		questionSetRowID, string(questionsRaw), string(revealedRaw),
	)
	if err != nil {
		return fmt.Errorf("upsert question set: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Driver() string { return "postgres" }
