package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shortlistd/quizgate/internal/quiz"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// QuestionRepository provides Postgres-backed access to the question bank.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

var _ quiz.QuestionBank = (*QuestionRepository)(nil)

const questionColumns = "question_id, question_text, options, correct_answer, difficulty, created_at"

// ListAll returns every question in insertion order.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]quiz.Question, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+questionColumns+" FROM questions ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// FindByIDs returns only the matching records; unknown ids are omitted.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]quiz.Question, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE question_id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// Insert stores a new question and returns it with id and timestamp set.
func (r *QuestionRepository) Insert(ctx context.Context, q quiz.Question) (quiz.Question, error) {
	q.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (question_id, question_text, options, correct_answer, difficulty)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		q.ID, q.Text, q.Options, q.CorrectAnswer, string(q.Difficulty),
	).Scan(&q.CreatedAt)
	if err != nil {
		return quiz.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// InsertBatch stores all questions in a single transaction (bulk import).
func (r *QuestionRepository) InsertBatch(ctx context.Context, questions []quiz.Question) ([]quiz.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := make([]quiz.Question, 0, len(questions))
	for _, q := range questions {
		q.ID = uuid.New()
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (question_id, question_text, options, correct_answer, difficulty)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING created_at`,
			q.ID, q.Text, q.Options, q.CorrectAnswer, string(q.Difficulty),
		).Scan(&q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		inserted = append(inserted, q)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return inserted, nil
}

// Update replaces the mutable fields of an existing question.
func (r *QuestionRepository) Update(ctx context.Context, q quiz.Question) (quiz.Question, error) {
	err := r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET question_text = $2, options = $3, correct_answer = $4, difficulty = $5
		 WHERE question_id = $1
		 RETURNING created_at`,
		q.ID, q.Text, q.Options, q.CorrectAnswer, string(q.Difficulty),
	).Scan(&q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return quiz.Question{}, ErrNotFound
	}
	if err != nil {
		return quiz.Question{}, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

// Delete removes a question from the bank.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM questions WHERE question_id = $1", id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQuestions(rows pgx.Rows) ([]quiz.Question, error) {
	var questions []quiz.Question
	for rows.Next() {
		var (
			q          quiz.Question
			difficulty string
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Options, &q.CorrectAnswer, &difficulty, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Difficulty = quiz.Difficulty(difficulty)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
