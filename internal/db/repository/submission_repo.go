package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shortlistd/quizgate/internal/quiz"
)

// SubmissionRepository persists graded attempts. Records are insert-only;
// nothing in the system updates or deletes them.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

var _ quiz.SubmissionStore = (*SubmissionRepository)(nil)

const submissionColumns = "submission_id, name, email, mobile, answers, question_ids, score, total_questions, pass, created_at"

// Insert stores one graded attempt.
func (r *SubmissionRepository) Insert(ctx context.Context, sub quiz.Submission) (quiz.Submission, error) {
	sub.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (submission_id, name, email, mobile, answers, question_ids, score, total_questions, pass)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		sub.ID, sub.Name, sub.Email, sub.Mobile, sub.Answers, sub.QuestionIDs,
		sub.Score, sub.TotalQuestions, sub.Pass,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return quiz.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// List returns submissions newest first, optionally filtered by outcome,
// with the total count for pagination.
func (r *SubmissionRepository) List(ctx context.Context, pass *bool, page, limit int) ([]quiz.Submission, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := ""
	args := []any{limit, (page - 1) * limit}
	if pass != nil {
		where = " WHERE pass = $3"
		args = append(args, *pass)
	}

	var total int
	countArgs := args[2:]
	if err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM submissions"+countWhere(pass), countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT "+submissionColumns+" FROM submissions"+where+
			" ORDER BY created_at DESC LIMIT $1 OFFSET $2", args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Recent returns the n newest submissions (admin dashboard).
func (r *SubmissionRepository) Recent(ctx context.Context, n int) ([]quiz.Submission, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+submissionColumns+" FROM submissions ORDER BY created_at DESC LIMIT $1", n)
	if err != nil {
		return nil, fmt.Errorf("recent submissions: %w", err)
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

// SubmissionStats aggregates outcomes across all submissions.
type SubmissionStats struct {
	Total  int
	Passed int
	Failed int
}

// Stats counts submissions by outcome in a single query.
func (r *SubmissionRepository) Stats(ctx context.Context) (SubmissionStats, error) {
	var s SubmissionStats
	err := r.pool.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE pass),
		        count(*) FILTER (WHERE NOT pass)
		 FROM submissions`).Scan(&s.Total, &s.Passed, &s.Failed)
	if err != nil {
		return SubmissionStats{}, fmt.Errorf("submission stats: %w", err)
	}
	return s, nil
}

func countWhere(pass *bool) string {
	if pass != nil {
		return " WHERE pass = $1"
	}
	return ""
}

func scanSubmissions(rows pgx.Rows) ([]quiz.Submission, error) {
	var subs []quiz.Submission
	for rows.Next() {
		var sub quiz.Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Mobile,
			&sub.Answers, &sub.QuestionIDs, &sub.Score, &sub.TotalQuestions,
			&sub.Pass, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
