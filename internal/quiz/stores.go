package quiz

import (
	"context"

	"github.com/google/uuid"
)

// ConfigStore reads the single quiz configuration, creating it with defaults
// on first access. Implementations must tolerate concurrent first readers
// without surfacing an error.
type ConfigStore interface {
	GetOrCreateDefault(ctx context.Context) (Config, error)
}

// QuestionBank provides read access to the question records.
type QuestionBank interface {
	// ListAll returns every question. No ordering guarantee.
	ListAll(ctx context.Context) ([]Question, error)

	// FindByIDs returns only the matching records; unknown identifiers are
	// silently omitted, so callers must handle partial results.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Question, error)
}

// SubmissionStore persists graded attempts.
type SubmissionStore interface {
	Insert(ctx context.Context, sub Submission) (Submission, error)
}

// SubmissionNotifier receives each recorded submission (admin live feed).
type SubmissionNotifier interface {
	NotifySubmission(sub Submission)
}
