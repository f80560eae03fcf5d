package quiz

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	mobileFiller  = strings.NewReplacer(" ", "", "-", "")
)

// Attempt is a candidate's submitted quiz. QuestionIDs are the opaque
// identifiers handed out at assembly time; Answers align by index, with
// AnswerUnanswered marking skipped questions.
type Attempt struct {
	Name        string
	Email       string
	Mobile      string
	Answers     []int
	QuestionIDs []string
}

// Result is the grading outcome returned to the candidate.
type Result struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	Percentage     int  `json:"percentage"`
	Pass           bool `json:"pass"`
	PassPercentage int  `json:"passPercentage"`
}

// Scorer grades submitted attempts against the authoritative question bank.
type Scorer struct {
	config      ConfigStore
	bank        QuestionBank
	submissions SubmissionStore
	notifier    SubmissionNotifier
}

// NewScorer builds a scorer. notifier may be nil.
func NewScorer(config ConfigStore, bank QuestionBank, submissions SubmissionStore, notifier SubmissionNotifier) *Scorer {
	return &Scorer{config: config, bank: bank, submissions: submissions, notifier: notifier}
}

// Grade validates the attempt, re-fetches the correct answers by identifier
// and persists exactly one Submission on success. All validation happens
// before any storage access; a rejected attempt writes nothing.
//
// Answers are matched to questions by identifier, never by storage position:
// the client-declared ordering is untrusted, so correctness is re-derived
// from a fresh authoritative fetch keyed by id.
func (s *Scorer) Grade(ctx context.Context, attempt Attempt) (Result, error) {
	attempt.Name = strings.TrimSpace(attempt.Name)
	attempt.Email = strings.ToLower(strings.TrimSpace(attempt.Email))
	attempt.Mobile = strings.TrimSpace(attempt.Mobile)

	if err := validateAttempt(attempt); err != nil {
		return Result{}, err
	}

	// Parse ids up front; an unparseable identifier can never match the
	// bank, so it is treated exactly like an unknown one.
	parsed := make([]uuid.UUID, len(attempt.QuestionIDs))
	known := make([]uuid.UUID, 0, len(attempt.QuestionIDs))
	valid := make([]bool, len(attempt.QuestionIDs))
	for i, raw := range attempt.QuestionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		parsed[i] = id
		valid[i] = true
		known = append(known, id)
	}

	var fetched []Question
	if len(known) > 0 {
		var err error
		fetched, err = s.bank.FindByIDs(ctx, known)
		if err != nil {
			return Result{}, fmt.Errorf("fetch questions: %w", err)
		}
	}
	if len(fetched) == 0 {
		return Result{}, ErrInvalidQuestionIDs
	}

	correctByID := make(map[uuid.UUID]int, len(fetched))
	for _, q := range fetched {
		correctByID[q.ID] = q.CorrectAnswer
	}

	// Identifiers that do not resolve (stale or forged) contribute nothing
	// to the score but still count toward the total, so forging ids can
	// only ever lower a candidate's own result.
	correctCount := 0
	for i := range attempt.QuestionIDs {
		if !valid[i] {
			continue
		}
		answer, ok := correctByID[parsed[i]]
		if ok && attempt.Answers[i] == answer {
			correctCount++
		}
	}

	totalQuestions := len(attempt.QuestionIDs)
	percentage := float64(correctCount) / float64(totalQuestions) * 100

	cfg, err := s.config.GetOrCreateDefault(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load quiz config: %w", err)
	}
	pass := percentage >= float64(cfg.PassPercentage)

	sub, err := s.submissions.Insert(ctx, Submission{
		Name:           attempt.Name,
		Email:          attempt.Email,
		Mobile:         attempt.Mobile,
		Answers:        attempt.Answers,
		QuestionIDs:    parsed,
		Score:          correctCount,
		TotalQuestions: totalQuestions,
		Pass:           pass,
	})
	if err != nil {
		return Result{}, fmt.Errorf("insert submission: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifySubmission(sub)
	}
	submissionsGraded.WithLabelValues(passLabel(pass)).Inc()

	return Result{
		Score:          correctCount,
		TotalQuestions: totalQuestions,
		Percentage:     int(math.Round(percentage)),
		Pass:           pass,
		PassPercentage: cfg.PassPercentage,
	}, nil
}

func validateAttempt(attempt Attempt) error {
	if attempt.Name == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if attempt.Email == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if attempt.Mobile == "" {
		return &ValidationError{Field: "mobile", Reason: "mobile is required"}
	}
	if len(attempt.Answers) == 0 {
		return &ValidationError{Field: "answers", Reason: "answers are required"}
	}
	if len(attempt.QuestionIDs) == 0 {
		return &ValidationError{Field: "questionIds", Reason: "questionIds are required"}
	}
	if len(attempt.Answers) != len(attempt.QuestionIDs) {
		return ErrMismatchedAnswerSet
	}
	if !emailPattern.MatchString(attempt.Email) {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if !mobilePattern.MatchString(mobileFiller.Replace(attempt.Mobile)) {
		return &ValidationError{Field: "mobile", Reason: "invalid mobile number format (10 digits required)"}
	}
	for _, a := range attempt.Answers {
		if a != AnswerUnanswered && (a < 0 || a >= OptionCount) {
			return &ValidationError{Field: "answers", Reason: "answers must be option indexes or null"}
		}
	}
	return nil
}

func passLabel(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}
