package quiz

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty buckets for curated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	// OptionCount is the fixed number of options every question carries.
	OptionCount = 4

	// AnswerUnanswered is the sentinel stored for a question the candidate
	// left blank (JSON null on the wire).
	AnswerUnanswered = -1
)

// Question is the authoritative bank record. CorrectAnswer must never be
// serialized on the candidate-facing path; use Redacted for that.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	Text          string     `json:"questionText"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// RedactedQuestion is the candidate-facing projection of a Question.
type RedactedQuestion struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"questionText"`
	Options []string  `json:"options"`
}

// Redacted strips the correct answer from a question.
func (q Question) Redacted() RedactedQuestion {
	return RedactedQuestion{ID: q.ID, Text: q.Text, Options: q.Options}
}

// Config is the single quiz configuration record.
type Config struct {
	QuestionLimit   int       `json:"questionLimit"`
	PassPercentage  int       `json:"passPercentage"`
	IsActive        bool      `json:"isActive"`
	WhatsappNumber  string    `json:"whatsappNumber"`
	WhatsappMessage string    `json:"whatsappMessage"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Config field bounds and defaults.
const (
	MinQuestionLimit  = 1
	MaxQuestionLimit  = 100
	MinPassPercentage = 0
	MaxPassPercentage = 100

	DefaultQuestionLimit  = 10
	DefaultPassPercentage = 60
)

// ConfigPatch is a partial configuration update; nil fields are untouched.
type ConfigPatch struct {
	QuestionLimit   *int    `json:"questionLimit"`
	PassPercentage  *int    `json:"passPercentage"`
	IsActive        *bool   `json:"isActive"`
	WhatsappNumber  *string `json:"whatsappNumber"`
	WhatsappMessage *string `json:"whatsappMessage"`
}

// Empty reports whether the patch carries no fields at all.
func (p ConfigPatch) Empty() bool {
	return p.QuestionLimit == nil && p.PassPercentage == nil && p.IsActive == nil &&
		p.WhatsappNumber == nil && p.WhatsappMessage == nil
}

// Validate checks range constraints on the numeric fields and rejects an
// empty patch.
func (p ConfigPatch) Validate() error {
	if p.Empty() {
		return ErrEmptyConfigPatch
	}
	if p.QuestionLimit != nil && (*p.QuestionLimit < MinQuestionLimit || *p.QuestionLimit > MaxQuestionLimit) {
		return &ValidationError{Field: "questionLimit", Reason: "must be between 1 and 100"}
	}
	if p.PassPercentage != nil && (*p.PassPercentage < MinPassPercentage || *p.PassPercentage > MaxPassPercentage) {
		return &ValidationError{Field: "passPercentage", Reason: "must be between 0 and 100"}
	}
	return nil
}

// Submission is one graded attempt. Records are insert-only.
type Submission struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Mobile         string      `json:"mobile"`
	Answers        []int       `json:"answers"`
	QuestionIDs    []uuid.UUID `json:"questionIds"`
	Score          int         `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	Pass           bool        `json:"pass"`
	CreatedAt      time.Time   `json:"createdAt"`
}
