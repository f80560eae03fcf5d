package quiz

import "errors"

var (
	// ErrQuizInactive means the admin has disabled the quiz; candidates get
	// a 503, not a generic failure.
	ErrQuizInactive = errors.New("quiz is currently disabled")

	// ErrNoQuestions means the question bank is empty.
	ErrNoQuestions = errors.New("no questions available")

	// ErrMismatchedAnswerSet means answers and questionIds differ in length.
	ErrMismatchedAnswerSet = errors.New("answers and questionIds must have the same length")

	// ErrInvalidQuestionIDs means none of the submitted identifiers resolved
	// against the question bank.
	ErrInvalidQuestionIDs = errors.New("no submitted question ids matched the question bank")

	// ErrEmptyConfigPatch means a config update carried no fields.
	ErrEmptyConfigPatch = errors.New("no valid fields to update")
)

// ValidationError identifies the offending field of a rejected request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
