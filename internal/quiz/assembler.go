package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Assembler produces a randomized, answer-redacted quiz for a new session.
// All session continuity (selected ids, chosen answers) is carried by the
// client; nothing is held server-side between assembly and submission.
type Assembler struct {
	config ConfigStore
	bank   QuestionBank
	intn   func(n int) int
}

// AssemblerOptions allows tests to inject a deterministic random source.
type AssemblerOptions struct {
	// IntN returns a uniform value in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

func NewAssembler(config ConfigStore, bank QuestionBank, opts AssemblerOptions) *Assembler {
	intn := opts.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return &Assembler{config: config, bank: bank, intn: intn}
}

// QuizView is the candidate-facing output of an assembly call. QuestionLimit
// and PassPercentage are for display only and are never trusted at grading.
type QuizView struct {
	Questions      []RedactedQuestion `json:"questions"`
	TotalQuestions int                `json:"totalQuestions"`
	QuestionLimit  int                `json:"questionLimit"`
	PassPercentage int                `json:"passPercentage"`
}

// Assemble reads config and bank, shuffles a working copy, truncates to the
// configured limit and redacts correct answers.
//
// Serving fewer questions than configured is a documented degradation when
// the bank is smaller than the limit, not an error.
func (a *Assembler) Assemble(ctx context.Context) (QuizView, error) {
	cfg, err := a.config.GetOrCreateDefault(ctx)
	if err != nil {
		return QuizView{}, fmt.Errorf("load quiz config: %w", err)
	}
	if !cfg.IsActive {
		return QuizView{}, ErrQuizInactive
	}

	questions, err := a.bank.ListAll(ctx)
	if err != nil {
		return QuizView{}, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return QuizView{}, ErrNoQuestions
	}

	// Fisher-Yates on a working copy; the canonical slice is never mutated.
	shuffled := make([]Question, len(questions))
	copy(shuffled, questions)
	for i := len(shuffled) - 1; i >= 1; i-- {
		j := a.intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	limit := cfg.QuestionLimit
	if limit > len(shuffled) {
		limit = len(shuffled)
	}
	selected := shuffled[:limit]

	redacted := make([]RedactedQuestion, len(selected))
	for i, q := range selected {
		redacted[i] = q.Redacted()
	}

	quizzesAssembled.Inc()

	return QuizView{
		Questions:      redacted,
		TotalQuestions: len(redacted),
		QuestionLimit:  cfg.QuestionLimit,
		PassPercentage: cfg.PassPercentage,
	}, nil
}
