package quiz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsOf(questions []Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID.String()
	}
	return ids
}

func correctAnswersOf(questions []Question) []int {
	answers := make([]int, len(questions))
	for i, q := range questions {
		answers[i] = q.CorrectAnswer
	}
	return answers
}

func validAttempt(questions []Question) Attempt {
	return Attempt{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Mobile:      "9876543210",
		Answers:     correctAnswersOf(questions),
		QuestionIDs: idsOf(questions),
	}
}

func TestGradeValidationRejections(t *testing.T) {
	questions := makeQuestions(4)

	cases := []struct {
		name   string
		mutate func(a *Attempt)
		field  string
	}{
		{"missing name", func(a *Attempt) { a.Name = "  " }, "name"},
		{"missing email", func(a *Attempt) { a.Email = "" }, "email"},
		{"missing mobile", func(a *Attempt) { a.Mobile = "" }, "mobile"},
		{"missing answers", func(a *Attempt) { a.Answers = nil }, "answers"},
		{"missing question ids", func(a *Attempt) { a.QuestionIDs = nil }, "questionIds"},
		{"bad email", func(a *Attempt) { a.Email = "not-an-email" }, "email"},
		{"email with spaces", func(a *Attempt) { a.Email = "a b@example.com" }, "email"},
		{"short mobile", func(a *Attempt) { a.Mobile = "12345" }, "mobile"},
		{"alpha mobile", func(a *Attempt) { a.Mobile = "98765abcde" }, "mobile"},
		{"answer out of range", func(a *Attempt) { a.Answers[0] = 7 }, "answers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subs := &stubSubmissions{}
			scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

			attempt := validAttempt(questions)
			tc.mutate(&attempt)

			_, err := scorer.Grade(context.Background(), attempt)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Empty(t, subs.inserted, "no submission may be written on a rejected request")
		})
	}
}

func TestGradeMismatchedAnswerSet(t *testing.T) {
	questions := makeQuestions(4)
	bank := &stubBank{
		listAll: func(context.Context) ([]Question, error) { return questions, nil },
		findByIDs: func(context.Context, []uuid.UUID) ([]Question, error) {
			t.Fatal("storage must not be touched on a rejected request")
			return nil, nil
		},
	}
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bank, subs, nil)

	attempt := validAttempt(questions)
	attempt.Answers = attempt.Answers[:3]

	_, err := scorer.Grade(context.Background(), attempt)
	assert.ErrorIs(t, err, ErrMismatchedAnswerSet)
	assert.Empty(t, subs.inserted)
}

func TestGradeMobileNormalization(t *testing.T) {
	questions := makeQuestions(2)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	attempt := validAttempt(questions)
	attempt.Mobile = "98765 432-10"

	_, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)
}

func TestGradeAllCorrect(t *testing.T) {
	questions := makeQuestions(5)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	result, err := scorer.Grade(context.Background(), validAttempt(questions))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 100, result.Percentage)
	assert.True(t, result.Pass)
	assert.Equal(t, DefaultPassPercentage, result.PassPercentage)
	require.Len(t, subs.inserted, 1)
}

func TestGradeUnknownIDCountsTowardTotal(t *testing.T) {
	questions := makeQuestions(4)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	// 5 ids submitted, 1 unknown, 4 correct among the known -> 4/5, 80%.
	attempt := validAttempt(questions)
	attempt.QuestionIDs = append(attempt.QuestionIDs, uuid.NewString())
	attempt.Answers = append(attempt.Answers, 0)

	result, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 80, result.Percentage)
	assert.True(t, result.Pass)
}

func TestGradeUnparseableIDTreatedAsUnknown(t *testing.T) {
	questions := makeQuestions(3)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	attempt := validAttempt(questions)
	attempt.QuestionIDs = append(attempt.QuestionIDs, "definitely-not-a-uuid")
	attempt.Answers = append(attempt.Answers, 1)

	result, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestGradePassThresholdIsInclusive(t *testing.T) {
	questions := makeQuestions(5)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	// 3 of 5 = 60%, threshold 60 -> pass.
	attempt := validAttempt(questions)
	for i := 3; i < 5; i++ {
		attempt.Answers[i] = (questions[i].CorrectAnswer + 1) % OptionCount
	}

	result, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 60, result.Percentage)
	assert.True(t, result.Pass)
	require.Len(t, subs.inserted, 1)
	assert.True(t, subs.inserted[0].Pass)
}

func TestGradeIsOrderIndependent(t *testing.T) {
	questions := makeQuestions(5)

	grade := func(attempt Attempt) Result {
		scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), &stubSubmissions{}, nil)
		result, err := scorer.Grade(context.Background(), attempt)
		require.NoError(t, err)
		return result
	}

	straight := validAttempt(questions)
	straight.Answers[1] = (questions[1].CorrectAnswer + 1) % OptionCount

	// Same id<->answer pairs, submitted in reverse order.
	permuted := straight
	permuted.QuestionIDs = make([]string, len(straight.QuestionIDs))
	permuted.Answers = make([]int, len(straight.Answers))
	for i := range straight.QuestionIDs {
		j := len(straight.QuestionIDs) - 1 - i
		permuted.QuestionIDs[i] = straight.QuestionIDs[j]
		permuted.Answers[i] = straight.Answers[j]
	}

	assert.Equal(t, grade(straight).Score, grade(permuted).Score)
}

func TestGradeNoResolvedIDs(t *testing.T) {
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(makeQuestions(3)), subs, nil)

	attempt := Attempt{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Mobile:      "9876543210",
		Answers:     []int{0, 1},
		QuestionIDs: []string{uuid.NewString(), uuid.NewString()},
	}

	_, err := scorer.Grade(context.Background(), attempt)
	assert.ErrorIs(t, err, ErrInvalidQuestionIDs)
	assert.Empty(t, subs.inserted)
}

func TestGradeUnansweredSentinel(t *testing.T) {
	questions := makeQuestions(4)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	attempt := validAttempt(questions)
	attempt.Answers[0] = AnswerUnanswered
	attempt.Answers[1] = AnswerUnanswered

	result, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestGradePersistsNormalizedSubmission(t *testing.T) {
	questions := makeQuestions(2)
	subs := &stubSubmissions{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), subs, nil)

	attempt := validAttempt(questions)
	attempt.Name = "  Asha Rao  "
	attempt.Email = "  ASHA@Example.COM "

	_, err := scorer.Grade(context.Background(), attempt)
	require.NoError(t, err)

	require.Len(t, subs.inserted, 1)
	stored := subs.inserted[0]
	assert.Equal(t, "Asha Rao", stored.Name)
	assert.Equal(t, "asha@example.com", stored.Email)
	assert.Equal(t, 2, stored.TotalQuestions)
	assert.Len(t, stored.Answers, 2)
	assert.Len(t, stored.QuestionIDs, 2)
	assert.LessOrEqual(t, stored.Score, stored.TotalQuestions)
}

type recordingNotifier struct {
	subs []Submission
}

func (n *recordingNotifier) NotifySubmission(sub Submission) {
	n.subs = append(n.subs, sub)
}

func TestGradeNotifiesListener(t *testing.T) {
	questions := makeQuestions(2)
	notifier := &recordingNotifier{}
	scorer := NewScorer(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), &stubSubmissions{}, notifier)

	_, err := scorer.Grade(context.Background(), validAttempt(questions))
	require.NoError(t, err)
	require.Len(t, notifier.subs, 1)
	assert.NotEqual(t, uuid.Nil, notifier.subs[0].ID)
}
