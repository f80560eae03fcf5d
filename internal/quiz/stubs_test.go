package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type stubConfigStore struct {
	mu    sync.Mutex
	cfg   Config
	err   error
	calls int
}

func (s *stubConfigStore) GetOrCreateDefault(_ context.Context) (Config, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return Config{}, s.err
	}
	return s.cfg, nil
}

type stubBank struct {
	listAll   func(ctx context.Context) ([]Question, error)
	findByIDs func(ctx context.Context, ids []uuid.UUID) ([]Question, error)
}

func (s *stubBank) ListAll(ctx context.Context) ([]Question, error) {
	return s.listAll(ctx)
}

func (s *stubBank) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Question, error) {
	return s.findByIDs(ctx, ids)
}

type stubSubmissions struct {
	inserted []Submission
	err      error
}

func (s *stubSubmissions) Insert(_ context.Context, sub Submission) (Submission, error) {
	if s.err != nil {
		return Submission{}, s.err
	}
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	s.inserted = append(s.inserted, sub)
	return sub, nil
}

func activeConfig() Config {
	return Config{
		QuestionLimit:  DefaultQuestionLimit,
		PassPercentage: DefaultPassPercentage,
		IsActive:       true,
	}
}

func makeQuestions(n int) []Question {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			ID:            uuid.New(),
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % OptionCount,
			Difficulty:    DifficultyMedium,
			CreatedAt:     time.Now(),
		}
	}
	return questions
}

func bankOf(questions []Question) *stubBank {
	byID := make(map[uuid.UUID]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &stubBank{
		listAll: func(context.Context) ([]Question, error) {
			return questions, nil
		},
		findByIDs: func(_ context.Context, ids []uuid.UUID) ([]Question, error) {
			var found []Question
			for _, id := range ids {
				if q, ok := byID[id]; ok {
					found = append(found, q)
				}
			}
			return found, nil
		},
	}
}
