package quiz

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleRespectsConfiguredLimit(t *testing.T) {
	questions := makeQuestions(10)
	cfg := activeConfig()
	cfg.QuestionLimit = 3

	assembler := NewAssembler(&stubConfigStore{cfg: cfg}, bankOf(questions), AssemblerOptions{})

	view, err := assembler.Assemble(context.Background())
	require.NoError(t, err)

	assert.Len(t, view.Questions, 3)
	assert.Equal(t, 3, view.TotalQuestions)
	assert.Equal(t, 3, view.QuestionLimit)
	assert.Equal(t, cfg.PassPercentage, view.PassPercentage)

	// Every served question comes from the bank, no duplicates.
	known := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	seen := make(map[uuid.UUID]bool)
	for _, q := range view.Questions {
		assert.True(t, known[q.ID], "question not from the bank")
		assert.False(t, seen[q.ID], "duplicate question served")
		seen[q.ID] = true
	}
}

func TestAssembleSmallBankDegradesGracefully(t *testing.T) {
	cfg := activeConfig()
	cfg.QuestionLimit = 10

	assembler := NewAssembler(&stubConfigStore{cfg: cfg}, bankOf(makeQuestions(2)), AssemblerOptions{})

	view, err := assembler.Assemble(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Questions, 2)
	assert.Equal(t, 10, view.QuestionLimit)
}

func TestAssembleNeverExposesCorrectAnswer(t *testing.T) {
	assembler := NewAssembler(&stubConfigStore{cfg: activeConfig()}, bankOf(makeQuestions(5)), AssemblerOptions{})

	view, err := assembler.Assemble(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correctAnswer")
}

func TestAssembleInactiveQuiz(t *testing.T) {
	cfg := activeConfig()
	cfg.IsActive = false

	assembler := NewAssembler(&stubConfigStore{cfg: cfg}, bankOf(makeQuestions(5)), AssemblerOptions{})

	_, err := assembler.Assemble(context.Background())
	assert.ErrorIs(t, err, ErrQuizInactive)
}

func TestAssembleEmptyBank(t *testing.T) {
	assembler := NewAssembler(&stubConfigStore{cfg: activeConfig()}, bankOf(nil), AssemblerOptions{})

	_, err := assembler.Assemble(context.Background())
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestAssembleDoesNotMutateCanonicalOrder(t *testing.T) {
	questions := makeQuestions(8)
	original := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		original[i] = q.ID
	}

	assembler := NewAssembler(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), AssemblerOptions{})
	for range 20 {
		_, err := assembler.Assemble(context.Background())
		require.NoError(t, err)
	}

	for i, q := range questions {
		assert.Equal(t, original[i], q.ID, "stored question order mutated by shuffle")
	}
}

func TestAssembleShuffleIsDeterministicWithInjectedRand(t *testing.T) {
	questions := makeQuestions(3)

	// IntN pinned to zero: i=2 swaps 0<->2, i=1 swaps 0<->1.
	assembler := NewAssembler(&stubConfigStore{cfg: activeConfig()}, bankOf(questions),
		AssemblerOptions{IntN: func(int) int { return 0 }})

	view, err := assembler.Assemble(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Questions, 3)
	assert.Equal(t, questions[1].ID, view.Questions[0].ID)
	assert.Equal(t, questions[2].ID, view.Questions[1].ID)
	assert.Equal(t, questions[0].ID, view.Questions[2].ID)
}

func TestAssembleShuffleUniformity(t *testing.T) {
	questions := makeQuestions(3)
	assembler := NewAssembler(&stubConfigStore{cfg: activeConfig()}, bankOf(questions), AssemblerOptions{})

	const trials = 6000
	counts := make(map[string]int)
	for range trials {
		view, err := assembler.Assemble(context.Background())
		require.NoError(t, err)
		ids := make([]string, len(view.Questions))
		for i, q := range view.Questions {
			ids[i] = q.ID.String()
		}
		counts[strings.Join(ids, "|")]++
	}

	// 3! = 6 orderings, expected ~1000 each. A wide tolerance keeps the
	// test stable while still catching a biased shuffle.
	assert.Len(t, counts, 6)
	for ordering, count := range counts {
		assert.InDelta(t, trials/6, count, 250, "ordering %s outside tolerance", ordering)
	}
}
