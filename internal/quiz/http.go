package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/shortlistd/quizgate/pkg/http/errors"
)

// HTTPHandlers exposes the candidate-facing quiz endpoints.
type HTTPHandlers struct {
	assembler *Assembler
	scorer    *Scorer
	logger    zerolog.Logger
}

func NewHTTPHandlers(assembler *Assembler, scorer *Scorer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		assembler: assembler,
		scorer:    scorer,
		logger:    logger.With().Str("component", "quiz_http").Logger(),
	}
}

// HandleGetQuiz serves GET /v1/quiz/questions.
func (h *HTTPHandlers) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.assembler.Assemble(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizInactive):
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeQuizInactive,
				"The quiz is temporarily disabled. Please try again later.")
		case errors.Is(err, ErrNoQuestions):
			httperrors.RespondNotFound(w, httperrors.ErrCodeNoQuestions,
				"No questions available. Please contact the administrator.")
		default:
			h.logger.Error().Err(err).Msg("quiz assembly failed")
			httperrors.RespondInternalError(w, "Failed to fetch questions")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"questions":      view.Questions,
		"totalQuestions": view.TotalQuestions,
		"config": map[string]int{
			"questionLimit":  view.QuestionLimit,
			"passPercentage": view.PassPercentage,
		},
	})
}

type submitRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	Answers     []*int   `json:"answers"`
	QuestionIDs []string `json:"questionIds"`
}

// HandleSubmit serves POST /v1/quiz/submit.
func (h *HTTPHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}

	// JSON null marks an unanswered question.
	answers := make([]int, len(req.Answers))
	for i, a := range req.Answers {
		if a == nil {
			answers[i] = AnswerUnanswered
		} else {
			answers[i] = *a
		}
	}

	result, err := h.scorer.Grade(r.Context(), Attempt{
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Answers:     answers,
		QuestionIDs: req.QuestionIDs,
	})
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Reason, verr.Field)
		case errors.Is(err, ErrMismatchedAnswerSet):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMismatchedAnswerSet, err.Error())
		case errors.Is(err, ErrInvalidQuestionIDs):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidQuestionIDs, err.Error())
		default:
			h.logger.Error().Err(err).Msg("submission grading failed")
			httperrors.RespondInternalError(w, "Failed to submit quiz")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
