package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shortlistd/quizgate/internal/db/repository"
	"github.com/shortlistd/quizgate/internal/quiz"
	httperrors "github.com/shortlistd/quizgate/pkg/http/errors"
)

type questionAdminStore interface {
	ListAll(ctx context.Context) ([]quiz.Question, error)
	Insert(ctx context.Context, q quiz.Question) (quiz.Question, error)
	InsertBatch(ctx context.Context, qs []quiz.Question) ([]quiz.Question, error)
	Update(ctx context.Context, q quiz.Question) (quiz.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type configAdminStore interface {
	GetOrCreateDefault(ctx context.Context) (quiz.Config, error)
	Update(ctx context.Context, patch quiz.ConfigPatch) (quiz.Config, error)
}

type submissionAdminStore interface {
	List(ctx context.Context, pass *bool, page, limit int) ([]quiz.Submission, int, error)
	Recent(ctx context.Context, n int) ([]quiz.Submission, error)
	Stats(ctx context.Context) (repository.SubmissionStats, error)
}

type bankInvalidator interface {
	Invalidate(ctx context.Context) error
}

// HTTPHandlers exposes the admin surface: login, question CRUD and import,
// config read/write, submissions listing and dashboard stats. Every handler
// except Login/Logout is mounted behind RequireAdmin.
type HTTPHandlers struct {
	svc           *Service
	questions     questionAdminStore
	config        configAdminStore
	submissions   submissionAdminStore
	bankCache     bankInvalidator
	secureCookies bool
	logger        zerolog.Logger
}

func NewHTTPHandlers(
	svc *Service,
	questions questionAdminStore,
	config configAdminStore,
	submissions submissionAdminStore,
	bankCache bankInvalidator,
	secureCookies bool,
	logger zerolog.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		svc:           svc,
		questions:     questions,
		config:        config,
		submissions:   submissions,
		bankCache:     bankCache,
		secureCookies: secureCookies,
		logger:        logger.With().Str("component", "admin_http").Logger(),
	}
}

// Login serves POST /v1/admin/login and sets the capability cookie.
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "Email and password are required")
		return
	}

	token, account, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidCredentials, "Invalid credentials")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		httperrors.RespondInternalError(w, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.Tokens().TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   map[string]string{"id": account.ID.String(), "email": account.Email},
	})
}

// Logout serves POST /v1/admin/logout and clears the capability cookie.
func (h *HTTPHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListQuestions serves GET /v1/admin/questions with correct answers
// included: this surface is for administrators only.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list questions failed")
		httperrors.RespondInternalError(w, "Failed to fetch questions")
		return
	}
	// Newest first for the admin table.
	for i, j := 0, len(questions)-1; i < j; i, j = i+1, j-1 {
		questions[i], questions[j] = questions[j], questions[i]
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

type questionInput struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
}

func (in questionInput) toQuestion() (quiz.Question, error) {
	text := strings.TrimSpace(in.QuestionText)
	if text == "" {
		return quiz.Question{}, fmt.Errorf("questionText is required")
	}
	if len(in.Options) != quiz.OptionCount {
		return quiz.Question{}, fmt.Errorf("exactly %d options are required", quiz.OptionCount)
	}
	options := make([]string, len(in.Options))
	for i, opt := range in.Options {
		options[i] = strings.TrimSpace(opt)
		if options[i] == "" {
			return quiz.Question{}, fmt.Errorf("option %d must be a non-empty string", i+1)
		}
	}
	if in.CorrectAnswer == nil {
		return quiz.Question{}, fmt.Errorf("correctAnswer is required")
	}
	if *in.CorrectAnswer < 0 || *in.CorrectAnswer >= quiz.OptionCount {
		return quiz.Question{}, fmt.Errorf("correctAnswer must be between 0 and %d", quiz.OptionCount-1)
	}
	difficulty := quiz.Difficulty(in.Difficulty)
	if in.Difficulty == "" {
		difficulty = quiz.DifficultyMedium
	} else if !difficulty.Valid() {
		return quiz.Question{}, fmt.Errorf("difficulty must be 'easy', 'medium', or 'hard'")
	}
	return quiz.Question{
		Text:          text,
		Options:       options,
		CorrectAnswer: *in.CorrectAnswer,
		Difficulty:    difficulty,
	}, nil
}

// CreateQuestion serves POST /v1/admin/questions.
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var in questionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}
	q, err := in.toQuestion()
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
		return
	}

	created, err := h.questions.Insert(r.Context(), q)
	if err != nil {
		h.logger.Error().Err(err).Msg("create question failed")
		httperrors.RespondInternalError(w, "Failed to create question")
		return
	}
	h.invalidateBank(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "question": created})
}

// UpdateQuestion serves PUT /v1/admin/questions/{id}.
func (h *HTTPHandlers) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid question id")
		return
	}

	var in questionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}
	q, err := in.toQuestion()
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
		return
	}
	q.ID = id

	updated, err := h.questions.Update(r.Context(), q)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.logger.Error().Err(err).Msg("update question failed")
		httperrors.RespondInternalError(w, "Failed to update question")
		return
	}
	h.invalidateBank(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "question": updated})
}

// DeleteQuestion serves DELETE /v1/admin/questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid question id")
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.logger.Error().Err(err).Msg("delete question failed")
		httperrors.RespondInternalError(w, "Failed to delete question")
		return
	}
	h.invalidateBank(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Question deleted"})
}

// ImportQuestions serves POST /v1/admin/questions/import: a JSON array of
// questions, inserted all-or-nothing. Any invalid item rejects the whole
// batch with per-item error messages.
func (h *HTTPHandlers) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	var inputs []questionInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be a JSON array of questions")
		return
	}
	if len(inputs) == 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Array cannot be empty")
		return
	}

	var (
		batch     []quiz.Question
		itemFails []string
	)
	for i, in := range inputs {
		q, err := in.toQuestion()
		if err != nil {
			itemFails = append(itemFails, fmt.Sprintf("question %d: %s", i+1, err))
			continue
		}
		batch = append(batch, q)
	}
	if len(itemFails) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   httperrors.ErrCodeImportRejected,
			"message": "Import rejected: invalid questions in payload",
			"details": itemFails,
		})
		return
	}

	inserted, err := h.questions.InsertBatch(r.Context(), batch)
	if err != nil {
		h.logger.Error().Err(err).Msg("import questions failed")
		httperrors.RespondInternalError(w, "Failed to import questions")
		return
	}
	h.invalidateBank(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "imported": len(inserted)})
}

// GetConfig serves GET /v1/admin/config.
func (h *HTTPHandlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.GetOrCreateDefault(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("fetch config failed")
		httperrors.RespondInternalError(w, "Failed to fetch configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "config": cfg})
}

// UpdateConfig serves PUT /v1/admin/config with a partial patch.
func (h *HTTPHandlers) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch quiz.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON body")
		return
	}

	if err := patch.Validate(); err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Reason, verr.Field)
			return
		}
		httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptyConfigPatch, "No valid fields to update")
		return
	}

	cfg, err := h.config.Update(r.Context(), patch)
	if err != nil {
		h.logger.Error().Err(err).Msg("update config failed")
		httperrors.RespondInternalError(w, "Failed to update configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "config": cfg})
}

// ListSubmissions serves GET /v1/admin/submissions?filter=&page=&limit=.
func (h *HTTPHandlers) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	var pass *bool
	switch r.URL.Query().Get("filter") {
	case "passed":
		v := true
		pass = &v
	case "failed":
		v := false
		pass = &v
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	subs, total, err := h.submissions.List(r.Context(), pass, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("list submissions failed")
		httperrors.RespondInternalError(w, "Failed to fetch submissions")
		return
	}

	totalPages := (total + limit - 1) / limit
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": subs,
		"pagination": map[string]int{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// Stats serves GET /v1/admin/stats for the dashboard.
func (h *HTTPHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.submissions.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("fetch stats failed")
		httperrors.RespondInternalError(w, "Failed to fetch stats")
		return
	}
	recent, err := h.submissions.Recent(r.Context(), 5)
	if err != nil {
		h.logger.Error().Err(err).Msg("fetch recent submissions failed")
		httperrors.RespondInternalError(w, "Failed to fetch stats")
		return
	}

	passRate := 0
	if stats.Total > 0 {
		passRate = int(float64(stats.Passed)/float64(stats.Total)*100 + 0.5)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]int{
			"total":    stats.Total,
			"passed":   stats.Passed,
			"failed":   stats.Failed,
			"passRate": passRate,
		},
		"recentSubmissions": recent,
	})
}

func (h *HTTPHandlers) invalidateBank(ctx context.Context) {
	if h.bankCache == nil {
		return
	}
	if err := h.bankCache.Invalidate(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("question cache invalidation failed")
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
