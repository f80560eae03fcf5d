package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shortlistd/quizgate/internal/admin"
	"github.com/shortlistd/quizgate/internal/config"
	"github.com/shortlistd/quizgate/internal/quiz"
)

// NewHTTPServer wires the public quiz endpoints, the guarded admin surface
// and the base routes (health, metrics).
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	quizHandlers *quiz.HTTPHandlers,
	adminHandlers *admin.HTTPHandlers,
	liveFeed *admin.LiveFeed,
	adminSvc *admin.Service,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Candidate-facing endpoints. No authentication by design: candidates
	// are anonymous and session state lives entirely client-side.
	mux.HandleFunc("GET /v1/quiz/questions", quizHandlers.HandleGetQuiz)
	mux.HandleFunc("POST /v1/quiz/submit", quizHandlers.HandleSubmit)

	// Admin surface. Login/logout are open; everything else requires the
	// capability token.
	mux.HandleFunc("POST /v1/admin/login", adminHandlers.Login)
	mux.HandleFunc("POST /v1/admin/logout", adminHandlers.Logout)

	guard := admin.RequireAdmin(adminSvc, logger)
	guarded := func(h http.HandlerFunc) http.Handler { return guard(h) }

	mux.Handle("GET /v1/admin/questions", guarded(adminHandlers.ListQuestions))
	mux.Handle("POST /v1/admin/questions", guarded(adminHandlers.CreateQuestion))
	mux.Handle("POST /v1/admin/questions/import", guarded(adminHandlers.ImportQuestions))
	mux.Handle("PUT /v1/admin/questions/{id}", guarded(adminHandlers.UpdateQuestion))
	mux.Handle("DELETE /v1/admin/questions/{id}", guarded(adminHandlers.DeleteQuestion))
	mux.Handle("GET /v1/admin/config", guarded(adminHandlers.GetConfig))
	mux.Handle("PUT /v1/admin/config", guarded(adminHandlers.UpdateConfig))
	mux.Handle("GET /v1/admin/submissions", guarded(adminHandlers.ListSubmissions))
	mux.Handle("GET /v1/admin/stats", guarded(adminHandlers.Stats))
	mux.Handle("GET /v1/admin/live", guarded(liveFeed.HandleWS))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
