package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shortlistd/quizgate/internal/quiz"
)

// ConfigRepository manages the single quiz_config row. Uniqueness is a real
// schema constraint (CHECK (id = 1)), so concurrent first readers race only
// on a benign ON CONFLICT DO NOTHING insert.
type ConfigRepository struct {
	pool *pgxpool.Pool
}

func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

var _ quiz.ConfigStore = (*ConfigRepository)(nil)

const configColumns = "question_limit, pass_percentage, is_active, whatsapp_number, whatsapp_message, updated_at"

// GetOrCreateDefault returns the configuration, creating the default row on
// first access. Idempotent under concurrent callers; the losing inserter
// simply reads the winner's row.
func (r *ConfigRepository) GetOrCreateDefault(ctx context.Context) (quiz.Config, error) {
	if _, err := r.pool.Exec(ctx,
		"INSERT INTO quiz_config (id) VALUES (1) ON CONFLICT (id) DO NOTHING"); err != nil {
		return quiz.Config{}, fmt.Errorf("ensure quiz config: %w", err)
	}
	return r.get(ctx)
}

// Update applies a partial patch, refreshing updated_at. The patch must be
// validated (ranges, non-empty) by the caller; an empty patch is still
// rejected here as a guard.
func (r *ConfigRepository) Update(ctx context.Context, patch quiz.ConfigPatch) (quiz.Config, error) {
	if patch.Empty() {
		return quiz.Config{}, quiz.ErrEmptyConfigPatch
	}

	// Row may not exist yet if no reader ever ran.
	if _, err := r.GetOrCreateDefault(ctx); err != nil {
		return quiz.Config{}, err
	}

	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.QuestionLimit != nil {
		add("question_limit", *patch.QuestionLimit)
	}
	if patch.PassPercentage != nil {
		add("pass_percentage", *patch.PassPercentage)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.WhatsappNumber != nil {
		add("whatsapp_number", strings.TrimSpace(*patch.WhatsappNumber))
	}
	if patch.WhatsappMessage != nil {
		add("whatsapp_message", *patch.WhatsappMessage)
	}

	query := "UPDATE quiz_config SET " + strings.Join(sets, ", ") +
		" WHERE id = 1 RETURNING " + configColumns

	var cfg quiz.Config
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&cfg.QuestionLimit, &cfg.PassPercentage, &cfg.IsActive,
		&cfg.WhatsappNumber, &cfg.WhatsappMessage, &cfg.UpdatedAt,
	); err != nil {
		return quiz.Config{}, fmt.Errorf("update quiz config: %w", err)
	}
	return cfg, nil
}

func (r *ConfigRepository) get(ctx context.Context) (quiz.Config, error) {
	var cfg quiz.Config
	err := r.pool.QueryRow(ctx,
		"SELECT "+configColumns+" FROM quiz_config WHERE id = 1").Scan(
		&cfg.QuestionLimit, &cfg.PassPercentage, &cfg.IsActive,
		&cfg.WhatsappNumber, &cfg.WhatsappMessage, &cfg.UpdatedAt,
	)
	if err != nil {
		return quiz.Config{}, fmt.Errorf("read quiz config: %w", err)
	}
	return cfg, nil
}
