package quiz

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultBankCacheTTL = 30 * time.Second
	bankCacheKey        = "questionbank:all"
)

// CachedBank fronts a QuestionBank with a short-lived Redis cache for the
// full listing. Assembly traffic is read-heavy and always reads the whole
// bank, so one key suffices. FindByIDs bypasses the cache: grading must be
// an authoritative fetch.
//
// Cache errors degrade to the underlying bank; a dead Redis never fails a
// request.
type CachedBank struct {
	inner  QuestionBank
	client *redis.Client
	ttl    time.Duration
}

var _ QuestionBank = (*CachedBank)(nil)

func NewCachedBank(inner QuestionBank, client *redis.Client, ttl time.Duration) *CachedBank {
	if ttl <= 0 {
		ttl = defaultBankCacheTTL
	}
	return &CachedBank{inner: inner, client: client, ttl: ttl}
}

func (c *CachedBank) ListAll(ctx context.Context) ([]Question, error) {
	if data, err := c.client.Get(ctx, bankCacheKey).Bytes(); err == nil {
		var questions []Question
		if err := json.Unmarshal(data, &questions); err == nil {
			return questions, nil
		}
	}

	questions, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(questions); err == nil {
		_ = c.client.Set(ctx, bankCacheKey, data, c.ttl).Err()
	}
	return questions, nil
}

func (c *CachedBank) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Question, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// Invalidate drops the cached listing; called after any question mutation.
func (c *CachedBank) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, bankCacheKey).Err()
}
