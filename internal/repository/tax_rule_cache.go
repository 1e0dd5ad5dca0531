package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"impactcore/internal/model"

	"github.com/redis/go-redis/v9"
)

const stateTaxRuleKeyPrefix = "state_tax_rule:"

// cachedStateTaxRuleRepository is a read-through Redis cache in front of the
// state tax table. Writes go to the database first and evict the key once the
// surrounding transaction commits.
// Redis failures fall back to the database. Reads inside a transaction skip
// the cache.
type cachedStateTaxRuleRepository struct {
	next   StateTaxRuleRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStateTaxRuleRepository wraps next with a Redis cache. A nil client
// returns next unchanged.
func NewCachedStateTaxRuleRepository(next StateTaxRuleRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) StateTaxRuleRepository {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedStateTaxRuleRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func stateTaxRuleKey(stateCode string) string {
	return stateTaxRuleKeyPrefix + NormalizeState(stateCode)
}

func (c *cachedStateTaxRuleRepository) FindByState(ctx context.Context, stateCode string) (*model.StateTaxRule, error) {
	if InTx(ctx) {
		return c.next.FindByState(ctx, stateCode)
	}
	key := stateTaxRuleKey(stateCode)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rule model.StateTaxRule
		if jsonErr := json.Unmarshal(raw, &rule); jsonErr == nil {
			return &rule, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("state tax rule cache read failed", "key", key, "error", err)
	}

	rule, err := c.next.FindByState(ctx, stateCode)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(rule); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("state tax rule cache write failed", "key", key, "error", setErr)
		}
	}
	return rule, nil
}

func (c *cachedStateTaxRuleRepository) Create(ctx context.Context, rule *model.StateTaxRule) error {
	if err := c.next.Create(ctx, rule); err != nil {
		return err
	}
	c.evict(ctx, rule.StateCode)
	return nil
}

func (c *cachedStateTaxRuleRepository) Update(ctx context.Context, rule *model.StateTaxRule) error {
	if err := c.next.Update(ctx, rule); err != nil {
		return err
	}
	c.evict(ctx, rule.StateCode)
	return nil
}

func (c *cachedStateTaxRuleRepository) Delete(ctx context.Context, stateCode string) error {
	if err := c.next.Delete(ctx, stateCode); err != nil {
		return err
	}
	c.evict(ctx, stateCode)
	return nil
}

func (c *cachedStateTaxRuleRepository) List(ctx context.Context, page, limit int) ([]model.StateTaxRule, int64, error) {
	return c.next.List(ctx, page, limit)
}

// evict drops the cached rule after commit so a concurrent reader cannot
// re-cache the row the transaction is replacing.
func (c *cachedStateTaxRuleRepository) evict(ctx context.Context, stateCode string) {
	AfterCommit(ctx, func() { c.del(context.WithoutCancel(ctx), stateCode) })
}

func (c *cachedStateTaxRuleRepository) del(ctx context.Context, stateCode string) {
	if err := c.client.Del(ctx, stateTaxRuleKey(stateCode)).Err(); err != nil {
		c.logger.Warn("state tax rule cache evict failed", "state", stateCode, "error", err)
	}
}
