package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

const (
	stockKeyPrefix    = "inventory:"
	idempotencyKeyTTL = 24 * time.Hour
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetStock(ctx context.Context, machineID string, stock domain.Stock) error {
	key := stockKeyPrefix + machineID

	fields := make(map[string]interface{}, len(domain.Ingredients))
	for _, i := range domain.Ingredients {
		fields[i.String()] = stock.Get(i)
	}

	return r.client.HSet(ctx, key, fields).Err()
}

func (r *RedisAdapter) GetStock(ctx context.Context, machineID string) (domain.Stock, bool, error) {
	key := stockKeyPrefix + machineID

	values, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.Stock{}, false, err
	}
	if len(values) == 0 {
		return domain.Stock{}, false, nil
	}

	var levels [4]int
	for idx, i := range domain.Ingredients {
		raw, ok := values[i.String()]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Stock{}, false, fmt.Errorf("parse %s level %q: %w", i, raw, err)
		}
		levels[idx] = n
	}

	return domain.Stock{
		Coffee:    levels[0],
		Milk:      levels[1],
		Sugar:     levels[2],
		Chocolate: levels[3],
	}, true, nil
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
