package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/qboard/internal/model"
)

// RedisRepository stores the QuestionSet as one JSON string under key.
type RedisRepository struct {
	rdb *redis.Client
	key string
}

// NewRedisRepository creates a new RedisRepository.
func NewRedisRepository(rdb *redis.Client, key string) *RedisRepository {
	return &RedisRepository{rdb: rdb, key: key}
}

func (r *RedisRepository) Load(ctx context.Context) (model.QuestionSet, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.EmptyQuestionSet(), nil
	}
	if err != nil {
		return model.QuestionSet{}, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return decodeQuestionSet(raw)
}

func (r *RedisRepository) Save(ctx context.Context, set model.QuestionSet) error {
	raw, err := encodeQuestionSet(set)
	if err != nil {
		return fmt.Errorf("encode question set: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisRepository) Driver() string { return "redis" }
