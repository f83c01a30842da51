package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

var ErrResultNotFound = errors.New("результат не найден")

// ResultStore хранит результаты анализа по ID задачи и по хешу входных данных.
type ResultStore interface {
	Save(ctx context.Context, res *analysispb.Result, digest string) error
	Get(ctx context.Context, jobID string) (*analysispb.Result, error)
	FindByDigest(ctx context.Context, operation, digest string) (*analysispb.Result, error)
}

// RedisStore реализует ResultStore поверх Redis. Записи живут ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func resultKey(jobID string) string {
	return "result:" + jobID
}

func digestKey(operation, digest string) string {
	return "digest:" + operation + ":" + digest
}

// Сохранение результата. При непустом digest запоминается и ссылка digest -> ID задачи.
func (s *RedisStore) Save(ctx context.Context, res *analysispb.Result, digest string) error {
	data, err := analysispb.MarshalResult(res)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать результат: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(res.JobID), data, s.ttl)
		if digest != "" {
			pipe.Set(ctx, digestKey(res.Operation, digest), res.JobID, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("не удалось сохранить результат %s в Redis: %w", res.JobID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, jobID string) (*analysispb.Result, error) {
	data, err := s.client.Get(ctx, resultKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrResultNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать результат %s из Redis: %w", jobID, err)
	}
	return analysispb.UnmarshalResult(data)
}

func (s *RedisStore) FindByDigest(ctx context.Context, operation, digest string) (*analysispb.Result, error) {
	jobID, err := s.client.Get(ctx, digestKey(operation, digest)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать кеш из Redis: %w", err)
	}
	// сам результат мог истечь раньше ссылки
	return s.Get(ctx, jobID)
}
