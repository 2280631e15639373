package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/litdebate/backend/pkg/logger"
)

const jobKeyPrefix = "job:"

// RedisStore keeps job records in Redis so status survives process restarts.
// Keys carry a TTL slightly past the retention window as a backstop; the
// explicit sweep remains the authoritative cleanup path.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(host string, port int, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis job store initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Create(ctx context.Context, record *Record) error {
	return s.set(ctx, record)
}

func (s *RedisStore) Update(ctx context.Context, record *Record) error {
	exists, err := s.client.Exists(ctx, jobKeyPrefix+record.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to check job record: %w", err)
	}
	if exists == 0 {
		return ErrJobNotFound
	}
	return s.set(ctx, record)
}

func (s *RedisStore) set(ctx context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal job record: %w", err)
	}

	err = s.client.Set(ctx, jobKeyPrefix+record.ID, data, RetentionWindow+RetentionWindow/2).Err()
	if err != nil {
		return fmt.Errorf("failed to store job record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*Record, error) {
	var records []*Record

	iter := s.client.Scan(ctx, 0, jobKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get job record: %w", err)
		}

		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		records = append(records, &record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan job records: %w", err)
	}

	return records, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, jobKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete job record: %w", err)
	}
	return nil
}
