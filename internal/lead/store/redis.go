// internal/lead/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lead-assistant/internal/common/config"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/metrics"
	"lead-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session's record as JSON under <prefix><sessionID>.
// Writers in this process are serialized per key; writers in other processes
// are handled with WATCH/MULTI and retried on conflict.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	maxRetries int
	keys       *keyedMutex
	logger     logger.Logger
}

func NewRedisStore(client *redis.Client, cfg config.StoreConfig, log logger.Logger) *RedisStore {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &RedisStore{
		client:     client,
		prefix:     cfg.KeyPrefix,
		ttl:        config.GetDuration(cfg.TTL),
		maxRetries: maxRetries,
		keys:       newKeyedMutex(),
		logger:     log.WithFields(map[string]interface{}{"component": "redis-store"}),
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + normalizeSessionID(sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.LeadData, error) {
	return load(ctx, s.client, s.key(sessionID))
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.LeadData, error) {
	key := s.key(sessionID)

	unlock := s.keys.lock(key)
	defer unlock()

	var (
		result *models.LeadData
		fnErr  error
	)

	txf := func(tx *redis.Tx) error {
		current, err := load(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}
		if next == nil {
			next = &models.LeadData{}
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("%w: encode record: %v", ErrStoreUnavailable, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = next
		return nil
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(10*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, ctx.Err())
			}
		}

		err := s.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return result.Clone(), nil
		case fnErr != nil:
			return nil, fnErr
		case errors.Is(err, redis.TxFailedErr):
			metrics.StoreUpdateConflicts.WithLabelValues("redis").Inc()
			s.logger.Debug("lead update conflict, retrying", map[string]interface{}{
				"key":     key,
				"attempt": attempt + 1,
			})
			continue
		case errors.Is(err, ErrStoreUnavailable):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return nil, fmt.Errorf("%w: gave up after %d conflicting updates", ErrStoreUnavailable, s.maxRetries)
}

func (s *RedisStore) Reset(ctx context.Context, sessionID string) error {
	key := s.key(sessionID)

	unlock := s.keys.lock(key)
	defer unlock()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, client getter, key string) (*models.LeadData, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.LeadData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record models.LeadData
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: decode record %s: %v", ErrStoreUnavailable, key, err)
	}
	return &record, nil
}
