package knowledge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const docsKeyPrefix = "rag:docs:"
const docsVersionKeyPrefix = "rag:docs:ver:"

// Repository persists raw knowledge snippets so the embedding index
// can be rebuilt without re-authoring documents. Every write bumps the
// topic's version so operators can tell stale indexes from fresh ones.
type Repository interface {
	AppendDocuments(ctx context.Context, topic string, docs []string) error
	ReplaceDocuments(ctx context.Context, topic string, docs []string) error
	GetDocuments(ctx context.Context, topic string) ([]string, error)
	Version(ctx context.Context, topic string) (int64, error)
	LoadAll(ctx context.Context) (map[string][]string, error)
}

// RedisRepository stores raw documents in Redis lists keyed by topic.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed knowledge repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	if client == nil {
		panic("knowledge: redis client cannot be nil")
	}
	return &RedisRepository{client: client}
}

// AppendDocuments pushes new snippets onto the topic's list and bumps
// its version.
func (r *RedisRepository) AppendDocuments(ctx context.Context, topic string, docs []string) error {
	if len(docs) == 0 {
		return nil
	}
	args := make([]interface{}, len(docs))
	for i, d := range docs {
		args[i] = d
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, docsKey(topic), args...)
	pipe.Incr(ctx, docsVersionKey(topic))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("knowledge: failed to push documents: %w", err)
	}
	return nil
}

// ReplaceDocuments overwrites all snippets for the topic and bumps its
// version.
func (r *RedisRepository) ReplaceDocuments(ctx context.Context, topic string, docs []string) error {
	key := docsKey(topic)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(docs) > 0 {
		args := make([]interface{}, len(docs))
		for i, d := range docs {
			args[i] = d
		}
		pipe.RPush(ctx, key, args...)
	}
	pipe.Incr(ctx, docsVersionKey(topic))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("knowledge: failed to replace documents: %w", err)
	}
	return nil
}

// GetDocuments retrieves all snippets for the topic.
func (r *RedisRepository) GetDocuments(ctx context.Context, topic string) ([]string, error) {
	return r.client.LRange(ctx, docsKey(topic), 0, -1).Result()
}

// Version retrieves the topic's write counter, zero when the topic has
// never been written.
func (r *RedisRepository) Version(ctx context.Context, topic string) (int64, error) {
	val, err := r.client.Get(ctx, docsVersionKey(topic)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("knowledge: get version: %w", err)
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("knowledge: parse version: %w", err)
	}
	return version, nil
}

// LoadAll returns all documents keyed by topic.
func (r *RedisRepository) LoadAll(ctx context.Context) (map[string][]string, error) {
	var cursor uint64
	result := make(map[string][]string)

	for {
		keys, next, err := r.client.Scan(ctx, cursor, docsKeyPrefix+"*", 50).Result()
		if err != nil {
			return nil, fmt.Errorf("knowledge: scan keys failed: %w", err)
		}
		for _, key := range keys {
			if strings.HasPrefix(key, docsVersionKeyPrefix) {
				continue
			}
			topic := strings.TrimPrefix(key, docsKeyPrefix)
			docs, err := r.client.LRange(ctx, key, 0, -1).Result()
			if err != nil {
				return nil, fmt.Errorf("knowledge: fetch %s failed: %w", topic, err)
			}
			result[topic] = docs
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return result, nil
}

func docsKey(topic string) string {
	return docsKeyPrefix + topic
}

func docsVersionKey(topic string) string {
	return docsVersionKeyPrefix + topic
}
