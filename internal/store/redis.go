package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "icy:brand:"

// RedisStore keeps the newest profile at icy:brand:<key> and the retained
// revisions, newest first, in the list icy:brand:<key>:history.
type RedisStore struct {
	client  *redis.Client
	history int
}

// NewRedisStore connects to addr and pings it.
func NewRedisStore(ctx context.Context, addr string, history int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return newRedisStore(client, history), nil
}

func newRedisStore(client *redis.Client, history int) *RedisStore {
	return &RedisStore{client: client, history: max(history, 1)}
}

func redisKeys(key string) (current, history, seq string, err error) {
	k, err := NormalizeKey(key)
	if err != nil {
		return "", "", "", err
	}
	base := redisPrefix + k
	return base, base + ":history", base + ":seq", nil
}

func (s *RedisStore) Save(ctx context.Context, key string, p brand.Profile) error {
	current, histKey, seqKey, err := redisKeys(key)
	if err != nil {
		return err
	}
	data, err := encode(p)
	if err != nil {
		return fmt.Errorf("marshaling brand profile: %w", err)
	}

	n, err := s.client.Incr(ctx, seqKey).Uint64()
	if err != nil {
		return fmt.Errorf("allocating revision: %w", err)
	}
	rev, err := json.Marshal(Revision{Number: n, SavedAt: time.Now().UTC(), Profile: p.Clone()})
	if err != nil {
		return fmt.Errorf("marshaling revision: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, current, data, 0)
		pipe.LPush(ctx, histKey, rev)
		pipe.LTrim(ctx, histKey, 0, int64(s.history-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving %s: %w", current, err)
	}
	logger.Debug("store: saved %s revision %d", current, n)
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (brand.Profile, bool, error) {
	current, _, _, err := redisKeys(key)
	if err != nil {
		return brand.Profile{}, false, err
	}
	data, err := s.client.Get(ctx, current).Bytes()
	if errors.Is(err, redis.Nil) {
		return brand.Profile{}, false, nil
	}
	if err != nil {
		return brand.Profile{}, false, fmt.Errorf("getting %s: %w", current, err)
	}
	p, err := decode(data)
	if err != nil {
		return brand.Profile{}, false, err
	}
	return p, true, nil
}

func (s *RedisStore) History(ctx context.Context, key string) ([]Revision, error) {
	_, histKey, _, err := redisKeys(key)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.LRange(ctx, histKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", histKey, err)
	}
	revs := make([]Revision, 0, len(raw))
	for _, r := range raw {
		rev, err := decodeRevision([]byte(r))
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	return revs, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
