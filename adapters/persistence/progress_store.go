package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/skillsync/internal/application/service"
)

const (
	progressEventsKey       = "skillsync:progress:events"
	progressCompletedKey    = "skillsync:progress:completed"
	progressCompletenessKey = "skillsync:progress:completeness:"
)

// RedisProgressStore keeps worker counters in Redis: a hash of event counts,
// a counter of profiles that reached 100%, and the last completeness per
// session (expiring with the session).
type RedisProgressStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProgressStore(rdb *redis.Client, sessionTTL time.Duration) *RedisProgressStore {
	return &RedisProgressStore{rdb: rdb, ttl: sessionTTL}
}

var _ service.ProgressStore = (*RedisProgressStore)(nil)

func (s *RedisProgressStore) IncrementEvent(ctx context.Context, eventType service.ProfileEventType) error {
	return s.rdb.HIncrBy(ctx, progressEventsKey, string(eventType), 1).Err()
}

func (s *RedisProgressStore) SwapCompleteness(ctx context.Context, sessionID string, pct int) (int, bool, error) {
	old, err := s.rdb.SetArgs(ctx, progressCompletenessKey+sessionID, pct, redis.SetArgs{Get: true, TTL: s.ttl}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	prev, err := strconv.Atoi(old)
	if err != nil {
		return 0, false, nil
	}
	return prev, true, nil
}

func (s *RedisProgressStore) IncrementCompleted(ctx context.Context) error {
	return s.rdb.Incr(ctx, progressCompletedKey).Err()
}

// EventCounts returns how many events of each type were tracked.
func (s *RedisProgressStore) EventCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, progressEventsKey).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[k] = n
	}
	return counts, nil
}
