package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HallSource resolves sessions to their hall geometry from the store.
type HallSource interface {
	FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error)
}

// HallCache keeps session -> hall geometry in Redis. Geometry never changes
// once a session references the hall, so entries only expire by TTL.
// Redis failures degrade to reading the source.
type HallCache struct {
	rdb    redis.UniversalClient
	source HallSource
	ttl    time.Duration
	log    *zap.Logger
}

func NewHallCache(rdb redis.UniversalClient, source HallSource, ttl time.Duration, log *zap.Logger) *HallCache {
	return &HallCache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "hall")),
	}
}

func hallKey(sessionID int64) string {
	return fmt.Sprintf("hall:session:%d", sessionID)
}

func (c *HallCache) FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error) {
	halls := make(map[int64]*entity.CinemaHall, len(ids))
	if len(ids) == 0 {
		return halls, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = hallKey(id)
	}

	var missing []int64
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn("Hall cache read failed, using store", zap.Error(err))
		return c.source.FindHallsBySessionIDs(ctx, ids)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var hall entity.CinemaHall
		if err := json.Unmarshal([]byte(raw), &hall); err != nil {
			c.log.Warn("Discarding corrupt hall cache entry",
				zap.Error(err),
				zap.String("key", keys[i]),
			)
			missing = append(missing, ids[i])
			continue
		}
		halls[ids[i]] = &hall
	}

	if len(missing) == 0 {
		return halls, nil
	}

	loaded, err := c.source.FindHallsBySessionIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for sessionID, hall := range loaded {
		halls[sessionID] = hall
		body, err := json.Marshal(hall)
		if err != nil {
			continue
		}
		pipe.Set(ctx, hallKey(sessionID), body, c.ttl)
	}
	if len(loaded) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Warn("Hall cache write failed", zap.Error(err))
		}
	}

	return halls, nil
}
