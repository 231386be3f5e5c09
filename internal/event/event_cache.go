package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	eventerrors "go-volunteer/internal/event/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DefaultCacheTTL = 5 * time.Minute

// Lookup is the read side of the event collaborator used by the attendance
// workflows, plus the feedback summary write-back.
//
//go:generate mockgen -source=event_cache.go -destination=mock/event_lookup_mock.go -package=mock
type Lookup interface {
	Get(ctx context.Context, id uuid.UUID) (*Event, error)
	IsApprovedVolunteer(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	UpdateFeedbackSummary(ctx context.Context, id uuid.UUID, summary FeedbackSummary) error
}

func GetEventCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("events:detail:%s", id)
}

type cachedLookup struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewLookup wraps repo with a Redis read-through cache. A nil rdb disables
// caching.
func NewLookup(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Lookup {
	l := zap.L().Named("event.lookup")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("event.lookup")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &cachedLookup{repo: repo, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (c *cachedLookup) Get(ctx context.Context, id uuid.UUID) (*Event, error) {
	cacheKey := GetEventCacheKey(id)

	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var e Event
			if err := json.Unmarshal(cached, &e); err == nil {
				return &e, nil
			}
			c.logger.Warn("discard undecodable event cache entry", zap.String("event_id", id.String()))
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("event cache read failed", zap.String("event_id", id.String()), zap.Error(err))
		}
	}

	v, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		e, err := c.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, eventerrors.ErrEventNotFound
			}
			c.logger.Error("load event failed", zap.String("event_id", id.String()), zap.Error(err))
			return nil, err
		}

		if c.rdb != nil {
			if payload, err := json.Marshal(e); err == nil {
				if err := c.rdb.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
					c.logger.Warn("event cache write failed", zap.String("event_id", id.String()), zap.Error(err))
				}
			}
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}

	e := *v.(*Event)
	return &e, nil
}

func (c *cachedLookup) IsApprovedVolunteer(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	count, err := c.repo.CountApprovedVolunteer(ctx, eventID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *cachedLookup) UpdateFeedbackSummary(ctx context.Context, id uuid.UUID, summary FeedbackSummary) error {
	if err := c.repo.UpdateFeedbackSummary(ctx, id, summary); err != nil {
		return err
	}

	if c.rdb != nil {
		cacheKey := GetEventCacheKey(id)
		if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
			c.logger.Warn("event cache invalidation failed", zap.String("cache_key", cacheKey), zap.Error(err))
		}
	}
	return nil
}
