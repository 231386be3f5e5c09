package attendance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultScanDedupeTTL = 10 * time.Second

// ScanGuard suppresses replays of the same scan by the same caller within a
// short window.
//
//go:generate mockgen -source=scan_guard.go -destination=mock/scan_guard_mock.go -package=mock
type ScanGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// ScanKey derives the idempotency key for one caller redeeming one payload.
func ScanKey(userID string, action Action, raw string) string {
	sum := sha256.Sum256([]byte(userID + "|" + string(action) + "|" + raw))
	return hex.EncodeToString(sum[:])
}

func GetScanGuardKey(key string) string {
	return "attendance:scan:" + key
}

type redisScanGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisScanGuard(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) ScanGuard {
	l := zap.L().Named("attendance.scan_guard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.scan_guard")
	}
	if ttl <= 0 {
		ttl = DefaultScanDedupeTTL
	}
	return &redisScanGuard{rdb: rdb, ttl: ttl, logger: l}
}

// Claim returns false when the key is already held. Redis being unavailable
// fails open; the unique day index still rejects duplicate records.
func (g *redisScanGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, GetScanGuardKey(key), "1", g.ttl).Result()
	if err != nil {
		g.logger.Warn("scan guard unavailable, allowing scan", zap.Error(err))
		return true, nil
	}
	return ok, nil
}

func (g *redisScanGuard) Release(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, GetScanGuardKey(key)).Err()
}

type nopScanGuard struct{}

func NewNopScanGuard() ScanGuard { return nopScanGuard{} }

func (nopScanGuard) Claim(context.Context, string) (bool, error) { return true, nil }
func (nopScanGuard) Release(context.Context, string) error       { return nil }
