// Package throttle rate-limits credential attempts per email+IP pair using
// Redis INCR with a sliding expiry. The throttle fails open: if Redis is
// unreachable, authentication proceeds and the error is logged.
package throttle

import (
	"context"
	"fmt"
	"time"

	"rockspec-notes/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	maxAttempts = 10
	window      = 15 * time.Minute
)

type LoginThrottle struct {
	rdb *redis.Client
	log logger.ILogger
}

// New accepts a nil client, in which case the throttle is disabled.
func New(rdb *redis.Client, log logger.ILogger) *LoginThrottle {
	return &LoginThrottle{rdb: rdb, log: log}
}

func key(email, ip string) string {
	return fmt.Sprintf("login-attempts:%s:%s", email, ip)
}

// Allow reports whether another attempt is permitted and records it.
func (t *LoginThrottle) Allow(ctx context.Context, email, ip string) bool {
	if t.rdb == nil {
		return true
	}

	k := key(email, ip)
	count, err := t.rdb.Incr(ctx, k).Result()
	if err != nil {
		t.log.Warn("throttle", "redis unavailable, failing open", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}
	if count == 1 {
		t.rdb.Expire(ctx, k, window)
	}
	return count <= maxAttempts
}

// Reset clears the counter after a successful authentication.
func (t *LoginThrottle) Reset(ctx context.Context, email, ip string) {
	if t.rdb == nil {
		return
	}
	if err := t.rdb.Del(ctx, key(email, ip)).Err(); err != nil {
		t.log.Warn("throttle", "failed to reset attempt counter", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
