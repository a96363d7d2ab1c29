package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/ascendly/ascendly/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyDashboard = "analytics:dashboard:%s"

// DashboardLimiter throttles per-caller dashboard recomputation. The
// dashboard endpoint rescans every fact table on each call, so an
// unthrottled client can keep the database saturated. Disabled when no
// Redis address is configured.
type DashboardLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewDashboardLimiter(cfg config.Config) *DashboardLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &DashboardLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &DashboardLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.Analytics.DashboardRate,
		burst:   cfg.Analytics.DashboardBurst,
	}
}

func (l *DashboardLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the caller may trigger another dashboard build.
// Always true when the limiter is disabled.
func (l *DashboardLimiter) Allow(ctx context.Context, callerID string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyDashboard, strings.TrimSpace(callerID)), l.rate, l.burst)
}
