package ratelimiter

import (
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResourceLimiter is a fixed-window counter stored in redis with a TTL of
// one window.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log}
}

type ApplyResourceLimiterInput struct {
	// ResourceName is the limited entity, for example an email address
	ResourceName string
	// LimiterGroupName namespaces the key, for example intake-submit
	LimiterGroupName string
	Window           time.Duration
	// MaxQuota of zero or less disables the limit
	MaxQuota int
	// NowUTC defaults to time.Now().UTC()
	NowUTC time.Time
}

type ApplyResourceLimiterOutput struct {
	Allowed    bool
	RetryAfter time.Duration
}

func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error) {
	if in == nil {
		return &ApplyResourceLimiterOutput{Allowed: false}, fmt.Errorf("nil input")
	}
	if in.MaxQuota <= 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}, nil
	}

	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName))
	window := in.Window
	if window < time.Second {
		window = time.Minute
	}
	if resource == "" || group == "" {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfter: window}, nil
	}

	now := in.NowUTC
	if now.IsZero() {
		now = time.Now().UTC()
	}

	windowSec := int64(window / time.Second)
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf("%s:%s:%d", group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("ResourceLimiter.ApplyResourceLimiter increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return &ApplyResourceLimiterOutput{Allowed: false}, err
	}

	if count > in.MaxQuota {
		nextWindowStart := time.Unix((windowID+1)*windowSec, 0)
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfter: nextWindowStart.Sub(now) + time.Second}, nil
	}
	return &ApplyResourceLimiterOutput{Allowed: true}, nil
}
