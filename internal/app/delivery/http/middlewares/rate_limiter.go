package middlewares

import (
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ActorRateLimiter keeps a token bucket per authenticated actor. Requests
// without an actor are keyed by remote IP.
type ActorRateLimiter struct {
	log      *zap.Logger
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

func NewActorRateLimiter(logger *zap.Logger, requestsPerSecond float64, burst int) *ActorRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ActorRateLimiter{
		log:      logger,
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *ActorRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

func (l *ActorRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}
		if actor, ok := utils.GetActor(r.Context()); ok {
			key = actor.ID
		}

		reservation := l.limiterFor(key).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			l.log.Info("ActorRateLimiter.Limit request throttled",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingActorIDKey, key),
				zap.Duration(constvars.LoggingDurationKey, delay),
			)
			seconds := int(delay.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
			utils.BuildErrorResponse(l.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ActorRateLimit builds a per-actor limiter from the app config.
func (m *Middlewares) ActorRateLimit() func(next http.Handler) http.Handler {
	return NewActorRateLimiter(m.Log, m.InternalConfig.App.ActorRequestsPerSecond, m.InternalConfig.App.ActorRequestBurst).Limit
}
