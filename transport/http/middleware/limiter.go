package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	"hotelos/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit is a fixed window per client address and user agent, counted in
// Redis. When Redis is unavailable requests are let through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limits.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, ok := a.hit(r.Context(), cacheKey, limits.WindowSeconds)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			if count > limits.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limits.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit counts one request against key. ok is false when the counter could not
// be read or written.
func (a *appMiddleware) hit(ctx context.Context, key string, windowSeconds int) (count int, ok bool) {
	err := a.cache.Get(ctx, key, &count)

	switch {
	case cache.IsMiss(err):
		count = 1
	case err != nil:
		log.Warn().Err(err).Msg("rate limiter could not read counter")

		return 0, false
	default:
		count++
	}

	if err = a.cache.Save(ctx, key, count, windowSeconds); err != nil {
		log.Warn().Err(err).Msg("rate limiter could not save counter")

		return 0, false
	}

	return count, true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// getClientIP relies on chi's RealIP having already rewritten RemoteAddr
// from X-Forwarded-For or X-Real-IP.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
