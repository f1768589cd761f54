package health

import (
	"context"
	"net/http"
	"time"

	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/shared/constant"
	"hotelos/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
	otel   otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return NewWithChecks(otel, map[string]Check{
		"postgres": db.Write.PingContext,
		"redis": func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		},
	})
}

func NewWithChecks(otel otel.Otel, checks map[string]Check) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

type Response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health pings every dependency.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Response] "All dependencies reachable"
// @Failure 503 {object} response.Data[Response] "At least one dependency is down"
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	res := Response{Status: "ok", Dependencies: make(map[string]string, len(handler.checks))}
	code := http.StatusOK

	for name, check := range handler.checks {
		if err := check(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			res.Dependencies[name] = "down"
			res.Status = "degraded"
			code = http.StatusServiceUnavailable

			continue
		}

		res.Dependencies[name] = "up"
	}

	response.WithJSON(w, code, res)
}
