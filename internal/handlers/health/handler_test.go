package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "hotelos/infras/otel/mocks"
	"hotelos/internal/handlers/health"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, checks map[string]health.Check) (int, health.Response) {
	t.Helper()

	handler := health.NewWithChecks(otelMocks.NewOtel(), checks)
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Data health.Response `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body.Data
}

func TestHealth_AllUp(t *testing.T) {
	ok := func(context.Context) error { return nil }

	code, res := serve(t, map[string]health.Check{"postgres": ok, "redis": ok})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, res.Dependencies)
}

func TestHealth_DependencyDown(t *testing.T) {
	code, res := serve(t, map[string]health.Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "down", res.Dependencies["redis"])
	assert.Equal(t, "up", res.Dependencies["postgres"])
}
