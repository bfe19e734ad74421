package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assetbook/pkg/config"
	"assetbook/pkg/logger"
	"assetbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routesFunc func(*httprouter.Router)

func (f routesFunc) RegisterRoutes(r *httprouter.Router) { f(r) }

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1024,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Nop(),
	}
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	app := NewApplication(testConfig())
	app.SetApp(
		routesFunc(func(r *httprouter.Router) {
			r.POST("/api/v1/booking-form/submit", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"data":{"id":"sub_1"}}`))
			})
		}),
		routesFunc(func(r *httprouter.Router) {
			r.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusOK)
			})
		}),
	)
	t.Cleanup(func() {
		app.idempotencyStore.Stop()
		app.rateLimiter.Stop()
	})
	return app
}

func TestApplication_Routing(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking-form/submit", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, ":8080", app.server.Addr)
}

func TestApplication_AppStackRejectsNonJSON(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking-form/submit", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestApplication_ReplaysIdempotentSubmit(t *testing.T) {
	app := newTestApplication(t)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/booking-form/submit", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.DefaultIdempotencyHeader, "key-1")
		rec := httptest.NewRecorder()
		app.server.Handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusAccepted, send().Code)
	replay := send()
	assert.Equal(t, http.StatusAccepted, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(middleware.HeaderIdempotentReplayed))
}

func TestApplication_RunClosersInOrder(t *testing.T) {
	app := NewApplication(testConfig())

	var order []string
	app.OnShutdown("producer", func(context.Context) error {
		order = append(order, "producer")
		return errors.New("already closed")
	})
	app.OnShutdown("dlq", func(context.Context) error {
		order = append(order, "dlq")
		return nil
	})

	app.runClosers(context.Background())

	assert.Equal(t, []string{"producer", "dlq"}, order)
}
