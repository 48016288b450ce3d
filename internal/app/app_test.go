package app

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sharedApp     *Application
	sharedAppErr  error
	sharedAppOnce sync.Once
)

// newTestApplication builds the application once per test binary: the
// Prometheus exporter registers on the process-global registry, so a second
// instance would duplicate its collectors.
func newTestApplication(t *testing.T) *Application {
	t.Helper()
	sharedAppOnce.Do(func() {
		// Run from a scratch dir so no config.yaml leaks into the test.
		dir := t.TempDir()
		t.Chdir(dir)
		sharedApp, sharedAppErr = NewApplication()
	})
	require.NoError(t, sharedAppErr)
	return sharedApp
}

func TestNewApplication_Wiring(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.Config)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.BatchStore)
	assert.NotNil(t, app.AnalyticsService)
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8080", app.Server.Addr)
}

func TestRouter_Health(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_Metrics(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownBatch(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches/missing/summary", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "BATCH_NOT_FOUND")
}
