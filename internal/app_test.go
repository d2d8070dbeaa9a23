package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ihsearch/internal/controllers"
	"ihsearch/internal/providers"
	"ihsearch/internal/storage/memory"
	"ihsearch/internal/structures"
	"ihsearch/internal/testutil"
)

func newTestHandler(t *testing.T, conf *structures.Config) http.Handler {
	t.Helper()
	logger := &testutil.MockLogger{}
	store, err := memory.New(structures.MemoryConfig{}, logger, testutil.NewMockMetrics())
	require.NoError(t, err)
	router := providers.NewRouterProvider()
	router.Get("/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return NewHandler(controllers.NewHealthController(store, logger), conf, router, testutil.NewMockMetrics())
}

func TestNewHandler_ServesHealthAndRoutes(t *testing.T) {
	h := newTestHandler(t, &structures.Config{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"storage":"memory"`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewHandler_Cors(t *testing.T) {
	h := newTestHandler(t, &structures.Config{Cors: structures.CorsConfig{AllowedOrigins: []string{"http://localhost:3000"}}})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewStorage(t *testing.T) {
	logger := &testutil.MockLogger{}

	store, err := NewStorage(&structures.Config{Storage: structures.StorageConfig{Driver: structures.StorageMemory}}, logger, testutil.NewMockMetrics())
	require.NoError(t, err)
	assert.Equal(t, structures.StorageMemory, store.Driver())

	_, err = NewStorage(&structures.Config{Storage: structures.StorageConfig{Driver: "sqlite"}}, logger, testutil.NewMockMetrics())
	assert.EqualError(t, err, `unknown storage driver "sqlite"`)
}
