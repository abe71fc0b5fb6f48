package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"admarket-api/internal/events"
	"admarket-api/internal/listing"
	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("// app"), 0o644))

	bus := events.NewEventBus(zap.NewNop())
	repo := listing.NewMockListingRepository()
	service := listing.NewListingService(bus, zap.NewNop(), repo)

	router := gin.New()
	SetupRoutes(router, &gorm.DB{}, logger.New(), service, staticDir)
	return router
}

func TestSetupRoutes_HealthEndpoint(t *testing.T) {
	router := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code) // No live DB behind the test router
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestSetupRoutes_AdsEndpoints(t *testing.T) {
	router := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/ads", nil)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code) // Empty body fails binding
}

func TestSetupRoutes_MetricsEndpoint(t *testing.T) {
	router := createTestRouter(t)

	// Generate at least one measured request before scraping
	req := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admarket_http_requests_total")
}

func TestSetupRoutes_StaticPage(t *testing.T) {
	router := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html>")
}

func TestSetupRoutes_CORSPreflight(t *testing.T) {
	router := createTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/ads", nil)
	req.Header.Set("Origin", "https://web.telegram.org")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRoutes_UnknownRoute(t *testing.T) {
	router := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
