package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupHealthTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func TestHealthHandler_Check_NilDatabase(t *testing.T) {
	router := setupHealthTest()
	logger := logger.New()

	handler := NewHealthHandler(nil, logger)
	router.GET("/api/health", handler.Check)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ERROR", response["status"])
	assert.NotEmpty(t, response["message"])
	assert.NotContains(t, response, "database")
}

func TestHealthHandler_Check_UninitializedDatabase(t *testing.T) {
	router := setupHealthTest()
	logger := logger.New()

	// A bare gorm.DB has no live connection behind it
	handler := NewHealthHandler(&gorm.DB{}, logger)
	router.GET("/api/health", handler.Check)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ERROR", response["status"])
}

func TestHealthHandler_Check_ResponseFormat(t *testing.T) {
	router := setupHealthTest()
	logger := logger.New()

	handler := NewHealthHandler(&gorm.DB{}, logger)
	router.GET("/api/health", handler.Check)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	assert.Contains(t, response, "status")
	assert.Contains(t, response, "message")

	// Status is the OK/ERROR envelope, never free text
	status := response["status"].(string)
	assert.Contains(t, []string{"OK", "ERROR"}, status)
}
