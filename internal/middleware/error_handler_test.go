package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	apiError "support-portal/internal/errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := zap.NewNop()
	router.Use(ErrorHandler(logger), Recovery(logger))
	return router
}

func TestErrorHandler_AppError(t *testing.T) {
	router := setupRouter()
	router.GET("/x", func(c *gin.Context) {
		c.Error(apiError.Forbidden("no access", nil))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no access", body["error"])
}

func TestErrorHandler_RawErrorBecomesInternal(t *testing.T) {
	router := setupRouter()
	router.GET("/x", func(c *gin.Context) {
		c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRecovery_PanicBecomesInternal(t *testing.T) {
	router := setupRouter()
	router.GET("/x", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
