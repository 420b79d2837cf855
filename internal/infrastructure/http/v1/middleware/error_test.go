package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
)

func errorTestRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})
	return router
}

func performBoom(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	router := errorTestRouter(err)
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("app error maps code to status", func(t *testing.T) {
		w, body := performBoom(t, apperror.NewNotFound("product", "p-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.Equal(t, "product not found", body["message"])
	})

	t.Run("unavailable maps to 422", func(t *testing.T) {
		w, body := performBoom(t, apperror.NewUnavailable("p-1", "w-1"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "PRODUCT_NOT_AVAILABLE", body["code"])
	})

	t.Run("plain error becomes a generic 500", func(t *testing.T) {
		w, body := performBoom(t, errors.New("pool exhausted"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
		assert.NotContains(t, body["message"], "pool exhausted")
	})
}
