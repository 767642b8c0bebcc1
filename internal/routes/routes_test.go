package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/spiceshelf/spiceshelf-golang/internal/handlers"
)

func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := SetupRouter(&handlers.Handlers{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/shop", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := SetupRouter(&handlers.Handlers{})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := SetupRouter(&handlers.Handlers{})

	for _, path := range []string{
		"/v1/auth/whoami",
		"/v1/subscriptions/me",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "path=%s", path)
	}
}
