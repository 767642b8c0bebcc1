package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestHandlers wires a Handlers instance to a sqlmock connection.
func newTestHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Handlers{DB: db, Categories: &catalog.SQLCategoryStore{DB: db}}, mock
}

// testContext builds a gin context around the given request, recording the
// response.
func testContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
