package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPageHandlerServesDocument(t *testing.T) {
	pages := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<h1>Sign up</h1>")},
	}

	r := gin.New()
	r.GET("/", NewPageHandler(pages).Serve("index.html"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Sign up")
}

func TestPageHandlerMissingDocument(t *testing.T) {
	r := gin.New()
	r.GET("/", NewPageHandler(fstest.MapFS{}).Serve("missing.html"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
