package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"worksheethub/config"
)

func newRouter() http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"*"}
	return setupRouter(cfg)
}

func TestWrongMethodGets405(t *testing.T) {
	router := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET on a POST route, got %d", w.Code)
	}
}

func TestPreflightAnswered(t *testing.T) {
	router := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight response, got %d", w.Code)
	}
}
