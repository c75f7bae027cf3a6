package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uiventures-tps/internal/apiclient"
	"uiventures-tps/internal/config"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/session"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Store:      config.SessionStoreMemory,
			CookieName: "tps_session",
			Secret:     strings.Repeat("s", 32),
			MaxAge:     time.Hour,
		},
		Security: config.SecurityConfig{
			EnableRateLimit: false,
			RateLimitRPS:    100,
			RateLimitBurst:  10,
			AllowedOrigins:  []string{"http://localhost:8084"},
			TrustedProxies:  []string{"127.0.0.1"},
		},
	}
}

// newTestHandler serves the full middleware chain against a backend that
// answers every product and order list with an empty array.
func newTestHandler(t *testing.T) (http.Handler, *session.MemoryStore) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/users/"):
			w.Write([]byte(`{"id":"u1","name":"Ada","role":"admin","department":"bookshop"}`))
		case strings.HasPrefix(r.URL.Path, "/products/"), strings.HasPrefix(r.URL.Path, "/orders/"):
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewMemoryStore(cfg.Session.CookieName, cfg.Session.MaxAge)

	return newHandler(cfg, apiclient.New(backend.URL, logger), store, logger), store
}

func TestServer_Routes(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
		contentType    string
	}{
		{http.MethodGet, "/", http.StatusOK, "text/html"},
		{http.MethodGet, "/login", http.StatusOK, "text/html"},
		{http.MethodGet, "/signup", http.StatusOK, "text/html"},
		{http.MethodGet, "/dashboard", http.StatusOK, "text/html"},
		{http.MethodGet, "/health", http.StatusOK, "application/json"},
		{http.MethodGet, "/sse/products", http.StatusOK, "text/event-stream"},
		{http.MethodGet, "/sse/orders", http.StatusOK, "text/event-stream"},
		{http.MethodPost, "/auth/sign-out", http.StatusOK, "text/event-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			handler.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if w.Header().Get("X-Request-ID") == "" {
				t.Error("every response should carry a request id")
			}
		})
	}
}

func TestServer_ErrorHandling(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
		{http.MethodPost, "/dashboard", http.StatusMethodNotAllowed},
		{http.MethodGet, "/orders", http.StatusMethodNotAllowed},
		{http.MethodPut, "/products/p1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestServer_HandleHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode health JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	healthData, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected health data in response")
	}
	if status, ok := healthData["status"].(string); !ok || status != "healthy" {
		t.Errorf("health status = %v, want 'healthy'", healthData["status"])
	}
	if _, ok := healthData["timestamp"]; !ok {
		t.Error("health response should include timestamp")
	}
}

func TestServer_SecurityHeaders(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for name, want := range headers {
		if got := w.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if csp := w.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "https://cdn.jsdelivr.net") {
		t.Errorf("CSP should allow the datastar bundle, got %q", csp)
	}
}

func TestServer_SessionReachesDashboard(t *testing.T) {
	handler, store := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(store.Put("sid", models.User{ID: "u1", Name: "Ada", Role: models.RoleAdmin, Department: "bookshop"}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	body := w.Body.String()
	if !strings.Contains(body, "Admin - Ada (BOOKSHOP DEPARTMENT)") {
		t.Errorf("dashboard should render the admin view, got %q", body)
	}
	if !strings.Contains(body, "No Products") || !strings.Contains(body, "No orders") {
		t.Error("empty lists should render their placeholders")
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("cache-control = %q, want no-store", cc)
	}
}

func TestNewSessionStore(t *testing.T) {
	tests := []struct {
		store string
		want  string
	}{
		{config.SessionStoreMemory, "*session.MemoryStore"},
		{config.SessionStoreCookie, "*session.CookieStore"},
	}

	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Session.Store = tt.store

			store, closeStore, err := newSessionStore(cfg)
			if err != nil {
				t.Fatalf("newSessionStore() failed: %v", err)
			}
			if got := fmt.Sprintf("%T", store); got != tt.want {
				t.Errorf("store = %s, want %s", got, tt.want)
			}
			if err := closeStore(t.Context()); err != nil {
				t.Errorf("close hook failed: %v", err)
			}
		})
	}
}

func TestNewSessionStore_RedisUnavailable(t *testing.T) {
	cfg := newTestConfig()
	cfg.Session.Store = config.SessionStoreRedis
	cfg.Redis.Addr = "127.0.0.1:1"

	if _, _, err := newSessionStore(cfg); err == nil {
		t.Error("newSessionStore() should fail when redis is unreachable")
	}
}
